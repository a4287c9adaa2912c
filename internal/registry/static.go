package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// StaticResolver reads a pre-published node list instead of querying the
// live registry. Source may be a local file path or an http(s) URL; the
// document is YAML or JSON, detected by extension or content.
type StaticResolver struct {
	Source     string
	HTTPClient *http.Client
}

// nodeList is the static document shape.
type nodeList struct {
	Nodes []Node `yaml:"nodes" json:"nodes"`
}

func (r *StaticResolver) client() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return http.DefaultClient
}

// Resolve loads and normalizes the static list. An unreachable source or a
// non-2xx status surfaces as *ResolutionError; so does an unparsable
// document, since a static list is deployment-controlled and garbage there
// means misconfiguration rather than federation noise.
func (r *StaticResolver) Resolve(ctx context.Context) ([]Node, error) {
	data, err := r.read(ctx)
	if err != nil {
		return nil, &ResolutionError{Source: "static", Err: err}
	}

	list, err := parseNodeList(data, filepath.Ext(r.Source))
	if err != nil {
		return nil, &ResolutionError{Source: "static", Err: err}
	}

	nodes := make([]Node, 0, len(list.Nodes))
	for _, n := range list.Nodes {
		n.BaseURL = NormalizeBaseURL(n.BaseURL)
		if n.BaseURL == "" {
			continue
		}
		if n.ID == "" {
			n.ID = NodeID(n.BaseURL)
		}
		nodes = append(nodes, n)
	}
	return dedupe(nodes), nil
}

func (r *StaticResolver) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(r.Source, "http://") || strings.HasPrefix(r.Source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := r.client().Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(r.Source)
}

// parseNodeList parses a node list from bytes. ext is the file extension
// for a format hint; empty or unknown means detect from content.
func parseNodeList(data []byte, ext string) (*nodeList, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	switch ext {
	case ".yaml":
		var list nodeList
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse node list yaml: %w", err)
		}
		return &list, nil
	case ".json":
		var list nodeList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse node list json: %w", err)
		}
		return &list, nil
	}

	// Detect: JSON starts with '{', anything else is YAML.
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		var list nodeList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse node list json: %w", err)
		}
		return &list, nil
	}
	var list nodeList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse node list yaml: %w", err)
	}
	return &list, nil
}
