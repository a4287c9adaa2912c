package registry

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"specline/internal/logging"
)

// DefaultRegistryURL is the public federation registry endpoint.
const DefaultRegistryURL = "https://registry.vamdc.eu/registry-12.07/services/RegistryQueryv1_0"

// DefaultCapability identifies resources that speak the node query protocol.
const DefaultCapability = "ivo://vamdc/std/VAMDC-TAP"

// LiveResolver queries the central registry service for active nodes.
type LiveResolver struct {
	RegistryURL string
	Capability  string
	HTTPClient  *http.Client
}

// NewLiveResolver returns a resolver against the given registry endpoint,
// or the default endpoint when url is empty.
func NewLiveResolver(url string) *LiveResolver {
	if url == "" {
		url = DefaultRegistryURL
	}
	return &LiveResolver{RegistryURL: url, Capability: DefaultCapability}
}

func (r *LiveResolver) client() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return http.DefaultClient
}

func (r *LiveResolver) capability() string {
	if r.Capability != "" {
		return r.Capability
	}
	return DefaultCapability
}

// Resolve issues a single registry search and returns the normalized node
// list. Transport failures and non-2xx statuses surface as *ResolutionError;
// a response that parses to zero nodes is a valid empty result.
func (r *LiveResolver) Resolve(ctx context.Context) ([]Node, error) {
	body := searchEnvelope(r.capability())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.RegistryURL, strings.NewReader(body))
	if err != nil {
		return nil, &ResolutionError{Source: "registry", Err: err}
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	// The registry requires the action header to be present but empty.
	req.Header.Set("SOAPAction", `""`)

	resp, err := r.client().Do(req)
	if err != nil {
		return nil, &ResolutionError{Source: "registry", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResolutionError{Source: "registry", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResolutionError{Source: "registry", Err: fmt.Errorf("read response: %w", err)}
	}
	return parseSearchResponse(data), nil
}

// searchEnvelope builds the registry search request: all resource records
// advertising the capability with active status, projected to a title and
// an access URL.
func searchEnvelope(capability string) string {
	query := fmt.Sprintf(
		`for $r in //resource where $r/capability/@standardID = '%s' and $r/@status = 'active' `+
			`return <record><title>{$r/title/text()}</title><accessURL>{$r/capability/interface/accessURL/text()}</accessURL></record>`,
		capability)
	return `<?xml version="1.0" encoding="UTF-8"?>` +
		`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soapenv:Body><XQuerySearch xmlns="http://registry.vamdc.eu/search"><xquery>` +
		xmlEscape(query) +
		`</xquery></XQuerySearch></soapenv:Body></soapenv:Envelope>`
}

func xmlEscape(s string) string {
	var b strings.Builder
	// EscapeText only fails on writer errors; strings.Builder never errors.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// searchResponse mirrors the registry reply: zero or more records, each a
// display title plus one or more whitespace-separated candidate URLs.
type searchResponse struct {
	Records []searchRecord `xml:"Body>XQuerySearchResponse>result>record"`
}

type searchRecord struct {
	Title     string `xml:"title"`
	AccessURL string `xml:"accessURL"`
}

// parseSearchResponse extracts nodes from a registry reply. Records without
// a usable URL contribute nothing. A document that cannot be parsed yields
// an empty list: garbage from the registry is not a discovery failure as
// long as the transport round-trip succeeded.
func parseSearchResponse(data []byte) []Node {
	var doc searchResponse
	if err := xml.Unmarshal(data, &doc); err != nil {
		logging.New("registry").Warn("unparsable registry response, treating as empty", "error", err)
		return []Node{}
	}

	nodes := make([]Node, 0, len(doc.Records))
	for _, rec := range doc.Records {
		base := NormalizeBaseURL(rec.AccessURL)
		if base == "" {
			continue
		}
		nodes = append(nodes, Node{
			ID:      NodeID(base),
			Name:    strings.TrimSpace(rec.Title),
			BaseURL: base,
		})
	}
	return dedupe(nodes)
}
