// Package probe issues single metadata-only queries against federation
// nodes and classifies their outcomes.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"specline/internal/registry"
	"specline/internal/vss"
)

// acceptFormat declares acceptance of the node's binary exchange format.
const acceptFormat = "application/x-xsams+xml"

// Per-node statistics headers. Matching is case-insensitive on the wire.
// headerCollisions is reserved in the same namespace; nothing downstream
// surfaces it yet.
const (
	headerSpecies    = "VAMDC-COUNT-SPECIES"
	headerStates     = "VAMDC-COUNT-STATES"
	headerRadiative  = "VAMDC-COUNT-RADIATIVE"
	headerCollisions = "VAMDC-COUNT-COLLISIONS"
)

// Prober issues one bounded, cancellable probe per call. The zero value is
// usable and probes with http.DefaultClient.
type Prober struct {
	HTTPClient *http.Client
}

func (p *Prober) client() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

// Probe measures how much data node holds for the given range. It is total
// over the outcome space: every failure path, including cancellation, is
// folded into the returned Result, and it never returns an error.
//
// The request is a HEAD against the node's sync endpoint, so only headers
// travel; the matching data volume is read from the count headers. The
// probe URL doubles as the download URL for the full result set.
func (p *Prober) Probe(ctx context.Context, node registry.Node, q vss.Range) Result {
	res := Result{NodeID: node.ID, NodeName: node.Name}

	probeURL := vss.ProbeURL(node.BaseURL, vss.Predicate(q))
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
	if err != nil {
		res.Status = StatusError
		res.Err = err.Error()
		return res
	}
	req.Header.Set("Accept", acceptFormat)

	resp, err := p.client().Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			res.Status = StatusTimeout
			res.Err = "Request timeout"
			return res
		}
		res.Status = StatusError
		res.Err = err.Error()
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.Status = StatusError
		res.Err = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return res
	}

	res.Status = StatusSuccess
	res.NumSpecies = countHeader(resp.Header, headerSpecies)
	res.NumStates = countHeader(resp.Header, headerStates)
	res.NumTransitions = countHeader(resp.Header, headerRadiative)
	res.DownloadURL = probeURL
	return res
}

// countHeader reads a statistics header. Absent, non-numeric, or negative
// values count as zero: heterogeneous nodes routinely omit statistics and
// that is not an error.
func countHeader(h http.Header, name string) int {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
