// Package registry discovers the queryable data nodes of the federation.
//
// Two interchangeable strategies satisfy the Resolver contract: a live
// lookup against the central registry service, and a pre-published static
// node list. Both produce the same normalized, deduplicated []Node.
package registry

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Node is one independently operated data endpoint of the federation.
// BaseURL is absolute and always ends with "/".
type Node struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// NormalizeBaseURL picks the first whitespace-separated candidate from raw
// and guarantees a trailing slash. Returns "" when raw holds no candidate.
// Subsequent candidates are ignored; that mirrors the registry convention
// of listing mirrors after the primary access URL.
func NormalizeBaseURL(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	base := fields[0]
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// NodeID derives a stable identifier from a normalized base URL. The same
// endpoint yields the same ID across resolution passes, so results from
// separate rounds can be correlated.
func NodeID(base string) string {
	h := fnv.New64a()
	h.Write([]byte(base))
	return fmt.Sprintf("node-%016x", h.Sum64())
}

// dedupe drops nodes whose BaseURL was already seen, keeping the first.
func dedupe(nodes []Node) []Node {
	seen := make(map[string]bool, len(nodes))
	out := nodes[:0]
	for _, n := range nodes {
		if seen[n.BaseURL] {
			continue
		}
		seen[n.BaseURL] = true
		out = append(out, n)
	}
	return out
}
