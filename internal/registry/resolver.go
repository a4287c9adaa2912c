package registry

import (
	"context"
	"fmt"
)

// Resolver turns a node source into a normalized, deduplicated node list.
// Each call re-resolves; there is no caching and no retry.
type Resolver interface {
	Resolve(ctx context.Context) ([]Node, error)
}

// ResolutionError reports a failed discovery pass. Discovery is all or
// nothing: no partial node list is synthesized on failure.
type ResolutionError struct {
	Source string // "registry" or "static"
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve nodes from %s: %v", e.Source, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
