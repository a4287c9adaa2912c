// Package fanout dispatches one probe per node concurrently and streams
// settlements back as they arrive.
package fanout

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"specline/internal/logging"
	"specline/internal/probe"
	"specline/internal/registry"
	"specline/internal/vss"
)

// DefaultTimeout bounds each node's probe independently, measured from the
// moment that node's probe is initiated.
const DefaultTimeout = 30 * time.Second

// Sink receives each node's terminal result at the moment it settles.
// Settlement order is completion order, not input order. The sink gets a
// copy; mutating it has no effect on the returned collection.
type Sink func(probe.Result)

// Coordinator fans a query out across a node set. One node failing or
// timing out has no effect on any other node, and a query round as a whole
// never fails: it always settles into a complete result collection.
type Coordinator struct {
	Prober *probe.Prober

	// Timeout is the per-node deadline. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxInFlight caps concurrent probes. Zero or negative means every
	// probe starts immediately.
	MaxInFlight int
}

// settlement correlates a result back to its input position.
type settlement struct {
	index  int
	result probe.Result
}

// QueryAll probes every node and returns one result per node in input
// order. onSettled, when non-nil, is invoked exactly once per node in
// completion order; invocations are serialized by the assembly loop, so the
// sink needs no locking of its own. QueryAll returns once every probe has
// settled.
func (c *Coordinator) QueryAll(ctx context.Context, nodes []registry.Node, q vss.Range, onSettled Sink) []probe.Result {
	logger := logging.New("fanout")
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	prober := c.Prober
	if prober == nil {
		prober = &probe.Prober{}
	}

	logger.Debug("starting query round", "nodes", len(nodes), "timeout", timeout, "max_in_flight", c.MaxInFlight)
	started := time.Now()

	// One producer per node, one consumer assembling the ordered
	// collection. The channel is sized to the node count so a settling
	// probe never blocks on the consumer.
	settled := make(chan settlement, len(nodes))

	g := new(errgroup.Group)
	if c.MaxInFlight > 0 {
		g.SetLimit(c.MaxInFlight)
	}
	go func() {
		for i, node := range nodes {
			g.Go(func() error {
				// Each probe owns its deadline; cancel on settlement so no
				// timer outlives its node.
				nodeCtx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()
				settled <- settlement{index: i, result: prober.Probe(nodeCtx, node, q)}
				return nil
			})
		}
	}()

	results := make([]probe.Result, len(nodes))
	for range nodes {
		s := <-settled
		results[s.index] = s.result
		logger.Debug("node settled",
			"node", s.result.NodeID,
			"name", s.result.NodeName,
			"status", s.result.Status.String())
		if onSettled != nil {
			onSettled(s.result)
		}
	}
	// All settlements received, so every g.Go call has been made; Wait only
	// reaps the worker goroutines.
	_ = g.Wait()

	logger.Info("query round complete", "nodes", len(nodes), "elapsed", time.Since(started).Round(time.Millisecond))
	return results
}

// Totals aggregates a settled collection: statistics summed over successful
// nodes plus outcome tallies.
type Totals struct {
	Species     int `json:"species"`
	States      int `json:"states"`
	Transitions int `json:"transitions"`
	Succeeded   int `json:"succeeded"`
	Failed      int `json:"failed"`
	TimedOut    int `json:"timed_out"`
}

// Summarize folds a result collection into Totals.
func Summarize(results []probe.Result) Totals {
	var t Totals
	for _, r := range results {
		switch r.Status {
		case probe.StatusSuccess:
			t.Succeeded++
			t.Species += r.NumSpecies
			t.States += r.NumStates
			t.Transitions += r.NumTransitions
		case probe.StatusTimeout:
			t.TimedOut++
		case probe.StatusError:
			t.Failed++
		}
	}
	return t
}
