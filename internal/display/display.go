// Package display renders query results for humans.
//
// Rule: code is for machines, words are for humans. Use these functions in
// CLI output and logs; keep raw statuses and counts for JSON fields and
// comparisons.
package display

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"specline/internal/fanout"
	"specline/internal/probe"
)

var statusNames = map[probe.Status]string{
	probe.StatusPending: "Queued",
	probe.StatusSuccess: "OK",
	probe.StatusError:   "Failed",
	probe.StatusTimeout: "Timed out",
}

// StatusName returns the human-readable name for a probe status.
func StatusName(s probe.Status) string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return s.String()
}

// Count renders n with thousands separators: 1234567 -> "1,234,567".
func Count(n int) string {
	s := strconv.Itoa(n)
	start := 0
	if n < 0 {
		start = 1
	}
	for i := len(s) - 3; i > start; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// ResultLine renders one settlement as a single progress line.
func ResultLine(r probe.Result) string {
	name := r.NodeName
	if name == "" {
		name = r.NodeID
	}
	switch r.Status {
	case probe.StatusSuccess:
		return fmt.Sprintf("%s: %s species, %s states, %s transitions",
			name, Count(r.NumSpecies), Count(r.NumStates), Count(r.NumTransitions))
	case probe.StatusTimeout:
		return fmt.Sprintf("%s: timed out", name)
	case probe.StatusError:
		return fmt.Sprintf("%s: %s", name, r.Err)
	}
	return fmt.Sprintf("%s: %s", name, StatusName(r.Status))
}

// Table writes the full result collection as an aligned table with a
// totals row.
func Table(w io.Writer, results []probe.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tSTATUS\tSPECIES\tSTATES\tTRANSITIONS\tDETAIL")
	for _, r := range results {
		name := r.NodeName
		if name == "" {
			name = r.NodeID
		}
		detail := r.Err
		if r.Status == probe.StatusSuccess {
			detail = r.DownloadURL
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			name, StatusName(r.Status),
			Count(r.NumSpecies), Count(r.NumStates), Count(r.NumTransitions),
			detail)
	}
	t := fanout.Summarize(results)
	fmt.Fprintf(tw, "TOTAL (%d ok, %d failed, %d timed out)\t\t%s\t%s\t%s\t\n",
		t.Succeeded, t.Failed, t.TimedOut,
		Count(t.Species), Count(t.States), Count(t.Transitions))
	tw.Flush()
}
