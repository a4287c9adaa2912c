// Package vss encodes wavelength range queries in the VSS2 dialect and
// builds per-node probe URLs. Everything here is pure: identical input
// yields byte-identical output.
package vss

import (
	"net/url"
	"strconv"
	"strings"
)

// Fixed protocol parameters sent with every probe.
const (
	Lang    = "VSS2"
	Request = "doQuery"
	Format  = "XSAMS"
)

// syncPath is the query sub-path every node exposes under its base URL.
const syncPath = "sync"

// Range holds the wavelength bounds of a query. No min <= max invariant is
// enforced; the bounds are encoded as given and validation is the caller's
// concern.
type Range struct {
	Min float64
	Max float64
}

// Predicate renders the range as a VSS2 constraint over the radiative
// transition wavelength.
func Predicate(r Range) string {
	return "SELECT * WHERE RadTransWavelength >= " + formatBound(r.Min) +
		" AND RadTransWavelength <= " + formatBound(r.Max)
}

// formatBound renders a bound in plain decimal notation. %g-style exponent
// forms ("4e+06") are not valid VSS2 literals for every node.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ProbeURL builds the full probe URL for a node. base must be the node's
// normalized base URL (trailing slash included).
func ProbeURL(base, predicate string) string {
	return base + syncPath +
		"?LANG=" + Lang +
		"&REQUEST=" + Request +
		"&FORMAT=" + Format +
		"&QUERY=" + escape(predicate)
}

// escape percent-encodes the predicate for the query string, with spaces as
// %20 rather than '+': some nodes decode the QUERY parameter with a plain
// percent-decoder.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
