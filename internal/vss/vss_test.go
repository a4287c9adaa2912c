package vss

import "testing"

func TestPredicate(t *testing.T) {
	got := Predicate(Range{Min: 4000, Max: 5000})
	want := "SELECT * WHERE RadTransWavelength >= 4000 AND RadTransWavelength <= 5000"
	if got != want {
		t.Errorf("Predicate = %q, want %q", got, want)
	}
}

func TestPredicate_FractionalAndLargeBounds(t *testing.T) {
	cases := []struct {
		r    Range
		want string
	}{
		{Range{Min: 4000.5, Max: 5000.25},
			"SELECT * WHERE RadTransWavelength >= 4000.5 AND RadTransWavelength <= 5000.25"},
		// Large bounds must stay in plain decimal, never exponent form.
		{Range{Min: 4000000, Max: 50000000},
			"SELECT * WHERE RadTransWavelength >= 4000000 AND RadTransWavelength <= 50000000"},
		// Inverted bounds are encoded as given; validation is a caller concern.
		{Range{Min: 5000, Max: 4000},
			"SELECT * WHERE RadTransWavelength >= 5000 AND RadTransWavelength <= 4000"},
	}
	for _, tc := range cases {
		if got := Predicate(tc.r); got != tc.want {
			t.Errorf("Predicate(%+v) = %q, want %q", tc.r, got, tc.want)
		}
	}
}

func TestProbeURL_Golden(t *testing.T) {
	pred := Predicate(Range{Min: 4000, Max: 5000})
	got := ProbeURL("https://x.org/tap/", pred)
	want := "https://x.org/tap/sync?LANG=VSS2&REQUEST=doQuery&FORMAT=XSAMS" +
		"&QUERY=SELECT%20%2A%20WHERE%20RadTransWavelength%20%3E%3D%204000%20AND%20RadTransWavelength%20%3C%3D%205000"
	if got != want {
		t.Errorf("ProbeURL mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestProbeURL_Idempotent(t *testing.T) {
	r := Range{Min: 1216.0, Max: 6563.0}
	first := ProbeURL("https://x.org/tap/", Predicate(r))
	second := ProbeURL("https://x.org/tap/", Predicate(r))
	if first != second {
		t.Errorf("identical input produced different URLs:\n%s\n%s", first, second)
	}
}
