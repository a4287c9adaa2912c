package registry

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"https://x.org/tap", "https://x.org/tap/"},
		{"https://x.org/tap/", "https://x.org/tap/"},
		{"https://x.org/tap https://mirror.org/tap", "https://x.org/tap/"},
		{"  https://x.org/tap\nhttps://mirror.org/tap  ", "https://x.org/tap/"},
		{"", ""},
		{"   \t\n", ""},
	}
	for _, tc := range cases {
		if got := NormalizeBaseURL(tc.raw); got != tc.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNodeID_StableAndDistinct(t *testing.T) {
	a1 := NodeID("https://x.org/tap/")
	a2 := NodeID("https://x.org/tap/")
	b := NodeID("https://y.org/tap/")

	if a1 != a2 {
		t.Errorf("same URL produced different IDs: %q vs %q", a1, a2)
	}
	if a1 == b {
		t.Errorf("distinct URLs produced the same ID: %q", a1)
	}
	if len(a1) != len("node-")+16 {
		t.Errorf("unexpected ID shape: %q", a1)
	}
}

func TestDedupe_KeepsFirst(t *testing.T) {
	nodes := []Node{
		{ID: "a", Name: "First", BaseURL: "https://x.org/tap/"},
		{ID: "b", Name: "Other", BaseURL: "https://y.org/tap/"},
		{ID: "c", Name: "Duplicate", BaseURL: "https://x.org/tap/"},
	}
	got := dedupe(nodes)
	if len(got) != 2 {
		t.Fatalf("dedupe: want 2 nodes, got %d", len(got))
	}
	if got[0].Name != "First" || got[1].Name != "Other" {
		t.Errorf("dedupe order: %+v", got)
	}
}
