package registry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const registryReply = `<?xml version="1.0"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
 <soap:Body>
  <XQuerySearchResponse xmlns="http://registry.vamdc.eu/search">
   <result>
    <record>
     <title>CDMS</title>
     <accessURL>https://cdms.example.org/tap https://mirror.example.org/tap</accessURL>
    </record>
    <record>
     <title>No URLs</title>
     <accessURL>   </accessURL>
    </record>
    <record>
     <title>BASECOL</title>
     <accessURL>https://basecol.example.org/tap/</accessURL>
    </record>
    <record>
     <title>CDMS again</title>
     <accessURL>https://cdms.example.org/tap</accessURL>
    </record>
   </result>
  </XQuerySearchResponse>
 </soap:Body>
</soap:Envelope>`

func TestLiveResolver_Resolve(t *testing.T) {
	var gotAction, gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotAction = r.Header.Get("SOAPAction")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "text/xml")
		io.WriteString(w, registryReply)
	}))
	defer server.Close()

	r := NewLiveResolver(server.URL)
	r.HTTPClient = server.Client()

	nodes, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := []Node{
		{ID: NodeID("https://cdms.example.org/tap/"), Name: "CDMS", BaseURL: "https://cdms.example.org/tap/"},
		{ID: NodeID("https://basecol.example.org/tap/"), Name: "BASECOL", BaseURL: "https://basecol.example.org/tap/"},
	}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	if gotAction != `""` {
		t.Errorf("SOAPAction = %q, want empty-string indicator", gotAction)
	}
	if !strings.HasPrefix(gotContentType, "text/xml") {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, DefaultCapability) {
		t.Errorf("request body does not mention capability %q:\n%s", DefaultCapability, gotBody)
	}
	if !strings.Contains(gotBody, "active") {
		t.Errorf("request body does not constrain status to active:\n%s", gotBody)
	}
}

func TestLiveResolver_EveryResolvedNodeEndsWithSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, registryReply)
	}))
	defer server.Close()

	r := NewLiveResolver(server.URL)
	nodes, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, n := range nodes {
		if !strings.HasSuffix(n.BaseURL, "/") {
			t.Errorf("node %s base URL %q lacks trailing slash", n.ID, n.BaseURL)
		}
	}
}

func TestLiveResolver_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r := NewLiveResolver(server.URL)
	_, err := r.Resolve(context.Background())

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("want *ResolutionError, got %v", err)
	}
	if resErr.Source != "registry" {
		t.Errorf("Source = %q, want registry", resErr.Source)
	}
	if !strings.Contains(resErr.Error(), "HTTP 503") {
		t.Errorf("error text %q lacks status code", resErr.Error())
	}
}

func TestLiveResolver_UnreachableRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // resolve against a dead endpoint

	r := NewLiveResolver(server.URL)
	_, err := r.Resolve(context.Background())

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("want *ResolutionError, got %v", err)
	}
}

func TestLiveResolver_MalformedDocumentIsEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "this is not xml <<<")
	}))
	defer server.Close()

	r := NewLiveResolver(server.URL)
	nodes, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("malformed document must not be a resolution error, got %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("want empty node list, got %d", len(nodes))
	}
}

func TestParseSearchResponse_ZeroRecords(t *testing.T) {
	empty := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
 <soap:Body><XQuerySearchResponse><result/></XQuerySearchResponse></soap:Body>
</soap:Envelope>`
	nodes := parseSearchResponse([]byte(empty))
	if len(nodes) != 0 {
		t.Errorf("want 0 nodes, got %d", len(nodes))
	}
}
