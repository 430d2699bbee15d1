package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_StandardResult(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":    "standard",
			"extract": " Paris is the capital of France. ",
			"content_urls": map[string]any{
				"desktop": map[string]string{"page": "https://en.wikipedia.org/wiki/Paris"},
			},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/rest_v1", time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	got := c.Fetch(context.Background(), "Paris")
	if !got.OK {
		t.Fatalf("Fetch OK = false, want true")
	}
	if got.Text != "Paris is the capital of France." {
		t.Fatalf("Text = %q", got.Text)
	}
	if got.Link != "https://en.wikipedia.org/wiki/Paris" {
		t.Fatalf("Link = %q", got.Link)
	}
	if gotPath != "/api/rest_v1/page/summary/Paris" {
		t.Fatalf("path = %q, want /api/rest_v1/page/summary/Paris", gotPath)
	}
}

func TestFetch_EscapesName(t *testing.T) {
	t.Parallel()

	var rawPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"type":"standard","extract":"x"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_ = c.Fetch(context.Background(), "New York")
	if rawPath != "/page/summary/New%20York" {
		t.Fatalf("escaped path = %q, want /page/summary/New%%20York", rawPath)
	}
}

func TestFetch_DegradesToPlaceholder(t *testing.T) {
	t.Parallel()

	cases := map[string]http.HandlerFunc{
		"disambiguation": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"type":"disambiguation","extract":"Paris may refer to"}`))
		},
		"not found": func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not-json`))
		},
		"empty extract": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"type":"standard","extract":"  "}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL, time.Second, nil)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			got := c.Fetch(context.Background(), "Paris")
			if got.OK || got.Text != Placeholder || got.Link != "" {
				t.Fatalf("Fetch = %#v, want placeholder", got)
			}
		})
	}
}

func TestFetch_UnreachableHostDegrades(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c, err := NewClient(base, 200*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got := c.Fetch(context.Background(), "Paris"); got.Text != Placeholder {
		t.Fatalf("Fetch = %#v, want placeholder", got)
	}
	if got := c.Fetch(context.Background(), "  "); got.Text != Placeholder {
		t.Fatalf("Fetch(blank) = %#v, want placeholder", got)
	}
}
