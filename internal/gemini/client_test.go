package gemini

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dt-pm-tools/confluence-md/internal/config"
)

func TestGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected request contents: %+v", req.Contents)
		}
		if req.GenerationConfig.MaxOutputTokens != maxOutputTokens {
			t.Errorf("maxOutputTokens = %d", req.GenerationConfig.MaxOutputTokens)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "<p>merged</p>"}}}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(config.Config{GeminiKey: "test-key", GeminiURL: srv.URL})
	got, err := client.GenerateContent("hello")
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if got != "<p>merged</p>" {
		t.Fatalf("GenerateContent() = %q", got)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := NewClient(config.Config{GeminiKey: "test-key", GeminiURL: srv.URL})
	if _, err := client.GenerateContent("hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGenerateContentNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewClient(config.Config{GeminiKey: "test-key", GeminiURL: srv.URL})
	if _, err := client.GenerateContent("hello"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
