package openai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("TEST_EMBED_KEY", "secret")
	client, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "TEST_EMBED_KEY", Model: "test-model"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.maxRetries = 0
	return client, srv
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	t.Setenv("TEST_EMBED_KEY", "")
	if _, err := NewClient(Config{APIKeyEnv: "TEST_EMBED_KEY"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestClient_Embed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Model != "test-model" || len(body.Input) != 1 {
			t.Errorf("request = %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float64{0.1, 0.2, 0.3}},
			},
		})
	})

	vec, err := client.Embed("hello")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Errorf("vector = %v", vec)
	}
	if client.Dimension() != 3 {
		t.Errorf("dimension = %d, want 3 after first embed", client.Dimension())
	}
}

func TestClient_EmbedBatchReordersByIndex(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float64{0, 1}},
				{"index": 0, "embedding": []float64{1, 0}},
			},
		})
	})

	vecs, err := client.EmbedBatch([]string{"a", "b"})
	if err != nil {
		t.Fatalf("embed batch: %v", err)
	}
	if vecs[0][0] != 1 || vecs[1][1] != 1 {
		t.Errorf("vectors not reordered by index: %v", vecs)
	}
}

func TestClient_EmbedBatchCountMismatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float64{1, 0}},
			},
		})
	})

	if _, err := client.EmbedBatch([]string{"a", "b"}); err == nil {
		t.Fatal("expected error when fewer embeddings returned than requested")
	}
}

func TestClient_EmbedClientError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	if _, err := client.Embed("hello"); err == nil {
		t.Fatal("expected error on 4xx response")
	}
}

func TestClient_EmbedRetriesServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float64{1}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv("TEST_EMBED_KEY", "secret")
	client, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "TEST_EMBED_KEY"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.maxRetries = 2

	vec, err := client.Embed("hello")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vec) != 1 || calls != 2 {
		t.Errorf("vec=%v calls=%d", vec, calls)
	}
}
