package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lysyi3m/rss-ripper/internal/logging"
)

// flakyHandler fails the first failures requests with a 500, then serves
// body successfully.
type flakyHandler struct {
	failures int
	requests int
	body     string
}

func (h *flakyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.requests++
	if h.requests <= h.failures {
		http.Error(w, "transient failure", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(h.body))
}

func newTestEngine(maxAttempts int) (*Engine, *[]time.Duration) {
	engine := NewEngine(NewClient("rss-ripper-test"), maxAttempts, logging.NewNop())
	var waits []time.Duration
	engine.sleep = func(d time.Duration) {
		waits = append(waits, d)
	}
	return engine, &waits
}

func TestFetchSucceedsFirstAttempt(t *testing.T) {
	handler := &flakyHandler{failures: 0, body: "audio bytes"}
	server := httptest.NewServer(handler)
	defer server.Close()

	engine, waits := newTestEngine(3)
	dest := filepath.Join(t.TempDir(), "episode.mp3")

	if err := engine.Fetch(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("unexpected file content: %q", data)
	}
	if len(*waits) != 0 {
		t.Errorf("expected no backoff waits, got %v", *waits)
	}
}

func TestFetchRetriesWithBackoff(t *testing.T) {
	handler := &flakyHandler{failures: 2, body: "audio bytes"}
	server := httptest.NewServer(handler)
	defer server.Close()

	engine, waits := newTestEngine(3)
	dest := filepath.Join(t.TempDir(), "episode.mp3")

	if err := engine.Fetch(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Fetch failed after retries: %v", err)
	}

	if handler.requests != 3 {
		t.Errorf("expected 3 requests, got %d", handler.requests)
	}

	expected := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(*waits) != len(expected) {
		t.Fatalf("expected %d backoff waits, got %v", len(expected), *waits)
	}
	for i, want := range expected {
		if (*waits)[i] != want {
			t.Errorf("wait %d: expected %v, got %v", i, want, (*waits)[i])
		}
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("unexpected file content: %q", data)
	}
}

func TestFetchExhaustsAttempts(t *testing.T) {
	handler := &flakyHandler{failures: 100}
	server := httptest.NewServer(handler)
	defer server.Close()

	engine, waits := newTestEngine(3)
	dest := filepath.Join(t.TempDir(), "episode.mp3")

	err := engine.Fetch(context.Background(), server.URL, dest)
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}

	if handler.requests != 3 {
		t.Errorf("expected 3 requests, got %d", handler.requests)
	}
	// No wait after the final attempt
	if len(*waits) != 2 {
		t.Errorf("expected 2 backoff waits, got %v", *waits)
	}

	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("expected no file to be left behind after exhausted attempts")
	}
}

func TestDownloadFileLeavesNoPartialContent(t *testing.T) {
	// Server that advertises a body but closes the connection mid-transfer.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("partial"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}))
	defer server.Close()

	client := NewClient("rss-ripper-test")
	dest := filepath.Join(t.TempDir(), "episode.mp3")

	if err := client.DownloadFile(context.Background(), server.URL, dest); err == nil {
		t.Fatal("expected error for truncated transfer")
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("expected destination to be absent after failed transfer")
	}
	if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
		t.Error("expected temporary file to be cleaned up after failed transfer")
	}
}
