package hfhub

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
)

func TestFetch_Success(t *testing.T) {
	content := strings.Repeat("m", 5000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resolve/main/model.bin" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, content)
	}))
	defer server.Close()

	client := New(server.URL + "/resolve/main/")

	body, length, err := client.Fetch(context.Background(), "model.bin")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	defer body.Close()

	if length != 5000 {
		t.Errorf("declared length = %d, want 5000", length)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(data) != content {
		t.Errorf("body holds %d bytes, want %d", len(data), len(content))
	}
}

func TestFetch_UnknownLength(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		flusher := w.(http.Flusher)
		io.WriteString(w, "chunked body")
		flusher.Flush()
	}))
	defer server.Close()

	client := New(server.URL)

	body, length, err := client.Fetch(context.Background(), "model.bin")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	defer body.Close()

	if length != -1 {
		t.Errorf("declared length = %d, want -1 for chunked response", length)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL)

	_, _, err := client.Fetch(context.Background(), "missing.bin")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var terr *domain.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error type = %T, want *domain.TransportError", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not mention the status", err)
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "never delivered")
	}))
	defer server.Close()

	client := New(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := client.Fetch(ctx, "model.bin")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled in the chain", err)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	client := New("https://example.test/base///")
	if got := client.BaseURL(); got != "https://example.test/base" {
		t.Errorf("BaseURL = %s, want trailing slashes trimmed", got)
	}
}
