package infer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"causality-backend/internal/classifier"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"probabilities":{"not_related":0.12,"related":0.88}}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	dist, err := c.Classify(context.Background(), "Tinnitus caused by aspirin.")
	if err != nil {
		t.Fatal(err)
	}
	if dist.Related != 0.88 || dist.NotRelated != 0.12 {
		t.Errorf("dist = %+v", dist)
	}
}

func TestClassifyServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, time.Second)
	_, err := c.Classify(context.Background(), "text")
	if !errors.Is(err, classifier.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestClassifyConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, _ := NewClient(srv.URL, time.Second)
	_, err := c.Classify(context.Background(), "text")
	if !errors.Is(err, classifier.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient("  ", 0); err == nil {
		t.Fatal("expected error for blank URL")
	}
}

func TestFallbackClassify(t *testing.T) {
	var c classifier.Fallback
	hit, err := c.Classify(context.Background(), "Deafness caused by cisplatin toxicity.")
	if err != nil {
		t.Fatal(err)
	}
	miss, err := c.Classify(context.Background(), "The patient was discharged home.")
	if err != nil {
		t.Fatal(err)
	}
	if hit.Related <= miss.Related {
		t.Errorf("cue-rich text scored %v, cue-free scored %v", hit.Related, miss.Related)
	}
	if got := hit.Related + hit.NotRelated; got < 0.999 || got > 1.001 {
		t.Errorf("probabilities sum to %v", got)
	}
}
