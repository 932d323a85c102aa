package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"totalGasto": 100, "compras": []}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	payload, err := c.FetchDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["totalGasto"] != float64(100) {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestFetchDashboardHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchDashboard(context.Background())
	he, ok := AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", he.Status)
	}
	if !strings.Contains(he.Body, "boom") {
		t.Fatalf("expected raw body in error, got %q", he.Body)
	}
}

func TestFetchDashboardNetworkUnavailable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchDashboard(context.Background())
	if !errors.Is(err, ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}
}

func TestFetchDashboardMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "this is not json")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchDashboard(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestUploadReceiptMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
			t.Errorf("expected transport-computed multipart boundary, got %q", ct)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "nota.jpg" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		if got := header.Header.Get("Content-Type"); got != "image/jpeg" {
			t.Errorf("unexpected part content type %q", got)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake-jpeg-bytes" {
			t.Errorf("unexpected file body %q", data)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "message": "ok", "filename": "nota.jpg", "size": 15}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	ack, err := c.UploadReceipt(context.Background(), []byte("fake-jpeg-bytes"), "nota.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ack.Success || ack.Filename != "nota.jpg" || ack.Size != 15 {
		t.Fatalf("unexpected ack %#v", ack)
	}
}

func TestUploadReceiptErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "arquivo inválido", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.UploadReceipt(context.Background(), []byte("x"), "nota.pdf", "application/pdf")
	he, ok := AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Status != http.StatusUnprocessableEntity || !strings.Contains(he.Body, "arquivo inválido") {
		t.Fatalf("expected verbatim diagnostic body, got %#v", he)
	}
}

func TestDeletePurchase(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if err := c.DeletePurchase(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/compras/42" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestDeletePurchaseNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "não encontrada", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.DeletePurchase(context.Background(), 999)
	he, ok := AsHTTPError(err)
	if !ok || he.Status != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status": "healthy", "message": "ok"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != "healthy" {
		t.Fatalf("unexpected status %#v", status)
	}
}
