package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/djglaser/spookymart-ecommerce/internal/catalog"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestClientProduct_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/prod-001" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"product":{"id":"prod-001","price":49.99,"stock":10,"isActive":true}}}`))
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})

	p, err := c.Product(context.Background(), "prod-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.ID != "prod-001" || p.Price != 49.99 || p.Stock != 10 || !p.IsActive {
		t.Fatalf("wrong product: %+v", p)
	}
}

func TestClientProduct_NotFoundIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})

	p, err := c.Product(context.Background(), "missing")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil product, got %+v", p)
	}
}

func TestClientProduct_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})

	_, err := c.Product(context.Background(), "prod-001")
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestClientProduct_UnsuccessfulEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})

	_, err := c.Product(context.Background(), "prod-001")
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestClientProduct_SuccessWithoutProductIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})

	p, err := c.Product(context.Background(), "prod-001")
	if err != nil || p != nil {
		t.Fatalf("want absence, got p=%+v err=%v", p, err)
	}
}

func TestClientProduct_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})

	_, err := c.Product(context.Background(), "prod-001")
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestClientProduct_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, 20*time.Millisecond, noopLogger{})

	_, err := c.Product(context.Background(), "prod-001")
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable on timeout, got %v", err)
	}
}

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})
	if !c.Health(context.Background()) {
		t.Fatalf("want healthy")
	}

	srv.Close()
	if c.Health(context.Background()) {
		t.Fatalf("transport failure must report unhealthy, not error")
	}
}

func TestClientHealth_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, time.Second, noopLogger{})
	if c.Health(context.Background()) {
		t.Fatalf("503 must be unhealthy")
	}
}
