package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-fragments/internal/metrics"
	contactstore "github.com/goliatone/go-fragments/pkg/contacts"
	counterstore "github.com/goliatone/go-fragments/pkg/counter"
	"github.com/goliatone/go-fragments/pkg/render/template"
	"github.com/goliatone/go-fragments/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fragments/pkg/testsupport"
)

func newTestServer(t *testing.T, fns ...OptionFn) *Server {
	t.Helper()

	engine := testsupport.NewEngine(t, gotemplate.WithGlobalData(map[string]any{"app_title": "Fragments Test"}))
	srv, err := New(engine, fns...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func TestIndex_RendersFullPage(t *testing.T) {
	srv := newTestServer(t)

	rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "<title>Fragments Test</title>", `hx-get="/counter"`, `hx-get="/contacts"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in index, got %q", want, body)
		}
	}
}

func TestNotFound_FixedBody(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/nope"},
		{name: "wrong method on counter", method: http.MethodDelete, path: "/counter"},
		{name: "put on contact", method: http.MethodPut, path: "/contact"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d", rec.Code)
			}
			if rec.Body.String() != NotFoundBody {
				t.Fatalf("expected body %q, got %q", NotFoundBody, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
				t.Fatalf("expected text/plain, got %q", ct)
			}
		})
	}
}

func TestRoutes_EndToEndScenario(t *testing.T) {
	contacts := contactstore.NewStore(contactstore.Contact{Name: "John Doe", Email: "johndoe@hotmail.com"})
	srv := newTestServer(t, WithStores(counterstore.New(0), contacts))
	h := srv.Handler()

	rec := testsupport.Serve(h, httptest.NewRequest(http.MethodPost, "/counter/increment", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != "1" {
		t.Fatalf("expected count 1, got %q", got)
	}

	rec = testsupport.Serve(h, testsupport.PostForm("/contact", url.Values{"name": {"Jane Roe"}, "email": {"jane@example.com"}}))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "hx-swap-oob") {
		t.Fatalf("expected 200 with oob fragment, got %d %q", rec.Code, rec.Body.String())
	}

	rec = testsupport.Serve(h, testsupport.PostForm("/contact", url.Values{"name": {"Jane R2"}, "email": {"jane@example.com"}}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = testsupport.Serve(h, httptest.NewRequest(http.MethodGet, "/contacts", nil))
	if got := strings.Count(rec.Body.String(), `class="contact"`); got != 2 {
		t.Fatalf("expected 2 contacts, got %d", got)
	}

	rec = testsupport.Serve(h, httptest.NewRequest(http.MethodDelete, "/contact/1", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

func TestAssets_Embedded(t *testing.T) {
	srv := newTestServer(t)

	rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/assets/main.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("expected text/css, got %q", ct)
	}

	rec = testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/static/README.txt", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected static file, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRequestID_AssignedAndPropagated(t *testing.T) {
	srv := newTestServer(t)

	rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = testsupport.Serve(srv.Handler(), req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected client request id to be kept, got %q", got)
	}
}

func TestMetrics_EndpointExposesCounters(t *testing.T) {
	recorder := metrics.NewPrometheusRecorder(false)
	srv := newTestServer(t, WithMetrics(recorder, "/metrics"))
	h := srv.Handler()

	testsupport.Serve(h, httptest.NewRequest(http.MethodPost, "/counter/increment", nil))
	testsupport.Serve(h, httptest.NewRequest(http.MethodGet, "/missing", nil))

	rec := testsupport.Serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"fragments_counter_increments_total 1",
		`route="/counter/increment"`,
		`route="unmatched"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func TestMetrics_DisabledByDefault(t *testing.T) {
	srv := newTestServer(t)

	rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a recorder, got %d", rec.Code)
	}
}

type failingRenderer struct{}

func (failingRenderer) RenderBlock(name, block string, _ any, _ ...io.Writer) (string, error) {
	return "", template.NewRenderError(template.ErrBlockNotFound, name, block, nil)
}

func TestRenderFailure_Returns500(t *testing.T) {
	srv, err := New(failingRenderer{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	for _, path := range []string{"/", "/counter", "/contacts"} {
		rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, rec.Code)
		}
		if strings.Contains(rec.Body.String(), "contacts.html") {
			t.Fatalf("%s: template details leaked: %q", path, rec.Body.String())
		}
	}
}

func TestRenderFailure_MutationStillCommitted(t *testing.T) {
	counter := counterstore.New(3)
	contacts := contactstore.NewStore(contactstore.Contact{Name: "John Doe", Email: "johndoe@hotmail.com"})
	srv, err := New(failingRenderer{}, WithStores(counter, contacts))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodPost, "/counter/increment", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("increment: expected 500, got %d", rec.Code)
	}
	if got := counter.Value(); got != 4 {
		t.Fatalf("expected counter to be 4 after a failed render, got %d", got)
	}

	rec = testsupport.Serve(srv.Handler(), testsupport.PostForm("/contact", url.Values{"name": {"Jane Roe"}, "email": {"jane@example.com"}}))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("contact: expected 500, got %d", rec.Code)
	}
	if got := contacts.Len(); got != 2 {
		t.Fatalf("expected 2 contacts after a failed render, got %d", got)
	}
	list := contacts.List()
	if list[1].Name != "Jane Roe" || list[1].Email != "jane@example.com" {
		t.Fatalf("expected the new contact fully stored, got %+v", list[1])
	}
}

func TestRecoverPanics(t *testing.T) {
	srv := newTestServer(t)
	srv.Router().HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := testsupport.Serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, WithTimeouts(0, 0, time.Second))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
