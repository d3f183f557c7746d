package contacts

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-fragments/internal/logging"
	contactstore "github.com/goliatone/go-fragments/pkg/contacts"
	"github.com/goliatone/go-fragments/pkg/testsupport"
)

func newRouter(t *testing.T, store *contactstore.Store) *mux.Router {
	t.Helper()

	c := New(store, testsupport.NewEngine(t))
	router := mux.NewRouter()
	if _, err := c.RegisterRoutes(router, ""); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return router
}

func seeded() *contactstore.Store {
	return contactstore.NewStore(contactstore.Contact{Name: "John Doe", Email: "johndoe@hotmail.com"})
}

func submit(name, email string) *http.Request {
	return testsupport.PostForm("/contact", url.Values{"name": {name}, "email": {email}})
}

func TestList_NewestFirstWithEmptyForm(t *testing.T) {
	store := seeded()
	if _, err := store.InsertIfAbsent("Jane Roe", "jane@example.com"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	router := newRouter(t, store)

	rec := testsupport.Serve(router, httptest.NewRequest(http.MethodGet, "/contacts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()

	jane := strings.Index(body, `id="contact-2"`)
	john := strings.Index(body, `id="contact-1"`)
	if jane < 0 || john < 0 {
		t.Fatalf("expected both contacts in body, got %q", body)
	}
	if jane > john {
		t.Fatalf("expected newest contact first, got %q", body)
	}
	if !strings.Contains(body, `id="contact-form"`) {
		t.Fatalf("expected the form in body, got %q", body)
	}
	if strings.Contains(body, `class="error"`) {
		t.Fatalf("expected no errors in a fresh form, got %q", body)
	}
}

func TestCreate_SuccessReturnsFormAndOOBItem(t *testing.T) {
	store := seeded()
	router := newRouter(t, store)

	rec := testsupport.Serve(router, submit("Jane Roe", "jane@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()

	formAt := strings.Index(body, `id="contact-form"`)
	oobAt := strings.Index(body, `hx-swap-oob="afterbegin:#contacts"`)
	if formAt < 0 || oobAt < 0 || formAt > oobAt {
		t.Fatalf("expected form fragment followed by oob fragment, got %q", body)
	}
	if !strings.Contains(body, `<li id="contact-2" class="contact"><span class="name">Jane Roe</span>`) {
		t.Fatalf("expected new contact item, got %q", body)
	}
	if !strings.Contains(body, `name="name" value=""`) || !strings.Contains(body, `name="email" value=""`) {
		t.Fatalf("expected cleared form, got %q", body)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 contacts, got %d", store.Len())
	}
}

func TestCreate_DuplicateEmailScenario(t *testing.T) {
	store := seeded()
	router := newRouter(t, store)

	if rec := testsupport.Serve(router, submit("Jane Roe", "jane@example.com")); rec.Code != http.StatusOK {
		t.Fatalf("expected first submission to succeed, got %d", rec.Code)
	}

	rec := testsupport.Serve(router, submit("Jane R2", "jane@example.com"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`value="Jane R2"`,
		`value="jane@example.com"`,
		`data-field="email">Email already exists</p>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body, got %q", want, body)
		}
	}
	if strings.Contains(body, "hx-swap-oob") {
		t.Fatalf("expected no oob fragment on rejection, got %q", body)
	}

	list := testsupport.Serve(router, httptest.NewRequest(http.MethodGet, "/contacts", nil)).Body.String()
	if got := strings.Count(list, `class="contact"`); got != 2 {
		t.Fatalf("expected 2 listed contacts, got %d", got)
	}
	if strings.Contains(list, "Jane R2") {
		t.Fatalf("rejected contact must not be listed: %q", list)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	store := seeded()
	router := newRouter(t, store)

	rec := testsupport.Serve(router, submit("  ", "solo@example.com"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-field="name"`) {
		t.Fatalf("expected name error, got %q", body)
	}
	if !strings.Contains(body, `value="solo@example.com"`) {
		t.Fatalf("expected email echoed back, got %q", body)
	}
	if store.Len() != 1 {
		t.Fatalf("expected store untouched, got %d contacts", store.Len())
	}
}

func TestCreate_EscapesMarkup(t *testing.T) {
	router := newRouter(t, contactstore.NewStore())

	rec := testsupport.Serve(router, submit(`<b>Bold</b>`, "b@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<b>") {
		t.Fatalf("expected markup stripped, got %q", rec.Body.String())
	}
}

func TestCreate_IDAliasRoute(t *testing.T) {
	store := seeded()
	router := newRouter(t, store)

	req := testsupport.PostForm("/contact/42", url.Values{"name": {"Alias"}, "email": {"alias@example.com"}})
	rec := testsupport.Serve(router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `id="contact-2"`) {
		t.Fatalf("expected id taken from the store, got %q", rec.Body.String())
	}
}

func TestDelete_NotImplemented(t *testing.T) {
	store := seeded()
	router := newRouter(t, store)

	rec := testsupport.Serve(router, httptest.NewRequest(http.MethodDelete, "/contact/1", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected status 501, got %d", rec.Code)
	}
	if store.Len() != 1 {
		t.Fatalf("expected store untouched, got %d contacts", store.Len())
	}
}

func TestCreate_ConcurrentSameEmailSingleWinner(t *testing.T) {
	store := contactstore.NewStore()
	router := newRouter(t, store)

	const n = 32
	codes := make([]int, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			rec := testsupport.Serve(router, submit(fmt.Sprintf("Racer %d", i), "race@example.com"))
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusUnprocessableEntity:
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one accepted submission, got %d", ok)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 contact, got %d", store.Len())
	}
}

func TestCreate_EmailStoredAsSubmitted(t *testing.T) {
	store := contactstore.NewStore()
	router := newRouter(t, store)

	for _, email := range []string{"a<b@example.com", "a<c@example.com"} {
		rec := testsupport.Serve(router, submit("Angle", email))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", email, rec.Code)
		}
	}

	got := store.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 contacts, got %d: %+v", len(got), got)
	}
	if got[0].Email != "a<b@example.com" || got[1].Email != "a<c@example.com" {
		t.Fatalf("expected emails stored verbatim, got %+v", got)
	}

	rec := testsupport.Serve(router, submit("Angle 2", " a<c@example.com "))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected trimmed duplicate to be rejected, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="a&lt;c@example.com"`) {
		t.Fatalf("expected submitted email echoed back escaped, got %q", rec.Body.String())
	}
}

func TestCreate_DuplicateLogOmitsEmail(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig()
	cfg.Output = &buf
	cfg.Level = logging.LevelDebug

	c := New(seeded(), testsupport.NewEngine(t), WithLogger(logging.New(cfg)))
	router := mux.NewRouter()
	if _, err := c.RegisterRoutes(router, ""); err != nil {
		t.Fatalf("register routes: %v", err)
	}

	rec := testsupport.Serve(router, submit("Copy", "johndoe@hotmail.com"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "contact rejected") {
		t.Fatalf("expected a rejection log line, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "johndoe@hotmail.com") {
		t.Fatalf("submitted email leaked into logs: %q", buf.String())
	}
}
