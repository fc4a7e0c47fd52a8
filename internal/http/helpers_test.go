package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"revivedgoods/internal/broker"
	"revivedgoods/internal/http/handlers"
	"revivedgoods/internal/repos"
	"revivedgoods/internal/services"
	"revivedgoods/internal/ws"
)

type testEnv struct {
	app      *fiber.App
	sessions *services.Sessions
	hub      *ws.Hub
	slots    *repos.SlotRepo
}

// newTestApp wires the real stack on an in-memory sqlite slot store.
func newTestApp(t *testing.T, opts handlers.AppOptions) testEnv {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	slots := repos.NewSlotRepo(db)
	store := services.NewStateStore(slots, broker.NewMemory(), "test-node")
	sessions := services.NewSessions(store, nil, services.MarketOptions{})
	hub := ws.NewHub()

	engine := html.New("../../web/templates", ".html")
	app := handlers.NewApp(engine, handlers.NewDeps(sessions, hub), opts)
	return testEnv{app: app, sessions: sessions, hub: hub, slots: slots}
}

// browser keeps cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c.Value
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (b *browser) get(target string) (*http.Response, string) {
	return b.do(httptest.NewRequest("GET", target, nil))
}

// post submits a form, adding the CSRF token from the cookie jar.
func (b *browser) post(target string, form url.Values) (*http.Response, string) {
	if form == nil {
		form = url.Values{}
	}
	if tok := b.cookies["csrf_"]; tok != "" && form.Get("csrf") == "" {
		form.Set("csrf", tok)
	}
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func location(t *testing.T, resp *http.Response) *url.URL {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	u, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("bad location: %v", err)
	}
	return u
}
