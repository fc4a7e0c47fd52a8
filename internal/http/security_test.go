package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"revivedgoods/internal/http/handlers"
	applog "revivedgoods/internal/log"
)

// friendly error surface, no internal leakage
func TestErrorHandlerFriendlyMessage(t *testing.T) {
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())

	// Route that triggers an internal error
	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
}

func TestCSRFRequiredOnForms(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{CSRF: true})
	b := newBrowser(t, env.app)

	// no prior GET, so no token
	resp, body := b.post("/cart", url.Values{"productId": {"id_chair01"}})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without csrf, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Security check failed") {
		t.Fatalf("csrf page missing; body=%s", body)
	}
}

func TestValidationBadInputs(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{CSRF: true})
	b := newBrowser(t, env.app)

	resp, body := b.get("/?q=%3Cscript%3E&sort=random")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad search expected 400, got %d", resp.StatusCode)
	}
	// the page still renders with the filters reset
	if !strings.Contains(body, "Some filters were invalid") || !strings.Contains(body, `<span id="result-count">4</span>`) {
		t.Fatalf("reset catalog not rendered; body=%s", body)
	}

	resp, _ = b.get("/api/v1/catalog?min=-5")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative min expected 400, got %d", resp.StatusCode)
	}

	resp, _ = b.get("/api/v1/catalog?max=NaN")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("NaN max expected 400, got %d", resp.StatusCode)
	}

	resp, _ = b.post("/cart", url.Values{"productId": {"../../etc"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad product id expected 400, got %d", resp.StatusCode)
	}

	// a tampered sid is replaced, not trusted
	req := httptest.NewRequest("GET", "/api/v1/state", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "admin' --"})
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" && c.Value == "admin' --" {
			t.Fatal("malformed sid was accepted")
		}
	}
}

// templates auto-escape untrusted text
func TestTemplateAutoEscape(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{CSRF: true})
	b := newBrowser(t, env.app)
	b.get("/sell")

	b.post("/listings", url.Values{"title": {"<script>alert(1)</script>"}, "description": {"<b>desc</b>"}})
	_, body := b.get("/")
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatalf("found unescaped script tag in output")
	}
	if !strings.Contains(body, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("escaped script not found; output=%s", body)
	}
}

func TestRateLimits(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{RateMax: 3})
	for i := 0; i < 4; i++ {
		resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/catalog", nil))
		if err != nil {
			t.Fatal(err)
		}
		if i < 3 && resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("hit rate limit too early at %d", i)
		}
		if i == 3 && resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after limit, got %d", resp.StatusCode)
		}
	}
	// health checks are never limited
	resp, err := env.app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", resp.StatusCode)
	}
}

// oversized POST rejected with 413
func TestBodySizeLimit(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{})

	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest("POST", "/listings", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := env.app.Test(req)
	// Fiber returns an error instead of a response when body too large; treat that as pass
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 413 for oversize, got %d body=%s", resp.StatusCode, string(body))
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{})
	resp, err := env.app.Test(httptest.NewRequest("GET", "/ws", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}

func TestActionsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := applog.Use(zap.New(core))
	defer restore()

	env := newTestApp(t, handlers.AppOptions{CSRF: true})
	b := newBrowser(t, env.app)
	b.get("/")
	b.post("/cart", url.Values{"productId": {"id_chair01"}})
	b.post("/cart", url.Values{"productId": {"id_chair01"}})

	add := logs.FilterMessage("cart.add").All()
	if len(add) != 1 || add[0].ContextMap()["kind"] != "audit" || add[0].ContextMap()["product"] != "id_chair01" {
		t.Fatalf("expected one audit cart.add entry, got %+v", add)
	}
	if add[0].ContextMap()["profile"] != b.cookies["sid"] {
		t.Fatal("audit entry missing profile")
	}
	if logs.FilterMessage("cart.add.duplicate").Len() != 1 {
		t.Fatal("expected cart.add.duplicate entry")
	}
	if logs.FilterMessage("state.default").Len() != 1 {
		t.Fatal("expected state.default entry for the new profile")
	}

	fresh := newBrowser(t, env.app)
	fresh.post("/wishlist/toggle", url.Values{"productId": {"id_chair01"}})
	sec := logs.FilterMessage("csrf.fail").All()
	if len(sec) != 1 || sec[0].Level != zapcore.WarnLevel || sec[0].ContextMap()["kind"] != "security" {
		t.Fatalf("expected csrf.fail security entry, got %+v", sec)
	}
}
