package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if m := marketOf(c); m != nil {
		st := m.Snapshot()
		data["CartCount"] = len(st.Cart)
		data["WishCount"] = len(st.Wishlist)
	}
	if n := strings.TrimSpace(c.Query("notice")); n != "" {
		data["Notice"] = n
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

// back picks the page a form was posted from, falling back when the
// Referer is missing or points elsewhere.
func back(c *fiber.Ctx, fallback string) string {
	if next := c.FormValue("next"); localPath(next) {
		return next
	}
	ref := c.Get(fiber.HeaderReferer)
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Hostname()) {
		return fallback
	}
	p := u.Path
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	if !localPath(p) {
		return fallback
	}
	return p
}

func localPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, `\`)
}

// withNotice sets the notice query parameter on a local path.
func withNotice(target, notice string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "/?notice=" + url.QueryEscape(notice)
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
