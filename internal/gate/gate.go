// Package gate decides, per navigation request, whether to serve it or to
// redirect. Decisions depend only on the request path and the session handed
// in by the caller; nothing is remembered between requests.
package gate

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/session"
)

// Outcome is the result of evaluating one request.
type Outcome int

const (
	Pass Outcome = iota
	RedirectToLogin
	RedirectToDashboard
	Bypass
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToDashboard:
		return "redirect_dashboard"
	case Bypass:
		return "bypass"
	default:
		return "unknown"
	}
}

// Decision carries the outcome and, for redirects, the target location.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Redirect reports whether the decision sends the client elsewhere.
func (d Decision) Redirect() bool {
	return d.Outcome == RedirectToLogin || d.Outcome == RedirectToDashboard
}

// TokenSource extracts a decoded session from a request. Any failure to
// produce a valid session must be reported as ok == false.
type TokenSource interface {
	SessionFromRequest(r *http.Request) (session.Session, bool)
}

type Config struct {
	PublicRoutes     []string
	ExcludedPrefixes []string
	// AssetPrefixes are directories whose files bypass the gate when they
	// carry a static extension. Root-level files always qualify.
	AssetPrefixes []string
	LoginPath     string
	DashboardPath string
}

var DefaultPublicRoutes = []string{
	"/",
	"/auth/login",
	"/auth/register",
	"/auth/forgot-password",
	"/auth/reset-password",
	"/auth/verify-account",
}

var DefaultExcludedPrefixes = []string{
	"/api",
	"/assets",
	"/static",
	"/metrics",
	"/favicon.ico",
	"/robots.txt",
}

var DefaultAssetPrefixes = []string{
	"/assets",
	"/static",
	"/images",
	"/fonts",
}

// staticExtensions mark files served by the asset pipeline.
var staticExtensions = map[string]struct{}{
	".css": {}, ".js": {}, ".map": {}, ".ico": {}, ".png": {}, ".jpg": {}, ".jpeg": {},
	".gif": {}, ".svg": {}, ".webp": {}, ".avif": {}, ".txt": {}, ".xml": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".webmanifest": {},
}

type Gate struct {
	public    []string
	excluded  []string
	assets    []string
	authPages []string
	login     string
	dashboard string
}

func New(cfg Config) *Gate {
	public := cfg.PublicRoutes
	if len(public) == 0 {
		public = DefaultPublicRoutes
	}
	excluded := cfg.ExcludedPrefixes
	if cfg.ExcludedPrefixes == nil {
		excluded = DefaultExcludedPrefixes
	}
	assets := cfg.AssetPrefixes
	if cfg.AssetPrefixes == nil {
		assets = DefaultAssetPrefixes
	}
	login := cfg.LoginPath
	if login == "" {
		login = "/auth/login"
	}
	dashboard := cfg.DashboardPath
	if dashboard == "" {
		dashboard = "/dashboard"
	}

	return &Gate{
		public:    normalizeAll(public),
		excluded:  normalizeAll(excluded),
		assets:    normalizeAll(assets),
		authPages: []string{login, "/auth/register"},
		login:     login,
		dashboard: dashboard,
	}
}

// IsPublic reports whether path equals an allow-list entry or is a sub-path of one.
func (g *Gate) IsPublic(p string) bool {
	return matchAny(g.public, p)
}

// IsAuthPage reports whether path is the login or register page.
func (g *Gate) IsAuthPage(p string) bool {
	return matchAny(g.authPages, p)
}

// IsExcluded reports whether the gate should not run at all for path. A
// static extension only counts at the root or under an asset prefix, so
// dynamic routes such as /dashboard/todos/:id stay gated whatever the id.
func (g *Gate) IsExcluded(p string) bool {
	if matchAny(g.excluded, p) {
		return true
	}
	if _, static := staticExtensions[strings.ToLower(path.Ext(p))]; !static {
		return false
	}
	return path.Dir(p) == "/" || matchAny(g.assets, p)
}

// Decide applies the decision table. A nil session means no valid token.
func (g *Gate) Decide(p string, sess *session.Session) Decision {
	if sess == nil {
		if g.IsPublic(p) {
			return Decision{Outcome: Pass}
		}
		return Decision{Outcome: RedirectToLogin, Location: g.LoginRedirect(p)}
	}

	if g.IsAuthPage(p) {
		return Decision{Outcome: RedirectToDashboard, Location: g.dashboard}
	}
	return Decision{Outcome: Pass}
}

// Evaluate runs the full gate for a request: exclusion check, token
// extraction, then the decision table. The decoded session is returned when
// one was found so callers can attach it to the request.
func (g *Gate) Evaluate(r *http.Request, tokens TokenSource) (Decision, *session.Session) {
	p := r.URL.Path
	if g.IsExcluded(p) {
		return Decision{Outcome: Bypass}, nil
	}

	var sess *session.Session
	if tokens != nil {
		if s, ok := tokens.SessionFromRequest(r); ok {
			sess = &s
		}
	}

	return g.Decide(p, sess), sess
}

// LoginRedirect builds the login URL carrying the original path as callbackUrl.
func (g *Gate) LoginRedirect(original string) string {
	q := url.Values{}
	q.Set("callbackUrl", original)
	return g.login + "?" + q.Encode()
}

func matchAny(entries []string, p string) bool {
	for _, entry := range entries {
		if p == entry || strings.HasPrefix(p, entry+"/") {
			return true
		}
	}
	return false
}

func normalizeAll(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if entry != "/" {
			entry = strings.TrimSuffix(entry, "/")
		}
		out = append(out, entry)
	}
	return out
}
