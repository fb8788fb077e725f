package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

type GateConfig struct {
	PublicRoutes    []string
	PublicAPIRoutes []string
	LandingPath     string
	SignInPath      string
	Bypass          []string
}

// Decision is the outcome of classifying one request.
type Decision int

const (
	Allow Decision = iota
	RedirectSignIn
	RedirectLanding
	Skip
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectSignIn:
		return "redirect_sign_in"
	case RedirectLanding:
		return "redirect_landing"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// Gate routes every request to exactly one of: allow, sign-in, landing. It
// holds no session state; identity comes from Identify.
type Gate struct {
	cfg       GateConfig
	public    []routePattern
	publicAPI []routePattern
	bypass    []routePattern
}

type routePattern struct {
	path   string
	prefix bool
}

// A pattern ending in "(.*)" matches as a prefix, anything else exactly.
func compile(patterns []string) []routePattern {
	out := make([]routePattern, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "(.*)") {
			out = append(out, routePattern{path: strings.TrimSuffix(p, "(.*)"), prefix: true})
			continue
		}
		out = append(out, routePattern{path: p})
	}
	return out
}

func matches(patterns []routePattern, p string) bool {
	for _, rp := range patterns {
		if rp.prefix && strings.HasPrefix(p, rp.path) {
			return true
		}
		if !rp.prefix && rp.path == p {
			return true
		}
	}
	return false
}

func NewGate(cfg GateConfig) *Gate {
	if cfg.LandingPath == "" {
		cfg.LandingPath = "/home"
	}
	if cfg.SignInPath == "" {
		cfg.SignInPath = "/sign-in"
	}
	return &Gate{
		cfg:       cfg,
		public:    compile(cfg.PublicRoutes),
		publicAPI: compile(cfg.PublicAPIRoutes),
		bypass:    compile(cfg.Bypass),
	}
}

// Classify is the pure routing rule.
func (g *Gate) Classify(p string, authenticated bool) Decision {
	if g.skipped(p) {
		return Skip
	}

	isPublic := matches(g.public, p)
	isPublicAPI := matches(g.publicAPI, p)
	isAPI := isAPIPath(p)

	if !authenticated && !isPublic && !isPublicAPI {
		return RedirectSignIn
	}
	if !authenticated && isAPI && !isPublicAPI {
		return RedirectSignIn
	}
	if authenticated && isPublic && p != g.cfg.LandingPath {
		return RedirectLanding
	}
	return Allow
}

// Handler applies Classify. Identify must run first.
func (g *Gate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch g.Classify(c.Request.URL.Path, c.GetString("user_id") != "") {
		case RedirectSignIn:
			c.Redirect(http.StatusTemporaryRedirect, g.cfg.SignInPath)
			c.Abort()
		case RedirectLanding:
			c.Redirect(http.StatusTemporaryRedirect, g.cfg.LandingPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// skipped mirrors the page matcher: static assets and configured paths are never
// gated, API paths always are.
func (g *Gate) skipped(p string) bool {
	if isAPIPath(p) {
		return false
	}
	if matches(g.bypass, p) {
		return true
	}
	if strings.HasPrefix(p, "/_next/static") || strings.HasPrefix(p, "/_next/image") {
		return true
	}
	return strings.Contains(path.Base(p), ".")
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/") || p == "/trpc" || strings.HasPrefix(p, "/trpc/")
}
