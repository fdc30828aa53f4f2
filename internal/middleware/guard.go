// Package middleware holds the request interceptors that run before any
// handler: the route guard and the sign-in rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/readbacklabs/readback-web/internal/services/authz"
	"github.com/readbacklabs/readback-web/internal/services/resolver"
	"github.com/rs/zerolog/log"
)

type routeClass int

const (
	routePublic routeClass = iota
	routeAPI
	routeProtected
	routePrivileged
)

// publicPrefixes are the marketing and auth pages plus static assets; they
// pass through unconditionally.
var publicPrefixes = []string{
	"/about",
	"/faq",
	"/contact",
	"/alphabet",
	"/privacy",
	"/terms",
	"/login",
	"/signup",
	"/reset-password",
	"/activate",
	"/oauth/landing",
	"/static/",
	"/favicon.ico",
}

// Guard classifies every inbound path as public, API, protected or
// privileged and redirects unauthenticated or unauthorized page
// navigations. API routes resolve their own credentials per-route; the
// guard never gates them.
type Guard struct {
	resolver *resolver.Service
	authz    *authz.Service
}

func NewGuard(resolverService *resolver.Service, authzService *authz.Service) *Guard {
	return &Guard{
		resolver: resolverService,
		authz:    authzService,
	}
}

func classify(path string) routeClass {
	if path == "/" {
		return routePublic
	}
	for _, prefix := range publicPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") ||
			(strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, prefix)) {
			return routePublic
		}
	}
	if strings.HasPrefix(path, "/api/") {
		return routeAPI
	}
	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		return routePrivileged
	}
	return routeProtected
}

func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch classify(r.URL.Path) {
		case routePublic, routeAPI:
			next.ServeHTTP(w, r)

		case routeProtected:
			if g.resolver.ResolveLocal(r.Context(), r) == nil {
				redirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r)

		case routePrivileged:
			identity := g.resolver.ResolveLocal(r.Context(), r)
			if identity == nil {
				redirectToLogin(w, r)
				return
			}
			if !g.authz.IsElevated(identity) {
				log.Warn().Str("path", r.URL.Path).Msg("Unauthorized admin navigation")
				http.Redirect(w, r, "/home?error=unauthorized", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		}
	})
}

// redirectToLogin preserves the original destination so sign-in can return
// the user to it.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?callbackUrl="+r.URL.Path, http.StatusFound)
}
