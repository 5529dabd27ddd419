package config

import (
	"net/http"
	"strings"
)

type SecurityLevel int

const (
	SecurityPublic        SecurityLevel = iota // No authentication
	SecurityAuthenticated                      // Any valid token
	SecurityAdmin                              // Token with ADMIN role
)

func (l SecurityLevel) String() string {
	switch l {
	case SecurityPublic:
		return "public"
	case SecurityAdmin:
		return "admin"
	default:
		return "authenticated"
	}
}

// RouteRule grants a security level to requests matching Method and Pattern.
// An empty Method matches any method. In Pattern, "*" matches one path segment
// and a trailing "**" matches any remainder, including nothing.
type RouteRule struct {
	Method  string
	Pattern string
	Level   SecurityLevel
}

// EndpointSecurityConfig is evaluated top to bottom; the first matching rule wins.
var EndpointSecurityConfig = []RouteRule{
	{"", "/health", SecurityPublic},
	{"", "/metrics", SecurityPublic},

	// Auth
	{http.MethodPost, "/auth/register", SecurityPublic},
	{http.MethodPost, "/auth/login", SecurityPublic},
	{http.MethodPost, "/auth/register-admin", SecurityAdmin},
	{"", "/auth/**", SecurityAuthenticated},

	{"", "/currency/**", SecurityPublic},

	// Catalog: reads are public, writes are admin
	{http.MethodGet, "/cars/**", SecurityPublic},
	{"", "/cars/**", SecurityAdmin},
	{http.MethodGet, "/categories/**", SecurityPublic},
	{"", "/categories/**", SecurityAdmin},

	// Reservations
	{http.MethodGet, "/reservations", SecurityAdmin},
	{http.MethodGet, "/reservations/user/*", SecurityAdmin},
	{http.MethodGet, "/reservations/car/*", SecurityAdmin},
	{http.MethodGet, "/reservations/status/*", SecurityAdmin},
	{http.MethodPut, "/reservations/*/confirm", SecurityAdmin},
	{http.MethodDelete, "/reservations/**", SecurityAdmin},
	{"", "/reservations/**", SecurityAuthenticated},

	{"", "/rentals/**", SecurityAdmin},

	// Users
	{"", "/users/me", SecurityAuthenticated},
	{"", "/users/**", SecurityAdmin},

	{"", "/vehicles/**", SecurityAuthenticated},
}

// GetSecurityLevel returns the security level for a request
func GetSecurityLevel(method, path string) SecurityLevel {
	for _, rule := range EndpointSecurityConfig {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule.Level
		}
	}
	// Unknown endpoints still require a valid token
	return SecurityAuthenticated
}

func matchPattern(pattern, path string) bool {
	pSegs := splitPath(pattern)
	segs := splitPath(path)
	for i, p := range pSegs {
		if p == "**" && i == len(pSegs)-1 {
			return true
		}
		if i >= len(segs) {
			return false
		}
		if p != "*" && p != segs[i] {
			return false
		}
	}
	return len(pSegs) == len(segs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
