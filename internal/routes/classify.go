package routes

import (
	"net/url"
	"strings"

	"CareBowAPI/internal/authz"
	"CareBowAPI/internal/model"
)

// Class of a page route. Anything not explicitly public requires a
// session; the default for unlisted paths is Authenticated.
type Class int

const (
	Public Class = iota
	Authenticated
	Restricted
)

const LoginPath = "/login"

type Rule struct {
	Prefix string
	Class  Class
	// Roles applies to Restricted rules only. The edge decision never
	// reads it; handlers behind the prefix enforce it via authz.
	Roles []string
}

// Page classification table. Longest matching prefix wins; "/" matches
// only itself so it cannot shadow the deny-by-default fallback.
var table = []Rule{
	{Prefix: "/", Class: Public},
	{Prefix: "/login", Class: Public},
	{Prefix: "/register", Class: Public},
	{Prefix: "/caregivers", Class: Public},
	{Prefix: "/services", Class: Public},
	{Prefix: "/about", Class: Public},
	{Prefix: "/legal", Class: Public},
	{Prefix: "/dashboard", Class: Authenticated},
	{Prefix: "/profile", Class: Authenticated},
	{Prefix: "/bookings", Class: Authenticated},
	{Prefix: "/admin", Class: Restricted, Roles: []string{model.RoleAdmin}},
}

// Classify maps a path to its rule. Total: every path gets a rule, with
// {path, Authenticated} as the fallback.
func Classify(path string) Rule {
	best := Rule{Prefix: path, Class: Authenticated}
	bestLen := -1
	for _, r := range table {
		if matches(path, r.Prefix) && len(r.Prefix) > bestLen {
			best = r
			bestLen = len(r.Prefix)
		}
	}
	return best
}

func matches(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

type Decision struct {
	Allow      bool
	RedirectTo string
}

// Decide is the edge policy: public paths always pass, everything else
// needs a session or gets bounced to login carrying the original path.
// Role and ownership are deliberately not inspected here; that happens in
// the handler through authz.Authorize.
func Decide(path string, ident *authz.Identity) Decision {
	if Classify(path).Class == Public {
		return Decision{Allow: true}
	}
	if ident != nil {
		return Decision{Allow: true}
	}
	q := url.Values{"returnUrl": {path}}
	return Decision{RedirectTo: LoginPath + "?" + q.Encode()}
}
