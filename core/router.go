package core

import (
	"context"
	"net/http"
	"regexp"
	"strings"
)

const (
	RouteHeader = "X-Boilerplate-Route"

	// PlaceholderRoute names the fallback in debug headers and span names.
	PlaceholderRoute = "placeholder"
)

type Route struct {
	Pattern    string
	URLPattern *regexp.Regexp
	ParamKeys  []string
	Handler    http.Handler
}

// Router is where application routes get installed once the framework is
// integrated. Requests that match no route fall through to the fallback,
// which by default is the placeholder Page.
type Router struct {
	config   Config
	routes   []Route
	fallback http.Handler
}

type paramsKey struct{}

func NewRouter(config Config, fallback http.Handler) *Router {
	return &Router{config: config, fallback: fallback}
}

// Handle installs h for pattern. Segments written as [name] capture a
// parameter, so "/users/[id]" matches "/users/42" with id=42.
func (r *Router) Handle(pattern string, h http.Handler) {
	parts := strings.Split(strings.Trim(pattern, "/"), "/")
	paramKeys := []string{}
	expr := ""

	for _, part := range parts {
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			key := part[1 : len(part)-1]
			paramKeys = append(paramKeys, key)
			expr += "/([^/]+)"
		} else {
			expr += "/" + regexp.QuoteMeta(part)
		}
	}

	regex := regexp.MustCompile("^" + strings.TrimPrefix(expr, "/") + "$")

	r.routes = append(r.routes, Route{
		Pattern:    "/" + strings.Trim(pattern, "/"),
		URLPattern: regex,
		ParamKeys:  paramKeys,
		Handler:    h,
	})
}

func (r *Router) HandleFunc(pattern string, fn func(http.ResponseWriter, *http.Request)) {
	r.Handle(pattern, http.HandlerFunc(fn))
}

func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")

	for _, route := range r.routes {
		if matches := route.URLPattern.FindStringSubmatch(path); matches != nil {
			params := map[string]string{}
			for i, key := range route.ParamKeys {
				params[key] = matches[i+1]
			}
			if r.config.DebugHeaders {
				w.Header().Set(RouteHeader, route.Pattern)
			}
			SetRoute(req, route.Pattern)
			ctx := context.WithValue(req.Context(), paramsKey{}, params)
			route.Handler.ServeHTTP(w, req.WithContext(ctx))
			return
		}
	}

	if r.config.DebugHeaders {
		w.Header().Set(RouteHeader, PlaceholderRoute)
	}
	SetRoute(req, PlaceholderRoute)
	r.fallback.ServeHTTP(w, req)
}

func Params(req *http.Request) map[string]string {
	params, _ := req.Context().Value(paramsKey{}).(map[string]string)
	if params == nil {
		return map[string]string{}
	}
	return params
}
