package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MetricsRecorder is an interface for recording HTTP metrics
type MetricsRecorder interface {
	RecordHTTPRequest(method, path, status string, duration time.Duration)
	RecordResponseSize(method, path string, size float64)
	IncHTTPRequestsInFlight()
	DecHTTPRequestsInFlight()
}

// UnmatchedRoute labels requests whose path matches no registered route
const UnmatchedRoute = "unmatched"

// RouteSet maps request paths onto a fixed set of route templates so that
// metric labels and span names come from a bounded set.
type RouteSet struct {
	templates map[string]struct{}
}

// NewRouteSet builds a RouteSet from templates written in RouteLabel form,
// e.g. "/api/elements/:id".
func NewRouteSet(templates ...string) *RouteSet {
	rs := &RouteSet{templates: make(map[string]struct{}, len(templates))}
	for _, t := range templates {
		rs.templates[t] = struct{}{}
	}
	return rs
}

// Label returns the template for path, or UnmatchedRoute. A nil RouteSet
// treats every path as unmatched.
func (rs *RouteSet) Label(path string) string {
	if rs == nil {
		return UnmatchedRoute
	}
	label := RouteLabel(path)
	if _, ok := rs.templates[label]; ok {
		return label
	}
	return UnmatchedRoute
}

// RouteLabel collapses id segments of a request path into ":id".
// Numeric segments and 26-character run ids are treated as ids. Other
// segments pass through, so callers bound the result with a RouteSet.
func RouteLabel(path string) string {
	if path == "" {
		return "/"
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if isIDSegment(seg) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func isIDSegment(seg string) bool {
	if seg == "" {
		return false
	}
	if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
		return true
	}
	if len(seg) != 26 {
		return false
	}
	for _, c := range strings.ToUpper(seg) {
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// Metrics records request count, latency, response size and in-flight gauge per route.
func Metrics(recorder MetricsRecorder, routes *RouteSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder.IncHTTPRequestsInFlight()
			defer recorder.DecHTTPRequestsInFlight()

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			route := routes.Label(r.URL.Path)
			recorder.RecordHTTPRequest(r.Method, route, strconv.Itoa(sw.status), time.Since(start))
			recorder.RecordResponseSize(r.Method, route, float64(sw.bytesWritten))
		})
	}
}
