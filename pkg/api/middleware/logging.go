package middleware

import (
	"net/http"
	"time"

	"github.com/dd0wney/hydronet/pkg/logging"
)

// Logging logs one line per request with method, path, status, latency and request ID.
// Server errors log at error level, client errors at warn, the rest at info.
func Logging(logger logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Status(sw.status),
				logging.Latency(time.Since(start)),
				logging.Int("bytes", sw.bytesWritten),
			}
			if id := GetRequestID(r); id != "" {
				fields = append(fields, logging.RequestID(id))
			}

			switch {
			case sw.status >= http.StatusInternalServerError:
				logger.Error("http request", fields...)
			case sw.status >= http.StatusBadRequest:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
		})
	}
}
