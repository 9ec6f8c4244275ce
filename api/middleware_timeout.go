package api

import (
	"net/http"
	"time"
)

// TimeoutMiddleware adds request timeout to prevent long-running requests.
// The handler's context is cancelled at the deadline and the caller receives
// 503 with a JSON body.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(next, timeout, `{"message": "Request timeout"}`)
	}
}
