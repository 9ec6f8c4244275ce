package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestLoggerKeepsIncomingRequestID(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(okHandler))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc123", rr.Header().Get(RequestIDHeader))
}

func TestRequestIDOutsideRequest(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := CORS("https://rsvp.example.com")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Origin", "https://rsvp.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://rsvp.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsOtherOrigin(t *testing.T) {
	h := CORS("https://rsvp.example.com")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPermissiveByDefault(t *testing.T) {
	h := CORS("")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	h := TimeoutMiddleware(10 * time.Millisecond)(slow)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "Request timeout")
}

func TestTimeoutMiddlewareDisabled(t *testing.T) {
	h := TimeoutMiddleware(0)(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetricsMiddlewareRouteLabel(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	var label string
	r.HandleFunc("/submit", func(w http.ResponseWriter, req *http.Request) {
		label = routeLabel(req)
		w.WriteHeader(http.StatusCreated)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/submit", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/submit", label)
}

func TestRouteLabelOutsideRouter(t *testing.T) {
	assert.Equal(t, "other", routeLabel(httptest.NewRequest("GET", "/x", nil)))
}

func TestWithQueryTimeout(t *testing.T) {
	ctx, cancel := WithQueryTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(QueryTimeout), deadline, time.Second)
}
