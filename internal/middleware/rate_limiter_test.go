package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func exportServer(perSecond float64, burst int) *echo.Echo {
	e := echo.New()
	e.GET("/export.pdf", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/pdf", []byte("%PDF-1.7"))
	}, RateLimiter(perSecond, burst))
	return e
}

func exportFrom(e *echo.Echo, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/export.pdf", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	e := exportServer(0.2, 2)

	assert.Equal(t, http.StatusOK, exportFrom(e, "198.51.100.7:5000").Code)
	assert.Equal(t, http.StatusOK, exportFrom(e, "198.51.100.7:5001").Code)

	denied := exportFrom(e, "198.51.100.7:5002")
	assert.Equal(t, http.StatusTooManyRequests, denied.Code)
	assert.Equal(t, "5", denied.Header().Get("Retry-After"))
	assert.Contains(t, denied.Body.String(), "retry in 5s")
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	e := exportServer(0.2, 1)

	assert.Equal(t, http.StatusOK, exportFrom(e, "198.51.100.7:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, exportFrom(e, "198.51.100.7:5000").Code)
	assert.Equal(t, http.StatusOK, exportFrom(e, "203.0.113.9:6000").Code)
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := map[float64]int{
		0:    1,
		-1:   1,
		10:   1,
		1:    1,
		0.2:  5,
		0.3:  4,
		0.01: 100,
	}
	for perSecond, want := range tests {
		assert.Equal(t, want, retryAfterSeconds(perSecond), "perSecond=%v", perSecond)
	}
}
