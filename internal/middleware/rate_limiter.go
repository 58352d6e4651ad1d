package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const limiterIdleExpiry = 3 * time.Minute

// RateLimiter guards routes that are expensive to serve, such as the PDF
// export. Each client IP may burst up to burst requests and is then refilled at
// perSecond. Denied requests get 429 with a Retry-After hint.
func RateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	retryAfter := strconv.Itoa(retryAfterSeconds(perSecond))
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: limiterIdleExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, client string, err error) error {
			FromContext(c.Request().Context()).Warn("Rate limit exceeded", "client", client, "path", c.Path())
			c.Response().Header().Set("Retry-After", retryAfter)
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, retry in "+retryAfter+"s")
		},
	})
}

// retryAfterSeconds is the time one token takes to refill, at least one second.
func retryAfterSeconds(perSecond float64) int {
	if perSecond <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/perSecond)))
}
