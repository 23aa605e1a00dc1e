package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/employee-admin/internal/api/metrics"
)

// AttemptLimiter counts attempts per key inside a window.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	Reset(ctx context.Context, key string) error
}

// LoginRateLimit throttles login attempts per client IP. Limiter errors let
// the request through. A successful login clears the counter for the IP.
func LoginRateLimit(limiter AttemptLimiter, m *metrics.Metrics, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := c.RealIP()

			allowed, retryAfter, err := limiter.Allow(ctx, key)
			if err != nil {
				log.Error().Err(err).Str("ip", key).Msg("login limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				m.LoginsTotal.WithLabelValues("rate_limited").Inc()
				log.Warn().Str("ip", key).Dur("retry_after", retryAfter).Msg("login rate limited")
				c.Response().Header().Set("Retry-After", retryAfterSeconds(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}

			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status == http.StatusOK {
				if err := limiter.Reset(ctx, key); err != nil {
					log.Error().Err(err).Str("ip", key).Msg("reset login attempts")
				}
			}
			return nil
		}
	}
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
