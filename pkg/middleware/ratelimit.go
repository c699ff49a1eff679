package middleware

import (
	"net"
	"net/http"
	"sync"

	"gym-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-IP token bucket. Used on the auth endpoints to slow
// down credential stuffing; limiters for idle IPs are dropped once the map
// grows past maxEntries.
func RateLimit(rps float64, burst int, logger *zap.Logger) func(http.Handler) http.Handler {
	const maxEntries = 10000

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	getLimiter := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		if limiter, ok := limiters[ip]; ok {
			return limiter
		}

		if len(limiters) >= maxEntries {
			limiters = make(map[string]*rate.Limiter)
		}

		limiter := rate.NewLimiter(rate.Limit(rps), burst)
		limiters[ip] = limiter
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !getLimiter(ip).Allow() {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseTooManyRequests(w, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
