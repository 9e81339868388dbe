package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"provider-directory/pkg/response"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	idle     time.Duration
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     3 * time.Minute,
	}
}

// Cleanup drops idle visitors every interval until done is closed.
func (m *RateLimitMiddleware) Cleanup(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for ip, v := range m.visitors {
				if now.Sub(v.lastSeen) > m.idle {
					delete(m.visitors, ip)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *RateLimitMiddleware) limiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !m.limiter(ip).Allow() {
			response.TooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
