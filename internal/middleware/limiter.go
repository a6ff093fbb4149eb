package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"laundry-be/internal/utils"

	"golang.org/x/time/rate"
)

// Tier is a token-bucket policy. Each caller gets its own bucket per tier.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

var (
	// LoginTier guards POST /api/auth/login, keyed by client IP.
	LoginTier = Tier{Name: "login", Limit: rate.Limit(2), Burst: 5}

	// PublicTier covers the other unauthenticated routes.
	PublicTier = Tier{Name: "public", Limit: rate.Limit(5), Burst: 10}

	// SessionTier covers authenticated routes, keyed by user id.
	SessionTier = Tier{Name: "session", Limit: rate.Limit(10), Burst: 20}
)

const (
	visitorIdle = 3 * time.Minute
	sweepEvery  = time.Minute
	retryAfterS = "1"
	tooManyReqs = `{"error":"Too many requests"}`
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

var visitors = &visitorStore{visitors: make(map[string]*visitor)}

func init() {
	go func() {
		for range time.Tick(sweepEvery) {
			visitors.evictIdle(visitorIdle)
		}
	}()
}

func (s *visitorStore) get(key string, tier Tier) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(tier.Limit, tier.Burst)}
		s.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (s *visitorStore) evictIdle(maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, v := range s.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(s.visitors, key)
		}
	}
}

// RateLimit applies tier to every request. Mounted after Authenticate it
// buckets by user id; elsewhere it buckets by client IP.
func RateLimit(tier Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := tier.Name + ":" + callerKey(r)
			if !visitors.get(key, tier).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfterS)
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(tooManyReqs))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + userID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
