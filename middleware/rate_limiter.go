package middleware

import (
	"net/http"
	"sync"
	"time"

	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter menyimpan satu token bucket per IP klien.
// Entri yang lama tidak dipakai dibersihkan berkala supaya map tidak
// tumbuh tanpa batas.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipEntry
	r        rate.Limit
	burst    int
}

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	l := &ipLimiter{
		limiters: make(map[string]*ipEntry),
		r:        rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
	}
	go l.cleanup()
	return l
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipEntry{limiter: rate.NewLimiter(l.r, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (l *ipLimiter) cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		l.mu.Lock()
		for ip, entry := range l.limiters {
			if time.Since(entry.lastSeen) > time.Hour {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimiter membatasi request per IP (token bucket).
// Hanya dipasang kalau profil environment mengaktifkannya
// (staging/production); development bebas limit.
func RateLimiter(perMinute int) gin.HandlerFunc {
	limiter := newIPLimiter(perMinute)

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests,
				utils.BuildResponseFailed(
					"Terlalu banyak permintaan. Silakan tunggu 60 detik.",
					gin.H{"retry_after": 60},
					nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
