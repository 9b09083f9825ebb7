package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// failureWindow 按 IP 记录窗口内的失败时间
type failureWindow struct {
	mu       sync.Mutex
	window   time.Duration
	failures map[string][]time.Time
	now      func() time.Time
}

func (w *failureWindow) recent(ip string) int {
	cutoff := w.now().Add(-w.window)
	kept := w.failures[ip][:0]
	for _, t := range w.failures[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(w.failures, ip)
	} else {
		w.failures[ip] = kept
	}
	return len(kept)
}

// UnlockRateLimit 解锁接口限流中间件
// 每 IP 在 window 内失败 maxAttempts 次后返回 429，解锁成功清零
func UnlockRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	fw := &failureWindow{
		window:   window,
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()

		fw.mu.Lock()
		blocked := fw.recent(ip) >= maxAttempts
		fw.mu.Unlock()
		if blocked {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "解锁尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()

		fw.mu.Lock()
		if c.Writer.Status() < http.StatusBadRequest {
			delete(fw.failures, ip)
		} else {
			fw.failures[ip] = append(fw.failures[ip], fw.now())
		}
		fw.mu.Unlock()
	}
}
