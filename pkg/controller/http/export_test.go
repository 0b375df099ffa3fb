package http

import "time"

// IPLimiterAllow exposes the per-IP limiter for testing
func IPLimiterAllow(limit int, window time.Duration) func(ip string, now time.Time) bool {
	return newIPLimiter(limit, window).allow
}

var IsIdentifier = isIdentifier
