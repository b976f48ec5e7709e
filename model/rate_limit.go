package model

import "time"

// RateLimitWindow is one client's counter in the in-process fallback
// limiter. Entries are reclaimed lazily once ResetAt passes.
type RateLimitWindow struct {
	Count   int
	ResetAt time.Time
}

func (w *RateLimitWindow) Expired(now time.Time) bool {
	return !now.Before(w.ResetAt)
}
