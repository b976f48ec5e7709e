package dto

import "time"

// RateLimitInfo is the decision for a single quota check. ResetTime is
// always populated, including on the fail-open path.
type RateLimitInfo struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"reset_time"`
}
