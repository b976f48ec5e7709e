package dto

import (
	"strings"
	"time"
)

// AuditRequest is the raw body of POST /api/audit. Call Normalize before
// Validate; the custom validations assume normalized values.
type AuditRequest struct {
	WebsiteURL     string `json:"websiteUrl" validate:"required,website_url"`
	SocialHandle   string `json:"socialHandle" validate:"required,social_handle,not_reserved"`
	SocialPlatform string `json:"socialPlatform" validate:"required,oneof=twitter instagram"`
}

// Normalize trims both inputs, defaults the URL scheme to https and
// strips a single leading @ from the handle.
func (r *AuditRequest) Normalize() {
	r.WebsiteURL = strings.TrimSpace(r.WebsiteURL)
	if r.WebsiteURL != "" && !strings.HasPrefix(r.WebsiteURL, "http://") && !strings.HasPrefix(r.WebsiteURL, "https://") {
		r.WebsiteURL = "https://" + r.WebsiteURL
	}

	r.SocialHandle = strings.TrimSpace(r.SocialHandle)
	r.SocialHandle = strings.TrimPrefix(r.SocialHandle, "@")

	r.SocialPlatform = strings.TrimSpace(r.SocialPlatform)
}

func (r AuditRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AuditMetadata struct {
	AuditID            string    `json:"auditId"`
	AnalyzedAt         time.Time `json:"analyzedAt"`
	RateLimitRemaining int       `json:"rateLimitRemaining"`
	RateLimitReset     time.Time `json:"rateLimitReset"`
}

type AuditResponse struct {
	Success  bool            `json:"success"`
	Data     *AnalysisResult `json:"data"`
	Metadata AuditMetadata   `json:"metadata"`
}

type ValidationErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type RateLimitErrorResponse struct {
	Error             string    `json:"error"`
	Message           string    `json:"message"`
	ResetTime         time.Time `json:"resetTime"`
	RemainingAttempts int       `json:"remainingAttempts"`
}

// ErrorResponse covers the remaining taxonomy entries: ai_service_error,
// internal_error and method_not_allowed.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
