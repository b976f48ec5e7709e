package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jesuspadres/Vibe-Check/dto"
	"github.com/jesuspadres/Vibe-Check/shared"
)

type AuditHandler struct {
	rateLimitSvc RateLimitServiceInterface
	contentSvc   ContentServiceInterface
	analysisSvc  AnalysisServiceInterface
	record       AuditRecorder
}

func NewAuditHandler(rateLimitSvc RateLimitServiceInterface, contentSvc ContentServiceInterface, analysisSvc AnalysisServiceInterface, record AuditRecorder) *AuditHandler {
	return &AuditHandler{
		rateLimitSvc: rateLimitSvc,
		contentSvc:   contentSvc,
		analysisSvc:  analysisSvc,
		record:       record,
	}
}

// @Summary Run Brand Audit
// @Description Validates the submitted website and social handle, fetches both content sources and returns the structured voice analysis
// @Tags audit
// @Accept  json
// @Produce json
// @Param auditRequest body dto.AuditRequest true "Audit request"
// @Success 200 {object} dto.AuditResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 429 {object} dto.RateLimitErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/audit [post]
func (h *AuditHandler) AuditBrand(c *fiber.Ctx) error {
	var req dto.AuditRequest
	if err := c.BodyParser(&req); err != nil {
		h.recordOutcome("invalid_input")
		return shared.NewValidationError("Invalid request data", dto.ValidationErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
	}

	// Validation runs before the quota check so malformed input never
	// spends an attempt or a network call.
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.recordOutcome("invalid_input")
		return shared.NewValidationError("Invalid request data", dto.CreateValidationErrorResponse(err))
	}

	// Defense in depth: validated values are sanitized again before any
	// downstream use.
	req.WebsiteURL = shared.SanitizeInput(req.WebsiteURL)
	req.SocialHandle = shared.SanitizeInput(req.SocialHandle)

	clientID := h.rateLimitSvc.ClientID(c)
	limit := h.rateLimitSvc.Check(c.Context(), clientID)

	c.Set("X-RateLimit-Remaining", strconv.Itoa(limit.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(limit.ResetTime.Unix(), 10))

	if !limit.Allowed {
		h.recordOutcome("rate_limited")
		return shared.NewRateLimitError("Rate limit exceeded", dto.RateLimitErrorResponse{
			Error: "rate_limit_exceeded",
			Message: fmt.Sprintf("Rate limit exceeded. You can perform %d audits per hour. Try again at %s.",
				h.rateLimitSvc.MaxRequests(), limit.ResetTime.Format(time.Kitchen)),
			ResetTime:         limit.ResetTime,
			RemainingAttempts: limit.Remaining,
		})
	}

	bundle := h.contentSvc.Acquire(c.Context(), req.WebsiteURL, req.SocialHandle, req.SocialPlatform)

	result, err := h.analysisSvc.Analyze(c.Context(), req, bundle)
	if err != nil {
		h.recordOutcome("ai_service_error")
		return err
	}

	h.recordOutcome("success")
	return c.Status(fiber.StatusOK).JSON(dto.AuditResponse{
		Success: true,
		Data:    result,
		Metadata: dto.AuditMetadata{
			AuditID:            uuid.NewString(),
			AnalyzedAt:         time.Now().UTC(),
			RateLimitRemaining: limit.Remaining,
			RateLimitReset:     limit.ResetTime,
		},
	})
}

// @Summary Audit Method Guard
// @Description Rejects non-POST access to the audit endpoint
// @Tags audit
// @Produce json
// @Failure 405 {object} dto.ErrorResponse
// @Router /api/audit [get]
func (h *AuditHandler) MethodNotAllowed(c *fiber.Ctx) error {
	return shared.NewMethodNotAllowedError("Use POST to submit a brand audit", dto.ErrorResponse{
		Error:   "method_not_allowed",
		Message: "Use POST to submit a brand audit",
	})
}

func (h *AuditHandler) recordOutcome(outcome string) {
	if h.record != nil {
		h.record(outcome)
	}
}
