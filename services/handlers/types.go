package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jesuspadres/Vibe-Check/dto"
	"github.com/jesuspadres/Vibe-Check/model"
)

type RateLimitServiceInterface interface {
	ClientID(c *fiber.Ctx) string
	Check(ctx context.Context, clientID string) dto.RateLimitInfo
	MaxRequests() int
}

type ContentServiceInterface interface {
	Acquire(ctx context.Context, websiteURL, handle, platform string) model.ContentBundle
}

type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, req dto.AuditRequest, bundle model.ContentBundle) (*dto.AnalysisResult, error)
}

// AuditRecorder counts a finished audit by outcome for the metrics
// endpoint; nil disables recording.
type AuditRecorder func(outcome string)
