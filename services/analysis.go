package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jesuspadres/Vibe-Check/dto"
	"github.com/jesuspadres/Vibe-Check/model"
	"github.com/jesuspadres/Vibe-Check/prompts"
	"github.com/jesuspadres/Vibe-Check/shared"
)

// AnalysisService builds the single audit prompt, invokes the completion
// service once and normalizes whatever comes back into a schema-valid
// result. Malformed model output is not a request failure: the fixed
// placeholder result stands in so the caller always gets something
// displayable.
type AnalysisService struct {
	appContext.DefaultService

	anthropicSvc *AnthropicService
	maxTokens    int
}

const ANALYSIS_SVC = "analysis_svc"

// Greedy first-{ to last-} match; the model wraps its JSON in markdown
// fences often enough that a plain decode is not an option.
var jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)

func (svc AnalysisService) Id() string {
	return ANALYSIS_SVC
}

func (svc *AnalysisService) Configure(ctx *appContext.Context) error {
	svc.maxTokens = 2048
	return svc.DefaultService.Configure(ctx)
}

func (svc *AnalysisService) Start() error {
	svc.anthropicSvc = svc.Service(ANTHROPIC_SVC).(*AnthropicService)
	return nil
}

// Analyze runs the one model call for an audit. A service-level
// completion failure surfaces as ai_service_error; everything after a
// successful call degrades locally.
func (svc *AnalysisService) Analyze(ctx context.Context, req dto.AuditRequest, bundle model.ContentBundle) (*dto.AnalysisResult, error) {
	system := prompts.BrandAuditorSystemPrompt
	if bundle.IsLimited {
		system = prompts.BrandAuditorLimitedPrompt
	}

	raw, err := svc.anthropicSvc.Complete(ctx, system, buildAuditPrompt(req, bundle), svc.maxTokens)
	if err != nil {
		return nil, shared.NewAIServiceError(err, dto.ErrorResponse{
			Error:   "ai_service_error",
			Message: "AI analysis service temporarily unavailable",
			Details: err.Error(),
		})
	}

	return svc.Normalize(raw), nil
}

// buildAuditPrompt assembles the single user message with delimited
// sections for both channels, ending with the JSON-only instruction.
func buildAuditPrompt(req dto.AuditRequest, bundle model.ContentBundle) string {
	divider := strings.Repeat("═", 43)

	return fmt.Sprintf(`Analyze this brand's voice and tone consistency.

%[1]s
WEBSITE
%[1]s
URL: %[2]s

CONTENT:
%[3]s

%[1]s
SOCIAL MEDIA
%[1]s
Platform: %[4]s
Handle: @%[5]s

CONTENT:
%[6]s

%[1]s

Now give me the JSON analysis. No preamble.`,
		divider,
		req.WebsiteURL,
		bundle.WebsiteText,
		strings.ToUpper(req.SocialPlatform),
		req.SocialHandle,
		bundle.SocialText,
	)
}

// Normalize extracts the JSON object embedded in the model's text and
// coerces it into a valid AnalysisResult. No JSON, a decode error or a
// missing required field all substitute the complete placeholder, never
// a partial repair.
func (svc *AnalysisService) Normalize(raw string) *dto.AnalysisResult {
	match := jsonObjectRegex.FindString(raw)
	if match == "" {
		log.Warn("No JSON object found in model response, substituting placeholder result")
		parseFallbacks.Inc()
		return PlaceholderResult()
	}

	var result dto.AnalysisResult
	if err := shared.JSONUnmarshal([]byte(match), &result); err != nil {
		log.WithError(err).Warn("Failed to decode model response, substituting placeholder result")
		parseFallbacks.Inc()
		return PlaceholderResult()
	}

	result.Clamp()
	if err := result.Validate(); err != nil {
		log.WithError(err).Warn("Model response missing required fields, substituting placeholder result")
		parseFallbacks.Inc()
		return PlaceholderResult()
	}

	return &result
}

// PlaceholderResult is the fixed, schema-valid verdict returned when the
// model's output cannot be used. Generic on purpose: a displayable report
// beats a 500 for this product, and the substitution is logged for
// operators.
func PlaceholderResult() *dto.AnalysisResult {
	return &dto.AnalysisResult{
		WebsiteAnalysis: dto.ChannelAnalysis{
			Scores: dto.AxisScores{
				ProfessionalCasual: 45,
				SeriousWitty:       30,
				ModernTraditional:  25,
				DirectEmotive:      50,
			},
			VoiceSummary: "The website maintains a balanced professional tone with occasional moments of warmth.",
			KeyPhrases:   []string{"innovation", "trusted partner", "your success"},
			DominantTone: "Confident Professional",
		},
		SocialAnalysis: dto.ChannelAnalysis{
			Scores: dto.AxisScores{
				ProfessionalCasual: 65,
				SeriousWitty:       55,
				ModernTraditional:  30,
				DirectEmotive:      60,
			},
			VoiceSummary: "Social presence is noticeably more relaxed and engaging than the website.",
			KeyPhrases:   []string{"let's chat", "exciting news", "community"},
			DominantTone: "Friendly Enthusiast",
		},
		CohesionScore: 72,
		Verdict:       "Your brand has a mild case of 'business in the front, party in the tweets.' The website speaks like it's wearing a suit, while social is in business casual.",
		Recommendations: []string{
			"Consider adding more personality to website copy to match social energy",
			"Create a brand voice guide that works across all channels",
			"Test informal CTAs on website to see if they improve engagement",
		},
		BrandPersona: "If your brand were a person, they'd be a 30-something marketing professional who's buttoned-up in meetings but has a secret TikTok account. Loves a good pun but saves it for happy hour.",
	}
}
