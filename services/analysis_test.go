package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jesuspadres/Vibe-Check/dto"
	"github.com/jesuspadres/Vibe-Check/model"
	"github.com/jesuspadres/Vibe-Check/prompts"
	"github.com/jesuspadres/Vibe-Check/shared"
)

const validResultJSON = `{
	"websiteAnalysis": {
		"scores": {"professionalCasual": 20, "seriousWitty": 35, "modernTraditional": 40, "directEmotive": 30},
		"voiceSummary": "Polished and assured.",
		"keyPhrases": ["enterprise grade", "proven results"],
		"dominantTone": "Corporate Expert"
	},
	"socialAnalysis": {
		"scores": {"professionalCasual": 70, "seriousWitty": 60, "modernTraditional": 25, "directEmotive": 65},
		"voiceSummary": "Playful and quick.",
		"keyPhrases": ["hot take", "drop a comment"],
		"dominantTone": "Witty Neighbor"
	},
	"cohesionScore": 55,
	"verdict": "Two brands in a trench coat.",
	"recommendations": ["Align CTA language", "Share one voice guide"],
	"brandPersona": "A consultant who moonlights as a meme admin."
}`

func newTestAnalysisService(anthropicSvc *AnthropicService) *AnalysisService {
	return &AnalysisService{anthropicSvc: anthropicSvc, maxTokens: 2048}
}

func TestNormalizeExtractsFencedJSON(t *testing.T) {
	svc := newTestAnalysisService(nil)
	raw := "Here is your analysis:\n```json\n" + validResultJSON + "\n```\nHope that helps!"

	result := svc.Normalize(raw)
	if result.CohesionScore != 55 {
		t.Errorf("CohesionScore = %d, want 55", result.CohesionScore)
	}
	if result.Verdict != "Two brands in a trench coat." {
		t.Errorf("Verdict = %q", result.Verdict)
	}
	if result.WebsiteAnalysis.DominantTone != "Corporate Expert" {
		t.Errorf("DominantTone = %q", result.WebsiteAnalysis.DominantTone)
	}
}

func TestNormalizeClampsOutOfRangeScores(t *testing.T) {
	svc := newTestAnalysisService(nil)
	raw := strings.Replace(validResultJSON, `"professionalCasual": 20`, `"professionalCasual": 150`, 1)
	raw = strings.Replace(raw, `"cohesionScore": 55`, `"cohesionScore": -10`, 1)

	result := svc.Normalize(raw)
	if result.WebsiteAnalysis.Scores.ProfessionalCasual != 100 {
		t.Errorf("ProfessionalCasual = %d, want 100", result.WebsiteAnalysis.Scores.ProfessionalCasual)
	}
	if result.CohesionScore != 0 {
		t.Errorf("CohesionScore = %d, want 0", result.CohesionScore)
	}
	// Clamping is repair, not rejection.
	if result.Verdict != "Two brands in a trench coat." {
		t.Errorf("clamped result replaced by placeholder: %q", result.Verdict)
	}
}

func TestNormalizeSubstitutesPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no json object", "I'm sorry, I can't produce that analysis."},
		{"malformed json", "{\"websiteAnalysis\": "},
		{"missing verdict", strings.Replace(validResultJSON, `"verdict": "Two brands in a trench coat.",`, "", 1)},
		{"empty response", ""},
	}

	placeholder := PlaceholderResult()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAnalysisService(nil)
			result := svc.Normalize(tt.raw)
			if result.Verdict != placeholder.Verdict {
				t.Errorf("Verdict = %q, want placeholder", result.Verdict)
			}
			if result.CohesionScore != placeholder.CohesionScore {
				t.Errorf("CohesionScore = %d, want %d", result.CohesionScore, placeholder.CohesionScore)
			}
		})
	}
}

func TestPlaceholderResultIsSchemaValid(t *testing.T) {
	if err := PlaceholderResult().Validate(); err != nil {
		t.Errorf("placeholder fails its own schema: %v", err)
	}
}

func completionServer(t *testing.T, captureSystem *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req anthropicRequest
		if err := shared.JSONUnmarshal(readBody(t, r), &req); err != nil {
			t.Errorf("bad completion request body: %v", err)
		}
		if captureSystem != nil {
			*captureSystem = req.System
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": ` + quoteJSON(validResultJSON) + `}]}`))
	}))
}

func readBody(t *testing.T, r *http.Request) []byte {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read request body: %v", err)
	}
	return body
}

func quoteJSON(s string) string {
	out, _ := shared.JSONMarshal(s)
	return string(out)
}

func newTestAnthropicService(baseURL string) *AnthropicService {
	return &AnthropicService{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		apiKey:     "test-key",
		model:      "test-model",
	}
}

func TestAnalyzeSelectsPromptByContext(t *testing.T) {
	tests := []struct {
		name       string
		bundle     model.ContentBundle
		wantSystem string
	}{
		{
			name:       "rich context",
			bundle:     model.ContentBundle{WebsiteText: strings.Repeat("copy ", 100), SocialText: "posts", IsLimited: false},
			wantSystem: prompts.BrandAuditorSystemPrompt,
		},
		{
			name:       "limited context",
			bundle:     model.ContentBundle{WebsiteText: "[Note: Could not directly fetch https://example.com.]", SocialText: "posts", IsLimited: true},
			wantSystem: prompts.BrandAuditorLimitedPrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSystem string
			srv := completionServer(t, &gotSystem)
			defer srv.Close()

			svc := newTestAnalysisService(newTestAnthropicService(srv.URL))
			req := dto.AuditRequest{WebsiteURL: "https://example.com", SocialHandle: "acme", SocialPlatform: "twitter"}

			result, err := svc.Analyze(context.Background(), req, tt.bundle)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotSystem != tt.wantSystem {
				t.Errorf("wrong system prompt selected for %s", tt.name)
			}
			if result.CohesionScore != 55 {
				t.Errorf("CohesionScore = %d, want 55", result.CohesionScore)
			}
		})
	}
}

func TestAnalyzeCompletionFailureIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "overloaded"}`))
	}))
	defer srv.Close()

	svc := newTestAnalysisService(newTestAnthropicService(srv.URL))
	req := dto.AuditRequest{WebsiteURL: "https://example.com", SocialHandle: "acme", SocialPlatform: "twitter"}

	_, err := svc.Analyze(context.Background(), req, model.ContentBundle{WebsiteText: "copy", SocialText: "posts"})
	if err == nil {
		t.Fatal("expected error")
	}

	appErr, ok := shared.GetAppError(err)
	if !ok {
		t.Fatalf("expected classified error, got %v", err)
	}
	if appErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", appErr.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestBuildAuditPromptSections(t *testing.T) {
	req := dto.AuditRequest{WebsiteURL: "https://example.com", SocialHandle: "acme", SocialPlatform: "twitter"}
	bundle := model.ContentBundle{WebsiteText: "website excerpt here", SocialText: "social excerpt here"}

	prompt := buildAuditPrompt(req, bundle)

	for _, want := range []string{
		"URL: https://example.com",
		"Platform: TWITTER",
		"Handle: @acme",
		"website excerpt here",
		"social excerpt here",
		"No preamble.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
