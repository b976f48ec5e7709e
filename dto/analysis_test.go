package dto

import (
	"reflect"
	"testing"

	"github.com/jesuspadres/Vibe-Check/shared"
)

func TestAnalysisResultRoundTrip(t *testing.T) {
	original := AnalysisResult{
		WebsiteAnalysis: ChannelAnalysis{
			Scores:       AxisScores{ProfessionalCasual: 20, SeriousWitty: 35, ModernTraditional: 40, DirectEmotive: 30},
			VoiceSummary: "Polished and assured.",
			KeyPhrases:   []string{"enterprise grade", "proven results"},
			DominantTone: "Corporate Expert",
		},
		SocialAnalysis: ChannelAnalysis{
			Scores:       AxisScores{ProfessionalCasual: 70, SeriousWitty: 60, ModernTraditional: 25, DirectEmotive: 65},
			VoiceSummary: "Playful and quick.",
			KeyPhrases:   []string{"hot take"},
			DominantTone: "Witty Neighbor",
		},
		CohesionScore:   55,
		Verdict:         "Two brands in a trench coat.",
		Recommendations: []string{"Align CTA language"},
		BrandPersona:    "A consultant who moonlights as a meme admin.",
	}

	encoded, err := shared.JSONMarshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded AnalysisResult
	if err := shared.JSONUnmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip changed the result:\n  before %+v\n  after  %+v", original, decoded)
	}
}

func TestAnalysisResultClamp(t *testing.T) {
	result := AnalysisResult{
		WebsiteAnalysis: ChannelAnalysis{
			Scores: AxisScores{ProfessionalCasual: 150, SeriousWitty: -20, ModernTraditional: 50, DirectEmotive: 100},
		},
		CohesionScore: 101,
	}

	result.Clamp()

	if result.WebsiteAnalysis.Scores.ProfessionalCasual != 100 {
		t.Errorf("ProfessionalCasual = %d, want 100", result.WebsiteAnalysis.Scores.ProfessionalCasual)
	}
	if result.WebsiteAnalysis.Scores.SeriousWitty != 0 {
		t.Errorf("SeriousWitty = %d, want 0", result.WebsiteAnalysis.Scores.SeriousWitty)
	}
	if result.WebsiteAnalysis.Scores.ModernTraditional != 50 {
		t.Errorf("ModernTraditional = %d, want 50", result.WebsiteAnalysis.Scores.ModernTraditional)
	}
	if result.CohesionScore != 100 {
		t.Errorf("CohesionScore = %d, want 100", result.CohesionScore)
	}
}

func TestInterpretCohesionScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Brand Soulmates"},
		{90, "Brand Soulmates"},
		{89, "Harmonious"},
		{75, "Harmonious"},
		{74, "Mostly Aligned"},
		{60, "Mostly Aligned"},
		{59, "Split Personality"},
		{40, "Split Personality"},
		{39, "Identity Crisis"},
		{0, "Identity Crisis"},
	}

	for _, tt := range tests {
		got := InterpretCohesionScore(tt.score)
		if got.Label != tt.want {
			t.Errorf("InterpretCohesionScore(%d).Label = %q, want %q", tt.score, got.Label, tt.want)
		}
		if got.Description == "" {
			t.Errorf("InterpretCohesionScore(%d) has empty description", tt.score)
		}
	}
}

func TestAnalysisPhaseMessagesComplete(t *testing.T) {
	phases := []AnalysisPhase{
		PhaseIdle, PhaseValidating, PhaseFetchingWebsite, PhaseFetchingSocial,
		PhaseAnalyzingVoice, PhaseDetectingTone, PhaseCalculatingCohesion,
		PhaseGeneratingVerdict, PhaseComplete, PhaseError,
	}

	for _, phase := range phases {
		if AnalysisPhaseMessages[phase] == "" {
			t.Errorf("no display message for phase %q", phase)
		}
	}
}
