package dto

// AxisScores holds the four bipolar voice axes, each 0-100. The low end
// of each axis is the first word of its name.
type AxisScores struct {
	ProfessionalCasual int `json:"professionalCasual" validate:"min=0,max=100"`
	SeriousWitty       int `json:"seriousWitty" validate:"min=0,max=100"`
	ModernTraditional  int `json:"modernTraditional" validate:"min=0,max=100"`
	DirectEmotive      int `json:"directEmotive" validate:"min=0,max=100"`
}

// Clamp forces every axis into [0,100]. The model is asked for ints in
// range but is not trusted to comply.
func (s *AxisScores) Clamp() {
	s.ProfessionalCasual = clampScore(s.ProfessionalCasual)
	s.SeriousWitty = clampScore(s.SeriousWitty)
	s.ModernTraditional = clampScore(s.ModernTraditional)
	s.DirectEmotive = clampScore(s.DirectEmotive)
}

type ChannelAnalysis struct {
	Scores       AxisScores `json:"scores"`
	VoiceSummary string     `json:"voiceSummary" validate:"required"`
	KeyPhrases   []string   `json:"keyPhrases" validate:"required"`
	DominantTone string     `json:"dominantTone" validate:"required"`
}

// AnalysisResult is the full structured verdict returned to the client.
// Produced once per request by the result normalizer; never persisted.
type AnalysisResult struct {
	WebsiteAnalysis ChannelAnalysis `json:"websiteAnalysis"`
	SocialAnalysis  ChannelAnalysis `json:"socialAnalysis"`
	CohesionScore   int             `json:"cohesionScore" validate:"min=0,max=100"`
	Verdict         string          `json:"verdict" validate:"required"`
	Recommendations []string        `json:"recommendations" validate:"required"`
	BrandPersona    string          `json:"brandPersona" validate:"required"`
}

func (r *AnalysisResult) Clamp() {
	r.WebsiteAnalysis.Scores.Clamp()
	r.SocialAnalysis.Scores.Clamp()
	r.CohesionScore = clampScore(r.CohesionScore)
}

func (r AnalysisResult) Validate() error {
	return GetValidator().Struct(r)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AnalysisPhase labels the client-side progress narration during the one
// synchronous audit call. Only validating, the two fetches and the model
// call are real backend phases; the rest pace the UI and are never
// persisted or checkpointed server-side.
type AnalysisPhase string

const (
	PhaseIdle                AnalysisPhase = "idle"
	PhaseValidating          AnalysisPhase = "validating"
	PhaseFetchingWebsite     AnalysisPhase = "fetching_website"
	PhaseFetchingSocial      AnalysisPhase = "fetching_social"
	PhaseAnalyzingVoice      AnalysisPhase = "analyzing_voice"
	PhaseDetectingTone       AnalysisPhase = "detecting_tone"
	PhaseCalculatingCohesion AnalysisPhase = "calculating_cohesion"
	PhaseGeneratingVerdict   AnalysisPhase = "generating_verdict"
	PhaseComplete            AnalysisPhase = "complete"
	PhaseError               AnalysisPhase = "error"
)

// AnalysisPhaseMessages are the display strings the front end shows for
// each phase.
var AnalysisPhaseMessages = map[AnalysisPhase]string{
	PhaseIdle:                "Ready to analyze",
	PhaseValidating:          "Validating inputs...",
	PhaseFetchingWebsite:     "Scanning website DNA...",
	PhaseFetchingSocial:      "Intercepting social signals...",
	PhaseAnalyzingVoice:      "Decoding brand voice patterns...",
	PhaseDetectingTone:       "Detecting sarcasm levels...",
	PhaseCalculatingCohesion: "Computing cohesion matrix...",
	PhaseGeneratingVerdict:   "Generating personality verdict...",
	PhaseComplete:            "Analysis complete!",
	PhaseError:               "Analysis failed",
}

// CohesionInterpretation is the display band for a cohesion score.
type CohesionInterpretation struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// InterpretCohesionScore maps a cohesion score onto its display band.
func InterpretCohesionScore(score int) CohesionInterpretation {
	switch {
	case score >= 90:
		return CohesionInterpretation{
			Label:       "Brand Soulmates",
			Description: "Your brand voice is remarkably consistent across platforms. Chef's kiss!",
		}
	case score >= 75:
		return CohesionInterpretation{
			Label:       "Harmonious",
			Description: "Strong alignment with minor variations. Your brand identity shines through.",
		}
	case score >= 60:
		return CohesionInterpretation{
			Label:       "Mostly Aligned",
			Description: "Good foundation with room for tightening. Consider unifying tone across channels.",
		}
	case score >= 40:
		return CohesionInterpretation{
			Label:       "Split Personality",
			Description: "Noticeable differences between platforms. Your audience might be confused.",
		}
	default:
		return CohesionInterpretation{
			Label:       "Identity Crisis",
			Description: "Major disconnect between your website and social presence. Time for a brand therapy session.",
		}
	}
}
