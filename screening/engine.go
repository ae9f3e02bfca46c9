// Package screening scores free-text resumes against a fixed keyword table
// and decides whether a candidate qualifies for the pipeline.
//
// Screening is a total, deterministic function: the same text always yields
// the same Result and no input produces an error.
package screening

import "fmt"

const (
	// QualifiedFloor is the lowest score a qualified candidate can receive.
	QualifiedFloor = 60
	// RejectedCeiling is the highest score a non-qualified candidate can receive.
	RejectedCeiling = 45

	maxSubScore       = 10
	qualifiedSubFloor = 5
	strongSignalsNeed = 2
	minSeniorYears    = 10
	minExperienceYrs  = 5
)

// Reasons and concerns that callers may match on.
const (
	ReasonPEOperating     = "Direct PE operating experience"
	ReasonCSuite          = "C-suite executive experience"
	ReasonConsulting      = "Top-tier consulting background"
	ReasonMBA             = "MBA from recognized program"
	ReasonLeadership      = "Senior leadership titles"
	ReasonFunctional      = "Strong functional expertise"
	ReasonIndustry        = "Relevant industry experience"
	ReasonValueCreation   = "Value creation language and experience"
	ReasonInsufficientExp = "Insufficient experience level"

	ConcernShortTenure = "Less than 5 years of experience"
	ConcernEntryLevel  = "Primarily entry-level or individual contributor roles"
)

const (
	strengthPE            = "Has worked directly in PE portfolio operations"
	strengthCSuite        = "Proven executive leadership at the highest level"
	strengthConsulting    = "Strategic consulting pedigree"
	strengthAcademic      = "Strong academic credentials"
	strengthExperience    = "Extensive professional experience"
	strengthLeadership    = "Track record of leadership responsibility"
	strengthFunctional    = "Deep functional knowledge in key areas"
	strengthValueCreation = "Speaks the language of PE value creation"
)

// Analysis is the structured breakdown behind a score.
type Analysis struct {
	PEExposure      int      `json:"peExposure"`
	Seniority       int      `json:"seniority"`
	FunctionalDepth int      `json:"functionalDepth"`
	CultureSignals  int      `json:"cultureSignals"`
	Strengths       []string `json:"strengths"`
	Concerns        []string `json:"concerns"`
	Reasons         []string `json:"reasons"`
}

// Result is the verdict for one resume.
type Result struct {
	Qualified bool     `json:"qualified"`
	Score     int      `json:"score"`
	Analysis  Analysis `json:"analysis"`
}

// Engine screens resumes with a given rule table.
type Engine struct {
	rules Rules
}

// NewEngine returns an engine using rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

var defaultEngine = NewEngine(DefaultRules())

// Screen screens resumeText with the default rules.
func Screen(resumeText string) Result {
	return defaultEngine.Screen(resumeText)
}

// Screen computes the qualification verdict, score and analysis for resumeText.
func (e *Engine) Screen(resumeText string) Result {
	text := Normalize(resumeText)
	r := e.rules

	var (
		qualified                                  bool
		peExposure, seniority, functional, culture int
	)
	strengths, concerns, reasons := []string{}, []string{}, []string{}

	isPERole := r.PERoles.Matches(text)
	isCSuite := r.CSuite.Matches(text)

	if isPERole {
		qualified = true
		peExposure = max(peExposure, 9)
		reasons = append(reasons, ReasonPEOperating)
		strengths = append(strengths, strengthPE)
	}
	if isCSuite {
		qualified = true
		seniority = max(seniority, 10)
		reasons = append(reasons, ReasonCSuite)
		strengths = append(strengths, strengthCSuite)
	}
	if r.TopConsulting.Matches(text) {
		qualified = true
		functional = max(functional, 7)
		reasons = append(reasons, ReasonConsulting)
		strengths = append(strengths, strengthConsulting)
	}

	signals := 0

	if r.MBAPrograms.Matches(text) {
		signals++
		reasons = append(reasons, ReasonMBA)
		strengths = append(strengths, strengthAcademic)
	}

	years := EstimateYearsExperience(resumeText)
	switch {
	case years >= minSeniorYears:
		signals++
		seniority = max(seniority, 8)
		reasons = append(reasons, fmt.Sprintf("%d+ years of experience", years))
		strengths = append(strengths, strengthExperience)
	case years >= 7:
		seniority = max(seniority, 6)
	}

	hasLeadership := r.LeadershipTitles.Matches(text)
	if hasLeadership {
		signals++
		seniority = max(seniority, 7)
		reasons = append(reasons, ReasonLeadership)
		strengths = append(strengths, strengthLeadership)
	}

	if n := r.FunctionalAreas.Count(text); n >= 2 {
		signals++
		functional = max(functional, 7+min(n, 3))
		reasons = append(reasons, ReasonFunctional)
		strengths = append(strengths, strengthFunctional)
	}

	if r.Industries.Matches(text) {
		signals++
		reasons = append(reasons, ReasonIndustry)
	}

	if n := r.ValueCreation.Count(text); n >= 2 {
		signals++
		culture = max(culture, 6+min(n, 4))
		reasons = append(reasons, ReasonValueCreation)
		strengths = append(strengths, strengthValueCreation)
	}

	if signals >= strongSignalsNeed && !qualified {
		qualified = true
		reasons = append(reasons, fmt.Sprintf("%d strong qualifying signals", signals))
	}

	// Short tenure overrides any strong-signal qualification unless the
	// candidate held a C-suite or PE operating role.
	if years > 0 && years < minExperienceYrs {
		concerns = append(concerns, ConcernShortTenure)
		if !isCSuite && !isPERole {
			qualified = false
			reasons = []string{ReasonInsufficientExp}
		}
	}

	if r.EntryLevel.Matches(text) && !hasLeadership {
		concerns = append(concerns, ConcernEntryLevel)
	}

	raw := clamp(peExposure)*3 + clamp(seniority)*3 + clamp(functional)*2 + clamp(culture)*2
	score := min(raw, 100)

	if qualified {
		peExposure = max(peExposure, qualifiedSubFloor)
		seniority = max(seniority, qualifiedSubFloor)
		functional = max(functional, qualifiedSubFloor)
		culture = max(culture, qualifiedSubFloor)
		score = max(score, QualifiedFloor)
	} else {
		score = min(score, RejectedCeiling)
	}

	return Result{
		Qualified: qualified,
		Score:     score,
		Analysis: Analysis{
			PEExposure:      clamp(peExposure),
			Seniority:       clamp(seniority),
			FunctionalDepth: clamp(functional),
			CultureSignals:  clamp(culture),
			Strengths:       strengths,
			Concerns:        concerns,
			Reasons:         reasons,
		},
	}
}

func clamp(v int) int {
	return max(0, min(v, maxSubScore))
}
