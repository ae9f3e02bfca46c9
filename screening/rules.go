package screening

import "strings"

// Group is a named list of lowercase phrases matched by substring containment
// against normalized resume text.
type Group struct {
	Name    string
	Phrases []string
}

// Matches reports whether any phrase of the group occurs in the normalized text.
func (g Group) Matches(normalized string) bool {
	for _, p := range g.Phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// Count returns how many distinct phrases of the group occur in the normalized text.
func (g Group) Count(normalized string) int {
	n := 0
	for _, p := range g.Phrases {
		if strings.Contains(normalized, p) {
			n++
		}
	}
	return n
}

// Rules is the full keyword table used by the engine.
// Phrases are compared against text where punctuation has already been
// replaced by spaces, so a phrase carrying punctuation (for example "m&a")
// can never match. The tables are kept as they are because qualification
// outcomes depend on them.
type Rules struct {
	// auto-qualifiers
	PERoles       Group
	CSuite        Group
	TopConsulting Group

	// strong signals
	MBAPrograms      Group
	LeadershipTitles Group
	FunctionalAreas  Group
	Industries       Group
	ValueCreation    Group

	// disqualifiers
	EntryLevel Group
}

// DefaultRules returns the keyword table for private-equity operating talent.
func DefaultRules() Rules {
	return Rules{
		PERoles: Group{Name: "pe_roles", Phrases: []string{
			"operating partner",
			"value creation",
			"portfolio operations",
			"pe operating",
			"private equity operations",
			"portfolio company",
			"operating executive",
		}},
		CSuite: Group{Name: "c_suite", Phrases: []string{
			"ceo",
			"cfo",
			"coo",
			"cto",
			"chro",
			"cmo",
			"chief executive",
			"chief financial",
			"chief operating",
			"chief technology",
			"chief human",
			"chief marketing",
		}},
		TopConsulting: Group{Name: "top_consulting", Phrases: []string{
			"mckinsey",
			"bain & company",
			"bain and company",
			"boston consulting",
			"bcg",
			"deloitte",
			"ernst & young",
			"ey ",
			"pwc",
			"pricewaterhousecoopers",
			"kpmg",
			"accenture",
		}},
		MBAPrograms: Group{Name: "mba_programs", Phrases: []string{
			"harvard business",
			"stanford gsb",
			"wharton",
			"kellogg",
			"booth",
			"columbia business",
			"mit sloan",
			"haas",
			"tuck",
			"darden",
			"ross",
			"fuqua",
			"yale som",
			"mba",
		}},
		LeadershipTitles: Group{Name: "leadership_titles", Phrases: []string{
			"vice president",
			"vp ",
			"svp",
			"senior vice president",
			"director",
			"head of",
			"managing director",
			"partner",
			"principal",
		}},
		FunctionalAreas: Group{Name: "functional_areas", Phrases: []string{
			"operations",
			"finance",
			"technology",
			"sales",
			"human resources",
			"hr ",
			"supply chain",
			"procurement",
			"manufacturing",
			"revenue",
			"growth",
			"strategy",
		}},
		Industries: Group{Name: "industries", Phrases: []string{
			"healthcare",
			"software",
			"saas",
			"technology",
			"industrials",
			"manufacturing",
			"business services",
			"consumer",
			"retail",
			"fintech",
			"financial services",
		}},
		ValueCreation: Group{Name: "value_creation", Phrases: []string{
			"transformation",
			"turnaround",
			"integration",
			"m&a",
			"merger",
			"acquisition",
			"due diligence",
			"ebitda",
			"margin improvement",
			"cost reduction",
			"revenue growth",
			"operational excellence",
			"lean",
			"six sigma",
			"carve-out",
			"post-merger",
		}},
		EntryLevel: Group{Name: "entry_level", Phrases: []string{
			"intern",
			"internship",
			"entry level",
			"junior",
			"associate",
			"analyst",
			"coordinator",
			"assistant",
		}},
	}
}
