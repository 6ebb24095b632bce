package rules

import "github.com/okian/meritsim/internal/domain/model"

// DefaultFallbackBase is the multiplicative base for undeclared categories.
const DefaultFallbackBase = 5

func dim(name string, opts ...Option) Dimension { return Dimension{Name: name, Options: opts} }
func opt(name string, v float64) Option         { return Option{Name: name, Value: v} }

// DefaultAdditiveRules returns the built-in additive point table.
// Optional dimensions carry an explicit zero-point baseline option.
func DefaultAdditiveRules() []CategoryRules {
	return []CategoryRules{
		{Category: model.Hackathon, Dimensions: []Dimension{
			dim("Level", opt("Intra-College", 10), opt("Inter-College", 20), opt("National", 30), opt("International", 50)),
			dim("Organizer", opt("Industry", 5), opt("Academic Institution", 3)),
			dim("Mode", opt("Solo Participation", 5), opt("Team Participation", 3)),
			dim("Outcome", opt("Winner (1st)", 25), opt("Runner-up (2nd)", 20), opt("3rd Place", 15), opt("Finalist", 10), opt("Participant", 5)),
		}},
		{Category: model.CodingCompetitions, Dimensions: []Dimension{
			dim("Platform", opt("Top-tier", 10), opt("Unknown", 3)),
			dim("Result Percentile", opt("Top 1%", 25), opt("Top 5%", 20), opt("Top 10%", 10), opt("Participant", 5)),
			dim("Region", opt("International", 10), opt("National", 5)),
		}},
		{Category: model.OpenSource, Dimensions: []Dimension{
			dim("Repo Forks", opt(">1000", 30), opt("500–1000", 15), opt("Less than 500", 0)),
			dim("PR Status", opt("Merged", 10), opt("Pending Review", 0)),
			dim("Type of Work", opt("Feature", 15), opt("Bug Fix", 10), opt("Documentation", 5)),
			dim("Lines of Code", opt("0–100", 2), opt("100–500", 5), opt("500+", 10)),
			dim("Contributor Badge", opt("Hacktoberfest finisher", 20), opt("GSoC Contributor", 40), opt("None", 0)),
		}},
		{Category: model.Research, Dimensions: []Dimension{
			dim("Publisher", opt("IEEE/Springer/Elsevier(Q1)", 25), opt("Other Scopus/SCI Journals (Q2)", 15), opt("Others", 5)),
			dim("Authorship", opt("1st Author", 20), opt("2nd Author", 15), opt("Co-author", 10)),
			dim("Paper Type", opt("Research", 10), opt("Review/Survey", 5)),
			dim("Level", opt("National", 5), opt("International", 10)),
		}},
		{Category: model.Certifications, Dimensions: []Dimension{
			dim("Provider", opt("Stanford/MIT/AWS/Google/Top 500", 20), opt("NPTEL", 10), opt("Coursera/Udemy", 2)),
			dim("Final Project Required", opt("Yes", 10), opt("No", 0)),
			dim("Certification Level", opt("Beginner", 5), opt("Intermediate", 10), opt("Advanced", 15)),
		}},
		{Category: model.NCCNSSYRC, Dimensions: []Dimension{
			dim("Camps Attended", opt("RDC/TSC/NSC/VSC", 15), opt("NIC/Others", 10), opt("CATC/ATC", 5)),
			dim("Equivalent Rank", opt("SUO", 15), opt("JUO", 12), opt("CSM", 10), opt("CQMS", 8), opt("Sgt", 6), opt("Cp", 4), opt("Lc", 2), opt("Cdt", 1)),
			dim("Award", opt("Best Cadet/Parade", 20), opt("None", 0)),
			dim("Volunteer Hours", opt("50+", 5), opt("100+", 10), opt("200+", 20)),
		}},
		{Category: model.Sports, Dimensions: []Dimension{
			dim("Level", opt("College", 10), opt("Inter-College", 20), opt("State", 30), opt("National", 50), opt("International", 70)),
			dim("Position", opt("Winner", 30), opt("Runner-Up", 20), opt("Participant", 10)),
			dim("Type", opt("Individual Sport", 10), opt("Team Sport", 5)),
		}},
		{Category: model.Workshops, Dimensions: []Dimension{
			dim("Duration", opt("1 day", 5), opt("3 day", 15), opt(">5 full day", 20)),
			dim("Role", opt("Attendee", 0), opt("Organizer", 10)),
			dim("Industry organizer", opt("Yes(Top 500 MNCs)", 10), opt("No", 0)),
		}},
		{Category: model.StudentLeadership, Dimensions: []Dimension{
			dim("Role", opt("Club President", 20), opt("Secretary/Core Team Heads", 10), opt("Member", 5)),
			dim("Events Managed", opt("<100 participants", 10), opt("100–500", 15), opt("500+", 20)),
			dim("Organized Series", opt("Webinars/Tech Talks/etc", 10), opt("None", 0)),
		}},
		{Category: model.SocialWork, Dimensions: []Dimension{
			dim("Type of Activity", opt("Plantation/Cleanup Drive", 10), opt("Education/NGO Teaching", 15), opt("Health/Disaster Relief", 20)),
			dim("Hours Invested", opt("20–50 hrs", 10), opt("50–100 hrs", 20), opt("100+ hrs", 30)),
		}},
	}
}

// DefaultAdditive returns the built-in additive table.
func DefaultAdditive() *Table {
	t, err := NewTable(DefaultAdditiveRules())
	if err != nil {
		panic(err) // built-in data is validated by tests
	}
	return t
}

// DefaultMultiplierRules returns the built-in multiplicative declaration.
// Dimension and option names line up with the additive table so both
// policies can score the same selections.
func DefaultMultiplierRules() []MultiplierCategory {
	return []MultiplierCategory{
		{Category: model.Hackathon, Base: 15, Dimensions: []Dimension{
			dim("Level", opt("International", 3.0), opt("National", 2.0), opt("Inter-College", 1.5), opt("Intra-College", 1.0)),
			dim("Outcome", opt("Winner (1st)", 3.0), opt("Runner-up (2nd)", 2.0), opt("3rd Place", 1.5), opt("Finalist", 1.2), opt("Participant", 1.0)),
		}},
		{Category: model.CodingCompetitions, Base: 10},
		{Category: model.Research, Base: 25, Dimensions: []Dimension{
			dim("Publisher", opt("IEEE/Springer/Elsevier(Q1)", 3.0), opt("Other Scopus/SCI Journals (Q2)", 2.0), opt("Others", 1.0)),
			dim("Authorship", opt("1st Author", 2.0), opt("2nd Author", 1.5), opt("Co-author", 1.0)),
		}},
		{Category: model.OpenSource, Base: 20},
		{Category: model.Certifications, Base: 15, Dimensions: []Dimension{
			dim("Provider", opt("Stanford/MIT/AWS/Google/Top 500", 3.0), opt("NPTEL", 2.0), opt("Coursera/Udemy", 1.5), opt("Other", 1.0)),
			dim("Final Project Required", opt("Yes", 1.5), opt("No", 1.0)),
			dim("Certification Level", opt("Advanced", 2.0), opt("Intermediate", 1.5), opt("Beginner", 1.0)),
		}},
		{Category: model.Workshops, Base: 5},
		{Category: model.Sports, Base: 10},
		{Category: model.NCCNSSYRC, Base: 15},
		{Category: model.StudentLeadership, Base: 10},
		{Category: model.SocialWork, Base: 5},
	}
}

// DefaultMultiplier returns the built-in multiplier table.
func DefaultMultiplier() *MultiplierTable {
	m, err := NewMultiplierTable(DefaultFallbackBase, DefaultMultiplierRules())
	if err != nil {
		panic(err) // built-in data is validated by tests
	}
	return m
}
