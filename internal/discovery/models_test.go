package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lawyerNames(ls []Lawyer) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Name)
	}
	return out
}

func ngoNames(ns []NGO) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Name)
	}
	return out
}

func TestFilterLawyers(t *testing.T) {
	tests := []struct {
		name    string
		filter  LawyerFilter
		matches []string
		top     []string
	}{
		{
			name:    "all facets set to All",
			filter:  LawyerFilter{State: AllOption, CaseType: AllOption, Language: AllOption, Availability: AllOption},
			matches: lawyerNames(defaultLawyers),
			top:     []string{"Adv. Priya Sharma", "Adv. Rahul Verma", "Adv. Sneha Kapur"},
		},
		{
			name:    "state",
			filter:  LawyerFilter{State: "Maharashtra"},
			matches: []string{"Adv. Priya Sharma", "Adv. Sneha Kapur", "Adv. Amit Mehra", "Adv. Ananya Rao"},
			top:     []string{"Adv. Priya Sharma", "Adv. Sneha Kapur"},
		},
		{
			name:    "case type keeps low scorers out of top matches",
			filter:  LawyerFilter{CaseType: "Criminal Law"},
			matches: []string{"Adv. Priya Sharma", "Adv. Ananya Rao"},
			top:     []string{"Adv. Priya Sharma"},
		},
		{
			name:    "language and availability combine",
			filter:  LawyerFilter{Language: "Hindi", Availability: "This Week"},
			matches: []string{"Adv. Amit Mehra"},
			top:     []string{},
		},
		{
			name:    "name search is case-insensitive",
			filter:  LawyerFilter{Query: "  SHARMA "},
			matches: []string{"Adv. Priya Sharma"},
			top:     []string{"Adv. Priya Sharma"},
		},
		{
			name:    "no match",
			filter:  LawyerFilter{State: "Kerala"},
			matches: []string{},
			top:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FilterLawyers(defaultLawyers, tt.filter)
			assert.Equal(t, tt.matches, lawyerNames(res.Matches))
			assert.Equal(t, tt.top, lawyerNames(res.TopMatches))
			assert.Equal(t, len(tt.matches), res.Total)
		})
	}
}

func TestFilterNGOs(t *testing.T) {
	t.Run("support type", func(t *testing.T) {
		res := FilterNGOs(defaultNGOs, NGOFilter{SupportType: "Volunteers"})
		assert.Equal(t, []string{"Udaan Foundation", "Green Earth Trust", "Hope for Kids"}, ngoNames(res.Matches))
		assert.Equal(t, []string{"Udaan Foundation", "Green Earth Trust"}, ngoNames(res.TopMatches))
	})

	t.Run("cause and state", func(t *testing.T) {
		res := FilterNGOs(defaultNGOs, NGOFilter{Cause: "Women Empowerment", State: "Karnataka"})
		require.Equal(t, 1, res.Total)
		assert.Equal(t, "Sakshi Shakti", res.Matches[0].Name)
		assert.Empty(t, res.TopMatches)
	})

	t.Run("empty filter returns everything", func(t *testing.T) {
		res := FilterNGOs(defaultNGOs, NGOFilter{})
		assert.Equal(t, 6, res.Total)
		assert.Len(t, res.TopMatches, 3)
	})
}

func TestDefaultFacetsAreCopies(t *testing.T) {
	f := DefaultFacets()
	f.States[0] = "Changed"
	assert.Equal(t, "Andhra Pradesh", DefaultFacets().States[0])
	assert.Len(t, DefaultFacets().Languages, 9)
}
