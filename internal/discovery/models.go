// Package discovery serves the lawyer and NGO discovery listings: a small
// catalog filtered by name and facets on every request.
package discovery

import (
	"cmp"
	"slices"
	"strings"

	pstrings "jurify/pkg/platform/strings"
)

// TopMatchScore is the lowest score listed among the top matches.
const TopMatchScore = 80

// AllOption is the facet value the filter controls send for "no filter".
const AllOption = "All"

type Lawyer struct {
	ID         int     `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Score      int     `json:"score" yaml:"score"`
	Expertise  string  `json:"expertise" yaml:"expertise"`
	Location   string  `json:"location" yaml:"location"`
	State      string  `json:"state" yaml:"state"`
	Language   string  `json:"language" yaml:"language"`
	Available  string  `json:"available" yaml:"available"`
	Experience string  `json:"exp" yaml:"exp"`
	Rating     float64 `json:"rating" yaml:"rating"`
	Bio        string  `json:"bio" yaml:"bio"`
}

type NGO struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Score    int     `json:"score" yaml:"score"`
	Cause    string  `json:"cause" yaml:"cause"`
	Location string  `json:"location" yaml:"location"`
	State    string  `json:"state" yaml:"state"`
	Language string  `json:"language" yaml:"language"`
	Support  string  `json:"support" yaml:"support"`
	Reach    string  `json:"reach" yaml:"reach"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Bio      string  `json:"bio" yaml:"bio"`
}

// LawyerFilter selects lawyers. Empty or "All" fields match everything.
type LawyerFilter struct {
	Query        string
	State        string
	CaseType     string
	Language     string
	Availability string
}

// NGOFilter selects NGOs. Empty or "All" fields match everything.
type NGOFilter struct {
	Query       string
	State       string
	Cause       string
	Language    string
	SupportType string
}

// Result is a filtered listing. TopMatches is the subset scoring at least
// TopMatchScore; both keep catalog order.
type Result[T any] struct {
	Matches    []T `json:"matches"`
	TopMatches []T `json:"topMatches"`
	Total      int `json:"total"`
}

// Facets are the option lists offered by the filter controls.
type Facets struct {
	States       []string `json:"states"`
	CaseTypes    []string `json:"caseTypes"`
	Causes       []string `json:"causes"`
	Languages    []string `json:"languages"`
	Availability []string `json:"availability"`
	SupportTypes []string `json:"supportTypes"`
}

var defaultFacets = Facets{
	States: []string{
		"Andhra Pradesh", "Assam", "Bihar", "Delhi", "Gujarat", "Karnataka",
		"Kerala", "Maharashtra", "Punjab", "Rajasthan", "Tamil Nadu",
		"Telangana", "Uttar Pradesh", "West Bengal",
	},
	CaseTypes: []string{
		"Criminal Law", "Family Law", "Property Law", "Cyber Law", "Corporate Law", "Labor Law",
	},
	Causes: []string{
		"Education", "Healthcare", "Environment", "Women Empowerment",
		"Child Welfare", "Animal Rights", "Disaster Relief",
	},
	Languages: []string{
		"English", "Hindi", "Marathi", "Tamil", "Telugu",
		"Kannada", "Malayalam", "Bengali", "Punjabi",
	},
	Availability: []string{"Immediate", "This Week", "Available Later"},
	SupportTypes: []string{"Volunteers", "Donations", "Partnerships"},
}

// DefaultFacets returns a copy of the built-in option lists.
func DefaultFacets() Facets {
	return Facets{
		States:       slices.Clone(defaultFacets.States),
		CaseTypes:    slices.Clone(defaultFacets.CaseTypes),
		Causes:       slices.Clone(defaultFacets.Causes),
		Languages:    slices.Clone(defaultFacets.Languages),
		Availability: slices.Clone(defaultFacets.Availability),
		SupportTypes: slices.Clone(defaultFacets.SupportTypes),
	}
}

func facetMatches(selected, value string) bool {
	return pstrings.IsAny(selected) || strings.EqualFold(strings.TrimSpace(selected), value)
}

func nameMatches(query, name string) bool {
	return pstrings.ContainsFold(name, query)
}

func (f LawyerFilter) Matches(l Lawyer) bool {
	return nameMatches(f.Query, l.Name) &&
		facetMatches(f.State, l.State) &&
		facetMatches(f.CaseType, l.Expertise) &&
		facetMatches(f.Language, l.Language) &&
		facetMatches(f.Availability, l.Available)
}

func (f NGOFilter) Matches(n NGO) bool {
	return nameMatches(f.Query, n.Name) &&
		facetMatches(f.State, n.State) &&
		facetMatches(f.Cause, n.Cause) &&
		facetMatches(f.Language, n.Language) &&
		facetMatches(f.SupportType, n.Support)
}

func FilterLawyers(all []Lawyer, f LawyerFilter) Result[Lawyer] {
	return filter(all, f.Matches, func(l Lawyer) int { return l.Score })
}

func FilterNGOs(all []NGO, f NGOFilter) Result[NGO] {
	return filter(all, f.Matches, func(n NGO) int { return n.Score })
}

func filter[T any](all []T, keep func(T) bool, score func(T) int) Result[T] {
	res := Result[T]{Matches: []T{}, TopMatches: []T{}}
	for _, item := range all {
		if !keep(item) {
			continue
		}
		res.Matches = append(res.Matches, item)
		if score(item) >= TopMatchScore {
			res.TopMatches = append(res.TopMatches, item)
		}
	}
	res.Total = len(res.Matches)
	return res
}

// sortByScore orders entries best first, keeping ids stable on ties.
func sortByScore[T any](items []T, score func(T) int, id func(T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := cmp.Compare(score(b), score(a)); c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
}
