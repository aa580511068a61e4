package domain

import "time"

// OtherCategory is the sentinel bucket for tools nothing else claims.
const OtherCategory = "Other"

type Rating struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

type Categories struct {
	Main          []string `json:"main"`
	Primary       string   `json:"primary"`
	Original      []string `json:"original"`
	Subcategories []string `json:"subcategories,omitempty"`
}

// Normalize enforces the assignment invariants: Main is never empty and
// Primary is always one of Main.
func (c Categories) Normalize() Categories {
	out := c
	out.Main = nil
	seen := map[string]bool{}
	for _, m := range c.Main {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out.Main = append(out.Main, m)
	}
	if len(out.Main) == 0 {
		out.Main = []string{OtherCategory}
	}
	if !seen[out.Primary] || out.Primary == "" {
		out.Primary = out.Main[0]
	}
	if out.Original == nil {
		out.Original = []string{}
	}
	return out
}

// Has reports whether name is one of the main categories.
func (c Categories) Has(name string) bool {
	for _, m := range c.Main {
		if m == name {
			return true
		}
	}
	return false
}

// OtherOnly is the assignment used when nothing could be scored.
func OtherOnly(original []string) Categories {
	return Categories{
		Main:     []string{OtherCategory},
		Primary:  OtherCategory,
		Original: append([]string{}, original...),
	}.Normalize()
}

type Tool struct {
	ID              int64             `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Website         string            `json:"website"`
	ImageURL        string            `json:"image_url"`
	WhatIs          string            `json:"what_is"`
	HowToUse        string            `json:"how_to_use"`
	Categories      Categories        `json:"categories"`
	Tags            []string          `json:"tags"`
	SearchTerms     []string          `json:"search_terms"`
	CoreFeatures    []string          `json:"core_features"`
	UseCases        []string          `json:"use_cases"`
	Rating          Rating            `json:"rating"`
	MonthlyVisitors int64             `json:"monthly_visitors"`
	SEOTitle        string            `json:"seo_title,omitempty"`
	SEODescription  string            `json:"seo_description,omitempty"`
	AddedDate       string            `json:"added_date,omitempty"`
	Company         map[string]string `json:"company,omitempty"`
	Links           map[string]string `json:"links,omitempty"`
	Contact         map[string]string `json:"contact,omitempty"`
	SocialMedia     map[string]string `json:"social_media,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
