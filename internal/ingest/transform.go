package ingest

import (
	"fmt"
	"strings"

	"aitools-engine/internal/config"
	"aitools-engine/internal/domain"
	"aitools-engine/internal/ingest/util"
	"aitools-engine/internal/rank"
)

// scrapedCategories drops the last scraped category when there are two or
// more: scrapers append the tool's own name there.
func scrapedCategories(cats []string) []string {
	cats = util.CleanList(cats)
	if len(cats) > 1 {
		cats = cats[:len(cats)-1]
	}
	return cats
}

// ImageURL resolves the stored image for a record under the given mode.
func ImageURL(cfg config.Ingest, slug, source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return cfg.PlaceholderImage
	}
	if cfg.ImageMode == config.ImageModeLocal {
		return strings.TrimRight(cfg.LocalImagePrefix, "/") + "/" + slug + ".jpg"
	}
	if util.IsHTTPURL(source) {
		return util.CanonicalizeURL(source)
	}
	return source
}

// ToTool converts a validated record into a tool and assigns its categories
// with m.
func ToTool(r Record, cfg config.Ingest, m rank.Mapper) (domain.Tool, error) {
	slug := util.Slugify(r.Name)
	if slug == "" {
		return domain.Tool{}, fmt.Errorf("%w: name %q has no slug characters", ErrInvalidRecord, r.Name)
	}

	website := r.ActualURL
	if strings.TrimSpace(website) == "" {
		website = r.Website
	}
	whatIs := r.WhatIs
	if strings.TrimSpace(whatIs) == "" {
		whatIs = r.ProductInfo.WhatIs
	}
	howTo := r.HowToUse
	if strings.TrimSpace(howTo) == "" {
		howTo = r.ProductInfo.HowToUse
	}

	t := domain.Tool{
		Slug:            slug,
		Name:            util.CleanText(r.Name),
		Description:     util.StripHTML(r.Description),
		Website:         util.CanonicalizeURL(website),
		ImageURL:        ImageURL(cfg, slug, r.ImageURL),
		WhatIs:          util.StripHTML(whatIs),
		HowToUse:        util.StripHTML(howTo),
		Tags:            util.CleanList(r.Tags),
		CoreFeatures:    util.StripHTMLList(r.CoreFeatures),
		UseCases:        util.StripHTMLList(r.UseCases),
		MonthlyVisitors: util.ParseVisitors(string(r.MonthlyVisitors)),
		AddedDate:       util.CleanText(r.AddedDate),
		SEOTitle:        util.CleanText(r.SEOTitle),
		SEODescription:  util.CleanText(r.SEODescription),
		Company:         r.Company,
		Links:           r.Links,
		Contact:         r.Contact,
		SocialMedia:     r.SocialMedia,
		Categories:      domain.Categories{Original: scrapedCategories(r.Categories)},
	}
	if r.Rating != "" {
		t.Rating = domain.Rating{Score: r.Rating.Float(), Count: r.RatingCount.Int()}
	}

	t.Categories = m.Map(t)
	t.SearchTerms = util.CleanList(append([]string{t.Name}, t.Categories.Main...))
	return t, nil
}
