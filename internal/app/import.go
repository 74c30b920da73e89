package app

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/mvalencia464/onboard/internal/domain"
)

var ErrNoCategories = errors.New("no valid categories found")

var blockSep = regexp.MustCompile(`\n\s*\n`)

// ParseCategories turns pasted "Category Name: Service 1, Service 2" text
// into service categories. Blocks are separated by blank lines; services
// split on commas or newlines and start selected. A block without a colon is
// skipped, and a block literally named "categories" is treated as a summary
// list, not a category. Returns ErrNoCategories when nothing parses.
func ParseCategories(text string) ([]domain.ServiceCategory, error) {
	var out []domain.ServiceCategory
	for _, block := range blockSep.Split(text, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		colon := strings.Index(block, ":")
		if colon == -1 {
			continue
		}
		name := strings.TrimSpace(block[:colon])
		content := strings.TrimSpace(block[colon+1:])
		if strings.EqualFold(name, "categories") {
			continue
		}

		var services []domain.ServiceItem
		for _, s := range strings.FieldsFunc(content, func(r rune) bool { return r == ',' || r == '\n' }) {
			if s = strings.TrimSpace(s); s != "" {
				services = append(services, domain.ServiceItem{Name: s, Selected: true})
			}
		}
		if len(services) == 0 {
			continue
		}
		out = append(out, domain.ServiceCategory{Name: name, Services: services})
	}
	if len(out) == 0 {
		return nil, ErrNoCategories
	}
	return out, nil
}

// ImportCategories appends parsed categories to the record and persists it as
// a draft. The existing categories, primary flag included, are untouched.
func (s *OnboardingService) ImportCategories(ctx context.Context, rec domain.BusinessRecord, text string) (domain.BusinessRecord, error) {
	cats, err := ParseCategories(text)
	if err != nil {
		return domain.BusinessRecord{}, err
	}
	rec.Categories = append(rec.Categories, cats...)
	return s.SaveDraft(ctx, rec)
}
