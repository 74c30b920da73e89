package app

import (
	"errors"
	"testing"
)

func TestParseCategories(t *testing.T) {
	text := `Decks:
Composite Decking, Deck Staining, Railings

Repairs:
Board Replacement
Joist Repair`

	cats, err := ParseCategories(text)
	if err != nil {
		t.Fatalf("ParseCategories: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d: %+v", len(cats), cats)
	}
	if cats[0].Name != "Decks" || len(cats[0].Services) != 3 {
		t.Fatalf("unexpected first category: %+v", cats[0])
	}
	if cats[1].Name != "Repairs" || len(cats[1].Services) != 2 {
		t.Fatalf("newline-separated services not parsed: %+v", cats[1])
	}
	for _, c := range cats {
		if c.IsPrimary {
			t.Fatalf("imported categories must never be primary: %+v", c)
		}
		for _, s := range c.Services {
			if !s.Selected {
				t.Fatalf("imported services start selected: %+v", s)
			}
		}
	}
}

func TestParseCategories_SkipsMalformedBlocks(t *testing.T) {
	text := `just some prose with no separator

Categories:
Decks, Repairs

Pergolas: Custom Pergolas, Shade Structures`

	cats, err := ParseCategories(text)
	if err != nil {
		t.Fatalf("ParseCategories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Pergolas" {
		t.Fatalf("expected only the Pergolas block, got %+v", cats)
	}
}

func TestParseCategories_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\n  ", "no colon here at all"} {
		if _, err := ParseCategories(text); !errors.Is(err, ErrNoCategories) {
			t.Fatalf("ParseCategories(%q) err = %v, want ErrNoCategories", text, err)
		}
	}
}
