package app

import (
	"reflect"
	"testing"

	"github.com/mvalencia464/onboard/internal/domain"
)

func TestSignificantTokens(t *testing.T) {
	got := significantTokens("Oak & Co Roofing")
	want := []string{"roofing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
	if toks := significantTokens("A & B Co"); len(toks) != 0 {
		t.Fatalf("expected no tokens for short words, got %v", toks)
	}
}

func TestFilterRelevant(t *testing.T) {
	in := []domain.RawReview{
		{Text: "Summit Decks built our deck in a week"},
		{Text: "Best tacos in town"},
		{Text: "the summit crew was professional"},
		{Text: ""},
	}
	got := filterRelevant("Summit Decks LLC", in)
	if len(got) != 2 {
		t.Fatalf("expected 2 relevant reviews, got %d: %+v", len(got), got)
	}
	if got[0].Text != in[0].Text || got[1].Text != in[2].Text {
		t.Fatalf("wrong reviews kept: %+v", got)
	}
}

func TestFilterRelevant_NoTokensKeepsNothing(t *testing.T) {
	in := []domain.RawReview{{Text: "anything at all"}}
	if got := filterRelevant("A B C", in); len(got) != 0 {
		t.Fatalf("expected empty result when no significant tokens, got %+v", got)
	}
}
