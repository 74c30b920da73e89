package domain

import "testing"

func TestSetPrimaryCategory(t *testing.T) {
	r := NewRecord()
	r.AddCategory("Decks")
	r.AddCategory("Repairs")
	r.AddCategory("Pergolas")

	r.SetPrimaryCategory(1)
	if p := r.PrimaryCategory(); p == nil || p.Name != "Repairs" {
		t.Fatalf("primary = %+v, want Repairs", p)
	}

	r.SetPrimaryCategory(2)
	count := 0
	for _, c := range r.Categories {
		if c.IsPrimary {
			count++
		}
	}
	if count != 1 || !r.Categories[2].IsPrimary {
		t.Fatalf("expected exactly one primary on Pergolas: %+v", r.Categories)
	}

	// Out-of-range is a no-op.
	r.SetPrimaryCategory(99)
	if p := r.PrimaryCategory(); p == nil || p.Name != "Pergolas" {
		t.Fatalf("out-of-range must not change primary: %+v", p)
	}
}

func TestServiceEditing(t *testing.T) {
	r := NewRecord()
	r.AddCategory("Decks")
	r.AddService(0, "Composite Decking")
	r.AddService(0, "Deck Staining")

	if !r.Categories[0].Services[0].Selected {
		t.Fatalf("added services start selected")
	}
	r.ToggleService(0, 0)
	if r.Categories[0].Services[0].Selected {
		t.Fatalf("toggle did not clear selection")
	}

	r.RemoveService(0, 0)
	if len(r.Categories[0].Services) != 1 || r.Categories[0].Services[0].Name != "Deck Staining" {
		t.Fatalf("unexpected services after remove: %+v", r.Categories[0].Services)
	}

	// Out-of-range edits are no-ops.
	r.ToggleService(5, 0)
	r.RemoveService(0, 5)
	if len(r.Categories[0].Services) != 1 {
		t.Fatalf("out-of-range edit mutated services")
	}
}

func TestRemoveCategory(t *testing.T) {
	r := NewRecord()
	r.AddCategory("Decks")
	r.AddCategory("Repairs")
	r.RemoveCategory(0)
	if len(r.Categories) != 1 || r.Categories[0].Name != "Repairs" {
		t.Fatalf("unexpected categories: %+v", r.Categories)
	}
}

func TestAppendRawReviews(t *testing.T) {
	r := NewRecord()
	r.AppendRawReviews(RawReview{Text: "one"})
	r.AppendRawReviews(RawReview{Text: "two"}, RawReview{Text: "three"})
	if len(r.RawReviews) != 3 || r.RawReviews[0].Text != "one" {
		t.Fatalf("buffer must be append-only: %+v", r.RawReviews)
	}
}

func TestExportFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Summit Decks", "Summit_Decks_onboarding.json"},
		{"  Oak   &  Co ", "Oak_&_Co_onboarding.json"},
		{"", "business_onboarding.json"},
	}
	for _, c := range cases {
		r := BusinessRecord{BusinessName: c.name}
		if got := r.ExportFilename(); got != c.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
