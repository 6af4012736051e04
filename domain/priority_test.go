package domain

import (
	"errors"
	"testing"
)

func TestPriorityWeight(t *testing.T) {
	if PriorityHigh.Weight() <= PriorityMedium.Weight() {
		t.Fatal("high must outrank medium")
	}
	if PriorityMedium.Weight() <= PriorityLow.Weight() {
		t.Fatal("medium must outrank low")
	}
	if Priority("bogus").Weight() != 0 {
		t.Fatal("unknown priority must have zero weight")
	}
}

func TestPriorityLabel(t *testing.T) {
	cases := map[Priority]string{
		PriorityHigh:       "High",
		PriorityMedium:     "Medium",
		PriorityLow:        "Low",
		Priority("absurd"): "Unknown",
	}
	for p, want := range cases {
		if got := p.Label(); got != want {
			t.Errorf("%q: got %q, want %q", p, got, want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	t.Run("empty defaults to medium", func(t *testing.T) {
		p, err := ParsePriority("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != PriorityMedium {
			t.Fatalf("got %q, want %q", p, PriorityMedium)
		}
	})

	t.Run("accepts display forms", func(t *testing.T) {
		for _, s := range []string{"high", "High", "HIGH"} {
			p, err := ParsePriority(s)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", s, err)
			}
			if p != PriorityHigh {
				t.Fatalf("%q: got %q", s, p)
			}
		}
	})

	t.Run("rejects unknown", func(t *testing.T) {
		if _, err := ParsePriority("critical"); !errors.Is(err, ErrInvalidPriority) {
			t.Fatalf("expected ErrInvalidPriority, got %v", err)
		}
	})
}
