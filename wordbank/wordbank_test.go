package wordbank

import (
	"math/rand"
	"testing"
)

func TestNew_EmptyVocabulary(t *testing.T) {
	if _, err := New(nil); err != ErrEmptyVocabulary {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestBank_FirstCycleIsPermutation(t *testing.T) {
	vocab := []string{"cat", "dog", "fish", "bird", "mouse"}
	bank, err := NewSeeded(vocab, rand.NewSource(1))
	if err != nil {
		t.Fatalf("NewSeeded failed: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < len(vocab); i++ {
		w := bank.Draw()
		if seen[w] {
			t.Fatalf("word %q repeated within the first cycle at draw %d", w, i)
		}
		seen[w] = true
	}

	if len(seen) != len(vocab) {
		t.Fatalf("expected first %d draws to cover the vocabulary, covered %d", len(vocab), len(seen))
	}
}

func TestBank_CycleResetsAfterExhaustion(t *testing.T) {
	vocab := []string{"cat", "dog"}
	bank, err := NewSeeded(vocab, rand.NewSource(7))
	if err != nil {
		t.Fatalf("NewSeeded failed: %v", err)
	}

	bank.Draw()
	bank.Draw()
	if bank.Remaining() != 0 {
		t.Fatalf("expected 0 remaining after exhausting vocabulary, got %d", bank.Remaining())
	}

	// Draw N+1 starts a new cycle and must still return a valid word.
	w := bank.Draw()
	if w != "cat" && w != "dog" {
		t.Fatalf("unexpected word after cycle reset: %q", w)
	}
	if bank.Remaining() != 1 {
		t.Fatalf("expected 1 remaining after first draw of the new cycle, got %d", bank.Remaining())
	}
}

func TestBank_NeverFailsAcrossManyDraws(t *testing.T) {
	vocab := []string{"one", "two", "three"}
	bank, err := NewSeeded(vocab, rand.NewSource(42))
	if err != nil {
		t.Fatalf("NewSeeded failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		if w := bank.Draw(); w == "" {
			t.Fatalf("draw %d returned an empty word", i)
		}
	}
}
