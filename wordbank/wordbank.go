package wordbank

import (
	"errors"
	"math/rand"
	"time"
)

var ErrEmptyVocabulary = errors.New("word bank vocabulary is empty")

// DefaultVocabulary is the built-in word list for the draw/guess game.
var DefaultVocabulary = []string{
	"airplane", "anchor", "apple", "balloon", "banana", "bicycle",
	"bridge", "butterfly", "cactus", "camera", "candle", "castle",
	"cloud", "compass", "dolphin", "dragon", "elephant", "feather",
	"flashlight", "giraffe", "guitar", "hammer", "helicopter", "igloo",
	"island", "kangaroo", "ladder", "lighthouse", "mermaid", "mountain",
	"mushroom", "octopus", "penguin", "pirate", "pyramid", "rainbow",
	"robot", "rocket", "sandwich", "scissors", "snowman", "spider",
	"submarine", "telescope", "tornado", "tractor", "umbrella",
	"unicorn", "volcano", "windmill",
}

// Bank hands out random words without repeating one until the whole
// vocabulary has been used, then starts a fresh cycle. A Bank is owned
// by exactly one room and is called only under that room's lock, so it
// carries no locking of its own.
type Bank struct {
	vocabulary []string
	used       map[string]bool
	rng        *rand.Rand
}

func New(vocabulary []string) (*Bank, error) {
	return NewSeeded(vocabulary, rand.NewSource(time.Now().UnixNano()))
}

// NewSeeded exists so tests can pin the sampling order.
func NewSeeded(vocabulary []string, src rand.Source) (*Bank, error) {
	if len(vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}
	words := make([]string, len(vocabulary))
	copy(words, vocabulary)
	return &Bank{
		vocabulary: words,
		used:       make(map[string]bool),
		rng:        rand.New(src),
	}, nil
}

// Draw returns one word not handed out in the current cycle. When every
// word has been used the cycle resets; this is the only place the used
// set is cleared.
func (b *Bank) Draw() string {
	available := make([]string, 0, len(b.vocabulary)-len(b.used))
	for _, w := range b.vocabulary {
		if !b.used[w] {
			available = append(available, w)
		}
	}

	if len(available) == 0 {
		b.used = make(map[string]bool)
		available = append(available, b.vocabulary...)
	}

	word := available[b.rng.Intn(len(available))]
	b.used[word] = true
	return word
}

// Remaining reports how many words are left in the current cycle.
func (b *Bank) Remaining() int {
	return len(b.vocabulary) - len(b.used)
}
