package rubric

import (
	"fmt"
	"strings"
)

// Predicate is a pure boolean test over a case-normalized transcript.
// Implementations must be deterministic and side-effect free.
type Predicate func(transcript string) bool

// Always returns a predicate that passes unconditionally.
func Always() Predicate {
	return func(string) bool { return true }
}

// Contains returns a predicate that passes when the transcript contains the
// given phrase. Matching is case-insensitive.
func Contains(phrase string) Predicate {
	phrase = strings.ToLower(phrase)
	return func(transcript string) bool {
		return strings.Contains(transcript, phrase)
	}
}

// ContainsAny returns a predicate that passes when the transcript contains
// at least one of the given phrases.
func ContainsAny(phrases ...string) Predicate {
	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(p)
	}
	return func(transcript string) bool {
		for _, p := range lowered {
			if strings.Contains(transcript, p) {
				return true
			}
		}
		return false
	}
}

// AllOf returns a predicate that passes only when every given predicate passes.
func AllOf(preds ...Predicate) Predicate {
	return func(transcript string) bool {
		for _, p := range preds {
			if !p(transcript) {
				return false
			}
		}
		return true
	}
}

// Criterion is one immutable scoring rule: a name, a point value, and the
// predicate that decides whether the points are awarded. There is no partial
// credit; a criterion awards either all of its points or none.
type Criterion struct {
	// Name identifies the criterion in the score breakdown.
	Name string
	// Points is the value awarded when the predicate passes.
	Points int
	// Match decides whether the points are awarded.
	Match Predicate
}

// validate checks a criterion for construction errors.
func (c Criterion) validate() error {
	if c.Name == "" {
		return fmt.Errorf("rubric: criterion name is required")
	}
	if c.Points < 0 {
		return fmt.Errorf("rubric: criterion %q has negative points", c.Name)
	}
	if c.Match == nil {
		return fmt.Errorf("rubric: criterion %q has no predicate", c.Name)
	}
	return nil
}
