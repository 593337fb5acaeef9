package rubric

import "strings"

// CriterionScore is one entry of a score breakdown.
type CriterionScore struct {
	Criterion      string `json:"criterion"`
	PointsAwarded  int    `json:"pointsAwarded"`
	PointsPossible int    `json:"pointsPossible"`
}

// Breakdown is the full scoring result for one transcript. Items follow the
// rubric's configuration order.
type Breakdown struct {
	Items []CriterionScore `json:"items"`
	Total int              `json:"total"`
}

// Rubric is an ordered, immutable set of scoring criteria. It is safe for
// unsynchronized concurrent use once constructed.
type Rubric struct {
	criteria []Criterion
}

// New constructs a rubric from the given criteria, preserving order.
func New(criteria ...Criterion) (*Rubric, error) {
	for _, c := range criteria {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}
	owned := make([]Criterion, len(criteria))
	copy(owned, criteria)
	return &Rubric{criteria: owned}, nil
}

// MustNew is like New but panics on invalid criteria. Intended for static
// rubric definitions known correct at compile time.
func MustNew(criteria ...Criterion) *Rubric {
	r, err := New(criteria...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of criteria.
func (r *Rubric) Len() int { return len(r.criteria) }

// MaxScore returns the total points available.
func (r *Rubric) MaxScore() int {
	total := 0
	for _, c := range r.criteria {
		total += c.Points
	}
	return total
}

// Score evaluates the transcript against every criterion and returns the
// breakdown. The transcript is case-normalized once; each predicate runs
// exactly once, and each entry awards either the full point value or zero.
func (r *Rubric) Score(transcript string) Breakdown {
	normalized := strings.ToLower(transcript)

	items := make([]CriterionScore, 0, len(r.criteria))
	total := 0
	for _, c := range r.criteria {
		awarded := 0
		if c.Match(normalized) {
			awarded = c.Points
		}
		items = append(items, CriterionScore{
			Criterion:      c.Name,
			PointsAwarded:  awarded,
			PointsPossible: c.Points,
		})
		total += awarded
	}

	return Breakdown{Items: items, Total: total}
}
