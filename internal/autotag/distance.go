package autotag

import (
	"regexp"
	"sort"

	"cadenza/internal/metadata"
	"cadenza/internal/textutil"
)

// Weights maps a penalty category to its relative weight in the aggregate
// score. Categories without an entry weigh 1.0.
type Weights map[string]float64

func (w Weights) weight(key string) float64 {
	if w == nil {
		return 1.0
	}
	if value, ok := w[key]; ok {
		return value
	}
	return 1.0
}

// Distance accumulates named penalty contributions, each clamped to [0, 1],
// and collapses them into a weight-normalized aggregate score. Adding a
// contribution never lowers the raw score; merging two Distances is
// additive.
type Distance struct {
	weights   Weights
	keys      []string
	penalties map[string][]float64

	// Tracks holds per-track distances for release-level results.
	Tracks map[*metadata.TrackInfo]*Distance
}

// Penalty is one category's share of the normalized aggregate score.
type Penalty struct {
	Key   string
	Score float64
}

// NewDistance returns an empty Distance using the given category weights.
func NewDistance(weights Weights) *Distance {
	return &Distance{
		weights:   weights,
		penalties: make(map[string][]float64),
	}
}

// Add records one penalty under key, clamped to [0, 1].
func (d *Distance) Add(key string, dist float64) {
	if dist < 0 {
		dist = 0
	}
	if dist > 1 {
		dist = 1
	}
	if _, ok := d.penalties[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.penalties[key] = append(d.penalties[key], dist)
}

// AddRatio records number scaled against maxNumber. Values outside [0, 1]
// clamp, and a non-positive maxNumber contributes zero.
func (d *Distance) AddRatio(key string, number, maxNumber float64) {
	var dist float64
	if maxNumber > 0 {
		dist = number / maxNumber
	}
	d.Add(key, dist)
}

// AddString records the normalized dissimilarity between two strings.
func (d *Distance) AddString(key, str1, str2 string) {
	d.Add(key, textutil.StringDistance(str1, str2))
}

// AddExpr records a binary penalty: 1.0 when expr holds, otherwise 0.0.
func (d *Distance) AddExpr(key string, expr bool) {
	if expr {
		d.Add(key, 1.0)
		return
	}
	d.Add(key, 0.0)
}

// AddEquality records 0.0 when value equals any option, 1.0 otherwise.
func (d *Distance) AddEquality(key, value string, options ...string) {
	for _, opt := range options {
		if value == opt {
			d.Add(key, 0.0)
			return
		}
	}
	d.Add(key, 1.0)
}

// AddPriority records a rank penalty: the first pattern matching value
// determines the penalty (earlier is cheaper), and no match costs 1.0.
func (d *Distance) AddPriority(key, value string, patterns []*regexp.Regexp) {
	if len(patterns) == 0 {
		d.Add(key, 1.0)
		return
	}
	unit := 1.0 / float64(len(patterns))
	for i, pattern := range patterns {
		if pattern.MatchString(value) {
			d.Add(key, float64(i)*unit)
			return
		}
	}
	d.Add(key, 1.0)
}

// AddNumber records one full penalty per unit of difference between two
// integers, or a single zero when they agree.
func (d *Distance) AddNumber(key string, number1, number2 int) {
	diff := number1 - number2
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		d.Add(key, 0.0)
		return
	}
	for i := 0; i < diff; i++ {
		d.Add(key, 1.0)
	}
}

// Update merges another Distance's penalties into this one, preserving the
// other's category order for new keys.
func (d *Distance) Update(other *Distance) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		for _, dist := range other.penalties[key] {
			d.Add(key, dist)
		}
	}
}

func (d *Distance) rawScore() float64 {
	var raw float64
	for key, penalties := range d.penalties {
		weight := d.weights.weight(key)
		for _, p := range penalties {
			raw += p * weight
		}
	}
	return raw
}

func (d *Distance) maxScore() float64 {
	var max float64
	for key, penalties := range d.penalties {
		max += float64(len(penalties)) * d.weights.weight(key)
	}
	return max
}

// Score collapses the accumulated penalties into a value in [0, 1]: the
// weighted penalty sum normalized by the maximum possible for the recorded
// categories. An empty Distance scores zero.
func (d *Distance) Score() float64 {
	max := d.maxScore()
	if max == 0 {
		return 0
	}
	return d.rawScore() / max
}

// Penalties returns each category's share of the aggregate score, largest
// first. Categories that contributed nothing are omitted. Ties keep
// insertion order.
func (d *Distance) Penalties() []Penalty {
	max := d.maxScore()
	if max == 0 {
		return nil
	}
	out := make([]Penalty, 0, len(d.keys))
	for _, key := range d.keys {
		var sum float64
		for _, p := range d.penalties[key] {
			sum += p
		}
		share := sum * d.weights.weight(key) / max
		if share == 0 {
			continue
		}
		out = append(out, Penalty{Key: key, Score: share})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Keys lists the categories that contributed a non-zero penalty, largest
// share first.
func (d *Distance) Keys() []string {
	penalties := d.Penalties()
	keys := make([]string, 0, len(penalties))
	for _, p := range penalties {
		keys = append(keys, p.Key)
	}
	return keys
}
