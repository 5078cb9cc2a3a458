// Package sim contains the pure simulation rules: quality scoring,
// reception projection and the article lifecycle state machine.
// This package must NOT import any infrastructure packages.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
)

// gaussian is a sweet-spot target for a single quality slider.
type gaussian struct {
	mean  float64
	sigma float64
}

type sweetSpotGroup map[string]gaussian

// sweetSpots maps each article type to its per-slider targets. A draft is
// scored by how closely each slider lands on its target, not by how high
// it is: a listicle drowning in fact-checking scores worse than one that
// skipped it.
var sweetSpots = map[article.Type]map[string]sweetSpotGroup{
	article.TypeEntertainment: {
		"investigation": {
			"background": {60, 25},
			"original":   {30, 20},
			"factCheck":  {10, 15},
		},
		"writing": {
			"engagement": {75, 10},
			"depth":      {25, 20},
		},
		"publishing": {
			"editing": {30, 20},
			"visuals": {70, 15},
		},
	},
	article.TypeListicle: {
		"investigation": {
			"background": {60, 20},
			"original":   {5, 10},
			"factCheck":  {45, 20},
		},
		"writing": {
			"engagement": {95, 5},
			"depth":      {5, 10},
		},
		"publishing": {
			"editing": {15, 10},
			"visuals": {85, 10},
		},
	},
	article.TypeScience: {
		"investigation": {
			"background": {40, 20},
			"original":   {30, 25},
			"factCheck":  {35, 10},
		},
		"writing": {
			"engagement": {30, 20},
			"depth":      {70, 10},
		},
		"publishing": {
			"editing": {80, 15},
			"visuals": {20, 25},
		},
	},
	article.TypeBreaking: {
		"investigation": {
			"background": {10, 10},
			"original":   {50, 10},
			"factCheck":  {40, 20},
		},
		"writing": {
			"engagement": {60, 20},
			"depth":      {40, 25},
		},
		"publishing": {
			"editing": {80, 25},
			"visuals": {20, 20},
		},
	},
}

// GaussianFloor is the minimum match score for any slider. Even a fully
// mismatched allocation keeps a small chance of minor success.
const GaussianFloor = 0.05

// MatchGaussian scores how close a slider value lands to its sweet spot.
// Returns 1 at the mean, ~0.61 at one sigma, ~0.14 at two sigmas, and
// never drops below GaussianFloor.
func MatchGaussian(v, mean, sigma float64) float64 {
	z := (v - mean) / math.Max(1e-6, sigma)
	core := math.Exp(-0.5 * z * z)
	return GaussianFloor + (1-GaussianFloor)*core
}

// qualityValues flattens a group of sliders into the same keys the sweet
// spot tables use.
func qualityValues(q article.Qualities) map[string]map[string]float64 {
	return map[string]map[string]float64{
		"investigation": {
			"background": q.Investigation.Background,
			"original":   q.Investigation.Original,
			"factCheck":  q.Investigation.FactCheck,
		},
		"writing": {
			"engagement": q.Writing.Engagement,
			"depth":      q.Writing.Depth,
		},
		"publishing": {
			"editing": q.Publishing.Editing,
			"visuals": q.Publishing.Visuals,
		},
	}
}

// Score rates a draft's effort allocation against the sweet spots for its
// type. Panics on an unknown type: the set is closed and callers validate
// input at the API boundary, so reaching here with a bad type is a bug.
func Score(q article.Qualities, t article.Type) article.ScoreBreakdown {
	targets, ok := sweetSpots[t]
	if !ok {
		panic(fmt.Sprintf("sim: unknown article type %q", t))
	}

	values := qualityValues(q)
	groupScores := make(map[string]float64, len(targets))

	for group, sliders := range targets {
		var sum float64
		for name, target := range sliders {
			sum += MatchGaussian(values[group][name], target.mean, target.sigma)
		}
		groupScores[group] = sum / float64(len(sliders))
	}

	breakdown := article.ScoreBreakdown{
		Investigation: groupScores["investigation"],
		Writing:       groupScores["writing"],
		Publishing:    groupScores["publishing"],
	}
	breakdown.Overall = (breakdown.Investigation + breakdown.Writing + breakdown.Publishing) / 3
	breakdown.InsightTags = insightTags(groupScores)
	return breakdown
}

// Insight tag thresholds. Pure flavor text for the editor panel.
const tagChance = 0.5

var insightCategories = []struct {
	key   string
	label string
}{
	{"investigation", "Investigation"},
	{"writing", "Writing"},
	{"publishing", "Publishing"},
}

// insightTags rolls a qualitative label per category. The randomness here
// is cosmetic and intentionally uses the ambient source; it never feeds
// back into the numeric scores.
func insightTags(groupScores map[string]float64) []string {
	var tags []string
	for _, cat := range insightCategories {
		if rand.Float64() >= tagChance {
			continue
		}
		tags = append(tags, tagFor(cat.label, groupScores[cat.key]))
	}
	return tags
}

func tagFor(label string, score float64) string {
	switch {
	case score >= 0.85:
		return "Great " + label
	case score >= 0.6:
		return "Good " + label
	case score >= 0.35:
		return "Mid " + label
	default:
		return "Poor " + label
	}
}
