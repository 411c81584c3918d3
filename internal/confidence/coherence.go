package confidence

import (
	"math"
	"strings"

	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/model"
)

var connectorWords = []string{
	"therefore", "because", "however", "thus", "consequently",
	"since", "although", "moreover", "furthermore",
}

// EvaluateCoherence scores the logical and structural texture of a response.
// It is advisory output for reviewers; the overall confidence never reads it.
func (s *Scorer) EvaluateCoherence(content string) model.CoherenceReport {
	sentences := extract.SplitSentences(content)
	report := model.CoherenceReport{
		Logical:     logicalScore(content, len(sentences)),
		Structural:  structuralScore(content),
		Consistency: consistencyScore(sentences),
		Flow:        flowScore(sentences),
	}
	report.Overall = model.Clamp01(
		(report.Logical + report.Structural + report.Consistency + report.Flow) / 4)
	return report
}

// logicalScore rewards connector-word density up to one connector per two
// sentences.
func logicalScore(content string, sentenceCount int) float64 {
	if sentenceCount == 0 {
		return 0.5
	}
	lower := strings.ToLower(content)
	connectors := 0
	for _, w := range connectorWords {
		connectors += strings.Count(lower, w)
	}
	density := float64(connectors) / float64(sentenceCount)
	return model.Clamp01(0.5 + math.Min(density, 0.5))
}

// structuralScore reads paragraph organization.
func structuralScore(content string) float64 {
	paragraphs := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	switch {
	case paragraphs <= 1:
		return 0.5
	case paragraphs <= 5:
		return 0.8
	default:
		return 0.7
	}
}

// consistencyScore penalizes a near-even mix of negated and plain sentences,
// which reads as the response arguing with itself.
func consistencyScore(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0.5
	}
	negated := 0
	for _, s := range sentences {
		if extract.HasNegation(s) {
			negated++
		}
	}
	f := float64(negated) / float64(len(sentences))
	balance := math.Min(f, 1-f) // 0 at the extremes, 0.5 at an even split
	return model.Clamp01(1 - 1.6*balance)
}

// flowScore reads sentence-length variance: some variety is natural, wild
// swings are not.
func flowScore(sentences []string) float64 {
	if len(sentences) < 2 {
		return 0.6
	}
	lengths := make([]float64, len(sentences))
	var mean float64
	for i, s := range sentences {
		lengths[i] = float64(len(extract.Tokenize(s)))
		mean += lengths[i]
	}
	mean /= float64(len(lengths))

	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	sd := math.Sqrt(variance / float64(len(lengths)))

	switch {
	case sd < 2:
		return 0.6
	case sd <= 15:
		return 0.8
	default:
		return 0.5
	}
}
