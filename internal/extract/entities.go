package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/credence/internal/model"
)

// Fixed lexical entity patterns. These are deliberately cheap: capitalized
// bigrams read as people, 4-digit tokens as dates, bare numbers as numbers,
// and "<Capitalized> City/State/Country" as places.
var (
	personPattern = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	datePattern   = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
	numberPattern = regexp.MustCompile(`\b\d+(\.\d+)?%?\b`)
	placePattern  = regexp.MustCompile(`\b[A-Z][a-z]+ (City|State|Country)\b`)
)

// Entities extracts typed spans from a sentence using the fixed patterns.
// Place and date matches take precedence over the looser person and number
// patterns when spans overlap.
func Entities(text string) []model.Entity {
	var entities []model.Entity
	claimed := make([]bool, len(text))

	add := func(etype model.EntityType, conf float64, locs [][]int) {
		for _, loc := range locs {
			if overlaps(claimed, loc[0], loc[1]) {
				continue
			}
			mark(claimed, loc[0], loc[1])
			entities = append(entities, model.Entity{
				Text:       text[loc[0]:loc[1]],
				Type:       etype,
				Confidence: conf,
				Start:      loc[0],
				End:        loc[1],
			})
		}
	}

	add(model.EntityPlace, 0.7, placePattern.FindAllStringIndex(text, -1))
	add(model.EntityDate, 0.8, datePattern.FindAllStringIndex(text, -1))
	add(model.EntityPerson, 0.6, filterSentenceStarts(text, personPattern.FindAllStringIndex(text, -1)))
	add(model.EntityNumber, 0.8, numberPattern.FindAllStringIndex(text, -1))

	return entities
}

// filterSentenceStarts drops capitalized-bigram matches that begin with a
// sentence-initial function word ("The experiment", "This study"), which are
// capitalization artifacts rather than names.
func filterSentenceStarts(text string, locs [][]int) [][]int {
	var kept [][]int
	for _, loc := range locs {
		first := strings.ToLower(strings.Fields(text[loc[0]:loc[1]])[0])
		if stopwords[first] {
			continue
		}
		kept = append(kept, loc)
	}
	return kept
}

func overlaps(claimed []bool, start, end int) bool {
	for i := start; i < end && i < len(claimed); i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func mark(claimed []bool, start, end int) {
	for i := start; i < end && i < len(claimed); i++ {
		claimed[i] = true
	}
}

// SharedEntities returns the entity texts present in both claims,
// case-insensitively.
func SharedEntities(a, b []model.Entity) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inA := make(map[string]bool)
	for _, e := range a {
		inA[strings.ToLower(e.Text)] = true
	}
	var shared []string
	seen := make(map[string]bool)
	for _, e := range b {
		key := strings.ToLower(e.Text)
		if inA[key] && !seen[key] {
			seen[key] = true
			shared = append(shared, e.Text)
		}
	}
	return shared
}
