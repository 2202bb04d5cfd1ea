// ABOUTME: Scoring algorithm: keyword, partial-keyword, name, and speciality bonuses.
// ABOUTME: Ties resolve to the first agent in catalog order.

package intent

import (
	"strings"

	"github.com/Trikisalem/multi-agents-dentaire/internal/catalog"
)

// Score weights. A verbatim keyword hit dominates; the partial bonus lets a
// conjugated or truncated form of a keyword still count for something.
const (
	keywordExactBonus   = 10
	keywordPartialBonus = 3
	nameBonus           = 15
	specialityBonus     = 12

	// partialPrefixLen is the number of leading keyword characters matched
	// by the partial bonus. Keywords shorter than this get no partial bonus.
	partialPrefixLen = 3
)

// Result holds the per-agent scores for one message along with the winner.
// BestAgent is empty when no agent scored above zero.
type Result struct {
	Scores    map[string]int
	BestAgent string
	BestScore int
}

// Engine scores messages against a fixed catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates a scoring engine over the given catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Score computes per-agent scores for the message. The message is lower-cased
// and trimmed first; an empty normalized message scores zero for every agent.
// Score never fails: any input degrades to a zero result at worst.
func (e *Engine) Score(message string) Result {
	res := Result{Scores: make(map[string]int, e.catalog.Len())}

	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		for _, id := range e.catalog.IDs() {
			res.Scores[id] = 0
		}
		return res
	}

	for _, profile := range e.catalog.Profiles() {
		score := scoreProfile(normalized, profile)
		res.Scores[profile.ID] = score

		// Strictly-greater comparison keeps the first agent in catalog
		// order on ties.
		if score > res.BestScore {
			res.BestScore = score
			res.BestAgent = profile.ID
		}
	}

	return res
}

func scoreProfile(message string, p *catalog.Profile) int {
	score := 0

	for _, keyword := range p.Keywords {
		kw := strings.ToLower(keyword)
		if kw == "" {
			continue
		}
		if strings.Contains(message, kw) {
			score += keywordExactBonus
		}
		// The partial bonus is additive with the exact bonus: both fire
		// when the full keyword is present. Prefix length counts runes so
		// accented keywords are not cut mid-character.
		if runes := []rune(kw); len(runes) >= partialPrefixLen {
			if strings.Contains(message, string(runes[:partialPrefixLen])) {
				score += keywordPartialBonus
			}
		}
	}

	if p.Name != "" && strings.Contains(message, strings.ToLower(p.Name)) {
		score += nameBonus
	}
	if p.Speciality != "" && strings.Contains(message, strings.ToLower(p.Speciality)) {
		score += specialityBonus
	}

	return score
}
