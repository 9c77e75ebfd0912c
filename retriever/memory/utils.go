package memory

import (
	"math"
	"strings"
	"unicode"
)

// selectDiverse picks limit candidates by maximal marginal relevance: at each step
// the candidate with the best score minus its similarity to what is
// already selected.
func selectDiverse(candidates []candidate, limit int, relevance float64) []candidate {
	if len(candidates) <= limit {
		return candidates
	}

	if relevance < 0 {
		relevance = 0
	} else if relevance > 1 {
		relevance = 1
	}

	selected := make([]candidate, 0, limit)
	copied := append([]candidate(nil), candidates...)

	for len(selected) < limit && len(copied) > 0 {
		bestIdx := -1
		best := math.Inf(-1)

		for i, cand := range copied {
			maxSim := 0.0

			for _, sel := range selected {
				if sim := CosineSimilarity(cand.doc.Embedding, sel.doc.Embedding); sim > maxSim {
					maxSim = sim
				}
			}

			current := (relevance * cand.score) - ((1 - relevance) * maxSim)

			// pure diversity: closest to zero similarity wins once something is selected
			if relevance == 0 && len(selected) > 0 {
				current = -maxSim
			}

			if current > best {
				best = current
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			break
		}

		selected = append(selected, copied[bestIdx])
		copied = append(copied[:bestIdx], copied[bestIdx+1:]...)
	}

	return selected
}

func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

var operators = map[string]struct{}{
	"and": {},
	"or":  {},
	"not": {},
}

// Terms lowercases text and splits it into words, dropping boolean
// operators the query formulator tends to emit.
func Terms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	seen := map[string]struct{}{}
	for _, f := range fields {
		if _, ok := operators[f]; ok {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}

	return terms
}

// TermScore is the fraction of terms that appear in text.
func TermScore(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}

	words := map[string]struct{}{}
	for _, w := range Terms(text) {
		words[w] = struct{}{}
	}

	hits := 0
	for _, t := range terms {
		if _, ok := words[t]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(terms))
}

// Caption returns up to two sentences of content that mention a term,
// falling back to the first sentence.
func Caption(terms []string, content string) string {
	sentences := splitSentences(content)
	if len(sentences) == 0 {
		return content
	}

	var picked []string
	for _, s := range sentences {
		if TermScore(terms, s) > 0 {
			picked = append(picked, s)
		}
		if len(picked) == 2 {
			break
		}
	}

	if len(picked) == 0 {
		return sentences[0]
	}

	return strings.Join(picked, " ")
}

func splitSentences(content string) []string {
	var sentences []string
	start := 0
	for i, r := range content {
		if r == '.' || r == '?' || r == '!' {
			if s := strings.TrimSpace(content[start : i+1]); len(s) > 0 {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(content[start:]); len(s) > 0 {
		sentences = append(sentences, s)
	}
	return sentences
}
