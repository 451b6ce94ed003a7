package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/javajoker/storefront-backend/internal/models"
)

// Searcher ranks products by fuzzy similarity of the query to the product
// name and description. Scores run from 0 (exact match at the start of the
// field) to 1 (no match).
type Searcher struct {
	NameWeight        float64
	DescriptionWeight float64
	// Threshold is the highest field score still counted as a match.
	Threshold float64
	// Distance is how many characters into a field a match may start before
	// its position alone costs a full point.
	Distance int
}

func DefaultSearcher() Searcher {
	return Searcher{NameWeight: 0.7, DescriptionWeight: 0.3, Threshold: 0.4, Distance: 100}
}

type Result struct {
	Product models.Product `json:"product"`
	Score   float64        `json:"score"`
}

// Search returns matching products best first. An empty query matches nothing.
func (s Searcher) Search(products []models.Product, query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	totalWeight := s.NameWeight + s.DescriptionWeight
	if totalWeight <= 0 {
		totalWeight = 1
	}

	var results []Result
	for _, p := range products {
		nameScore := s.fieldScore(query, p.Name)
		descScore := s.fieldScore(query, p.Description)
		if nameScore > s.Threshold && descScore > s.Threshold {
			continue
		}

		score := (s.NameWeight*nameScore + s.DescriptionWeight*descScore) / totalWeight
		results = append(results, Result{Product: p, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

// fieldScore combines the edit distance of the best-matching window of the
// field with how far into the field that window starts.
func (s Searcher) fieldScore(query, text string) float64 {
	text = strings.ToLower(text)
	if text == "" {
		return 1
	}

	if idx := strings.Index(text, query); idx >= 0 {
		return clamp(s.proximity(utf8.RuneCountInString(text[:idx])))
	}

	queryLen := utf8.RuneCountInString(query)
	best := 1.0
	for _, w := range windows(text, len(strings.Fields(query))) {
		accuracy := float64(fuzzy.LevenshteinDistance(query, w.text)) / float64(queryLen)
		if accuracy > s.Threshold {
			continue
		}
		if score := clamp(accuracy + s.proximity(w.offset)); score < best {
			best = score
		}
	}
	return best
}

func (s Searcher) proximity(offset int) float64 {
	if s.Distance <= 0 {
		if offset == 0 {
			return 0
		}
		return 1
	}
	return float64(offset) / float64(s.Distance)
}

type window struct {
	text   string
	offset int
}

// windows yields every run of n consecutive words in text with the rune
// offset of its first word.
func windows(text string, n int) []window {
	if n < 1 {
		n = 1
	}

	type word struct {
		text   string
		offset int
	}
	var words []word
	inWord := false
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		space := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		switch {
		case !space && !inWord:
			inWord = true
			start = i
		case space && inWord:
			inWord = false
			words = append(words, word{string(runes[start:i]), start})
		}
	}
	if inWord {
		words = append(words, word{string(runes[start:]), start})
	}

	if len(words) < n {
		if len(words) == 0 {
			return nil
		}
		n = len(words)
	}

	out := make([]window, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		parts := make([]string, n)
		for j := 0; j < n; j++ {
			parts[j] = words[i+j].text
		}
		out = append(out, window{text: strings.Join(parts, " "), offset: words[i].offset})
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
