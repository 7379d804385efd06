package service

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// stopwords excluded from the word-frequency table. Short function
// words carry no topical signal.
var stopwords = map[string]struct{}{
	"the": {}, "is": {}, "a": {}, "an": {}, "and": {}, "or": {}, "to": {},
	"of": {}, "in": {}, "on": {}, "for": {}, "with": {}, "that": {},
	"this": {}, "it": {}, "as": {}, "at": {}, "by": {}, "be": {}, "we": {},
	"you": {}, "they": {}, "i": {}, "are": {}, "was": {}, "were": {},
	"from": {}, "our": {}, "your": {}, "their": {}, "will": {}, "can": {},
	"should": {}, "could": {}, "would": {}, "about": {}, "into": {},
	"over": {}, "after": {}, "before": {}, "than": {}, "then": {},
	"so": {}, "if": {}, "but": {}, "not": {}, "no": {}, "yes": {},
	"do": {}, "does": {}, "did": {},
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}']+`)

// ExtractiveSummary produces a shorter text by selecting the
// highest-scoring sentences and reassembling them in their original
// order. Deterministic: sentences are scored by the summed frequency
// of their non-stopword words, normalized by the square root of the
// sentence length. Empty or whitespace-only input yields an empty
// string.
func ExtractiveSummary(text string) string {
	return strings.Join(selectKeySentences(text), " ")
}

// selectKeySentences returns the top max(2, min(6, ceil(n/3)))
// sentences by score, in original relative order.
func selectKeySentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return []string{}
	}

	freq := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopwords[w]; stop || len(w) <= 2 {
			continue
		}
		freq[w]++
	}

	type scoredSentence struct {
		index int
		score float64
	}
	scored := make([]scoredSentence, 0, len(sentences))
	for i, sent := range sentences {
		words := wordPattern.FindAllString(strings.ToLower(sent), -1)
		if len(words) == 0 {
			scored = append(scored, scoredSentence{index: i})
			continue
		}
		sum := 0
		for _, w := range words {
			sum += freq[w]
		}
		scored = append(scored, scoredSentence{
			index: i,
			score: float64(sum) / math.Sqrt(float64(len(words))),
		})
	}

	limit := (len(sentences) + 2) / 3 // ceil(n/3)
	if limit < 2 {
		limit = 2
	}
	if limit > 6 {
		limit = 6
	}
	if limit > len(scored) {
		limit = len(scored)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	top := scored[:limit]
	sort.Slice(top, func(i, j int) bool {
		return top[i].index < top[j].index
	})

	out := make([]string, 0, len(top))
	for _, s := range top {
		out = append(out, sentences[s.index])
	}
	return out
}

// splitSentences splits text at sentence terminators followed by
// whitespace or end of input.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				if sent := strings.TrimSpace(b.String()); sent != "" {
					out = append(out, sent)
				}
				b.Reset()
			}
		}
	}
	if sent := strings.TrimSpace(b.String()); sent != "" {
		out = append(out, sent)
	}
	return out
}
