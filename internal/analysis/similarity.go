package analysis

import (
	"math"
	"regexp"
	"strings"
)

var tokenSplitRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Tokenize splits text into lowercase terms, dropping single-rune tokens.
// Subtitle cues are short, so the filter stays permissive.
func Tokenize(text string) []string {
	raw := tokenSplitRe.Split(strings.ToLower(text), -1)
	terms := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len([]rune(tok)) < 2 {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// Fingerprint is a term-frequency vector over one piece of text
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint builds a fingerprint, or nil for text with no usable terms
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	var norm float64
	for _, c := range counts {
		norm += c * c
	}
	return &Fingerprint{tokens: counts, norm: math.Sqrt(norm)}
}

// Weights returns the fingerprint's terms scaled by the given IDF map.
// Terms missing from the map keep their raw counts.
func (f *Fingerprint) Weights(idf map[string]float64) map[string]float64 {
	if f == nil {
		return nil
	}
	out := make(map[string]float64, len(f.tokens))
	for tok, count := range f.tokens {
		w := count
		if v, ok := idf[tok]; ok {
			w *= v
		}
		out[tok] = w
	}
	return out
}

// WithIDF returns a copy reweighted by IDF, with the norm recomputed
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.tokens))
	var norm float64
	for tok, count := range f.tokens {
		w := count
		if v, ok := idf[tok]; ok {
			w *= v
		}
		if w == 0 {
			continue
		}
		weighted[tok] = w
		norm += w * w
	}
	if len(weighted) == 0 {
		return nil
	}
	return &Fingerprint{tokens: weighted, norm: math.Sqrt(norm)}
}

// CosineSimilarity compares two fingerprints, returning a value in [0,1].
// Nil or zero-norm fingerprints compare as 0.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for tok, count := range a.tokens {
		if other, ok := b.tokens[tok]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Corpus accumulates document frequencies for IDF weighting
type Corpus struct {
	docCount int
	docFreq  map[string]int
}

// NewCorpus returns an empty corpus
func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add registers one document's unique terms
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil || fp == nil {
		return
	}
	c.docCount++
	for tok := range fp.tokens {
		c.docFreq[tok]++
	}
}

// IDF returns log((N+1)/(1+df)) per term
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docCount == 0 {
		return nil
	}
	idf := make(map[string]float64, len(c.docFreq))
	n := float64(c.docCount)
	for tok, df := range c.docFreq {
		idf[tok] = math.Log((n + 1) / (1 + float64(df)))
	}
	return idf
}
