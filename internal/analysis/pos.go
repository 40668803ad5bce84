package analysis

import (
	"strings"
	"unicode"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

// Coarse part-of-speech tags produced by tagWords.
const (
	POSProper    = "propn"
	POSNoun      = "noun"
	POSVerb      = "verb"
	POSAdjective = "adj"
	POSAdverb    = "adv"
	POSOther     = "other"
	POSPunct     = "punct"
)

// DefaultPOSWeights returns the default importance scaling per tag
func DefaultPOSWeights() map[string]float64 {
	return map[string]float64{
		POSProper:    0.9,
		POSNoun:      0.8,
		POSVerb:      0.7,
		POSAdjective: 0.6,
		POSAdverb:    0.5,
		POSOther:     0.3,
		POSPunct:     0.0,
	}
}

var functionWords = wordSet(`the a an and or but if then than that this these those
i you he she it we they me him them my your his her its our their
is are was were be been am do does did have has had will would can could
should must may might of in on at to from by with for as not no so`)

var suffixTags = []struct {
	suffix string
	tag    string
}{
	{"ly", POSAdverb},
	{"tion", POSNoun},
	{"sion", POSNoun},
	{"ment", POSNoun},
	{"ness", POSNoun},
	{"ity", POSNoun},
	{"ing", POSVerb},
	{"ize", POSVerb},
	{"ise", POSVerb},
	{"ate", POSVerb},
	{"ous", POSAdjective},
	{"ful", POSAdjective},
	{"ive", POSAdjective},
	{"able", POSAdjective},
	{"ible", POSAdjective},
	{"ed", POSVerb},
}

// tagWords assigns a coarse part of speech to each word using
// capitalization and suffix rules. Words capitalized away from a sentence
// start read as proper nouns; everything unrecognized reads as a noun.
func tagWords(words []subtitle.Word) []string {
	tags := make([]string, len(words))
	sentenceStart := true
	for i, w := range words {
		text := w.Text
		if isPunct(text) {
			tags[i] = POSPunct
			if text == "." || text == "!" || text == "?" {
				sentenceStart = true
			}
			continue
		}
		lower := strings.ToLower(text)
		switch {
		case functionWords[lower]:
			tags[i] = POSOther
		case !sentenceStart && isCapitalized(text):
			tags[i] = POSProper
		default:
			tags[i] = suffixTag(lower)
		}
		sentenceStart = false
	}
	return tags
}

func suffixTag(lower string) string {
	for _, st := range suffixTags {
		// Leave short words alone: "red" is not a past-tense verb.
		if len(lower) >= len(st.suffix)+3 && strings.HasSuffix(lower, st.suffix) {
			return st.tag
		}
	}
	return POSNoun
}

func isCapitalized(text string) bool {
	for _, r := range text {
		return unicode.IsUpper(r)
	}
	return false
}

func isPunct(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
