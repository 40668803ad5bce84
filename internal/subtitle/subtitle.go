package subtitle

import (
	"errors"
	"regexp"
	"strings"
)

// Format names accepted by Parse and the converters.
const (
	FormatSRT  = "srt"
	FormatVTT  = "vtt"
	FormatJSON = "json"
)

var (
	ErrEmptySubtitle     = errors.New("subtitle contains no cues")
	ErrBadTimestamp      = errors.New("malformed timestamp")
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")
)

// Cue is a single timed subtitle entry
type Cue struct {
	Index int     `json:"index"`
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
	Text  string  `json:"text"`
}

// Word is a single token of a cue with timing interpolated across the cue span
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Cue   int     `json:"cue"` // index of the owning cue
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+|[.,!?;]`)

// SplitText tokenizes cue text into words and sentence punctuation
func SplitText(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// Words spreads each cue's text into timed words. Word boundaries get an
// equal share of the cue span, so a 3s cue with 6 words yields 0.5s words.
func Words(cues []Cue) []Word {
	var words []Word
	for _, cue := range cues {
		tokens := SplitText(cue.Text)
		if len(tokens) == 0 {
			continue
		}
		perWord := (cue.End - cue.Start) / float64(len(tokens))
		for i, tok := range tokens {
			start := cue.Start + float64(i)*perWord
			words = append(words, Word{
				Text:  tok,
				Start: start,
				End:   start + perWord,
				Cue:   cue.Index,
			})
		}
	}
	return words
}

// Parse decodes subtitle data in any supported format. The format is taken
// from the file name extension when present, otherwise sniffed from content.
func Parse(name string, data []byte) ([]Cue, error) {
	content := string(data)
	switch DetectFormat(name, content) {
	case FormatSRT:
		return ParseSRT(content)
	case FormatVTT:
		return ParseVTT(content)
	case FormatJSON:
		return ParseJSON(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// DetectFormat resolves the subtitle format from a file name or, failing
// that, from the content itself.
func DetectFormat(name, content string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".srt"):
		return FormatSRT
	case strings.HasSuffix(lower, ".vtt"):
		return FormatVTT
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	}

	trimmed := strings.TrimSpace(strings.TrimPrefix(content, "﻿"))
	switch {
	case strings.HasPrefix(trimmed, "WEBVTT"):
		return FormatVTT
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		return FormatJSON
	case timestampRe.MatchString(trimmed):
		return FormatSRT
	}
	return ""
}
