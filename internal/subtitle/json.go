package subtitle

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseJSON decodes subtitle cues from JSON. Three shapes are accepted:
// the native export shape ({"subtitles": [...]}), plain transcriber output
// ({"segments": [{"start", "end", "text"}]}), and token-level transcriber
// output ({"transcription": [{"timestamps": {"from", "to"}, "text"}]}).
func ParseJSON(data []byte) ([]Cue, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnsupportedFormat)
	}
	root := gjson.ParseBytes(data)

	entries := root.Get("subtitles")
	if !entries.Exists() {
		entries = root.Get("segments")
	}
	if entries.Exists() {
		return cuesFromSegments(entries)
	}

	if tr := root.Get("transcription"); tr.Exists() {
		return cuesFromTranscription(tr)
	}
	if root.IsArray() {
		return cuesFromSegments(root)
	}
	return nil, fmt.Errorf("%w: unrecognized JSON layout", ErrUnsupportedFormat)
}

func cuesFromSegments(entries gjson.Result) ([]Cue, error) {
	var cues []Cue
	for _, seg := range entries.Array() {
		text := strings.TrimSpace(seg.Get("text").String())
		if text == "" {
			continue
		}
		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: seg.Get("start").Float(),
			End:   seg.Get("end").Float(),
			Text:  text,
		})
	}
	if len(cues) == 0 {
		return nil, ErrEmptySubtitle
	}
	return cues, nil
}

func cuesFromTranscription(entries gjson.Result) ([]Cue, error) {
	var cues []Cue
	var firstErr error
	for _, seg := range entries.Array() {
		text := strings.TrimSpace(seg.Get("text").String())
		if text == "" || strings.HasPrefix(text, "[_") {
			continue
		}
		start, err := ParseTime(seg.Get("timestamps.from").String())
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		end, err := ParseTime(seg.Get("timestamps.to").String())
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		cues = append(cues, Cue{Index: len(cues) + 1, Start: start, End: end, Text: text})
	}
	if len(cues) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, ErrEmptySubtitle
	}
	return cues, nil
}
