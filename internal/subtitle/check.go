package subtitle

import (
	"fmt"
	"strings"
)

// Issue flags a problem found in a cue timeline
type Issue struct {
	Type        string `json:"type"`
	Cue         int    `json:"cue"`
	Description string `json:"description"`
}

const maxCueWords = 15

// Inspect scans cues for timing and content problems. It reports, per cue:
// negative durations, overlaps with the previous cue, empty text, and cues
// too long to read comfortably.
func Inspect(cues []Cue) []Issue {
	var issues []Issue
	for i, cue := range cues {
		if cue.End < cue.Start {
			issues = append(issues, Issue{
				Type:        "negative_duration",
				Cue:         cue.Index,
				Description: fmt.Sprintf("cue %d ends (%.3fs) before it starts (%.3fs)", cue.Index, cue.End, cue.Start),
			})
		}
		if i > 0 && cue.Start < cues[i-1].End {
			issues = append(issues, Issue{
				Type:        "overlap",
				Cue:         cue.Index,
				Description: fmt.Sprintf("cue %d starts before cue %d ends", cue.Index, cues[i-1].Index),
			})
		}
		if strings.TrimSpace(cue.Text) == "" {
			issues = append(issues, Issue{
				Type:        "empty_text",
				Cue:         cue.Index,
				Description: fmt.Sprintf("cue %d has no text", cue.Index),
			})
		}
		if n := len(SplitText(cue.Text)); n > maxCueWords {
			issues = append(issues, Issue{
				Type:        "too_long",
				Cue:         cue.Index,
				Description: fmt.Sprintf("cue %d has %d words (max %d)", cue.Index, n, maxCueWords),
			})
		}
	}
	return issues
}

// Timing limits applied by OptimizeTiming.
const (
	MinCueDuration = 1.0
	MaxCueDuration = 7.0
	MinCueGap      = 0.1
)

// OptimizeTiming returns a copy of cues with durations clamped to
// [MinCueDuration, MaxCueDuration] and at least MinCueGap between
// consecutive cues. Start times are never moved; only ends are adjusted, so
// ordering is preserved.
func OptimizeTiming(cues []Cue) []Cue {
	out := make([]Cue, len(cues))
	copy(out, cues)

	for i := range out {
		duration := out[i].End - out[i].Start
		if duration < MinCueDuration {
			out[i].End = out[i].Start + MinCueDuration
		} else if duration > MaxCueDuration {
			out[i].End = out[i].Start + MaxCueDuration
		}
		if i+1 < len(out) {
			limit := out[i+1].Start - MinCueGap
			if out[i].End > limit && limit > out[i].Start {
				out[i].End = limit
			}
		}
	}
	return out
}
