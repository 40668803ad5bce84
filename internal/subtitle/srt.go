package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSRT parses SubRip content into subtitle cues
func ParseSRT(content string) ([]Cue, error) {
	content = strings.TrimPrefix(content, "﻿")
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var cues []Cue
	var currentCue *Cue
	index := 0

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" {
			if currentCue != nil && currentCue.Text != "" {
				cues = append(cues, *currentCue)
				currentCue = nil
			}
			continue
		}

		if matches := timestampRe.FindStringSubmatch(line); len(matches) == 3 {
			if currentCue != nil && currentCue.Text != "" {
				cues = append(cues, *currentCue)
			}
			start, err := ParseTime(matches[1])
			if err != nil {
				return nil, err
			}
			end, err := ParseTime(matches[2])
			if err != nil {
				return nil, err
			}
			index++
			currentCue = &Cue{Index: index, Start: start, End: end}
			continue
		}

		// Sequence numbers sit on their own line before the timestamp
		if _, err := strconv.Atoi(line); err == nil && currentCue == nil {
			continue
		}

		if currentCue != nil {
			if currentCue.Text != "" {
				currentCue.Text += "\n"
			}
			currentCue.Text += line
		}
	}

	if currentCue != nil && currentCue.Text != "" {
		cues = append(cues, *currentCue)
	}

	if len(cues) == 0 {
		return nil, ErrEmptySubtitle
	}
	return cues, nil
}

// WriteSRT converts subtitle cues back to SubRip format
func WriteSRT(cues []Cue) string {
	var sb strings.Builder
	for i, cue := range cues {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", FormatSRTTime(cue.Start), FormatSRTTime(cue.End)))
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
