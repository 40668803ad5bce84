package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var inlineTagRe = regexp.MustCompile(`<[^>]*>`)

// ParseVTT parses WebVTT content into subtitle cues. Inline styling tags
// and word-level timing tags are stripped from cue text.
func ParseVTT(content string) ([]Cue, error) {
	content = strings.TrimPrefix(content, "﻿")
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var cues []Cue
	var currentCue *Cue
	index := 0
	inBlock := false

	for _, line := range lines {
		line = strings.TrimSpace(line)

		// NOTE and STYLE blocks run until the next blank line
		if strings.HasPrefix(line, "NOTE") || line == "STYLE" || line == "REGION" {
			inBlock = true
			continue
		}

		if line == "WEBVTT" || strings.HasPrefix(line, "WEBVTT ") || line == "" {
			inBlock = false
			if currentCue != nil && currentCue.Text != "" {
				cues = append(cues, *currentCue)
				currentCue = nil
			}
			continue
		}
		if inBlock {
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

		// Skip cue identifiers (pure digits) between cues
		if _, err := strconv.Atoi(line); err == nil && currentCue == nil {
			continue
		}

		if currentCue != nil {
			text := inlineTagRe.ReplaceAllString(line, "")
			if text == "" {
				continue
			}
			if currentCue.Text != "" {
				currentCue.Text += "\n"
			}
			currentCue.Text += text
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

// WriteVTT converts subtitle cues back to WebVTT format
func WriteVTT(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for i, cue := range cues {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", FormatVTTTime(cue.Start), FormatVTTTime(cue.End)))
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
