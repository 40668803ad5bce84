package subtitle

import (
	"sort"
	"strings"
)

// Statistics summarizes a cue timeline
type Statistics struct {
	CueCount       int         `json:"cue_count"`
	TotalDuration  float64     `json:"total_duration"`
	AvgDuration    float64     `json:"avg_duration"`
	WordCount      int         `json:"word_count"`
	AvgWordsPerCue float64     `json:"avg_words_per_cue"`
	CharCount      int         `json:"char_count"`
	TopWords       []WordCount `json:"top_words"`
}

// WordCount pairs a word with its occurrence count
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

const topWordLimit = 10

// Stats computes summary statistics over a cue timeline. Word frequency is
// case-insensitive and skips punctuation tokens.
func Stats(cues []Cue) Statistics {
	stats := Statistics{CueCount: len(cues)}
	freq := make(map[string]int)

	for _, cue := range cues {
		stats.TotalDuration += cue.End - cue.Start
		stats.CharCount += len(cue.Text)
		for _, tok := range SplitText(cue.Text) {
			if strings.ContainsAny(tok, ".,!?;") {
				continue
			}
			stats.WordCount++
			freq[strings.ToLower(tok)]++
		}
	}

	if len(cues) > 0 {
		stats.AvgDuration = stats.TotalDuration / float64(len(cues))
		stats.AvgWordsPerCue = float64(stats.WordCount) / float64(len(cues))
	}

	for word, count := range freq {
		stats.TopWords = append(stats.TopWords, WordCount{Word: word, Count: count})
	}
	sort.Slice(stats.TopWords, func(i, j int) bool {
		if stats.TopWords[i].Count != stats.TopWords[j].Count {
			return stats.TopWords[i].Count > stats.TopWords[j].Count
		}
		return stats.TopWords[i].Word < stats.TopWords[j].Word
	})
	if len(stats.TopWords) > topWordLimit {
		stats.TopWords = stats.TopWords[:topWordLimit]
	}
	return stats
}
