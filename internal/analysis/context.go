package analysis

import (
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

func isSentenceEnd(text string) bool {
	return text == "." || text == "!" || text == "?"
}

// buildContexts fills each word's Context with the window of surrounding
// words. Sentence boundaries stop the window at terminal punctuation;
// paragraph boundaries keep it inside the owning cue.
func buildContexts(words []WordInfo, opts ContextOptions) {
	n := len(words)
	for i := range words {
		if words[i].POS == POSPunct {
			continue
		}
		lo := i - opts.WindowSize
		if lo < 0 {
			lo = 0
		}
		hi := i + opts.WindowSize
		if hi > n-1 {
			hi = n - 1
		}

		if opts.SentenceBoundaries {
			for j := i - 1; j >= lo; j-- {
				if isSentenceEnd(words[j].Text) {
					lo = j + 1
					break
				}
			}
			for j := i + 1; j <= hi; j++ {
				if isSentenceEnd(words[j].Text) {
					hi = j - 1
					break
				}
			}
		}
		if opts.ParagraphBoundaries {
			for lo < i && words[lo].Cue != words[i].Cue {
				lo++
			}
			for hi > i && words[hi].Cue != words[i].Cue {
				hi--
			}
		}

		parts := make([]string, 0, hi-lo+1)
		for j := lo; j <= hi; j++ {
			if words[j].POS == POSPunct {
				continue
			}
			parts = append(parts, words[j].Text)
		}
		words[i].Context = strings.Join(parts, " ")
	}
}

// buildWindows aggregates analysis per cue: mean word importance and TF-IDF
// cosine similarity against the preceding cue's text.
func buildWindows(cues []subtitle.Cue, words []WordInfo) []Window {
	byCue := make(map[int][]*WordInfo)
	for i := range words {
		byCue[words[i].Cue] = append(byCue[words[i].Cue], &words[i])
	}

	corpus := NewCorpus()
	prints := make([]*Fingerprint, len(cues))
	for i, cue := range cues {
		prints[i] = NewFingerprint(cue.Text)
		corpus.Add(prints[i])
	}
	idf := corpus.IDF()
	for i := range prints {
		prints[i] = prints[i].WithIDF(idf)
	}

	windows := make([]Window, len(cues))
	for i, cue := range cues {
		win := Window{
			Index: cue.Index,
			Start: cue.Start,
			End:   cue.End,
			Text:  cue.Text,
		}

		sum, count := 0.0, 0
		for _, w := range byCue[cue.Index] {
			if w.POS == POSPunct {
				continue
			}
			sum += w.Importance
			count++
		}
		if count > 0 {
			win.Importance = sum / float64(count)
		}
		if i > 0 {
			win.Similarity = CosineSimilarity(prints[i-1], prints[i])
		}
		windows[i] = win
	}
	return windows
}
