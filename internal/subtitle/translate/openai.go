package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// retryDelay is the pause before retrying a transient batch failure
var retryDelay = 5 * time.Second

// OpenAI translates subtitles using the OpenAI Chat API
type OpenAI struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		apiURL: openAIChatURL,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (o *OpenAI) Name() string {
	return "openai"
}

func (o *OpenAI) Translate(ctx context.Context, cues []subtitle.Cue, opts Options, updateProgress func(float64)) ([]subtitle.Cue, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	systemPrompt := buildSystemPrompt(opts.SourceLang, opts.TargetLang)

	totalBatches := (len(cues) + batchSize - 1) / batchSize
	log.Printf("[openai-translate] translating %d cues in %d batches (%d per batch, %d concurrent)",
		len(cues), totalBatches, batchSize, concurrency)

	type batchResult struct {
		cues []subtitle.Cue
		err  error
	}

	results := make([]batchResult, totalBatches)
	var completedBatches atomic.Int32
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := 0; i < len(cues); i += batchSize {
		end := i + batchSize
		if end > len(cues) {
			end = len(cues)
		}
		batchIdx := i / batchSize
		batch := cues[i:end]

		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, batch []subtitle.Cue) {
			defer wg.Done()
			defer func() { <-sem }()

			batchNum := idx + 1

			translated, err := o.translateBatch(ctx, batch, systemPrompt)
			if err != nil && isTransientError(err) {
				log.Printf("[openai-translate] batch %d failed (%v), retrying after %s", batchNum, err, retryDelay)
				time.Sleep(retryDelay)
				translated, err = o.translateBatch(ctx, batch, systemPrompt)
			}

			if err != nil {
				results[idx] = batchResult{err: fmt.Errorf("batch %d: %w", batchNum, err)}
			} else {
				results[idx] = batchResult{cues: translated}
			}

			done := completedBatches.Add(1)
			updateProgress(float64(done) / float64(totalBatches))
		}(batchIdx, batch)
	}

	wg.Wait()

	// Merge results in order
	var result []subtitle.Cue
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		result = append(result, r.cues...)
	}

	log.Printf("[openai-translate] translation complete: %d cues in %d batches", len(result), totalBatches)
	return result, nil
}

func (o *OpenAI) translateBatch(ctx context.Context, cues []subtitle.Cue, systemPrompt string) ([]subtitle.Cue, error) {
	var userPrompt strings.Builder
	userPrompt.WriteString("Translate the following subtitle cues. Return ONLY a JSON array with the translated text for each cue, maintaining the same order and count.\n\n")
	userPrompt.WriteString("Input cues:\n")

	for _, cue := range cues {
		userPrompt.WriteString(fmt.Sprintf("[%d] %s\n", cue.Index, cue.Text))
	}

	userPrompt.WriteString(fmt.Sprintf("\nReturn exactly %d translations as a JSON array of strings.", len(cues)))

	reqBody := map[string]interface{}{
		"model": "gpt-4o-mini",
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt.String()},
		},
		"temperature": 0.3,
		"response_format": map[string]string{
			"type": "json_object",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty OpenAI response")
	}

	content := chatResp.Choices[0].Message.Content
	// Models sometimes emit ASS-style \N line breaks, which is an invalid JSON escape
	content = strings.ReplaceAll(content, `\N`, `\n`)

	translations, err := parseTranslations(content)
	if err != nil {
		return nil, err
	}

	// Missing translations fall back to the original text
	result := make([]subtitle.Cue, len(cues))
	for i, cue := range cues {
		result[i] = subtitle.Cue{
			Index: cue.Index,
			Start: cue.Start,
			End:   cue.End,
		}
		if i < len(translations) {
			result[i].Text = translations[i]
		} else {
			result[i].Text = cue.Text
		}
	}

	return result, nil
}

// parseTranslations extracts the translated strings from a chat completion.
// The response could be a bare array, {"translations": [...]}, or an array
// embedded in surrounding prose.
func parseTranslations(content string) ([]string, error) {
	var translations []string

	if err := json.Unmarshal([]byte(content), &translations); err == nil {
		return translations, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil {
		for _, v := range wrapped {
			if err := json.Unmarshal(v, &translations); err == nil {
				return translations, nil
			}
		}
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), &translations); err == nil {
			return translations, nil
		}
	}

	return nil, fmt.Errorf("parse translations from OpenAI: %s", content)
}

func buildSystemPrompt(sourceLang, targetLang string) string {
	if sourceLang == "" {
		sourceLang = "auto"
	}
	return fmt.Sprintf(
		"You are a professional subtitle translator. Translate subtitles from %s to %s. "+
			"Maintain the original meaning and timing constraints. "+
			"Keep translations concise and natural for subtitle display. "+
			"Respond with ONLY the translated text for each subtitle cue, maintaining the same number of lines.",
		langName(sourceLang), langName(targetLang),
	)
}

func langName(code string) string {
	names := map[string]string{
		"en":   "English",
		"es":   "Spanish",
		"fr":   "French",
		"de":   "German",
		"it":   "Italian",
		"pt":   "Portuguese",
		"nl":   "Dutch",
		"pl":   "Polish",
		"sv":   "Swedish",
		"tr":   "Turkish",
		"ru":   "Russian",
		"ja":   "Japanese",
		"ko":   "Korean",
		"zh":   "Chinese",
		"ar":   "Arabic",
		"hi":   "Hindi",
		"auto": "auto-detected language",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return code
}
