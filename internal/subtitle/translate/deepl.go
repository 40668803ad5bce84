package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

const deeplAPIURL = "https://api-free.deepl.com/v2/translate"

// DeepL translates subtitles using the DeepL API
type DeepL struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewDeepL(apiKey string) *DeepL {
	return &DeepL{
		apiKey: apiKey,
		apiURL: deeplAPIURL,
		client: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (d *DeepL) Name() string {
	return "deepl"
}

func (d *DeepL) Translate(ctx context.Context, cues []subtitle.Cue, opts Options, updateProgress func(float64)) ([]subtitle.Cue, error) {
	if d.apiKey == "" {
		return nil, fmt.Errorf("DeepL API key not configured")
	}

	// DeepL accepts multiple texts per request, up to 50
	var result []subtitle.Cue
	totalBatches := (len(cues) + batchSize - 1) / batchSize

	for i := 0; i < len(cues); i += batchSize {
		end := i + batchSize
		if end > len(cues) {
			end = len(cues)
		}
		batch := cues[i:end]
		batchNum := i/batchSize + 1

		updateProgress(float64(i) / float64(len(cues)))

		log.Printf("[deepl] translating batch %d/%d (%d cues)", batchNum, totalBatches, len(batch))

		translated, err := d.translateBatch(ctx, batch, opts)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", batchNum, err)
		}

		result = append(result, translated...)
	}

	return result, nil
}

func (d *DeepL) translateBatch(ctx context.Context, cues []subtitle.Cue, opts Options) ([]subtitle.Cue, error) {
	form := url.Values{}
	for _, cue := range cues {
		form.Add("text", cue.Text)
	}
	form.Set("target_lang", deeplLangCode(opts.TargetLang))
	if opts.SourceLang != "" && opts.SourceLang != "auto" {
		form.Set("source_lang", deeplLangCode(opts.SourceLang))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", d.apiURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("DeepL API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DeepL API error (status %d): %s", resp.StatusCode, string(body))
	}

	var deeplResp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}

	if err := json.Unmarshal(body, &deeplResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	// Missing translations fall back to the original text
	result := make([]subtitle.Cue, len(cues))
	for i, cue := range cues {
		result[i] = subtitle.Cue{
			Index: cue.Index,
			Start: cue.Start,
			End:   cue.End,
		}
		if i < len(deeplResp.Translations) {
			result[i].Text = deeplResp.Translations[i].Text
		} else {
			result[i].Text = cue.Text
		}
	}

	return result, nil
}

// deeplLangCode converts ISO 639-1 codes to DeepL format
func deeplLangCode(code string) string {
	mapping := map[string]string{
		"en": "EN",
		"es": "ES",
		"fr": "FR",
		"de": "DE",
		"it": "IT",
		"pt": "PT-BR",
		"nl": "NL",
		"pl": "PL",
		"sv": "SV",
		"tr": "TR",
		"ru": "RU",
		"ja": "JA",
		"ko": "KO",
		"zh": "ZH",
	}
	if mapped, ok := mapping[code]; ok {
		return mapped
	}
	return strings.ToUpper(code)
}
