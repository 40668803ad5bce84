package language

import (
	"fmt"
	"strings"
	"unicode"
)

// Result is one detection outcome: the best-scoring language and how
// dominant it was over the alternatives.
type Result struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Detector assigns a language code to free text by scoring a bounded sample
// against the supported profiles. Non-Latin scripts are recognized by rune
// ranges; Latin-script languages by marker-word frequency.
type Detector struct {
	profiles   map[string]Profile
	threshold  float64
	sampleSize int
}

// NewDetector builds a detector over the given profiles. threshold must lie
// in [0,1]; sampleSize is the number of leading words inspected.
func NewDetector(profiles []Profile, threshold float64, sampleSize int) (*Detector, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("detection threshold %v outside [0,1]", threshold)
	}
	if sampleSize <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", sampleSize)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no language profiles configured")
	}
	byCode := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byCode[Normalize(p.Code)] = p
	}
	return &Detector{profiles: byCode, threshold: threshold, sampleSize: sampleSize}, nil
}

// Threshold returns the configured confidence threshold
func (d *Detector) Threshold() float64 { return d.threshold }

// Resolve looks up the profile for a language code
func (d *Detector) Resolve(code string) (Profile, error) {
	if p, ok := d.profiles[Normalize(code)]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
}

// Profiles returns the supported profiles. Order is not guaranteed.
func (d *Detector) Profiles() []Profile {
	out := make([]Profile, 0, len(d.profiles))
	for _, p := range d.profiles {
		out = append(out, p)
	}
	return out
}

// Detect samples the text and returns the best language with a confidence
// in [0,1]. A confidence below the threshold returns ErrThresholdNotMet
// alongside the best guess; a confident hit on a language outside the
// supported set returns ErrUnsupportedLanguage.
func (d *Detector) Detect(text string) (Result, error) {
	sample := sampleWords(text, d.sampleSize)
	if len(sample) == 0 {
		return Result{}, fmt.Errorf("%w: no text to sample", ErrThresholdNotMet)
	}
	sampleText := strings.Join(sample, " ")

	lang, confidence := detectScript(sampleText)
	if lang == "" {
		lang, confidence = d.scoreMarkers(sample, sampleText)
	}
	res := Result{Language: lang, Confidence: confidence}

	if confidence < d.threshold || lang == "" {
		return res, fmt.Errorf("%w: %.2f < %.2f", ErrThresholdNotMet, confidence, d.threshold)
	}
	if _, ok := d.profiles[lang]; !ok {
		return res, fmt.Errorf("%w: detected %q", ErrUnsupportedLanguage, lang)
	}
	return res, nil
}

func sampleWords(text string, limit int) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, limit)
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'()[]-")
		if f == "" {
			continue
		}
		words = append(words, f)
		if len(words) == limit {
			break
		}
	}
	return words
}

// detectScript recognizes languages written in distinctive scripts. The
// confidence is the fraction of letters belonging to the winning script.
func detectScript(text string) (string, float64) {
	var total, kana, han, hangul, cyrillic, arabic, devanagari int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		switch {
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			kana++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Devanagari, r):
			devanagari++
		}
	}
	if total == 0 {
		return "", 0
	}
	frac := func(n int) float64 { return float64(n) / float64(total) }
	switch {
	// Kana is unambiguous Japanese; Han without kana reads as Chinese.
	case kana > 0 && frac(kana+han) > 0.5:
		return "ja", frac(kana + han)
	case frac(han) > 0.5:
		return "zh", frac(han)
	case frac(hangul) > 0.5:
		return "ko", frac(hangul)
	case frac(cyrillic) > 0.5:
		return "ru", frac(cyrillic)
	case frac(arabic) > 0.5:
		return "ar", frac(arabic)
	case frac(devanagari) > 0.5:
		return "hi", frac(devanagari)
	}
	return "", 0
}

// scoreMarkers scores Latin-script languages by marker-word hits plus a
// small diacritic bonus. Confidence is the winner's margin over the
// runner-up: best / (best + second). All marker languages are scored, not
// just the supported ones, so a confident hit outside the supported set can
// be reported as such.
func (d *Detector) scoreMarkers(sample []string, sampleText string) (string, float64) {
	scores := make(map[string]float64)
	for code, set := range markerWords {
		hits := 0
		for _, w := range sample {
			if set[w] {
				hits++
			}
		}
		score := float64(hits) / float64(len(sample))
		if runes, ok := markerRunes[code]; ok {
			bonus := 0.0
			for _, r := range sampleText {
				if strings.ContainsRune(runes, r) {
					bonus += 0.02
				}
			}
			if bonus > 0.2 {
				bonus = 0.2
			}
			score += bonus
		}
		if score > 0 {
			scores[code] = score
		}
	}

	best, bestScore, second := "", 0.0, 0.0
	for code, score := range scores {
		switch {
		case score > bestScore || (score == bestScore && (best == "" || code < best)):
			if best != "" {
				second = bestScore
			}
			best, bestScore = code, score
		case score > second:
			second = score
		}
	}
	if bestScore == 0 {
		return "", 0
	}
	return best, bestScore / (bestScore + second)
}

var markerWords = map[string]map[string]bool{
	"en": wordSet("the and is are was were you that this have with for not but what"),
	"es": wordSet("el la los las es está que de un una por con para no pero como en"),
	"fr": wordSet("le les est et que de un une pour dans avec pas vous je ce"),
	"de": wordSet("der die das und ist nicht ein eine mit für ich aber auch wir haben"),
	"it": wordSet("il che di un una per con non sono ma come questo anche della"),
	"pt": wordSet("os as que de um uma para com não mas como isso está você"),
	"nl": wordSet("de het een en is niet van dat je voor met maar zijn ook wat"),
	"pl": wordSet("jest nie się na to czy ale jak tak co przez dla już być"),
	"sv": wordSet("och det att är inte en ett jag på för med har som den vi"),
	"tr": wordSet("bir ve bu için ama ben sen değil evet ne gibi çok var yok"),
}

var markerRunes = map[string]string{
	"es": "ñ¿¡áíóú",
	"fr": "àâçèêëîïôùûœ",
	"de": "äöüß",
	"pt": "ãõêç",
	"it": "àèìòù",
	"sv": "åäö",
	"pl": "ąćęłńśźż",
	"tr": "şğı",
}

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
