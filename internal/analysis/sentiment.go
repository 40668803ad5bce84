package analysis

import "strings"

// Label thresholds: aggregate scores inside (-0.05, 0.05) read as neutral.
const sentimentDeadband = 0.05

var negators = wordSet("not never no nobody nothing neither nor without hardly barely cannot")

var intensifiers = wordSet("very really extremely so totally absolutely completely quite")

// scoreSentiment fills per-word sentiment from the language's lexicon and
// aggregates it per cue. A negator within the two preceding words flips a
// hit; an intensifier amplifies it.
func (a *Analyzer) scoreSentiment(res *Result) {
	lex := lexiconFor(res.Language)
	if lex == nil {
		return
	}

	cueTotals := make(map[int]float64)
	cueHits := make(map[int]int)

	for i := range res.Words {
		w := &res.Words[i]
		if w.POS == POSPunct {
			continue
		}
		polarity, ok := lex[strings.ToLower(w.Text)]
		if !ok {
			continue
		}

		factor := 1.0
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			prev := strings.ToLower(res.Words[j].Text)
			if negators[prev] {
				factor = -factor
			}
			if intensifiers[prev] {
				factor *= 1.5
			}
		}
		score := clip(polarity*factor, -1, 1)

		w.SentimentScore = score
		w.Sentiment = labelFor(score)
		cueTotals[w.Cue] += score
		cueHits[w.Cue]++
	}

	for _, cue := range res.Cues {
		label, score := Neutral, 0.0
		if hits := cueHits[cue.Index]; hits > 0 {
			score = clip(cueTotals[cue.Index]/float64(hits), -1, 1)
			label = labelFor(score)
		}
		res.CueSentiments = append(res.CueSentiments, CueSentiment{
			Cue:   cue.Index,
			Label: label,
			Score: score,
		})
	}
}

func labelFor(score float64) string {
	switch {
	case score > sentimentDeadband:
		return Positive
	case score < -sentimentDeadband:
		return Negative
	default:
		return Neutral
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lexiconFor(lang string) map[string]float64 {
	if lex, ok := lexicons[lang]; ok {
		return lex
	}
	return nil
}

var lexicons = map[string]map[string]float64{
	"en": {
		"good": 0.6, "great": 0.8, "excellent": 0.9, "amazing": 0.9, "wonderful": 0.9,
		"fantastic": 0.9, "love": 0.8, "loved": 0.8, "like": 0.4, "liked": 0.4,
		"happy": 0.7, "joy": 0.8, "beautiful": 0.7, "best": 0.8, "better": 0.5,
		"nice": 0.5, "perfect": 0.9, "awesome": 0.9, "brilliant": 0.8, "win": 0.6,
		"won": 0.6, "success": 0.7, "smile": 0.5, "laugh": 0.5, "fun": 0.6,
		"friend": 0.4, "hope": 0.5, "glad": 0.6, "proud": 0.6, "thank": 0.5,
		"thanks": 0.5, "safe": 0.4, "right": 0.3, "yes": 0.2, "sweet": 0.5,
		"bad": -0.6, "terrible": -0.9, "awful": -0.9, "horrible": -0.9, "worst": -0.9,
		"hate": -0.8, "hated": -0.8, "sad": -0.7, "angry": -0.7, "fear": -0.6,
		"afraid": -0.6, "cry": -0.5, "pain": -0.7, "hurt": -0.6, "die": -0.8,
		"dead": -0.7, "death": -0.7, "kill": -0.8, "wrong": -0.5, "fail": -0.7,
		"failed": -0.7, "lose": -0.5, "lost": -0.5, "problem": -0.4, "trouble": -0.5,
		"worry": -0.5, "scared": -0.6, "ugly": -0.6, "stupid": -0.6, "broken": -0.5,
		"never": -0.2, "no": -0.2, "danger": -0.6, "dangerous": -0.6, "alone": -0.4,
	},
	"es": {
		"bueno": 0.6, "buena": 0.6, "excelente": 0.9, "feliz": 0.7, "amor": 0.8,
		"hermoso": 0.7, "hermosa": 0.7, "mejor": 0.6, "perfecto": 0.9, "gracias": 0.5,
		"bien": 0.5, "alegre": 0.7, "éxito": 0.7, "ganar": 0.6, "sonrisa": 0.5,
		"malo": -0.6, "mala": -0.6, "terrible": -0.9, "horrible": -0.9, "odio": -0.8,
		"triste": -0.7, "miedo": -0.6, "dolor": -0.7, "muerte": -0.7, "peor": -0.7,
		"problema": -0.4, "perder": -0.5, "matar": -0.8, "feo": -0.6, "mal": -0.5,
	},
	"fr": {
		"bon": 0.6, "bonne": 0.6, "excellent": 0.9, "heureux": 0.7, "heureuse": 0.7,
		"amour": 0.8, "beau": 0.7, "belle": 0.7, "meilleur": 0.6, "parfait": 0.9,
		"merci": 0.5, "bien": 0.5, "joie": 0.8, "sourire": 0.5, "gagner": 0.6,
		"mauvais": -0.6, "terrible": -0.8, "horrible": -0.9, "haine": -0.8, "triste": -0.7,
		"peur": -0.6, "douleur": -0.7, "mort": -0.7, "pire": -0.7, "problème": -0.4,
		"perdre": -0.5, "tuer": -0.8, "laid": -0.6, "mal": -0.5, "seul": -0.3,
	},
	"de": {
		"gut": 0.6, "gute": 0.6, "ausgezeichnet": 0.9, "glücklich": 0.7, "liebe": 0.8,
		"schön": 0.7, "besser": 0.5, "perfekt": 0.9, "danke": 0.5, "freude": 0.8,
		"lächeln": 0.5, "gewinnen": 0.6, "erfolg": 0.7, "froh": 0.6, "sicher": 0.4,
		"schlecht": -0.6, "schrecklich": -0.9, "furchtbar": -0.9, "hass": -0.8, "traurig": -0.7,
		"angst": -0.6, "schmerz": -0.7, "tod": -0.7, "tot": -0.7, "schlimmste": -0.9,
		"problem": -0.4, "verlieren": -0.5, "töten": -0.8, "hässlich": -0.6, "allein": -0.4,
	},
}
