package language

import (
	"errors"
	"strings"

	xlang "golang.org/x/text/language"
)

var (
	ErrUnsupportedLanguage = errors.New("language not in supported set")
	ErrThresholdNotMet     = errors.New("detection confidence below threshold")
)

// Profile describes one supported language: its code, a display name, the
// model identifiers backing analysis for it, and capability flags.
type Profile struct {
	Code        string   `json:"code" yaml:"code"`
	Name        string   `json:"name" yaml:"name"`
	Models      []string `json:"models" yaml:"models"`
	Sentiment   bool     `json:"sentiment" yaml:"sentiment"`
	Translation bool     `json:"translation" yaml:"translation"`
}

// Normalize reduces a language code to its lowercase base form
// ("EN-us" -> "en"). Unparseable codes are lowercased as-is.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	tag, err := xlang.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}

// Defaults returns the built-in language profiles
func Defaults() []Profile {
	return []Profile{
		{Code: "en", Name: "English", Models: []string{"en_core_web_sm"}, Sentiment: true, Translation: true},
		{Code: "es", Name: "Spanish", Models: []string{"es_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "fr", Name: "French", Models: []string{"fr_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "de", Name: "German", Models: []string{"de_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "it", Name: "Italian", Models: []string{"it_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "pt", Name: "Portuguese", Models: []string{"pt_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "nl", Name: "Dutch", Models: []string{"nl_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "pl", Name: "Polish", Models: []string{"pl_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "sv", Name: "Swedish", Models: []string{"xx_ent_wiki_sm"}, Sentiment: true, Translation: true},
		{Code: "tr", Name: "Turkish", Models: []string{"xx_ent_wiki_sm"}, Sentiment: true, Translation: true},
		{Code: "ru", Name: "Russian", Models: []string{"ru_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "ja", Name: "Japanese", Models: []string{"ja_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "ko", Name: "Korean", Models: []string{"ko_core_news_sm"}, Sentiment: true, Translation: true},
		{Code: "zh", Name: "Chinese", Models: []string{"zh_core_web_sm"}, Sentiment: true, Translation: true},
		{Code: "ar", Name: "Arabic", Models: []string{"xx_ent_wiki_sm"}, Sentiment: true, Translation: false},
		{Code: "hi", Name: "Hindi", Models: []string{"xx_ent_wiki_sm"}, Sentiment: true, Translation: false},
	}
}
