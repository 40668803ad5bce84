package theme

import "strings"

// Style is the resolved visual treatment of one word
type Style struct {
	Color      string `json:"color"`
	Background string `json:"background,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Underline  bool   `json:"underline,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Animation  string `json:"animation,omitempty"`
}

// Category styles. Categorized words keep their category color even when
// highlighted; the icon is the category fallback when no word-specific
// context icon matches.
var categoryStyles = map[string]Style{
	"person":  {Color: "#FF5733", Bold: true, Icon: "👥", Animation: AnimationScale},
	"emotion": {Color: "#FF33A8", Icon: "😊", Animation: AnimationPulse},
	"action":  {Color: "#33FF57", Bold: true, Icon: "🏃", Animation: AnimationShake},
	"time":    {Color: "#3357FF", Icon: "⏰", Animation: AnimationRotate},
	"place":   {Color: "#FFDA33", Icon: "📍", Animation: AnimationBounce},
	"object":  {Color: "#A833FF", Icon: "📱", Animation: AnimationFade},
}

// Word-specific icons, keyed by category then lowercase word.
var contextIcons = map[string]map[string]string{
	"person": {
		"person": "🧑", "people": "👥", "friend": "🤝",
		"family": "👨‍👩‍👧‍👦", "mom": "👩", "mother": "👩",
		"dad": "👨", "father": "👨", "parent": "👪", "parents": "👪",
	},
	"emotion": {
		"happy": "😊", "sad": "😢", "angry": "😠",
		"excited": "🤩", "love": "❤️", "hate": "😡",
		"fear": "😨", "joy": "😃", "laugh": "😂",
		"cry": "😭", "smile": "😊", "worry": "😟",
	},
	"action": {
		"run": "🏃", "walk": "🚶", "jump": "⬆️",
		"dance": "💃", "sing": "🎤", "eat": "🍽️",
		"drink": "🥤", "sleep": "😴", "work": "💼",
	},
	"time": {
		"today": "📅", "tomorrow": "📆", "yesterday": "📅",
		"now": "⌛", "later": "⏳", "soon": "🔜",
		"never": "❌", "always": "♾️",
	},
	"place": {
		"home": "🏠", "school": "🏫", "office": "🏢",
		"park": "🏞️", "city": "🌆", "country": "🗺️",
		"street": "🛣️", "road": "🛣️", "building": "🏛️",
	},
	"object": {
		"phone": "📱", "computer": "💻", "laptop": "💻",
		"tablet": "📱", "book": "📚", "pen": "🖊️",
		"pencil": "✏️", "paper": "📄", "notebook": "📓",
	},
}

// CategoryStyle returns the base style for a category name
func CategoryStyle(name string) (Style, bool) {
	s, ok := categoryStyles[name]
	return s, ok
}

var importantStyle = Style{Color: "#FF9900", Bold: true, Icon: "⭐", Animation: AnimationGlow}

// ImportantStyle returns the default treatment of uncategorized important
// words; the resolver swaps the color for the theme highlight.
func ImportantStyle() Style { return importantStyle }

// Emphasis styles selectable per span in the HTML exporter.
var emphasisStyles = map[string]Style{
	"strong":    {Color: "#FF0000", Bold: true, Underline: true, Animation: AnimationScale},
	"highlight": {Color: "#000000", Background: "#FFFF00", Animation: AnimationGlow},
	"special":   {Color: "#9C27B0", Italic: true, Animation: AnimationRotate},
}

// Emphasis returns a named emphasis style, falling back to the default
func Emphasis(name string) Style {
	if s, ok := emphasisStyles[name]; ok {
		return s
	}
	return Style{Color: "#000000"}
}

var sentimentColors = map[string]string{
	"POSITIVE": "#4CAF50",
	"NEGATIVE": "#F44336",
	"NEUTRAL":  "#2196F3",
}

// SentimentColor maps a sentiment label to its display color
func SentimentColor(label string) string {
	if c, ok := sentimentColors[strings.ToUpper(label)]; ok {
		return c
	}
	return sentimentColors["NEUTRAL"]
}

// Icon size classes by importance score.
const (
	IconSmall  = "small"  // 0.8em
	IconMedium = "medium" // 1em
	IconLarge  = "large"  // 1.2em
)

// IconSize picks the icon size class for an importance score
func IconSize(importance float64) string {
	switch {
	case importance > 0.7:
		return IconLarge
	case importance < 0.3:
		return IconSmall
	default:
		return IconMedium
	}
}

// IconSizeCSS maps size classes to font sizes for the HTML exporter
func IconSizeCSS() map[string]string {
	return map[string]string{
		IconSmall:  "0.8em",
		IconMedium: "1em",
		IconLarge:  "1.2em",
	}
}
