package analysis

import "strings"

// Word categories used for icon and style selection.
const (
	CategoryPerson  = "person"
	CategoryEmotion = "emotion"
	CategoryAction  = "action"
	CategoryTime    = "time"
	CategoryPlace   = "place"
	CategoryObject  = "object"
)

// Categories lists every category name in display order
func Categories() []string {
	return []string{CategoryPerson, CategoryEmotion, CategoryAction, CategoryTime, CategoryPlace, CategoryObject}
}

var categoryKeywords = map[string]map[string]bool{
	CategoryPerson: wordSet(`person people friend family mom dad parent parents
		his her them they brother sister uncle aunt boy girl man woman child baby
		guy lady mother father son daughter grandma grandpa husband wife`),
	CategoryEmotion: wordSet(`happy sad angry excited love hate fear joy
		laugh cry smile worry nervous proud scared surprised confused tired bored interested`),
	CategoryAction: wordSet(`run walk jump dance sing eat drink sleep
		work play write read speak listen watch cook build draw swim drive fly teach`),
	CategoryTime: wordSet(`today tomorrow yesterday now later soon
		never always morning afternoon evening night year month week day hour minute second`),
	CategoryPlace: wordSet(`home school office park city country
		street road building house apartment restaurant store shop market mall`),
	CategoryObject: wordSet(`phone computer laptop tablet book pen
		pencil paper notebook desk chair table bed door window car bike bus train`),
}

// categoryOf returns the first category whose keyword set contains the
// word, or empty for uncategorized words.
func categoryOf(text string) string {
	lower := strings.ToLower(text)
	for _, name := range Categories() {
		if categoryKeywords[name][lower] {
			return name
		}
	}
	return ""
}
