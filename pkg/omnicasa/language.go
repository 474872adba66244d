package omnicasa

const DefaultLanguage = "nl"

var languages = map[string]int{
	"nl": 1,
	"fr": 2,
	"en": 3,
}

// LanguageID maps a language code to the numeric LanguageId sent with every
// request. Codes are case-sensitive and unknown codes fall back to Dutch.
func LanguageID(code string) int {
	if id, ok := languages[code]; ok {
		return id
	}
	return languages[DefaultLanguage]
}
