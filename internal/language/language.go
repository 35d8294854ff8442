package language

import (
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1
	code3   string // ISO 639-2/B as used on DVD subpicture streams
	alt3    string // ISO 639-2/T when it differs (e.g. "fra" vs "fre")
	display string
	word    string
}

var languages = []entry{
	{"en", "eng", "", "English", "english"},
	{"es", "spa", "", "Spanish", "spanish"},
	{"fr", "fre", "fra", "French", "french"},
	{"de", "ger", "deu", "German", "german"},
	{"it", "ita", "", "Italian", "italian"},
	{"pt", "por", "", "Portuguese", "portuguese"},
	{"ja", "jpn", "", "Japanese", "japanese"},
	{"ko", "kor", "", "Korean", "korean"},
	{"zh", "chi", "zho", "Chinese", "chinese"},
	{"ru", "rus", "", "Russian", "russian"},
	{"nl", "dut", "nld", "Dutch", "dutch"},
	{"sv", "swe", "", "Swedish", "swedish"},
	{"da", "dan", "", "Danish", "danish"},
	{"no", "nor", "", "Norwegian", "norwegian"},
	{"fi", "fin", "", "Finnish", "finnish"},
	{"pl", "pol", "", "Polish", "polish"},
}

var index = func() map[string]*entry {
	m := make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		m[e.code2] = e
		m[e.code3] = e
		m[e.word] = e
		if e.alt3 != "" {
			m[e.alt3] = e
		}
	}
	return m
}()

// Normalize converts a language code or English language word to the
// three-letter code HandBrakeCLI expects. Unknown input is an error.
func Normalize(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("language code is empty")
	}
	if e, ok := index[code]; ok {
		return e.code3, nil
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return "", fmt.Errorf("unknown language code %q", code)
	}
	iso3 := base.ISO3()
	if iso3 == "" || iso3 == "und" {
		return "", fmt.Errorf("unknown language code %q", code)
	}
	return iso3, nil
}

// DisplayName returns a human-readable name for a code, or the uppercased
// code when it is not in the builtin table.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if e, ok := index[strings.ToLower(trimmed)]; ok {
		return e.display
	}
	return strings.ToUpper(trimmed)
}
