package ocr

import (
	"regexp"
	"strings"
	"unicode"
)

// PosterInfo is the structured content parsed from a poster's raw text.
type PosterInfo struct {
	Phones     []string          `json:"phones"`
	Reward     bool              `json:"reward"`
	Keywords   []string          `json:"keywords"`
	Attributes map[string]string `json:"attributes"`
}

// Peruvian mobile numbers: nine digits starting with 9, optionally grouped
// as 9xx xxx xxx with spaces or dashes.
var phonePattern = regexp.MustCompile(`9\d{2}[-\s]?\d{3}[-\s]?\d{3}`)

var rewardPattern = regexp.MustCompile(`(?i)(recompensa|s/|soles|\$)`)

// posterKeywords are the appearance/species terms worth tagging.
var posterKeywords = []string{
	"blanco", "negro", "marrón", "café", "crema", "caramelo", "dorado", "gris", "manchas",
	"chico", "pequeño", "mediano", "grande", "macho", "hembra", "perro", "gato",
}

var attributePatterns = map[string]*regexp.Regexp{
	"color": regexp.MustCompile(`color\s*[:\.]?\s*([a-zA-Zá-ú\s]+)`),
	"raza":  regexp.MustCompile(`raza\s*[:\.]?\s*([a-zA-Zá-ú\s]+)`),
	"sexo":  regexp.MustCompile(`sexo\s*[:\.]?\s*([a-zA-Zá-ú\s]+)`),
}

var fallbackColors = []string{"blanco", "negro", "marrón", "caramelo", "crema", "dorado"}

// posterDistricts is ordered longest-name-first so that, e.g., "San Juan
// de Lurigancho" is matched before "Lima" appears somewhere in the text.
var posterDistricts = []string{
	"villa maría del triunfo", "san juan de lurigancho", "san juan de miraflores",
	"santiago de surco", "san martín de porres", "santa maría del mar", "magdalena del mar",
	"villa el salvador", "lurigancho", "la victoria", "puente piedra",
	"punta hermosa", "independencia", "el agustino", "jesús maría", "pueblo libre",
	"pachacamac", "san bartolo", "san isidro", "san miguel", "santa anita", "santa rosa",
	"carabayllo", "chaclacayo", "chorrillos", "cieneguilla", "la molina", "los olivos",
	"miraflores", "punta negra", "san borja", "san luis", "surquillo", "barranco",
	"pucusana", "ancon", "breña", "comas", "lince", "lurin", "rimac", "lima", "ate",
}

// ParsePoster extracts phones, reward mentions, keyword tags and loose
// attributes from raw OCR text. Parsing is best-effort: absent fields stay
// empty, and no input ever fails.
func ParsePoster(raw string) *PosterInfo {
	info := &PosterInfo{
		Phones:     []string{},
		Keywords:   []string{},
		Attributes: map[string]string{},
	}
	if raw == "" {
		return info
	}
	lower := strings.ToLower(raw)

	for _, match := range phonePattern.FindAllString(raw, -1) {
		digits := strings.NewReplacer(" ", "", "-", "").Replace(match)
		if len(digits) == 9 {
			info.Phones = append(info.Phones, "+51"+digits)
		}
	}

	info.Reward = rewardPattern.MatchString(lower)

	for _, kw := range posterKeywords {
		if strings.Contains(lower, kw) {
			info.Keywords = append(info.Keywords, kw)
		}
	}

	for attr, pattern := range attributePatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			value := strings.SplitN(m[1], "\n", 2)[0]
			info.Attributes[attr] = titleCase(strings.TrimSpace(value))
		}
	}

	if _, ok := info.Attributes["color"]; !ok {
		for _, c := range fallbackColors {
			if strings.Contains(lower, c) {
				info.Attributes["color"] = titleCase(c)
				break
			}
		}
	}
	if _, ok := info.Attributes["sexo"]; !ok {
		if strings.Contains(lower, "macho") {
			info.Attributes["sexo"] = "Macho"
		} else if strings.Contains(lower, "hembra") {
			info.Attributes["sexo"] = "Hembra"
		}
	}

	for _, d := range posterDistricts {
		if strings.Contains(lower, d) {
			info.Attributes["distrito"] = titleCase(d)
			break
		}
	}

	return info
}

// titleCase uppercases the first rune of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
