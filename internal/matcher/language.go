package matcher

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageDetector detects the language of job content among the catalog's
// locales. Texts the detector cannot classify (too short, mixed, empty)
// fall back to English rather than erroring.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a detector restricted to the catalog languages.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.French).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of the text's language.
func (d *LanguageDetector) Detect(text string) string {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return FallbackLanguage
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
