package narrative

import (
	"context"
	"errors"
	"strings"
	"time"

	"finhealth/internal/logger"
)

// DefaultLanguage is the language reports are generated in.
const DefaultLanguage = "en"

// SupportedLanguages lists the report languages.
var SupportedLanguages = []string{"en", "hi", "es"}

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"es": "Spanish",
}

// IsSupportedLanguage reports whether code is a report language.
func IsSupportedLanguage(code string) bool {
	_, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// Translator translates report text.
type Translator interface {
	Translate(ctx context.Context, text, language string) (string, error)
}

// LLMTranslator translates with a TextModel.
type LLMTranslator struct {
	model TextModel
}

// NewLLMTranslator creates a Translator on top of model.
func NewLLMTranslator(model TextModel) *LLMTranslator {
	return &LLMTranslator{model: model}
}

// Translate implements Translator.
func (t *LLMTranslator) Translate(ctx context.Context, text, language string) (string, error) {
	name := languageNames[language]
	if name == "" {
		name = language
	}
	prompt := "You are a professional financial translator.\n" +
		"Translate the following SME financial report into " + name + ".\n" +
		"Maintain the formal tone and preserve all financial metrics and terms (e.g. Net Cashflow, Margin).\n" +
		"Return ONLY the translated text without any preamble or quotes.\n\n" +
		"Report:\n" + text

	out, err := t.model.GenerateText(ctx, prompt, "", false)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(strings.ReplaceAll(out, "```", ""))
	if out == "" {
		return "", errors.New("translation came back empty")
	}
	return out, nil
}

// TranslateOrKeep translates text into language when possible. English,
// unsupported languages, a nil translator and translation failures all
// return the original text with translated set to false. A positive timeout
// bounds the translator call.
func TranslateOrKeep(ctx context.Context, tr Translator, text, language string, timeout time.Duration) (string, bool) {
	log := logger.Get()
	lang := strings.ToLower(strings.TrimSpace(language))

	if lang == "" || lang == DefaultLanguage || tr == nil {
		return text, false
	}
	if !IsSupportedLanguage(lang) {
		log.Warnw("Unsupported report language, skipping translation", "language", lang)
		return text, false
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := tr.Translate(ctx, text, lang)
	if err != nil {
		log.Errorw("Translation failed", "language", lang, "error", err)
		return text, false
	}
	log.Infow("Translation completed", "language", lang)
	return out, true
}
