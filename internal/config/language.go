package config

import (
	"strings"

	"golang.org/x/text/language"
)

// supportedLanguages is the fixed allowlist of language codes the upstream
// provider accepts for the lang parameter.
var supportedLanguages = map[string]struct{}{
	"en":    {},
	"ru":    {}, // Russian
	"it":    {}, // Italian
	"es":    {}, // Spanish
	"sp":    {}, // Spanish
	"uk":    {}, // Ukrainian
	"ua":    {}, // Ukrainian
	"de":    {}, // German
	"pt":    {}, // Portuguese
	"ro":    {}, // Romanian
	"pl":    {}, // Polish
	"fi":    {}, // Finnish
	"nl":    {}, // Dutch
	"fr":    {}, // French
	"bg":    {}, // Bulgarian
	"sv":    {}, // Swedish
	"se":    {}, // Swedish
	"zh_tw": {}, // Chinese Traditional
	"zh_cn": {}, // Chinese Simplified
	"tr":    {}, // Turkish
	"hr":    {}, // Croatian
	"ca":    {}, // Catalan
}

// LanguageCode derives the upstream lang parameter from a locale tag such as
// "de-DE" or "zh-TW". Chinese needs its region appended to disambiguate
// Traditional from Simplified. Anything outside the allowlist falls back to
// English.
func LanguageCode(locale string) string {
	// Environment locales often look like "en_US.UTF-8".
	locale = strings.SplitN(locale, ".", 2)[0]

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "en"
	}

	base, _ := tag.Base()
	selector := base.String()

	if selector == "zh" {
		if region, _ := tag.Region(); region.IsCountry() {
			selector += "_" + strings.ToLower(region.String())
		}
	}

	if _, ok := supportedLanguages[selector]; ok {
		return selector
	}
	return "en"
}
