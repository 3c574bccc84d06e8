package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageCode(t *testing.T) {
	cases := []struct {
		locale string
		want   string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"en_US.UTF-8", "en"},
		{"de-DE", "de"},
		{"fr", "fr"},
		{"pt-BR", "pt"},
		{"hr", "hr"},
		{"sv-SE", "sv"},

		// Chinese needs the region suffix to disambiguate scripts.
		{"zh-TW", "zh_tw"},
		{"zh_CN", "zh_cn"},

		// Outside the allowlist, or unparsable: default to English.
		{"ja-JP", "en"},
		{"ko", "en"},
		{"", "en"},
		{"not a locale", "en"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, LanguageCode(tc.locale), "locale %q", tc.locale)
	}
}
