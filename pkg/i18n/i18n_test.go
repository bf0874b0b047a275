package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate_English(t *testing.T) {
	result := Translate("dashboard.status.loaded", "en")
	assert.Equal(t, "Successfully connected and loaded!", result)
}

func TestTranslate_Hindi(t *testing.T) {
	result := Translate("dashboard.table.empty", "hi")
	assert.Equal(t, "कोई यात्रा नहीं मिली।", result)
}

func TestTranslate_FallsBackToEnglish_UnknownLang(t *testing.T) {
	result := Translate("dashboard.status.failed", "zh")
	assert.Equal(t, "Failed to connect to backend.", result)
}

func TestTranslate_EmptyLang_UsesEnglish(t *testing.T) {
	result := Translate("dashboard.phase.0", "")
	assert.Equal(t, "Initializing connection...", result)
}

func TestTranslate_UnknownKey_ReturnsKey(t *testing.T) {
	result := Translate("does.not.exist", "en")
	assert.Equal(t, "does.not.exist", result)
}

func TestTranslate_WithArgs(t *testing.T) {
	result := Translate("dashboard.table.summary", "en", 24, 2, 3, "₹331.00")
	assert.Equal(t, "24 trips match, page 2 of 3 (fare ceiling ₹331.00)", result)
}

func TestTranslations_CompleteForEveryLanguage(t *testing.T) {
	for key, byLang := range translations {
		for _, lang := range Languages {
			assert.NotEmpty(t, byLang[lang], "%s missing %s", key, lang)
		}
	}
	for i := 0; i < 5; i++ {
		_, ok := translations[PhaseKey(i)]
		assert.True(t, ok, PhaseKey(i))
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("hi"))
	assert.False(t, Supported("fr"))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{412.5, "INR", "₹412.50"},
		{0, "INR", "₹0.00"},
		{1234, "INR", "₹1,234.00"},
		{123456.5, "INR", "₹1,23,456.50"},
		{12345678.9, "INR", "₹1,23,45,678.90"},
		{-98765.4, "INR", "₹-98,765.40"},
		{15.5, "USD", "$15.50"},
		{25, "AED", "25.00 د.إ"},
		{10, "XYZ", "10.00 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
		})
	}
}
