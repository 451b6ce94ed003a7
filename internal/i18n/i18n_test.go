package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.Equal(t, "找不到商品", T("zh_TW", KeyProductNotFound))
	assert.Equal(t, "Order cannot move from PENDING to DELIVERED",
		T("en", KeyOrderInvalidTransition, "PENDING", "DELIVERED"))

	// unknown language falls back to the default
	assert.Equal(t, "Product not found", T("fr", KeyProductNotFound))
	// unknown key falls back to the key itself
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))

	assert.ElementsMatch(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
	assert.True(t, IsSupported("zh_TW"))
	assert.False(t, IsSupported("de"))
}

func TestLocalesShareKeys(t *testing.T) {
	require.NoError(t, Initialize("en"))

	en := instance.translations["en"]
	zh := instance.translations["zh_TW"]
	require.NotEmpty(t, en)
	for key := range en {
		assert.Contains(t, zh, key)
	}
	assert.Len(t, zh, len(en))
}
