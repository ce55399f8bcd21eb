package languageutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t,
		[]string{"casual", "smart casual", "work"},
		NormalizeTags([]string{" Casual", "smart casual", "", "CASUAL", "  ", "Work"}),
	)
	assert.Empty(t, NormalizeTags(nil))
}

func TestNormalizeClothingType(t *testing.T) {
	assert.Equal(t, "TOP", NormalizeClothingType(" top "))
	assert.Equal(t, "SHOES", NormalizeClothingType("Shoes"))
}
