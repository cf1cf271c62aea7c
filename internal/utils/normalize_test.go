package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNameLower(t *testing.T) {
	assert.Equal(t, "iron fitness", NormalizeNameLower("  Iron   Fitness "))
	assert.Equal(t, "", NormalizeNameLower("   "))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "iron-fitness", Slugify("Iron Fitness"))
	assert.Equal(t, "cafe-gym", Slugify("Café Gym"))
	assert.Equal(t, "gym-247", Slugify("Gym 24/7"))
	assert.Equal(t, "a-b", Slugify("a   -  b"))
	assert.Equal(t, "", Slugify("  "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestSearchTokens(t *testing.T) {
	got := SearchTokens("Iron Fitness", "MG Road")
	assert.Equal(t, []string{"iron fitness", "iron", "fitness", "mg road", "mg", "road"}, got)

	assert.Empty(t, SearchTokens("", "  "))
}

func TestTrimMax(t *testing.T) {
	assert.Equal(t, "abc", TrimMax("  abc  ", 10))
	assert.Equal(t, "abcde", TrimMax("abcdefgh", 5))
	assert.Equal(t, "", TrimMax("", 5))
}
