package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDuelCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateDuelCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestNormalizeDuelCode(t *testing.T) {
	assert.Equal(t, "ABC123", NormalizeDuelCode("  abc123 "))
	assert.Equal(t, "ABC123", NormalizeDuelCode("ABC123"))
}

func TestCleanDisplayName(t *testing.T) {
	assert.Equal(t, "Alice", CleanDisplayName("  <b>Alice</b> "))
	long := "ééééééééééééééééééééééééééééééééééééééééééééééééééééééééééé"
	assert.Len(t, []rune(CleanDisplayName(long)), MaxDisplayNameLength)
}
