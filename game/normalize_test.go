package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "cat", Normalize("  CAT\n"))
	assert.Equal(t, "don't", Normalize("Don`t"))
	assert.Equal(t, "c a t", Normalize(" c a t "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize("　"))
}
