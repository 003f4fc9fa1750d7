package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedGuy12/ChainGameBot/models"
)

func TestLookup(t *testing.T) {
	require.NotNil(t, Lookup("WordChain"))
	require.NotNil(t, Lookup("Counting"))
	require.NotNil(t, Lookup("Association"))
	assert.Nil(t, Lookup("Tag"))
	assert.Nil(t, Lookup(""))
}

func TestWordChainCheck(t *testing.T) {
	def := Lookup("WordChain")

	// An empty chain accepts any word, as does a stored entry with no
	// usable word.
	assert.Nil(t, def.ManualCheck("cat", nil))
	assert.Nil(t, def.ManualCheck("cat", &models.WordEntry{Word: ""}))

	last := &models.WordEntry{Word: "cat"}
	assert.Nil(t, def.ManualCheck("tiger", last))

	result := def.ManualCheck("dog", last)
	require.NotNil(t, result)
	assert.Contains(t, result.Explanation, "`t`")
}

func TestCountingCheck(t *testing.T) {
	def := Lookup("Counting")

	assert.Nil(t, def.ManualCheck("1", nil))

	result := def.ManualCheck("2", nil)
	require.NotNil(t, result)
	assert.Contains(t, result.Explanation, "1")

	last := &models.WordEntry{Word: "41"}
	assert.Nil(t, def.ManualCheck("42", last))

	result = def.ManualCheck("43", last)
	require.NotNil(t, result)
	assert.Contains(t, result.Explanation, "42")
}
