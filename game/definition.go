package game

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/RedGuy12/ChainGameBot/models"
)

// ManualResult is a failed manual check: a title and explanation for the
// rejection report. A nil *ManualResult means the check passed.
type ManualResult struct {
	Title       string
	Explanation string
}

// Definition is the rule set for one game variant. Definitions are built once
// at startup and never change.
type Definition struct {
	// Name is the unique key for the game.
	Name string

	// Match, when set, must match the whole token before any other lookup.
	Match *regexp.Regexp

	// ValidWordsOnly requires the dictionary to recognize the token.
	ValidWordsOnly bool

	// Duplicates permits reuse of previously accepted words.
	Duplicates bool

	// TwiceInRow permits the same author to post consecutive words.
	TwiceInRow bool

	// ManualCheck, when set, applies the game's own chain rule to the
	// candidate and the last accepted entry (nil when the chain is empty).
	ManualCheck func(word string, last *models.WordEntry) *ManualResult
}

// Definitions is the closed set of supported games.
var Definitions = []*Definition{
	{
		Name:           "WordChain",
		Match:          regexp.MustCompile(`^[a-z']+$`),
		ValidWordsOnly: true,
		ManualCheck:    checkWordChain,
	},
	{
		Name:        "Counting",
		Match:       regexp.MustCompile(`^[0-9]+$`),
		ManualCheck: checkCounting,
	},
	{
		Name:           "Association",
		ValidWordsOnly: true,
		Duplicates:     true,
	},
}

// Lookup returns the definition with the given name, or nil.
func Lookup(name string) *Definition {
	for _, definition := range Definitions {
		if definition.Name == name {
			return definition
		}
	}
	return nil
}

// checkWordChain requires the candidate to start with the last letter of the
// previous word.
func checkWordChain(word string, last *models.WordEntry) *ManualResult {
	// A force-set entry may carry text the normal rules never see; an
	// empty previous word can't constrain the next one.
	if last == nil || last.Word == "" {
		return nil
	}

	required := last.Word[len(last.Word)-1:]
	if word[:1] != required {
		return &ManualResult{
			Title: "Wrong starting letter!",
			Explanation: fmt.Sprintf(
				"`%v` does not start with `%v` (the last letter of `%v`)!",
				word,
				required,
				last.Word,
			),
		}
	}

	return nil
}

// checkCounting requires the candidate to be the successor of the previous
// number, starting the chain at 1.
func checkCounting(word string, last *models.WordEntry) *ManualResult {
	value, err := strconv.Atoi(word)
	if err != nil {
		return &ManualResult{
			Title:       "Not a number!",
			Explanation: fmt.Sprintf("`%v` is not a number!", word),
		}
	}

	expected := 1
	if last != nil {
		previous, err := strconv.Atoi(last.Word)
		if err == nil {
			expected = previous + 1
		}
	}

	if value != expected {
		return &ManualResult{
			Title:       "Wrong number!",
			Explanation: fmt.Sprintf("The next number is %v, not %v!", expected, value),
		}
	}

	return nil
}
