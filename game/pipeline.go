package game

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/RedGuy12/ChainGameBot/models"
)

// RejectionKind classifies why a submission was turned away.
type RejectionKind int

const (
	// MultiWord: the token contains internal whitespace.
	MultiWord RejectionKind = iota
	// InvalidCharacters: the token fails the game's character pattern.
	InvalidCharacters
	// NotAWord: the dictionary recognizes neither the token nor the raw text.
	NotAWord
	// ManualRuleViolation: the game's own chain rule failed.
	ManualRuleViolation
	// ConsecutivePost: the author also posted the previous accepted word.
	ConsecutivePost
	// DuplicateWord: the word was already used in this guild's chain.
	DuplicateWord
)

// Rejection is a failed validation: the kind, a title and explanation for the
// report embed, and for duplicates a reference to the prior entry.
type Rejection struct {
	Kind        RejectionKind
	Title       string
	Explanation string
	Prior       *models.WordEntry
}

// Accept is a passed validation, carrying the index the new entry must take.
type Accept struct {
	NextIndex int
}

// Submission is one candidate message for a chain.
type Submission struct {
	Game    *Definition
	GuildID string
	// Word is the normalized token; Raw is the message text as sent.
	Word      string
	Raw       string
	Author    string
	MessageID string
	// Override skips all checks; used by the administrative force-set path.
	Override bool
}

// WordStore is the chain persistence the pipeline reads (and, for stale
// duplicate entries only, deletes from).
type WordStore interface {
	LastWord(game string, guildID string) (*models.WordEntry, error)
	FindWord(game string, guildID string, word string) (*models.WordEntry, error)
	DeleteWordEntry(entry *models.WordEntry) error
}

// Dictionary reports whether a token is a recognized word. An error means the
// lookup itself failed, not that the token is unrecognized.
type Dictionary interface {
	IsWord(word string) (bool, error)
}

// MessageChecker reports whether the message behind a stored entry still
// exists on the platform.
type MessageChecker interface {
	MessageExists(channelID string, messageID string) bool
}

// Pipeline validates submissions against a game's rules and the stored chain.
type Pipeline struct {
	Store      WordStore
	Dictionary Dictionary
	Messages   MessageChecker
	// TwiceExempt reports guilds where the consecutive-author rule is off.
	TwiceExempt func(guildID string) bool
}

// Validate runs the ordered rule checks for one submission. Exactly one of
// the returns is set: an acceptance with the next chain index, a rejection
// with its explanation, or an error from a collaborator.
//
// Validation mutates nothing, with one exception: a stored duplicate whose
// originating message has been deleted is removed so it can't block the word
// forever.
func (pipeline *Pipeline) Validate(sub Submission, channelID string) (*Accept, *Rejection, error) {
	last, err := pipeline.Store.LastWord(sub.Game.Name, sub.GuildID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch last word: %w", err)
	}

	nextIndex := 0
	if last != nil {
		nextIndex = last.Idx + 1
	}

	if sub.Override {
		return &Accept{NextIndex: nextIndex}, nil, nil
	}

	if strings.IndexFunc(sub.Word, unicode.IsSpace) >= 0 {
		return nil, &Rejection{
			Kind:        MultiWord,
			Title:       "More than one word!",
			Explanation: fmt.Sprintf("`%v` is more than one word!", sub.Word),
		}, nil
	}

	if sub.Game.Match != nil && !sub.Game.Match.MatchString(sub.Word) {
		return nil, &Rejection{
			Kind:        InvalidCharacters,
			Title:       "Invalid character sent!",
			Explanation: fmt.Sprintf("`%v` contains invalid characters!", sub.Word),
		}, nil
	}

	if sub.Game.ValidWordsOnly {
		known, err := pipeline.Dictionary.IsWord(sub.Word)
		if err != nil {
			return nil, nil, fmt.Errorf("dictionary lookup failed: %w", err)
		}
		if !known {
			// The raw text may be recognized even when the
			// normalized token isn't.
			known, err = pipeline.Dictionary.IsWord(sub.Raw)
			if err != nil {
				return nil, nil, fmt.Errorf("dictionary lookup failed: %w", err)
			}
		}
		if !known {
			return nil, &Rejection{
				Kind:        NotAWord,
				Title:       "Not a word!",
				Explanation: fmt.Sprintf("`%v` is not a word!", sub.Word),
			}, nil
		}
	}

	if sub.Game.ManualCheck != nil {
		if result := sub.Game.ManualCheck(sub.Word, last); result != nil {
			return nil, &Rejection{
				Kind:        ManualRuleViolation,
				Title:       result.Title,
				Explanation: result.Explanation,
			}, nil
		}
	}

	exempt := pipeline.TwiceExempt != nil && pipeline.TwiceExempt(sub.GuildID)
	if !sub.Game.TwiceInRow && !exempt && last != nil && last.Author == sub.Author {
		return nil, &Rejection{
			Kind:        ConsecutivePost,
			Title:       "Posting twice in a row!",
			Explanation: "No posting twice in a row allowed!",
		}, nil
	}

	if !sub.Game.Duplicates {
		used, err := pipeline.Store.FindWord(sub.Game.Name, sub.GuildID, sub.Word)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up prior use: %w", err)
		}
		if used != nil {
			if pipeline.Messages.MessageExists(channelID, used.MessageID) {
				return nil, &Rejection{
					Kind:        DuplicateWord,
					Title:       "Duplicate word!",
					Explanation: fmt.Sprintf("`%v` has been used before by <@%v>!", sub.Word, used.Author),
					Prior:       used,
				}, nil
			}
			// The message behind the prior use is gone; drop the
			// ghost entry and let the word through.
			if err := pipeline.Store.DeleteWordEntry(used); err != nil {
				return nil, nil, fmt.Errorf("failed to delete stale entry: %w", err)
			}
		}
	}

	return &Accept{NextIndex: nextIndex}, nil, nil
}
