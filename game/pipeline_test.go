package game

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedGuy12/ChainGameBot/models"
)

type fakeStore struct {
	last    *models.WordEntry
	byWord  map[string]*models.WordEntry
	deleted []string
}

func (store *fakeStore) LastWord(game string, guildID string) (*models.WordEntry, error) {
	return store.last, nil
}

func (store *fakeStore) FindWord(game string, guildID string, word string) (*models.WordEntry, error) {
	return store.byWord[word], nil
}

func (store *fakeStore) DeleteWordEntry(entry *models.WordEntry) error {
	store.deleted = append(store.deleted, entry.MessageID)
	delete(store.byWord, entry.Word)
	return nil
}

type fakeDictionary struct {
	known map[string]bool
	err   error
}

func (dict *fakeDictionary) IsWord(word string) (bool, error) {
	if dict.err != nil {
		return false, dict.err
	}
	return dict.known[word], nil
}

type fakeMessages struct {
	existing map[string]bool
}

func (messages *fakeMessages) MessageExists(channelID string, messageID string) bool {
	return messages.existing[messageID]
}

func newTestPipeline(store *fakeStore, dict *fakeDictionary) *Pipeline {
	return &Pipeline{
		Store:      store,
		Dictionary: dict,
		Messages:   &fakeMessages{existing: map[string]bool{}},
	}
}

func anythingGoes() *Definition {
	return &Definition{
		Name:       "AnythingGoes",
		Duplicates: true,
		TwiceInRow: true,
	}
}

func strictGame() *Definition {
	return &Definition{
		Name:           "Foo",
		Match:          regexp.MustCompile(`^[a-z]+$`),
		ValidWordsOnly: true,
	}
}

func submission(def *Definition, word string) Submission {
	return Submission{
		Game:      def,
		GuildID:   "guild-1",
		Word:      word,
		Raw:       word,
		Author:    "user-1",
		MessageID: "msg-1",
	}
}

func TestValidate_MultiWord(t *testing.T) {
	pipeline := newTestPipeline(&fakeStore{}, &fakeDictionary{})

	// Internal whitespace loses regardless of how lenient the game is.
	accept, rejection, err := pipeline.Validate(submission(anythingGoes(), "c a t"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, accept)
	require.NotNil(t, rejection)
	assert.Equal(t, MultiWord, rejection.Kind)
}

func TestValidate_InvalidCharacters(t *testing.T) {
	pipeline := newTestPipeline(&fakeStore{}, &fakeDictionary{})

	accept, rejection, err := pipeline.Validate(submission(strictGame(), "cat2"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, accept)
	require.NotNil(t, rejection)
	assert.Equal(t, InvalidCharacters, rejection.Kind)
}

func TestValidate_NotAWord(t *testing.T) {
	pipeline := newTestPipeline(&fakeStore{}, &fakeDictionary{known: map[string]bool{"cat": true}})

	accept, rejection, err := pipeline.Validate(submission(strictGame(), "xyzzyqq"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, accept)
	require.NotNil(t, rejection)
	assert.Equal(t, NotAWord, rejection.Kind)
}

func TestValidate_RawTextRecognized(t *testing.T) {
	// The normalized token is unknown but the raw text is a real entry.
	pipeline := newTestPipeline(&fakeStore{}, &fakeDictionary{known: map[string]bool{"CAT": true}})

	sub := submission(strictGame(), "cat")
	sub.Raw = "CAT"

	accept, rejection, err := pipeline.Validate(sub, "chan-1")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, accept)
}

func TestValidate_DictionaryFailureIsAnError(t *testing.T) {
	pipeline := newTestPipeline(&fakeStore{}, &fakeDictionary{err: errors.New("network down")})

	accept, rejection, err := pipeline.Validate(submission(strictGame(), "cat"), "chan-1")
	require.Error(t, err)
	assert.Nil(t, accept)
	assert.Nil(t, rejection)
}

func TestValidate_ManualCheck(t *testing.T) {
	def := anythingGoes()
	def.ManualCheck = func(word string, last *models.WordEntry) *ManualResult {
		return &ManualResult{Title: "Nope!", Explanation: "just no"}
	}
	pipeline := newTestPipeline(&fakeStore{}, &fakeDictionary{})

	accept, rejection, err := pipeline.Validate(submission(def, "cat"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, accept)
	require.NotNil(t, rejection)
	assert.Equal(t, ManualRuleViolation, rejection.Kind)
	assert.Equal(t, "Nope!", rejection.Title)
	assert.Equal(t, "just no", rejection.Explanation)
}

func TestValidate_ConsecutivePost(t *testing.T) {
	store := &fakeStore{last: &models.WordEntry{Word: "cat", Author: "user-1", Idx: 4}}
	def := &Definition{Name: "NoRepeats", Duplicates: true}
	pipeline := newTestPipeline(store, &fakeDictionary{})

	accept, rejection, err := pipeline.Validate(submission(def, "tiger"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, accept)
	require.NotNil(t, rejection)
	assert.Equal(t, ConsecutivePost, rejection.Kind)

	// A different author is fine.
	sub := submission(def, "tiger")
	sub.Author = "user-2"
	accept, rejection, err = pipeline.Validate(sub, "chan-1")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, accept)
	assert.Equal(t, 5, accept.NextIndex)
}

func TestValidate_TwiceInRowAllowed(t *testing.T) {
	store := &fakeStore{last: &models.WordEntry{Word: "cat", Author: "user-1", Idx: 0}}
	pipeline := newTestPipeline(store, &fakeDictionary{})

	accept, rejection, err := pipeline.Validate(submission(anythingGoes(), "tiger"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, accept)
	assert.Equal(t, 1, accept.NextIndex)
}

func TestValidate_ExemptGuildMayRepeat(t *testing.T) {
	store := &fakeStore{last: &models.WordEntry{Word: "cat", Author: "user-1", Idx: 0}}
	def := &Definition{Name: "NoRepeats", Duplicates: true}
	pipeline := newTestPipeline(store, &fakeDictionary{})
	pipeline.TwiceExempt = func(guildID string) bool { return guildID == "guild-1" }

	accept, rejection, err := pipeline.Validate(submission(def, "tiger"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, accept)
}

func TestValidate_DuplicateWord(t *testing.T) {
	prior := &models.WordEntry{Word: "cat", Author: "user-2", MessageID: "msg-0", Idx: 0}
	store := &fakeStore{
		last:   prior,
		byWord: map[string]*models.WordEntry{"cat": prior},
	}
	def := &Definition{Name: "NoDupes"}
	pipeline := newTestPipeline(store, &fakeDictionary{})
	pipeline.Messages = &fakeMessages{existing: map[string]bool{"msg-0": true}}

	accept, rejection, err := pipeline.Validate(submission(def, "cat"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, accept)
	require.NotNil(t, rejection)
	assert.Equal(t, DuplicateWord, rejection.Kind)
	require.NotNil(t, rejection.Prior)
	assert.Equal(t, "user-2", rejection.Prior.Author)
	assert.Equal(t, "msg-0", rejection.Prior.MessageID)
}

func TestValidate_StaleDuplicateIsCleanedUp(t *testing.T) {
	prior := &models.WordEntry{Word: "cat", Author: "user-2", MessageID: "msg-0", Idx: 0}
	store := &fakeStore{
		last:   prior,
		byWord: map[string]*models.WordEntry{"cat": prior},
	}
	def := &Definition{Name: "NoDupes"}
	pipeline := newTestPipeline(store, &fakeDictionary{})

	// The prior message no longer exists, so the word goes through and the
	// ghost entry is removed.
	accept, rejection, err := pipeline.Validate(submission(def, "cat"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, accept)
	assert.Equal(t, []string{"msg-0"}, store.deleted)
	assert.Empty(t, store.byWord)
}

func TestValidate_EmptyChainStartsAtZero(t *testing.T) {
	pipeline := newTestPipeline(&fakeStore{}, &fakeDictionary{known: map[string]bool{"cat": true}})

	accept, rejection, err := pipeline.Validate(submission(strictGame(), "cat"), "chan-1")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, accept)
	assert.Equal(t, 0, accept.NextIndex)
}

func TestValidate_OverrideSkipsAllChecks(t *testing.T) {
	store := &fakeStore{last: &models.WordEntry{Word: "cat", Author: "user-1", Idx: 7}}
	pipeline := newTestPipeline(store, &fakeDictionary{})

	sub := submission(strictGame(), "not a word at all!!")
	sub.Override = true

	accept, rejection, err := pipeline.Validate(sub, "chan-1")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, accept)
	assert.Equal(t, 8, accept.NextIndex)
}
