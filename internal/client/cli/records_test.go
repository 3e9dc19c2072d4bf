package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurose/kotoba/internal/protocol"
)

type fakeRecords struct {
	kanji      *protocol.NewKanji
	vocab      *protocol.NewVocab
	group      *protocol.NewGroup
	groupTitle string
	member     string
	err        error
}

func (f *fakeRecords) AddKanji(_ context.Context, req *protocol.NewKanji) error {
	f.kanji = req
	return f.err
}
func (f *fakeRecords) AddVocab(_ context.Context, req *protocol.NewVocab) error {
	f.vocab = req
	return f.err
}
func (f *fakeRecords) AddGroup(_ context.Context, req *protocol.NewGroup) error {
	f.group = req
	return f.err
}
func (f *fakeRecords) AddKanjiToGroup(_ context.Context, groupTitle, symbol string) error {
	f.groupTitle, f.member = groupTitle, symbol
	return f.err
}
func (f *fakeRecords) AddVocabToGroup(_ context.Context, groupTitle, phrase string) error {
	f.groupTitle, f.member = groupTitle, phrase
	return f.err
}

// stubRecordInputs scripts the interactive prompts: text prompts are served
// from texts in order, list prompts from lists, and so on.
func stubRecordInputs(t *testing.T, texts []string, lists [][]string, optional *string, yes bool) func() {
	t.Helper()
	origST, origGL, origGO, origGY := getSimpleText, getList, getOptionalText, getYesNo

	ti, li := 0, 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		s := texts[ti]
		ti++
		return s, nil
	}
	getList = func(_ *bufio.Reader, _ string, _ io.Writer) ([]string, error) {
		l := lists[li]
		li++
		return l, nil
	}
	getOptionalText = func(_ *bufio.Reader, _ string, _ io.Writer) (*string, error) {
		return optional, nil
	}
	getYesNo = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) {
		return yes, nil
	}

	return func() {
		getSimpleText = origST
		getList = origGL
		getOptionalText = origGO
		getYesNo = origGY
	}
}

func TestAddKanji_BuildsRequest(t *testing.T) {
	f := &fakeRecords{}
	a := &App{recordService: f}

	restore := stubRecordInputs(t,
		[]string{"山", "mountain"},
		[][]string{{"サン"}, {"やま"}},
		nil, false)
	defer restore()

	require.NoError(t, a.AddKanji(context.Background()))

	require.NotNil(t, f.kanji)
	assert.Equal(t, "山", f.kanji.Symbol)
	assert.Equal(t, "mountain", f.kanji.Meaning)
	assert.Equal(t, []string{"サン"}, f.kanji.Onyomi)
	assert.Equal(t, []string{"やま"}, f.kanji.Kunyomi)
	assert.Nil(t, f.kanji.Description)
	assert.NotNil(t, f.kanji.VocabRefs)
	assert.Empty(t, f.kanji.VocabRefs)
}

func TestAddVocab_BuildsRequest(t *testing.T) {
	f := &fakeRecords{}
	a := &App{recordService: f}

	desc := "university"
	restore := stubRecordInputs(t,
		[]string{"大学", "university"},
		[][]string{{"だいがく"}},
		&desc, false)
	defer restore()

	require.NoError(t, a.AddVocab(context.Background()))

	require.NotNil(t, f.vocab)
	assert.Equal(t, "大学", f.vocab.Phrase)
	assert.Equal(t, []string{"だいがく"}, f.vocab.Reading)
	require.NotNil(t, f.vocab.Description)
	assert.Equal(t, "university", *f.vocab.Description)
	assert.NotNil(t, f.vocab.KanjiRefs)
	assert.Empty(t, f.vocab.KanjiRefs)
}

func TestAddGroup_BuildsRequest(t *testing.T) {
	f := &fakeRecords{}
	a := &App{recordService: f}

	colour := "#1a2b3c"
	restore := stubRecordInputs(t, []string{"JLPT N5"}, nil, &colour, true)
	defer restore()

	require.NoError(t, a.AddGroup(context.Background()))

	require.NotNil(t, f.group)
	assert.Equal(t, "JLPT N5", f.group.Title)
	require.NotNil(t, f.group.Colour)
	assert.Equal(t, "#1a2b3c", *f.group.Colour)
	require.NotNil(t, f.group.Vocab)
	assert.True(t, *f.group.Vocab)
}

func TestGroupAddKanji(t *testing.T) {
	f := &fakeRecords{}
	a := &App{recordService: f}

	restore := stubRecordInputs(t, []string{"JLPT N5", "山"}, nil, nil, false)
	defer restore()

	require.NoError(t, a.GroupAddKanji(context.Background()))
	assert.Equal(t, "JLPT N5", f.groupTitle)
	assert.Equal(t, "山", f.member)
}

func TestGroupAddVocab(t *testing.T) {
	f := &fakeRecords{}
	a := &App{recordService: f}

	restore := stubRecordInputs(t, []string{"Phrases", "大学"}, nil, nil, false)
	defer restore()

	require.NoError(t, a.GroupAddVocab(context.Background()))
	assert.Equal(t, "Phrases", f.groupTitle)
	assert.Equal(t, "大学", f.member)
}
