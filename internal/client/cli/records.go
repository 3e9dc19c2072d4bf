package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dkurose/kotoba/internal/protocol"
)

// Indirections for interactive input, swappable in tests.
var getList = GetList
var getOptionalText = GetOptionalText
var getYesNo = GetYesNo

// AddKanji prompts for the fields of a character entry and creates it.
// Cross-references are filled in by the server, so vocab_refs is sent empty.
func (a *App) AddKanji(ctx context.Context) error {
	symbol, err := getSimpleText(a.reader, "Enter symbol", os.Stdout)
	if err != nil {
		return err
	}
	meaning, err := getSimpleText(a.reader, "Enter meaning", os.Stdout)
	if err != nil {
		return err
	}
	onyomi, err := getList(a.reader, "Enter onyomi readings", os.Stdout)
	if err != nil {
		return err
	}
	kunyomi, err := getList(a.reader, "Enter kunyomi readings", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getOptionalText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	req := &protocol.NewKanji{
		Symbol:      symbol,
		Meaning:     meaning,
		Onyomi:      onyomi,
		Kunyomi:     kunyomi,
		Description: description,
		VocabRefs:   []string{},
	}
	if err := a.recordService.AddKanji(ctx, req); err != nil {
		log.Printf("Adding kanji unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// AddVocab prompts for the fields of a phrase entry and creates it.
func (a *App) AddVocab(ctx context.Context) error {
	phrase, err := getSimpleText(a.reader, "Enter phrase", os.Stdout)
	if err != nil {
		return err
	}
	meaning, err := getSimpleText(a.reader, "Enter meaning", os.Stdout)
	if err != nil {
		return err
	}
	reading, err := getList(a.reader, "Enter readings", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getOptionalText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	req := &protocol.NewVocab{
		Phrase:      phrase,
		Meaning:     meaning,
		Reading:     reading,
		Description: description,
		KanjiRefs:   []string{},
	}
	if err := a.recordService.AddVocab(ctx, req); err != nil {
		log.Printf("Adding vocab unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// AddGroup prompts for a group title, an optional colour and the group kind.
func (a *App) AddGroup(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter group title", os.Stdout)
	if err != nil {
		return err
	}
	colour, err := getOptionalText(a.reader, "Enter colour, e.g. #1a2b3c", os.Stdout)
	if err != nil {
		return err
	}
	vocab, err := getYesNo(a.reader, "Is this a vocab group?", os.Stdout)
	if err != nil {
		return err
	}

	req := &protocol.NewGroup{Title: title, Colour: colour, Vocab: &vocab}
	if err := a.recordService.AddGroup(ctx, req); err != nil {
		log.Printf("Adding group unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// GroupAddKanji prompts for a group title and a symbol and links them.
func (a *App) GroupAddKanji(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter group title", os.Stdout)
	if err != nil {
		return err
	}
	symbol, err := getSimpleText(a.reader, "Enter symbol", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.recordService.AddKanjiToGroup(ctx, title, symbol); err != nil {
		log.Printf("Adding kanji to group unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// GroupAddVocab prompts for a group title and a phrase and links them.
func (a *App) GroupAddVocab(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter group title", os.Stdout)
	if err != nil {
		return err
	}
	phrase, err := getSimpleText(a.reader, "Enter phrase", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.recordService.AddVocabToGroup(ctx, title, phrase); err != nil {
		log.Printf("Adding vocab to group unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}
