package services

import (
	"context"

	"github.com/dkurose/kotoba/internal/client/client"
	"github.com/dkurose/kotoba/internal/protocol"
)

// RecordService defines the record-management operations of the CLI:
// creating character and phrase entries, creating groups, and adding
// entries to groups. All operations require a logged-in session.
type RecordService interface {
	AddKanji(ctx context.Context, req *protocol.NewKanji) error
	AddVocab(ctx context.Context, req *protocol.NewVocab) error
	AddGroup(ctx context.Context, req *protocol.NewGroup) error
	AddKanjiToGroup(ctx context.Context, groupTitle, symbol string) error
	AddVocabToGroup(ctx context.Context, groupTitle, phrase string) error
}

type recordService struct {
	client client.Client
}

// NewRecordService constructs a RecordService bound to the given API client.
func NewRecordService(client client.Client) RecordService {
	return &recordService{client: client}
}

func (s *recordService) AddKanji(ctx context.Context, req *protocol.NewKanji) error {
	return s.client.Do(ctx, protocol.CmdCreateKanji, req, nil)
}

func (s *recordService) AddVocab(ctx context.Context, req *protocol.NewVocab) error {
	return s.client.Do(ctx, protocol.CmdCreateVocab, req, nil)
}

func (s *recordService) AddGroup(ctx context.Context, req *protocol.NewGroup) error {
	return s.client.Do(ctx, protocol.CmdCreateGroup, req, nil)
}

func (s *recordService) AddKanjiToGroup(ctx context.Context, groupTitle, symbol string) error {
	req := protocol.GroupKanji{GroupTitle: groupTitle, KanjiSymbol: symbol}
	return s.client.Do(ctx, protocol.CmdCreateGroupKanji, &req, nil)
}

func (s *recordService) AddVocabToGroup(ctx context.Context, groupTitle, phrase string) error {
	req := protocol.GroupVocab{GroupTitle: groupTitle, VocabPhrase: phrase}
	return s.client.Do(ctx, protocol.CmdCreateGroupVocab, &req, nil)
}
