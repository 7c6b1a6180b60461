package usecases

import (
	"context"

	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

// TransactionManager runs a unit of work in one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CreateNoteCommand struct {
	Release string
	Content string
	Actor   identity.Actor
}

type CreateNoteResult struct {
	NoteID  uint   `json:"note_id"`
	Release string `json:"release"`
}

type CreateNoteUseCase struct {
	notes  releasenote.Repository
	tx     TransactionManager
	logger logger.Interface
}

func NewCreateNoteUseCase(notes releasenote.Repository, tx TransactionManager, logger logger.Interface) *CreateNoteUseCase {
	return &CreateNoteUseCase{notes: notes, tx: tx, logger: logger}
}

// Execute drafts a release note. Notes start unposted; only the batch
// deploy marks them posted. Admin only.
func (uc *CreateNoteUseCase) Execute(ctx context.Context, cmd CreateNoteCommand) (*CreateNoteResult, error) {
	uc.logger.Infow("executing create release note use case", "release", cmd.Release)

	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewPermissionDeniedError("drafting a release note requires support admin capability")
	}

	n, err := releasenote.NewNote(cmd.Release, cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return uc.notes.Save(ctx, n)
	})
	if err != nil {
		uc.logger.Errorw("failed to create release note", "release", cmd.Release, "error", err)
		return nil, err
	}

	uc.logger.Infow("release note created", "note_id", n.ID(), "release", n.Release())
	return &CreateNoteResult{NoteID: n.ID(), Release: n.Release()}, nil
}
