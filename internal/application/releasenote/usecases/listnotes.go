package usecases

import (
	"context"
	"time"

	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/shared/logger"
	"github.com/cesy/support-board/internal/shared/markdown"
)

type ListNotesQuery struct {
	PostedOnly bool
}

type NoteSummary struct {
	NoteID      uint   `json:"note_id"`
	Release     string `json:"release"`
	ContentHTML string `json:"content_html"`
	Posted      bool   `json:"posted"`
	CreatedAt   string `json:"created_at"`
}

type ListNotesResult struct {
	Notes []NoteSummary `json:"notes"`
}

type ListNotesUseCase struct {
	notes    releasenote.Repository
	renderer markdown.Service
	logger   logger.Interface
}

func NewListNotesUseCase(notes releasenote.Repository, renderer markdown.Service, logger logger.Interface) *ListNotesUseCase {
	return &ListNotesUseCase{notes: notes, renderer: renderer, logger: logger}
}

// Execute lists release notes with their bodies rendered from markdown to
// sanitized HTML.
func (uc *ListNotesUseCase) Execute(ctx context.Context, q ListNotesQuery) (*ListNotesResult, error) {
	uc.logger.Debugw("executing list release notes use case", "posted_only", q.PostedOnly)

	notes, err := uc.notes.List(ctx, q.PostedOnly)
	if err != nil {
		uc.logger.Errorw("failed to list release notes", "error", err)
		return nil, err
	}

	out := make([]NoteSummary, 0, len(notes))
	for _, n := range notes {
		html, err := uc.renderer.ToHTMLSanitized(n.Content())
		if err != nil {
			uc.logger.Errorw("failed to render release note", "note_id", n.ID(), "error", err)
			return nil, err
		}
		out = append(out, NoteSummary{
			NoteID:      n.ID(),
			Release:     n.Release(),
			ContentHTML: html,
			Posted:      n.IsPosted(),
			CreatedAt:   n.CreatedAt().Format(time.RFC3339),
		})
	}

	return &ListNotesResult{Notes: out}, nil
}
