package mappers

import (
	"time"

	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
)

type ReleaseNoteMapper interface {
	ToModel(n *releasenote.Note) *models.ReleaseNoteModel
	ToDomain(model *models.ReleaseNoteModel) (*releasenote.Note, error)
}

type ReleaseNoteMapperImpl struct{}

func NewReleaseNoteMapper() ReleaseNoteMapper {
	return &ReleaseNoteMapperImpl{}
}

func (m *ReleaseNoteMapperImpl) ToModel(n *releasenote.Note) *models.ReleaseNoteModel {
	return &models.ReleaseNoteModel{
		ID:        n.ID(),
		Release:   n.Release(),
		Content:   n.Content(),
		Posted:    n.IsPosted(),
		CreatedAt: n.CreatedAt().UnixMilli(),
		UpdatedAt: n.UpdatedAt().UnixMilli(),
	}
}

func (m *ReleaseNoteMapperImpl) ToDomain(model *models.ReleaseNoteModel) (*releasenote.Note, error) {
	return releasenote.ReconstructNote(
		model.ID,
		model.Release,
		model.Content,
		model.Posted,
		releaseNoteConvertMillisToTime(model.CreatedAt),
		releaseNoteConvertMillisToTime(model.UpdatedAt),
	)
}

func releaseNoteConvertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
