package mappers

import (
	"time"

	"github.com/cesy/support-board/internal/domain/codeticket"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
)

// CodeTicketMapper handles the conversion between CodeTicket domain entities
// and persistence models.
type CodeTicketMapper interface {
	ToModel(t *codeticket.Ticket) *models.CodeTicketModel
	ToDomain(model *models.CodeTicketModel) (*codeticket.Ticket, error)

	DetailToModel(d *codeticket.Detail) *models.CodeDetailModel
	DetailToDomain(model *models.CodeDetailModel) (*codeticket.Detail, error)

	VoteToModel(v *codeticket.Vote) *models.CodeVoteModel
	VoteToDomain(model *models.CodeVoteModel) (*codeticket.Vote, error)

	WatchToModel(w *codeticket.Watch) *models.CodeWatchModel
	WatchToDomain(model *models.CodeWatchModel) (*codeticket.Watch, error)
}

type CodeTicketMapperImpl struct{}

func NewCodeTicketMapper() CodeTicketMapper {
	return &CodeTicketMapperImpl{}
}

func (m *CodeTicketMapperImpl) ToModel(t *codeticket.Ticket) *models.CodeTicketModel {
	return &models.CodeTicketModel{
		ID:                t.ID(),
		Summary:           t.Summary(),
		Description:       t.Description(),
		URL:               t.URL(),
		Browser:           t.Browser(),
		Status:            t.Status().String(),
		SupportIdentityID: t.SupportIdentityID(),
		DuplicateOfID:     t.DuplicateOfID(),
		ReleaseNoteID:     t.ReleaseNoteID(),
		Version:           t.Version(),
		CreatedAt:         t.CreatedAt().UnixMilli(),
		UpdatedAt:         t.UpdatedAt().UnixMilli(),
	}
}

func (m *CodeTicketMapperImpl) ToDomain(model *models.CodeTicketModel) (*codeticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return codeticket.ReconstructTicket(
		model.ID,
		model.Summary,
		model.Description,
		model.URL,
		model.Browser,
		status,
		model.SupportIdentityID,
		model.DuplicateOfID,
		model.ReleaseNoteID,
		model.Version,
		codeTicketConvertMillisToTime(model.CreatedAt),
		codeTicketConvertMillisToTime(model.UpdatedAt),
	)
}

func (m *CodeTicketMapperImpl) DetailToModel(d *codeticket.Detail) *models.CodeDetailModel {
	return &models.CodeDetailModel{
		ID:                d.ID(),
		CodeTicketID:      d.TicketID(),
		SupportIdentityID: d.SupportIdentityID(),
		Content:           d.Content(),
		SupportResponse:   d.IsSupportResponse(),
		SystemLog:         d.IsSystemLog(),
		Private:           d.IsPrivate(),
		CreatedAt:         d.CreatedAt().UnixMilli(),
	}
}

func (m *CodeTicketMapperImpl) DetailToDomain(model *models.CodeDetailModel) (*codeticket.Detail, error) {
	return codeticket.ReconstructDetail(
		model.ID,
		model.CodeTicketID,
		model.SupportIdentityID,
		model.Content,
		model.SupportResponse,
		model.SystemLog,
		model.Private,
		codeTicketConvertMillisToTime(model.CreatedAt),
	)
}

func (m *CodeTicketMapperImpl) VoteToModel(v *codeticket.Vote) *models.CodeVoteModel {
	return &models.CodeVoteModel{
		ID:           v.ID(),
		CodeTicketID: v.TicketID(),
		UserID:       v.UserID(),
		Weight:       v.Weight(),
		CreatedAt:    v.CreatedAt().UnixMilli(),
	}
}

func (m *CodeTicketMapperImpl) VoteToDomain(model *models.CodeVoteModel) (*codeticket.Vote, error) {
	return codeticket.ReconstructVote(
		model.ID,
		model.CodeTicketID,
		model.UserID,
		model.Weight,
		codeTicketConvertMillisToTime(model.CreatedAt),
	)
}

func (m *CodeTicketMapperImpl) WatchToModel(w *codeticket.Watch) *models.CodeWatchModel {
	return &models.CodeWatchModel{
		ID:           w.ID(),
		CodeTicketID: w.TicketID(),
		Email:        w.Email(),
		Official:     w.IsOfficial(),
		CreatedAt:    w.CreatedAt().UnixMilli(),
	}
}

func (m *CodeTicketMapperImpl) WatchToDomain(model *models.CodeWatchModel) (*codeticket.Watch, error) {
	return codeticket.ReconstructWatch(
		model.ID,
		model.CodeTicketID,
		model.Email,
		model.Official,
		codeTicketConvertMillisToTime(model.CreatedAt),
	)
}

func codeTicketConvertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
