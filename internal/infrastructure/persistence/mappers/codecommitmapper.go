package mappers

import (
	"time"

	"github.com/cesy/support-board/internal/domain/codecommit"
	vo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
)

type CodeCommitMapper interface {
	ToModel(c *codecommit.Commit) *models.CodeCommitModel
	ToDomain(model *models.CodeCommitModel) (*codecommit.Commit, error)
}

type CodeCommitMapperImpl struct{}

func NewCodeCommitMapper() CodeCommitMapper {
	return &CodeCommitMapperImpl{}
}

func (m *CodeCommitMapperImpl) ToModel(c *codecommit.Commit) *models.CodeCommitModel {
	return &models.CodeCommitModel{
		ID:                c.ID(),
		Author:            c.Author(),
		Message:           c.Message(),
		Status:            c.Status().String(),
		SupportIdentityID: c.SupportIdentityID(),
		CodeTicketID:      c.CodeTicketID(),
		Version:           c.Version(),
		CreatedAt:         c.CreatedAt().UnixMilli(),
		UpdatedAt:         c.UpdatedAt().UnixMilli(),
	}
}

func (m *CodeCommitMapperImpl) ToDomain(model *models.CodeCommitModel) (*codecommit.Commit, error) {
	status, err := vo.NewCommitStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return codecommit.ReconstructCommit(
		model.ID,
		model.Author,
		model.Message,
		status,
		model.SupportIdentityID,
		model.CodeTicketID,
		model.Version,
		codeCommitConvertMillisToTime(model.CreatedAt),
		codeCommitConvertMillisToTime(model.UpdatedAt),
	)
}

func codeCommitConvertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
