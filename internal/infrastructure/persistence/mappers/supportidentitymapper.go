package mappers

import (
	"time"

	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
)

type SupportIdentityMapper interface {
	ToModel(si *identity.SupportIdentity) *models.SupportIdentityModel
	ToDomain(model *models.SupportIdentityModel) (*identity.SupportIdentity, error)
}

type SupportIdentityMapperImpl struct{}

func NewSupportIdentityMapper() SupportIdentityMapper {
	return &SupportIdentityMapperImpl{}
}

func (m *SupportIdentityMapperImpl) ToModel(si *identity.SupportIdentity) *models.SupportIdentityModel {
	return &models.SupportIdentityModel{
		ID:        si.ID(),
		Name:      si.Name(),
		UserID:    si.UserID(),
		CreatedAt: si.CreatedAt().UnixMilli(),
		UpdatedAt: si.UpdatedAt().UnixMilli(),
	}
}

func (m *SupportIdentityMapperImpl) ToDomain(model *models.SupportIdentityModel) (*identity.SupportIdentity, error) {
	return identity.ReconstructSupportIdentity(
		model.ID,
		model.Name,
		model.UserID,
		identityConvertMillisToTime(model.CreatedAt),
		identityConvertMillisToTime(model.UpdatedAt),
	)
}

func identityConvertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
