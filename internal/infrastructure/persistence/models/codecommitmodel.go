package models

type CodeCommitModel struct {
	ID                uint   `gorm:"primaryKey"`
	Author            string `gorm:"size:255;not null;index"`
	Message           string `gorm:"type:text"`
	Status            string `gorm:"size:20;not null;index"`
	SupportIdentityID uint   `gorm:"not null;index"`
	CodeTicketID      *uint  `gorm:"index"`
	Version           int    `gorm:"not null;default:1"`
	CreatedAt         int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CodeCommitModel) TableName() string {
	return "code_commits"
}
