package models

type ReleaseNoteModel struct {
	ID        uint   `gorm:"primaryKey"`
	Release   string `gorm:"size:100;not null;uniqueIndex"`
	Content   string `gorm:"type:text"`
	Posted    bool   `gorm:"not null;default:false;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ReleaseNoteModel) TableName() string {
	return "release_notes"
}
