package models

type CodeTicketModel struct {
	ID                uint   `gorm:"primaryKey"`
	Summary           string `gorm:"size:140;not null"`
	Description       string `gorm:"type:text"`
	URL               string `gorm:"size:255"`
	Browser           string `gorm:"size:255"`
	Status            string `gorm:"size:20;not null;index"`
	SupportIdentityID *uint  `gorm:"index"`
	DuplicateOfID     *uint  `gorm:"index"`
	ReleaseNoteID     *uint  `gorm:"index"`
	Version           int    `gorm:"not null;default:1"`
	CreatedAt         int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64  `gorm:"autoUpdateTime:milli;not null;index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (CodeTicketModel) TableName() string {
	return "code_tickets"
}

type CodeDetailModel struct {
	ID                uint   `gorm:"primaryKey"`
	CodeTicketID      uint   `gorm:"not null;index"`
	SupportIdentityID uint   `gorm:"not null;index"`
	Content           string `gorm:"type:text;not null"`
	SupportResponse   bool   `gorm:"not null;default:false"`
	SystemLog         bool   `gorm:"not null;default:false"`
	Private           bool   `gorm:"not null;default:false"`
	CreatedAt         int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (CodeDetailModel) TableName() string {
	return "code_details"
}

type CodeVoteModel struct {
	ID           uint  `gorm:"primaryKey"`
	CodeTicketID uint  `gorm:"not null;index"`
	UserID       uint  `gorm:"not null;index"`
	Weight       int   `gorm:"not null;default:1"`
	CreatedAt    int64 `gorm:"autoCreateTime:milli;not null"`
}

func (CodeVoteModel) TableName() string {
	return "code_votes"
}

// CodeWatchModel carries no uniqueness constraint on (ticket, email):
// duplicate rows are tolerated and recipients deduplicated at read time.
type CodeWatchModel struct {
	ID           uint   `gorm:"primaryKey"`
	CodeTicketID uint   `gorm:"not null;index"`
	Email        string `gorm:"size:255;not null;index"`
	Official     bool   `gorm:"not null;default:false"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
}

func (CodeWatchModel) TableName() string {
	return "code_watches"
}
