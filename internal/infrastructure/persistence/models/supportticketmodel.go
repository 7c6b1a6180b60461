package models

// SupportTicketModel is the slice of the user-facing support ticket table
// the workflow core touches: the code ticket linkage and the resolution
// flag. The support board itself lives in another service.
type SupportTicketModel struct {
	ID           uint  `gorm:"primaryKey"`
	CodeTicketID *uint `gorm:"index"`
	Resolved     bool  `gorm:"not null;default:false;index"`
	CreatedAt    int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (SupportTicketModel) TableName() string {
	return "support_tickets"
}
