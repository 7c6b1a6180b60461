package releasenote

import (
	"fmt"
	"time"

	"github.com/cesy/support-board/internal/shared/biztime"
)

// Note is a release note. Posted starts false and becomes true only through
// the batch deploy operation.
type Note struct {
	id        uint
	release   string
	content   string
	posted    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewNote(release, content string) (*Note, error) {
	if len(release) == 0 {
		return nil, fmt.Errorf("release label is required")
	}

	now := biztime.NowUTC()
	return &Note{
		release:   release,
		content:   content,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructNote(
	id uint,
	release, content string,
	posted bool,
	createdAt, updatedAt time.Time,
) (*Note, error) {
	if id == 0 {
		return nil, fmt.Errorf("release note ID cannot be zero")
	}
	if len(release) == 0 {
		return nil, fmt.Errorf("release label is required")
	}

	return &Note{
		id:        id,
		release:   release,
		content:   content,
		posted:    posted,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (n *Note) ID() uint {
	return n.id
}

func (n *Note) Release() string {
	return n.release
}

func (n *Note) Content() string {
	return n.content
}

func (n *Note) IsPosted() bool {
	return n.posted
}

func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Note) UpdatedAt() time.Time {
	return n.updatedAt
}

func (n *Note) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("release note ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("release note ID cannot be zero")
	}
	n.id = id
	return nil
}

// MarkPosted flips the posted flag. Called only by the batch deploy.
func (n *Note) MarkPosted() {
	if n.posted {
		return
	}
	n.posted = true
	n.updatedAt = biztime.NowUTC()
}
