package releasenote

import "context"

type Repository interface {
	Save(ctx context.Context, n *Note) error
	Update(ctx context.Context, n *Note) error
	GetByID(ctx context.Context, id uint) (*Note, error)
	List(ctx context.Context, postedOnly bool) ([]*Note, error)
}
