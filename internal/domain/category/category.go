package category

import (
	"context"

	"jobboard/internal/common"
)

type Category struct {
	ID   common.UUID `json:"id"`
	Name string      `json:"name"`
	Slug string      `json:"slug"`
}

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id common.UUID) (*Category, error)
}
