package user

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	SetAccountStatus(ctx context.Context, id common.UUID, status AccountStatus) (*User, error)
	Delete(ctx context.Context, id common.UUID) error
}
