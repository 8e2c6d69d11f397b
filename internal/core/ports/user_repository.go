package ports

import (
	"context"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

// ProfileUpdate carries the self-editable account fields. Nil means unchanged.
type ProfileUpdate struct {
	Name            *string
	Phone           *string
	ProfileImageURL *string
}

// UserRepository defines persistence for registered accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist, keyed by id. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
