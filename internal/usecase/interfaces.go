package usecase

import (
	"context"
	"time"

	"newsroom/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type RoleRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Role, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
}

type ArticleRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Article, error)
	List(ctx context.Context) ([]domain.Article, error)
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id uint) error
}

// PermissionCache memoizes flattened grant sets per user.
type PermissionCache interface {
	Get(ctx context.Context, userID uint) ([]string, bool, error)
	Put(ctx context.Context, userID uint, grants []string, ttl time.Duration) error
}
