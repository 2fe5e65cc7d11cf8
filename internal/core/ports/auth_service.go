package ports

import (
	"context"
	"time"

	"github.com/taskmate/taskmate-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error)
}
