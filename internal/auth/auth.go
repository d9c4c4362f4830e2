package auth

import (
	"context"
	"time"

	"github.com/mnuddindev/routinely/pkg/logger"
	"gorm.io/gorm"
)

// Revoker keeps the list of tokens invalidated by logout.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) bool
}

type Options struct {
	DB      *gorm.DB
	Tokens  *TokenManager
	Revoker Revoker
	Logger  *logger.Logger
}
