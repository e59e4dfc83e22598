package services

import (
	"context"
	"time"

	"github.com/AnshRaj112/userorders-backend/internal/models"
)

// UserStore is the persistence contract of the user service. Lookups are
// keyed by the application userId. Methods return ErrUserNotFound when no
// document matches, and never return the password hash on reads.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.UserSummary, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	// Update applies patch and returns the resulting document.
	Update(ctx context.Context, userID string, patch models.UserPatch, now time.Time) (*models.User, error)
	Delete(ctx context.Context, userID string) error
	AppendOrder(ctx context.Context, userID string, order models.Order, now time.Time) error
	Ping(ctx context.Context) error
}
