package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/userorders-backend/internal/models"
	"github.com/AnshRaj112/userorders-backend/pkg/utils"
)

// UserService implements the user and order operations on top of a
// UserStore. Each operation issues at most one read and one write.
type UserService struct {
	store      UserStore
	cache      UserCache
	logger     *slog.Logger
	bcryptCost int
	nowFn      func() time.Time
}

// NewUserService wires the service. cache may be nil to disable caching.
func NewUserService(logger *slog.Logger, store UserStore, cache UserCache, bcryptCost int) *UserService {
	if cache == nil {
		cache = noopCache{}
	}
	return &UserService{
		store:      store,
		cache:      cache,
		logger:     logger,
		bcryptCost: bcryptCost,
		nowFn:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser hashes the password and inserts the user with no orders.
func (s *UserService) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	hashed, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, persistence("hash password", err)
	}

	userID := string(in.UserID)
	if userID == "" {
		userID = uuid.New().String()
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	now := s.nowFn()
	user := &models.User{
		UserID:    userID,
		Username:  in.Username,
		Password:  hashed,
		FullName:  in.FullName,
		Age:       in.Age,
		Email:     in.Email,
		IsActive:  isActive,
		Hobbies:   in.Hobbies,
		Address:   in.Address,
		Orders:    []models.Order{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.Normalize()

	if err := s.store.Insert(ctx, user); err != nil {
		return nil, persistence("create user", err)
	}

	created := user.Clone()
	created.Password = ""
	return &created, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, persistence("list users", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.loadUser(ctx, userID)
}

// UpdateUser shallow-merges patch onto the stored user. A new password is
// hashed before it is written.
func (s *UserService) UpdateUser(ctx context.Context, userID string, patch models.UserPatch) (*models.User, error) {
	if patch.Password != nil {
		hashed, err := utils.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, persistence("hash password", err)
		}
		patch.Password = &hashed
	}

	user, err := s.store.Update(ctx, userID, patch, s.nowFn())
	if err != nil {
		return nil, persistence("update user", err)
	}
	s.invalidate(ctx, userID)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return persistence("delete user", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// AddOrder appends an order to the user's list and returns it.
func (s *UserService) AddOrder(ctx context.Context, userID string, in models.OrderInput) (*models.Order, error) {
	if err := validateOrder(in); err != nil {
		return nil, err
	}

	order := in.Order()
	if err := s.store.AppendOrder(ctx, userID, order, s.nowFn()); err != nil {
		return nil, persistence("add order", err)
	}
	s.invalidate(ctx, userID)
	return &order, nil
}

func (s *UserService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Orders, nil
}

// SumOrderTotal returns Σ price*quantity formatted with two decimals.
func (s *UserService) SumOrderTotal(ctx context.Context, userID string) (string, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return FormatAmount(TotalPrice(user.Orders)), nil
}

// Ping reports whether the backing store is reachable.
func (s *UserService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// loadUser reads through the cache. Cache failures are logged and the
// store is used instead.
func (s *UserService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	if user, ok, err := s.cache.Get(ctx, userID); err != nil {
		s.logger.Warn("user cache read failed", "userId", userID, "error", err)
	} else if ok {
		return user, nil
	}

	user, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, persistence("fetch user", err)
	}
	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn("user cache write failed", "userId", userID, "error", err)
	}
	return user, nil
}

func (s *UserService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn("user cache invalidation failed", "userId", userID, "error", err)
	}
}
