package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnshRaj112/userorders-backend/internal/logging"
	"github.com/AnshRaj112/userorders-backend/internal/models"
	"github.com/AnshRaj112/userorders-backend/pkg/utils"
)

type mapCache struct {
	mu      sync.Mutex
	users   map[string]models.User
	gets    int
	hits    int
	deletes int
	err     error
}

func newMapCache() *mapCache {
	return &mapCache{users: make(map[string]models.User)}
}

func (c *mapCache) Get(ctx context.Context, userID string) (*models.User, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	u, ok := c.users[userID]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	out := u.Clone()
	return &out, true, nil
}

func (c *mapCache) Set(ctx context.Context, user *models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.users[user.UserID] = user.Clone()
	return nil
}

func (c *mapCache) Delete(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.users, userID)
	return c.err
}

// failingStore returns err from every call.
type failingStore struct{ err error }

func (f failingStore) Insert(context.Context, *models.User) error { return f.err }
func (f failingStore) List(context.Context) ([]models.UserSummary, error) {
	return nil, f.err
}
func (f failingStore) FindByUserID(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f failingStore) Update(context.Context, string, models.UserPatch, time.Time) (*models.User, error) {
	return nil, f.err
}
func (f failingStore) Delete(context.Context, string) error { return f.err }
func (f failingStore) AppendOrder(context.Context, string, models.Order, time.Time) error {
	return f.err
}
func (f failingStore) Ping(context.Context) error { return f.err }

func newTestService(t *testing.T) (*UserService, *MemoryUserStore, *mapCache) {
	t.Helper()
	store := NewMemoryUserStore()
	cache := newMapCache()
	return NewUserService(logging.Discard(), store, cache, bcrypt.MinCost), store, cache
}

func sampleInput(id string) models.UserInput {
	return models.UserInput{
		UserID:   models.UserID(id),
		Username: "jdoe",
		Password: "s3cret",
		FullName: "Jane Doe",
		Age:      31,
		Email:    "jane@example.com",
		Hobbies:  []string{"chess", "running"},
		Address:  models.Address{Street: "1 Main St", City: "Dhaka", Country: "BD"},
	}
}

func TestCreateUserHashesPasswordAndStartsWithNoOrders(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)

	assert.Equal(t, "u-1", created.UserID)
	assert.Empty(t, created.Password)
	assert.True(t, created.IsActive, "isActive defaults to true")
	assert.NotNil(t, created.Orders)
	assert.Empty(t, created.Orders)

	stored, ok := store.StoredPassword("u-1")
	require.True(t, ok)
	assert.True(t, utils.IsPasswordHash(stored))
	match, err := utils.CheckPassword("s3cret", stored)
	require.NoError(t, err)
	assert.True(t, match)

	fetched, err := svc.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, fetched.Password)
	assert.Equal(t, []models.Order{}, fetched.Orders)
}

func TestCreateUserAssignsIDWhenMissing(t *testing.T) {
	svc, _, _ := newTestService(t)

	inactive := false
	in := sampleInput("")
	in.IsActive = &inactive
	created, err := svc.CreateUser(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, created.UserID, 36)
	assert.False(t, created.IsActive)
}

func TestCreateUserDuplicateIsPersistenceError(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, sampleInput("u-1"))
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, ErrDuplicateUserID)
	assert.Equal(t, "create user", perr.Op)
}

func TestMissingUserIsNotFoundForEveryOperation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	name := "x"

	_, err := svc.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.UpdateUser(ctx, "ghost", models.UserPatch{FullName: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.UpdateUser(ctx, "ghost", models.UserPatch{})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, "ghost"), ErrUserNotFound)
	_, err = svc.AddOrder(ctx, "ghost", models.OrderInput{ProductName: "Pen", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.ListOrders(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.SumOrderTotal(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserShallowMerge(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)
	_, err = svc.AddOrder(ctx, "u-1", models.OrderInput{ProductName: "Pen", Price: 2.5, Quantity: 3})
	require.NoError(t, err)
	before, _ := store.StoredPassword("u-1")

	name := "New Name"
	updated, err := svc.UpdateUser(ctx, "u-1", models.UserPatch{FullName: &name})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "jdoe", updated.Username)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, []string{"chess", "running"}, updated.Hobbies)
	assert.Equal(t, "Dhaka", updated.Address.City)
	assert.Equal(t, []models.Order{{ProductName: "Pen", Price: 2.5, Quantity: 3}}, updated.Orders)
	assert.Empty(t, updated.Password)

	after, _ := store.StoredPassword("u-1")
	assert.Equal(t, before, after, "password untouched when absent from the patch")
}

func TestUpdateUserHashesNewPassword(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)

	pw := "n3w-pass"
	_, err = svc.UpdateUser(ctx, "u-1", models.UserPatch{Password: &pw})
	require.NoError(t, err)

	stored, _ := store.StoredPassword("u-1")
	assert.NotEqual(t, pw, stored)
	match, err := utils.CheckPassword(pw, stored)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestDeleteUserThenGetIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(ctx, "u-1"))

	_, err = svc.GetUser(ctx, "u-1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOrdersRoundTripAndTotal(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
	total, err := svc.SumOrderTotal(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "0.00", total)

	in := models.OrderInput{ProductName: "Pen", Price: 2.50, Quantity: 3}
	order, err := svc.AddOrder(ctx, "u-1", in)
	require.NoError(t, err)
	assert.Equal(t, in.Order(), *order)

	orders, err = svc.ListOrders(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Order{{ProductName: "Pen", Price: 2.50, Quantity: 3}}, orders)

	total, err = svc.SumOrderTotal(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "7.50", total)
}

func TestAddOrderRejectsNegativeValues(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)

	_, err = svc.AddOrder(ctx, "u-1", models.OrderInput{ProductName: "Pen", Price: -1, Quantity: 1})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	orders, err := svc.ListOrders(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestListUsersProjectsSummary(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)
	in := sampleInput("u-2")
	in.Username = "bob"
	_, err = svc.CreateUser(ctx, in)
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jdoe", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "Dhaka", users[0].Address.City)
}

func TestReadsGoThroughCacheAndWritesInvalidate(t *testing.T) {
	svc, _, cache := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)

	_, err = svc.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)

	_, err = svc.SumOrderTotal(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	_, err = svc.AddOrder(ctx, "u-1", models.OrderInput{ProductName: "Pen", Price: 1, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.deletes)

	total, err := svc.SumOrderTotal(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "2.00", total, "stale cache entry must not be served after a write")
}

func TestCacheFailureFallsBackToStore(t *testing.T) {
	svc, _, cache := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, sampleInput("u-1"))
	require.NoError(t, err)
	cache.err = errors.New("redis down")

	user, err := svc.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)
}

func TestStoreFailuresArePersistenceErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewUserService(logging.Discard(), failingStore{err: boom}, nil, bcrypt.MinCost)
	ctx := context.Background()
	name := "x"

	checks := map[string]error{}
	_, checks["create user"] = svc.CreateUser(ctx, sampleInput("u-1"))
	_, checks["list users"] = svc.ListUsers(ctx)
	_, checks["fetch user"] = svc.GetUser(ctx, "u-1")
	_, checks["update user"] = svc.UpdateUser(ctx, "u-1", models.UserPatch{FullName: &name})
	checks["delete user"] = svc.DeleteUser(ctx, "u-1")
	_, checks["add order"] = svc.AddOrder(ctx, "u-1", models.OrderInput{ProductName: "Pen"})

	for op, err := range checks {
		var perr *PersistenceError
		if assert.ErrorAs(t, err, &perr, op) {
			assert.Equal(t, op, perr.Op)
			assert.ErrorIs(t, err, boom, op)
			assert.NotErrorIs(t, err, ErrUserNotFound, op)
		}
	}
}
