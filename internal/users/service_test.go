package users

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := newRepo(t)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}

func TestSetAccountStatusBansAndReinstates(t *testing.T) {
	svc, repo := newAccountService(t)
	ctx := context.Background()
	admin := createUser(t, repo, "admin@shop.com")
	target := createUser(t, repo, "jane@shop.com")

	banned, err := svc.SetAccountStatus(ctx, admin, target, false)
	require.NoError(t, err)
	assert.False(t, banned.IsActive)
	assert.Equal(t, "jane@shop.com", banned.Email)

	stored, err := repo.FindByID(ctx, target)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	reinstated, err := svc.SetAccountStatus(ctx, admin, target, true)
	require.NoError(t, err)
	assert.True(t, reinstated.IsActive)
}

func TestSetAccountStatusRejectsSelf(t *testing.T) {
	svc, repo := newAccountService(t)
	admin := createUser(t, repo, "admin@shop.com")

	_, err := svc.SetAccountStatus(context.Background(), admin, admin, false)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden), "got %v", err)

	stored, err := repo.FindByID(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestSetAccountStatusUnknownUser(t *testing.T) {
	svc, repo := newAccountService(t)
	admin := createUser(t, repo, "admin@shop.com")

	_, err := svc.SetAccountStatus(context.Background(), admin, uuid.New(), false)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "got %v", err)
}

type failingAccountRepo struct{}

func (failingAccountRepo) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func (failingAccountRepo) SetActive(context.Context, uuid.UUID, bool) error { return nil }

func TestSetAccountStatusStoreFailureIsInternal(t *testing.T) {
	svc, err := NewService(failingAccountRepo{})
	require.NoError(t, err)

	_, err = svc.SetAccountStatus(context.Background(), uuid.New(), uuid.New(), false)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal), "got %v", err)
}
