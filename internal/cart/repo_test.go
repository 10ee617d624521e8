package cart

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateForUser(t *testing.T) {
	conn := dbtest.Open(t)
	user := models.User{Email: "cart@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"}
	require.NoError(t, conn.Create(&user).Error)

	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateForUser(ctx, user.ID, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.UserID)

	found, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.TotalPrice.IsZero(), "new carts start empty, got %s", found.TotalPrice)

	_, err = repo.CreateForUser(ctx, user.ID, decimal.Zero)
	assert.True(t, db.IsUniqueViolation(err), "an account owns a single cart, got %v", err)
}
