package auth

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/users"
	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Register creates an account and its empty cart atomically and returns a
// signed access token for the new account.
func (s *service) Register(ctx context.Context, req RegisterRequest) (token string, err error) {
	defer s.observe("register", time.Now(), &err)

	if err := validation.Struct(req); err != nil {
		return "", err
	}

	// advisory only; the unique index decides under concurrency
	existing, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		return "", pkgerrors.New(pkgerrors.CodeConflict, duplicateEmailMessage)
	case err != nil && !db.IsNotFound(err):
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}

	passwordHash, err := s.hashPassword(req.Password, "password")
	if err != nil {
		return "", err
	}

	var user *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.userFactory(tx).Create(ctx, users.CreateUserDTO{
			Email:        req.Email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Avatar:       req.Avatar,
			Role:         enums.RoleForEmail(req.Email),
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateEmailMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		if _, err := s.cartFactory(tx).CreateForUser(ctx, created.ID, decimal.Zero); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
		}

		user = created
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "register transaction")
		}
		return "", err
	}

	// the token role is forced to ADMIN for admin-prefixed emails even though
	// the stored role already follows the same rule
	tokenRole := user.Role
	if enums.IsAdminEmail(req.Email) {
		tokenRole = enums.RoleAdmin
	}

	token, err = s.mintToken(user, s.now(), pkgAuth.AccessTokenPayload{Role: tokenRole})
	if err != nil {
		return "", err
	}

	logCtx := s.logg.WithUserID(ctx, user.ID.String())
	s.logg.Info(s.logg.WithActorRole(logCtx, string(tokenRole)), "auth.register.success")
	return token, nil
}
