package auth

import (
	"context"
	"time"

	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

// Login verifies the credentials and returns a token carrying the stored role.
// Unknown emails and wrong passwords produce the same error; banned accounts
// are reported before the password is checked.
func (s *service) Login(ctx context.Context, req LoginRequest) (token string, err error) {
	defer s.observe("login", time.Now(), &err)

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if db.IsNotFound(err) {
			s.logg.Warn(ctx, "auth.login.failed")
			return "", pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	logCtx := s.logg.WithUserID(ctx, user.ID.String())

	if !user.IsActive {
		s.logg.Warn(logCtx, "auth.login.banned")
		return "", pkgerrors.New(pkgerrors.CodeForbidden, bannedAccountMessage)
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		s.logg.Warn(logCtx, "auth.login.failed")
		return "", pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}

	token, err = s.mintToken(user, s.now(), pkgAuth.AccessTokenPayload{})
	if err != nil {
		return "", err
	}

	s.logg.Info(s.logg.WithActorRole(logCtx, string(user.Role)), "auth.login.success")
	return token, nil
}
