package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/email"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/validation"
)

const (
	resetCodeInvalidMessage = "Password Reset Code Invalid"
	resetCodeExpiredMessage = "Password Reset Code already expired, please forgot again!"
	passwordMismatchMessage = "Password must be same!"
)

// ForgotPassword issues a fresh reset code valid for ResetCodeTTL and mails it
// to the account. Any previous code stops working once the mail is sent; when
// sending fails the previous code and expiry are put back.
func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (err error) {
	defer s.observe("forgot_password", time.Now(), &err)

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "The user with email %s not found", req.Email)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	code, err := s.resetCode()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset code")
	}
	expiresAt := s.now().Add(ResetCodeTTL)

	if err := s.users.SetResetCode(ctx, user.ID, code, expiresAt); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset code")
	}

	err = s.notifier.Send(ctx, email.Message{
		From:    s.mailFrom,
		To:      user.Email,
		Subject: resetEmailSubject,
		Text:    resetEmailText,
		HTML:    fmt.Sprintf("<h1>%s</h1>", code),
		Tag:     "password-reset",
	})
	if err != nil {
		if restoreErr := s.users.RestoreResetCode(ctx, user.ID, code, user.PasswordResetCode, user.PasswordResetExpiresAt); restoreErr != nil {
			s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "auth.forgot_password.restore_failed", restoreErr)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send reset email")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "auth.forgot_password.sent")
	return nil
}

// ResetPassword redeems a reset code. The code is consumed by the same
// statement that stores the new hash, so it succeeds at most once.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (err error) {
	defer s.observe("reset_password", time.Now(), &err)

	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := s.users.FindByResetCode(ctx, req.ResetCode)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, resetCodeInvalidMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reset code")
	}

	if user.PasswordResetExpiresAt == nil || user.PasswordResetExpiresAt.Before(s.now()) {
		return pkgerrors.New(pkgerrors.CodeExpired, resetCodeExpiredMessage)
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return pkgerrors.New(pkgerrors.CodeValidation, passwordMismatchMessage)
	}

	passwordHash, err := s.hashPassword(req.NewPassword, "newPassword")
	if err != nil {
		return err
	}

	updated, err := s.users.ResetPassword(ctx, user.ID, req.ResetCode, passwordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store new password")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, resetCodeInvalidMessage)
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "auth.reset_password.success")
	return nil
}
