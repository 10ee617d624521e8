package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/users"
	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/email"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "Invalid Credentials"
	bannedAccountMessage      = "This account was banned"
	duplicateEmailMessage     = "email must be unique"

	// ResetCodeTTL is how long a password reset code stays redeemable.
	ResetCodeTTL = 10 * time.Minute

	resetEmailSubject = "Forgot Password"
	resetEmailText    = "Your reset password token"
)

// Service is the account authentication and credential recovery core.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetCode(ctx context.Context, code string) (*models.User, error)
	SetResetCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	RestoreResetCode(ctx context.Context, id uuid.UUID, issued string, prevCode *string, prevExpiresAt *time.Time) error
	ResetPassword(ctx context.Context, id uuid.UUID, code, passwordHash string) (bool, error)
}

type registerUserRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type registerCartRepository interface {
	CreateForUser(ctx context.Context, userID uuid.UUID, total decimal.Decimal) (*models.Cart, error)
}

type operationObserver interface {
	Observe(operation string, elapsed time.Duration, code string)
}

// ServiceParams bundles the dependencies required to build the auth service.
type ServiceParams struct {
	TxRunner       db.TxRunner
	UserRepo       userRepository
	Notifier       email.Sender
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	MailFrom       string
	Logger         *logger.Logger
	Metrics        operationObserver

	// Optional: the factories default to the gorm-backed users and cart repos
	// bound to the transaction handle.
	UserRepoFactory func(tx *gorm.DB) registerUserRepository
	CartRepoFactory func(tx *gorm.DB) registerCartRepository

	// Now and GenerateResetCode default to the wall clock and crypto/rand.
	Now               func() time.Time
	GenerateResetCode func() (string, error)
}

type service struct {
	tx          db.TxRunner
	users       userRepository
	userFactory func(tx *gorm.DB) registerUserRepository
	cartFactory func(tx *gorm.DB) registerCartRepository
	notifier    email.Sender
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	mailFrom    string
	logg        *logger.Logger
	metrics     operationObserver
	now         func() time.Time
	resetCode   func() (string, error)
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if params.MailFrom == "" {
		return nil, fmt.Errorf("mail sender address is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	svc := &service{
		tx:          params.TxRunner,
		users:       params.UserRepo,
		userFactory: params.UserRepoFactory,
		cartFactory: params.CartRepoFactory,
		notifier:    params.Notifier,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		mailFrom:    params.MailFrom,
		logg:        params.Logger,
		metrics:     params.Metrics,
		now:         params.Now,
		resetCode:   params.GenerateResetCode,
	}
	if svc.logg == nil {
		svc.logg = logger.Nop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.resetCode == nil {
		svc.resetCode = security.GenerateResetCode
	}
	if svc.userFactory == nil {
		svc.userFactory = func(tx *gorm.DB) registerUserRepository { return users.NewRepository(tx) }
	}
	if svc.cartFactory == nil {
		svc.cartFactory = func(tx *gorm.DB) registerCartRepository { return cart.NewRepository(tx) }
	}
	return svc, nil
}

// observe records the operation outcome; call it deferred with a pointer to the named error.
func (s *service) observe(operation string, started time.Time, err *error) {
	if s.metrics == nil {
		return
	}
	code := ""
	if *err != nil {
		code = string(pkgerrors.CodeInternal)
		if typed := pkgerrors.As(*err); typed != nil {
			code = string(typed.Code())
		}
	}
	s.metrics.Observe(operation, time.Since(started), code)
}

// hashPassword hashes a user supplied password. Input the hasher refuses for
// its length is the caller's mistake, reported against field.
func (s *service) hashPassword(password, field string) (string, error) {
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooLong) {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{field: fmt.Sprintf("must be at most %d bytes", security.MaxBcryptPasswordBytes)})
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	return hash, nil
}

func (s *service) mintToken(user *models.User, now time.Time, payload pkgAuth.AccessTokenPayload) (string, error) {
	payload.UserID = user.ID
	payload.Email = user.Email
	payload.FirstName = user.FirstName
	payload.LastName = user.LastName
	payload.Avatar = user.Avatar
	if payload.Role == "" {
		payload.Role = user.Role
	}
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, payload)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return token, nil
}
