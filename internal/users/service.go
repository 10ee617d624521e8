package users

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service holds account administration. Banned accounts are refused at login.
type Service interface {
	SetAccountStatus(ctx context.Context, actorID, userID uuid.UUID, active bool) (*UserDTO, error)
}

type accountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type service struct {
	repo accountRepository
}

func NewService(repo accountRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

// SetAccountStatus bans (active=false) or reinstates an account. An actor
// cannot change their own status.
func (s *service) SetAccountStatus(ctx context.Context, actorID, userID uuid.UUID, active bool) (*UserDTO, error) {
	if actorID == userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You cannot change the status of your own account")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "User has ID: %s not found", userID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if user.IsActive != active {
		if err := s.repo.SetActive(ctx, userID, active); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update account status")
		}
		user.IsActive = active
	}
	return FromModel(user), nil
}
