package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/users"
	pkgauth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type statusCall struct {
	actorID, userID uuid.UUID
	active          bool
}

type stubUserService struct {
	calls []statusCall
	err   error
}

func (s *stubUserService) SetAccountStatus(ctx context.Context, actorID, userID uuid.UUID, active bool) (*users.UserDTO, error) {
	s.calls = append(s.calls, statusCall{actorID: actorID, userID: userID, active: active})
	if s.err != nil {
		return nil, s.err
	}
	return &users.UserDTO{ID: userID, IsActive: active}, nil
}

func statusRequest(claims *pkgauth.AccessTokenClaims, userID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if claims != nil {
		ctx = middleware.WithClaims(ctx, claims)
	}
	return req.WithContext(ctx)
}

func TestUserSetStatusPassesActorAndTarget(t *testing.T) {
	svc := &stubUserService{}
	admin := &pkgauth.AccessTokenClaims{UserID: uuid.New(), Role: enums.RoleAdmin}
	target := uuid.New()

	rec := httptest.NewRecorder()
	UserSetStatus(svc, logger.Nop())(rec, statusRequest(admin, target.String(), `{"isActive":false}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, svc.calls, 1)
	assert.Equal(t, statusCall{actorID: admin.UserID, userID: target, active: false}, svc.calls[0])
}

func TestUserSetStatusFailures(t *testing.T) {
	admin := &pkgauth.AccessTokenClaims{UserID: uuid.New(), Role: enums.RoleAdmin}
	target := uuid.New().String()

	cases := []struct {
		name   string
		claims *pkgauth.AccessTokenClaims
		userID string
		body   string
		err    error
		status int
		code   pkgerrors.Code
	}{
		{name: "no claims", userID: target, body: `{"isActive":false}`, status: http.StatusUnauthorized, code: pkgerrors.CodeUnauthorized},
		{name: "bad id", claims: admin, userID: "nope", body: `{"isActive":false}`, status: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "missing flag", claims: admin, userID: target, body: `{}`, status: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "self", claims: admin, userID: target, body: `{"isActive":false}`, err: pkgerrors.New(pkgerrors.CodeForbidden, "own account"), status: http.StatusForbidden, code: pkgerrors.CodeForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubUserService{err: tc.err}
			rec := httptest.NewRecorder()
			UserSetStatus(svc, logger.Nop())(rec, statusRequest(tc.claims, tc.userID, tc.body))
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.Equal(t, string(tc.code), errorCode(t, rec))
		})
	}
}
