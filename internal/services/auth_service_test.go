package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
)

func authFixture(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	users.add(&models.User{
		Username:     "hr.officer",
		PasswordHash: hash,
		Status:       models.StatusActive,
	})
	return NewAuthService(users, fakeTokenIssuer{}), users
}

func TestLogin(t *testing.T) {
	svc, _ := authFixture(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "hr.officer", Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-hr.officer", resp.Token)
	assert.Equal(t, "hr.officer", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "hr.officer", Password: "wrong",
	})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "nobody", Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	assert.Equal(t, "invalid username or password", err.Error(),
		"unknown user and wrong password must be indistinguishable")
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users := authFixture(t)
	for _, u := range users.users {
		u.Status = models.StatusInactive
	}

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "hr.officer", Password: "correct-horse",
	})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}
