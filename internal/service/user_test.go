package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdayz/workdayz-api/internal/domain"
)

func newUserService() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	auth := NewAuthService("test-secret", time.Hour)
	return NewUserService(repo, auth), repo
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService()

	registered, token, err := svc.Register(ctx, &domain.User{
		FullName: "Alice Doe",
		Email:    "alice@example.com",
		JobTitle: "backend developer",
	}, "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, domain.IsValidID(registered.UserID))

	t.Run("login with valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, registered.UserID, user.UserID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong-pass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		// Неизвестный email и неверный пароль неразличимы для вызывающего
		_, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("store failure is not bad credentials", func(t *testing.T) {
		svc, repo := newUserService()
		_, _, err := svc.Register(ctx, &domain.User{
			FullName: "Eve Woe",
			Email:    "eve@example.com",
		}, "s3cret-pass")
		require.NoError(t, err)

		// Отказ хранилища должен дойти до вызывающего как есть,
		// а не превратиться в 401
		errStoreDown := errors.New("connection refused")
		repo.getByEmailErr = errStoreDown

		_, _, err = svc.Login(ctx, "eve@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, errStoreDown)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, &domain.User{
			FullName: "Another Alice",
			Email:    "alice@example.com",
		}, "another-pass")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService()

	user, _, err := svc.Register(ctx, &domain.User{
		FullName: "Bob Roe",
		Email:    "bob@example.com",
		Skills:   "go",
	}, "s3cret-pass")
	require.NoError(t, err)

	// Пустые поля не затирают существующие значения
	require.NoError(t, svc.Update(ctx, user.UserID, domain.UserUpdate{
		JobTitle: "team lead",
	}))

	updated, err := svc.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "team lead", updated.JobTitle)
	assert.Equal(t, "Bob Roe", updated.FullName)
	assert.Equal(t, "go", updated.Skills)

	err = svc.Update(ctx, domain.NewID(), domain.UserUpdate{FullName: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_Search(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService()

	for _, u := range []*domain.User{
		{FullName: "Carol Smith", Email: "carol@example.com", JobTitle: "designer", Skills: "figma"},
		{FullName: "Dave Jones", Email: "dave@example.com", JobTitle: "developer", Skills: "go postgres"},
	} {
		_, _, err := svc.Register(ctx, u, "s3cret-pass")
		require.NoError(t, err)
	}

	found, err := svc.Search(ctx, "postgres")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dave Jones", found[0].FullName)

	found, err = svc.Search(ctx, "nothing-matches")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}
