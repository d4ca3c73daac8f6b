package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softveda-site/internal/domain"
)

func TestDirectoryListsEmpty(t *testing.T) {
	svc := NewDirectoryService(&fakeUsersRepo{}, &fakeAdminsRepo{})

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	admins, err := svc.ListAdmins(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, admins)
	assert.Empty(t, admins)
}

func TestDirectoryStripsPasswordHashes(t *testing.T) {
	ctx := context.Background()
	users := &fakeUsersRepo{}
	admins := &fakeAdminsRepo{}
	_, err := users.Create(ctx, &domain.User{Name: "A", Email: "a@b.com", PasswordHash: "hash"})
	require.NoError(t, err)
	_, err = admins.Create(ctx, &domain.Admin{Username: "root", PasswordHash: "hash"})
	require.NoError(t, err)

	svc := NewDirectoryService(users, admins)

	listedUsers, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, listedUsers, 1)
	assert.Equal(t, "a@b.com", listedUsers[0].Email)
	assert.Empty(t, listedUsers[0].PasswordHash)

	listedAdmins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, listedAdmins, 1)
	assert.Equal(t, "root", listedAdmins[0].Username)
	assert.Empty(t, listedAdmins[0].PasswordHash)
}

func TestDirectoryStoreFailure(t *testing.T) {
	svc := NewDirectoryService(&fakeUsersRepo{err: errDBDown}, &fakeAdminsRepo{err: errDBDown})

	_, err := svc.ListUsers(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = svc.ListAdmins(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}
