package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmit(t *testing.T) {
	repo := &fakeContactsRepo{}
	svc := NewContactService(repo)

	contact, err := svc.Submit(context.Background(), ContactInput{
		Name:    " A ",
		Email:   " A@B.com",
		Subject: " hello ",
		Message: " hi there ",
	})
	require.NoError(t, err)
	assert.Positive(t, contact.ID)
	assert.Equal(t, "A", contact.Name)
	assert.Equal(t, "a@b.com", contact.Email)
	assert.Equal(t, "hello", contact.Subject)
	assert.Equal(t, "hi there", contact.Message)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestContactSubmitRequiresEmailAndMessage(t *testing.T) {
	svc := NewContactService(&fakeContactsRepo{})

	_, err := svc.Submit(context.Background(), ContactInput{Message: "hi"})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Submit(context.Background(), ContactInput{Email: "a@b.com", Message: "  "})
	require.ErrorIs(t, err, ErrValidation)
}

func TestContactSubmitStoreFailure(t *testing.T) {
	svc := NewContactService(&fakeContactsRepo{err: errDBDown})

	_, err := svc.Submit(context.Background(), ContactInput{Email: "a@b.com", Message: "hi"})
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestContactMarkArchived(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(&fakeContactsRepo{})

	contact, err := svc.Submit(ctx, ContactInput{Email: "a@b.com", Message: "hi"})
	require.NoError(t, err)

	pending, err := svc.ListUnarchived(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.MarkArchived(ctx, contact.ID, "s3://b/k"))

	pending, err = svc.ListUnarchived(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	got, err := svc.Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "s3://b/k", got.ArchiveLocation)
	assert.NotNil(t, got.ArchivedAt)
}
