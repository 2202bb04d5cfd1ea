// ABOUTME: Tests for the SQLite store: users, duplicate emails, event history.
// ABOUTME: Each test gets a fresh database file under t.TempDir.

package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &User{
		Name:         "Dr. Martin",
		Email:        "martin@dentalteam.fr",
		PasswordHash: "$2a$10$fakehash",
	}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.NotEmpty(t, user.ID, "ID assigned on insert")
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := s.GetUserByEmail(ctx, "martin@dentalteam.fr")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Dr. Martin", byEmail.Name)
	assert.Equal(t, "$2a$10$fakehash", byEmail.PasswordHash)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &User{Name: "A", Email: "same@dentalteam.fr", PasswordHash: "h"}))

	err := s.CreateUser(ctx, &User{Name: "B", Email: "same@dentalteam.fr", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUserByEmail(ctx, "nobody@dentalteam.fr")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUserByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentEventsOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordEvent(ctx, fmt.Sprintf("event %d", i)))
		time.Sleep(5 * time.Millisecond)
	}

	events, err := s.RecentEvents(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "event 4", events[0].Text, "newest first")
	assert.Equal(t, "event 3", events[1].Text)
	assert.Equal(t, "event 2", events[2].Text)
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestRecentEventsDefaultLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < defaultHistoryLimit+5; i++ {
		require.NoError(t, s.RecordEvent(ctx, fmt.Sprintf("event %d", i)))
	}

	events, err := s.RecentEvents(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, defaultHistoryLimit)
}

func TestRecentEventsEmpty(t *testing.T) {
	s := newTestStore(t)

	events, err := s.RecentEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.CreateUser(ctx, &User{Name: "A", Email: "a@dentalteam.fr", PasswordHash: "h"}))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	u, err := s2.GetUserByEmail(ctx, "a@dentalteam.fr")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
}
