package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sleeptracker-server/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()

	claims := model.TokenClaims{Nickname: "alice", Role: model.RoleUser}
	ctx := m.SetClaimsToContext(context.Background(), claims)

	got, ok := m.GetClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims, got)
}

func TestManager_EmptyContext(t *testing.T) {
	m := NewManager()

	_, ok := m.GetClaimsFromContext(context.Background())
	assert.False(t, ok)
}
