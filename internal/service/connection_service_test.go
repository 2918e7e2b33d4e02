package service

import (
	"context"
	"testing"

	"postflow/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListConnectionsCoversAllPlatforms(t *testing.T) {
	ctx := context.Background()
	svc := NewConnectionService(newTestProvider(t), nil)

	conns, err := svc.ListConnections(ctx, "u", true)
	require.NoError(t, err)
	require.Len(t, conns, 4)
	for _, conn := range conns {
		assert.False(t, conn.Connected)
		assert.NotEmpty(t, conn.RequiredCred)
	}
}

func TestSaveConnectionDerivesConnected(t *testing.T) {
	ctx := context.Background()
	svc := NewConnectionService(newTestProvider(t), nil)

	// 凭据不全：保存成功但 Connected 为 false
	partial, err := svc.SaveConnection(ctx, "u", true, "facebook", &dto.SaveConnectionDTO{
		Credentials: map[string]string{"pageId": "123"},
	})
	require.NoError(t, err)
	assert.False(t, partial.Connected)
	assert.Equal(t, []string{"pageId"}, partial.FilledCreds)

	full, err := svc.SaveConnection(ctx, "u", true, "facebook", &dto.SaveConnectionDTO{
		Credentials: map[string]string{"pageId": "123", "accessToken": "tok"},
	})
	require.NoError(t, err)
	assert.True(t, full.Connected)

	_, err = svc.SaveConnection(ctx, "u", true, "myspace", &dto.SaveConnectionDTO{Credentials: map[string]string{}})
	assert.ErrorIs(t, err, ErrPlatformInvalid)
}

func TestDisconnectClearsCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewConnectionService(newTestProvider(t), nil)

	_, err := svc.SaveConnection(ctx, "u", true, "facebook", &dto.SaveConnectionDTO{
		Credentials: map[string]string{"pageId": "123", "accessToken": "tok"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Disconnect(ctx, "u", true, "facebook"))

	conns, err := svc.ListConnections(ctx, "u", true)
	require.NoError(t, err)
	for _, conn := range conns {
		if conn.Platform == "facebook" {
			assert.False(t, conn.Connected)
			assert.Empty(t, conn.FilledCreds)
		}
	}
}
