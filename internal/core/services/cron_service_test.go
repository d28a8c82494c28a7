package services

import (
	"context"
	"testing"
	"time"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/config"
	"papatacos/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredTokens(t *testing.T) {
	cfg := testConfig(t)
	store, db := openTestStore(t, cfg)
	auth := NewAuthService(store, cfg)
	ctx := context.Background()
	res := signUp(t, auth, "awa@tacos.ci", "1234", "")
	session := sessionOf(t, auth, res)

	require.NoError(t, store.RefreshTokens.Create(ctx, &models.RefreshToken{
		AccountID: session.UserID,
		TokenHash: "expired",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	cron := NewCronService(store, NewReportService(store, time.UTC, config.CacheConfig{}), time.UTC)
	n, err := cron.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&left).Error)
	assert.Equal(t, int64(1), left, "the live sign-up token stays")
}

func TestAuditCredentials(t *testing.T) {
	cfg := testConfig(t)
	store, _ := openTestStore(t, cfg)
	auth := NewAuthService(store, cfg)
	ctx := context.Background()
	signUp(t, auth, "papa@tacos.ci", "1234", domain.RoleOwner)
	drifted := sessionOf(t, auth, signUp(t, auth, "awa@tacos.ci", "1234", ""))

	cron := NewCronService(store, nil, nil)
	found, err := cron.AuditCredentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, store.Profiles.UpdatePinCode(ctx, drifted.UserID, "legacy-plain-pin"))

	found, err = cron.AuditCredentials(ctx)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, drifted.UserID, found[0].AccountID)
	assert.Equal(t, "awa@tacos.ci", found[0].Email)
}

func TestCronStartStop(t *testing.T) {
	store, _ := openTestStore(t, testConfig(t))
	cron := NewCronService(store, nil, time.UTC)
	require.NoError(t, cron.Start())
	cron.Stop()
}
