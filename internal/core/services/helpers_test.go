package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/config"
	"papatacos/internal/core/domain"
	"papatacos/internal/pkg/password"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppMode:  "prod",
		Location: time.UTC,
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "papatacos.db"),
		},
		JWT: config.JWTConfig{
			Secret:           "test-access",
			RefreshSecret:    "test-refresh",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func openTestStore(t *testing.T, cfg *config.Config) (*repositories.Store, *gorm.DB) {
	t.Helper()
	password.Cost = bcrypt.MinCost

	db, err := config.ConnectDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return repositories.NewStore(db), db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func signUp(t *testing.T, auth *AuthService, email, pin string, role domain.Role) *AuthResponse {
	t.Helper()
	res, err := auth.SignUp(context.Background(), &SignUpInput{
		LastName: "Koné",
		Email:    email,
		PIN:      pin,
		Role:     string(role),
	})
	require.NoError(t, err)
	return res
}

func sessionOf(t *testing.T, auth *AuthService, res *AuthResponse) *domain.Session {
	t.Helper()
	s, err := auth.ResolveSession(context.Background(), res.AccessToken)
	require.NoError(t, err)
	return s
}

// recordingObserver captures notifications
type recordingObserver struct {
	events []domain.EntryRecorded
}

func (o *recordingObserver) EntryRecorded(ctx context.Context, event domain.EntryRecorded) {
	o.events = append(o.events, event)
}
