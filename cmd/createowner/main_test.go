package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"papatacos/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setup(t *testing.T) string {
	t.Helper()
	password.Cost = bcrypt.MinCost
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("SEED_OWNER_EMAIL", "")
	t.Setenv("SEED_OWNER_PIN", "")
	return filepath.Join(t.TempDir(), "papatacos.db")
}

func TestRun_Success(t *testing.T) {
	dbPath := setup(t)
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-email", "Papa@Tacos.ci", "-last-name", "Kouassi", "-pin", "1234", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, stderr))

	assert.Contains(t, stdout.String(), "Owner papa@tacos.ci created successfully")
	assert.FileExists(t, dbPath)
}

func TestRun_DuplicateOwner(t *testing.T) {
	dbPath := setup(t)
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-email", "papa@tacos.ci", "-last-name", "Kouassi", "-pin", "1234", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, stderr))

	err := run(args, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingFlags(t *testing.T) {
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-pin", "1234"}, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: email, last-name")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InteractivePIN(t *testing.T) {
	dbPath := setup(t)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	stdin := bytes.NewBufferString("4321\n")

	args := []string{"-email", "awa@tacos.ci", "-last-name", "Traoré", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, stderr))

	assert.Contains(t, stdout.String(), "PIN: ")
	assert.Contains(t, stdout.String(), "Owner awa@tacos.ci created successfully")
}

func TestRun_EmptyPIN(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	stdin := bytes.NewBufferString("\n")

	err := run([]string{"-email", "awa@tacos.ci", "-last-name", "Traoré"}, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PIN cannot be empty")
}

func TestRun_InvalidPIN(t *testing.T) {
	dbPath := setup(t)
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-email", "awa@tacos.ci", "-last-name", "Traoré", "-pin", "12ab", "-db", dbPath}
	err := run(args, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pin")
}

func TestRun_InvalidDBPath(t *testing.T) {
	setup(t)
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-email", "awa@tacos.ci", "-last-name", "Traoré", "-pin", "1234", "-db", t.TempDir()}
	err := run(args, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_InvalidFlag(t *testing.T) {
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-invalid"}, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
