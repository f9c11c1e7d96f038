package utils

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", "not-a-hash"))
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{7, 3, 3},
		{9, 3, 3},
		{10, 3, 4},
		{5, 0, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.perPage), "total=%d perPage=%d", tt.total, tt.perPage)
	}
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 0, CalculateOffset(-4, 10))
	assert.Equal(t, 0, CalculateOffset(3, 0))
	assert.Equal(t, math.MaxInt, CalculateOffset(math.MaxInt/10+2, 10))
	assert.Equal(t, math.MaxInt, CalculateOffset(math.MaxInt, math.MaxInt))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestValidateStruct(t *testing.T) {
	type input struct {
		Email string `validate:"required,email"`
		Name  string `validate:"max=3"`
	}

	assert.Nil(t, ValidateStruct(input{Email: "a@b.co", Name: "abc"}))

	errs := ValidateStruct(input{Email: "nope", Name: "abcd"})
	require.Len(t, errs, 2)
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "Maximum length is 3", errs["Name"])

	assert.Equal(t, []string{"Email: Invalid email format", "Name: Maximum length is 3"}, ValidationMessages(errs))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_NAME=test-store\nDB_DRIVER=SQLite\nDB_NAME=store.db\nDB_COLLATION=NOCASE\nRATE_LIMIT_BURST=3\nRATE_LIMIT_IDLE=30s\nTRUST_PROXY=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-store", config.App.Name)
	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, "sqlite", config.Database.Driver)
	assert.Equal(t, "store.db", config.Database.Name)
	assert.Equal(t, "NOCASE", config.Database.Collation)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.Equal(t, 3, config.RateLimit.Burst)
	assert.Equal(t, 30*time.Second, config.RateLimit.Idle)
	assert.True(t, config.App.TrustProxy)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", config.Database.Driver)
	assert.Equal(t, "", config.Database.Collation)
	assert.Equal(t, 10*time.Minute, config.RateLimit.Idle)
	assert.False(t, config.App.TrustProxy)
}

func TestLoadConfig_RejectsBadCollation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_COLLATION=x; DROP TABLE users\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestUserContext(t *testing.T) {
	_, ok := GetUsernameFromContext(context.Background())
	assert.False(t, ok)

	ctx := SetUserContext(context.Background(), "alice", "Customer")
	username, ok := GetUsernameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	role, ok := GetRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "Customer", role)
}
