package utils

import (
	"os"
	"testing"

	"magang-pkl-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	userID := uuid.New()
	token, err := GenerateToken(userID, "mahasiswa")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "mahasiswa", claims.Role)
}

func TestTokenDimodifikasiDitolak(t *testing.T) {
	config.Load()

	token, err := GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	// Rusak satu karakter signature
	rusak := token[:len(token)-2] + "xx"
	_, err = ValidateToken(rusak)
	assert.Error(t, err)
}

func TestTokenExpiredDitolak(t *testing.T) {
	// Expiry negatif menghasilkan token yang sudah lewat masa berlakunya
	os.Setenv("JWT_EXPIRY", "-1h")
	config.Load()
	defer func() {
		os.Unsetenv("JWT_EXPIRY")
		config.Load()
	}()

	token, err := GenerateToken(uuid.New(), "siswa")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err, "token expired harus ditolak")
}

func TestTokenAsalAsalanDitolak(t *testing.T) {
	config.Load()

	_, err := ValidateToken("bukan.token.jwt")
	assert.Error(t, err)
}
