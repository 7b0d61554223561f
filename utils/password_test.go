package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDanVerifyBcrypt(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"), "hash baru harus bcrypt")

	assert.True(t, VerifyPassword(hash, "rahasia123"))
	assert.False(t, VerifyPassword(hash, "salah"))
}

func TestVerifyMD5Legacy(t *testing.T) {
	// Akun lama hasil migrasi masih menyimpan MD5 hex tanpa salt
	sum := md5.Sum([]byte("passwordlama"))
	hash := hex.EncodeToString(sum[:])

	assert.True(t, VerifyPassword(hash, "passwordlama"))
	assert.False(t, VerifyPassword(hash, "passwordbaru"))
}

func TestVerifyHashTidakDikenal(t *testing.T) {
	assert.False(t, VerifyPassword("plaintext-bukan-hash", "plaintext-bukan-hash"))
	assert.False(t, VerifyPassword("", "apapun"))
}
