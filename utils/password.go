package utils

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var md5HexPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)

// HashPassword meng-hash password dengan bcrypt (default cost).
// Semua password baru/ganti selalu ditulis sebagai bcrypt; MD5 hanya
// diterima di jalur verifikasi untuk akun lama hasil migrasi.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword mengecek password terhadap hash tersimpan.
// Dispatch berdasarkan bentuk hash-nya:
// - prefix $2y$ / $2a$ / $2b$ : bcrypt
// - 32 karakter hex           : MD5 legacy (tanpa salt, warisan sistem lama)
func VerifyPassword(hash, password string) bool {
	if strings.HasPrefix(hash, "$2y$") || strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}

	if md5HexPattern.MatchString(hash) {
		sum := md5.Sum([]byte(password))
		digest := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
	}

	return false
}
