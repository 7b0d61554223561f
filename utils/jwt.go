package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"magang-pkl-backend/config"
)

/*
 JWTCustomClaims

 Token hanya menyimpan identitas minimum:
 - UserID (uuid)  : identitas user
 - Role   (string): nama role (mahasiswa / siswa / dosen / guru / instansi /
                    admin_fakultas / admin_sekolah / admin)

 ID profil (id_mahasiswa, id_dosen, dst) TIDAK disimpan di token;
 di-resolve per request dari database supaya perubahan profil langsung
 terlihat tanpa menunggu token lama expired.
*/
type JWTCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken membuat JWT access token HS256 berisi userID dan role.
// Masa berlaku mengikuti profil environment (7 hari development,
// 1 hari staging, 4 jam production).
func GenerateToken(userID uuid.UUID, role string) (string, error) {
	cfg := config.Current()
	if cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not configured")
	}

	claims := JWTCustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateToken mem-validasi JWT dan mengembalikan *JWTCustomClaims jika valid.
// - Mengecek signing method (HMAC).
// - Mengecek expiration dan validitas klaim.
func ValidateToken(tokenString string) (*JWTCustomClaims, error) {
	cfg := config.Current()
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTCustomClaims{},
		func(t *jwt.Token) (interface{}, error) {
			// verifikasi signing method HMAC
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == uuid.Nil || claims.Role == "" {
		return nil, errors.New("token claims incomplete")
	}

	return claims, nil
}
