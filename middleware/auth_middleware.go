package middleware

import (
	"net/http"
	"strings"

	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token)
// dan menyimpan informasi user (userID, role) ke dalam context.
// ID profil (id_mahasiswa dll) tidak ada di token; service me-resolve-nya
// sendiri lewat PrincipalService.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ambil header Authorization
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Token diperlukan", "missing_or_invalid_authorization_header", nil))
			c.Abort()
			return
		}

		// Ambil token string dan trim spasi sisa
		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Token diperlukan", "empty_token", nil))
			c.Abort()
			return
		}

		// Validasi token (signature HMAC + expired)
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Token tidak valid atau sudah expired", err.Error(), nil))
			c.Abort()
			return
		}

		// Inject nilai-nilai penting ke context untuk dipakai di handler/service
		c.Set("userID", claims.UserID) // UUID user (tabel users)
		c.Set("role", claims.Role)

		// lanjut ke handler berikutnya
		c.Next()
	}
}
