package routes

import (
	"net/http"

	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler adalah struct pengelola request untuk fitur autentikasi.
// Struct ini menyimpan dependency ke AuthService.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler adalah constructor untuk membuat instance handler baru.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SetupAuthRoutes mengatur routing autentikasi. Login dan register
// terbuka; endpoint profil wajib token.
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	profilGroup := r.Group("/api/auth")
	profilGroup.Use(middleware.AuthMiddleware())
	{
		profilGroup.GET("/profil", h.GetProfil)
		profilGroup.PUT("/profil", h.UpdateProfil)
		profilGroup.PUT("/profil/password", h.UpdatePassword)
	}
}

// Register menangani pendaftaran akun baru. Akun dibuat nonaktif dan
// baru bisa login setelah diaktifkan admin.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	user, err := h.authService.Register(input)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Gagal registrasi", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess(
		"Registrasi berhasil, menunggu aktivasi admin",
		gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		}))
}

// Login menangani proses masuk. Field username menerima NIM/NISN/NIDN/NIP
// atau username sesuai role; instansi dan admin pakai username/email.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input login tidak valid", err.Error(), nil))
		return
	}

	user, token, err := h.authService.Login(input.Username, input.Password, input.Role)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Login gagal", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Login berhasil", gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"nama_lengkap": user.NamaLengkap,
			"role":         user.Role,
		},
	}))
}

// identitasLogin mengambil userID + role hasil AuthMiddleware.
func identitasLogin(ctx *gin.Context) (uuid.UUID, string, bool) {
	rawID, ok := ctx.Get("userID")
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Sesi tidak valid", "unauthorized", nil))
		return uuid.Nil, "", false
	}
	rawRole, _ := ctx.Get("role")
	role, _ := rawRole.(string)
	return rawID.(uuid.UUID), role, true
}

// GetProfil mengembalikan akun + baris profil role user yang login.
func (h *AuthHandler) GetProfil(ctx *gin.Context) {
	userID, role, ok := identitasLogin(ctx)
	if !ok {
		return
	}

	user, detail, err := h.authService.GetProfil(userID, role)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Profil tidak ditemukan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil profil", gin.H{
		"user":   user,
		"profil": detail,
	}))
}

// UpdateProfil mengubah identitas akun dan field profil role-nya.
func (h *AuthHandler) UpdateProfil(ctx *gin.Context) {
	userID, role, ok := identitasLogin(ctx)
	if !ok {
		return
	}

	var input struct {
		Username    *string                `json:"username"`
		Email       *string                `json:"email"`
		NamaLengkap *string                `json:"nama_lengkap"`
		Profil      map[string]interface{} `json:"profil"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	userUpdates := map[string]interface{}{}
	if input.Username != nil {
		userUpdates["username"] = *input.Username
	}
	if input.Email != nil {
		userUpdates["email"] = *input.Email
	}
	if input.NamaLengkap != nil {
		userUpdates["nama_lengkap"] = *input.NamaLengkap
	}

	if err := h.authService.UpdateProfil(userID, role, userUpdates, input.Profil); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Gagal mengubah profil", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Profil berhasil diubah", nil))
}

// UpdatePassword mengganti password. Password lama diverifikasi dulu
// (hash bcrypt maupun MD5 lama), yang baru selalu disimpan bcrypt.
func (h *AuthHandler) UpdatePassword(ctx *gin.Context) {
	userID, _, ok := identitasLogin(ctx)
	if !ok {
		return
	}

	var input struct {
		PasswordLama string `json:"password_lama" binding:"required"`
		PasswordBaru string `json:"password_baru" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	if err := h.authService.UpdatePassword(userID, input.PasswordLama, input.PasswordBaru); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Gagal mengganti password", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Password berhasil diganti", nil))
}
