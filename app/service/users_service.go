package service

import (
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UsersService adalah manajemen akun khusus role admin: listing,
// detail, buat akun (langsung aktif atau tidak), aktivasi, dan hapus.
type UsersService interface {
	GetAll(ctx *gin.Context)
	GetDetail(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type usersService struct {
	userRepo   repository.UserRepository
	profilRepo repository.ProfilRepository
	auth       AuthService
}

// NewUsersService membuat instance usersService.
func NewUsersService(userRepo repository.UserRepository, profilRepo repository.ProfilRepository, auth AuthService) UsersService {
	return &usersService{userRepo: userRepo, profilRepo: profilRepo, auth: auth}
}

// pastikanAdmin menolak semua role selain admin.
func pastikanAdmin(ctx *gin.Context) bool {
	role, _ := ctx.Get("role")
	if role != model.RoleAdmin {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Endpoint ini khusus admin", "forbidden", nil))
		return false
	}
	return true
}

// GetAll mengambil seluruh akun, opsional difilter ?role=.
func (s *usersService) GetAll(ctx *gin.Context) {
	if !pastikanAdmin(ctx) {
		return
	}
	users, err := s.userRepo.FindAll(ctx.Query("role"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil data user", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data user", users))
}

// GetDetail mengambil satu akun beserta profil role-nya.
func (s *usersService) GetDetail(ctx *gin.Context) {
	if !pastikanAdmin(ctx) {
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID user tidak valid", err.Error(), nil))
		return
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("User tidak ditemukan", err.Error(), nil))
		return
	}
	profil, err := s.profilRepo.FindByUser(user.Role, user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil profil user", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail user", gin.H{
		"user":   user,
		"profil": profil.Detail,
	}))
}

// Create membuat akun baru lewat jalur registrasi yang sama dengan
// self-register, plus opsi langsung mengaktifkan akun.
func (s *usersService) Create(ctx *gin.Context) {
	if !pastikanAdmin(ctx) {
		return
	}

	var input struct {
		RegisterInput
		IsActive bool `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	user, err := s.auth.Register(input.RegisterInput)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Gagal membuat user", err.Error(), nil))
		return
	}

	if input.IsActive {
		if err := s.userRepo.Updates(user.ID, map[string]interface{}{"is_active": true}); err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("User dibuat tapi gagal diaktifkan", err.Error(), nil))
			return
		}
		user.IsActive = true
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("User berhasil dibuat", user))
}

// Update mengubah akun: aktivasi (is_active), identitas login, dan
// field profil role-nya. Username/email dicek unik dulu.
func (s *usersService) Update(ctx *gin.Context) {
	if !pastikanAdmin(ctx) {
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID user tidak valid", err.Error(), nil))
		return
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("User tidak ditemukan", err.Error(), nil))
		return
	}

	var input struct {
		Username    *string                `json:"username"`
		Email       *string                `json:"email"`
		NamaLengkap *string                `json:"nama_lengkap"`
		Password    *string                `json:"password"`
		IsActive    *bool                  `json:"is_active"`
		Profil      map[string]interface{} `json:"profil"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	updates := map[string]interface{}{}
	if input.Username != nil && *input.Username != user.Username {
		taken, err := s.userRepo.ExistsUsername(*input.Username, &user.ID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal memeriksa username", err.Error(), nil))
			return
		}
		if taken {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Username sudah digunakan", "username_taken", nil))
			return
		}
		updates["username"] = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.ExistsEmail(*input.Email, &user.ID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal memeriksa email", err.Error(), nil))
			return
		}
		if taken {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Email sudah digunakan", "email_taken", nil))
			return
		}
		updates["email"] = *input.Email
	}
	if input.NamaLengkap != nil {
		updates["nama_lengkap"] = *input.NamaLengkap
	}
	if input.Password != nil {
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal memproses password", err.Error(), nil))
			return
		}
		updates["password"] = hash
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := s.userRepo.Updates(user.ID, updates); err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal mengubah user", err.Error(), nil))
			return
		}
	}
	if len(input.Profil) > 0 {
		if err := s.profilRepo.UpdatesByUser(user.Role, user.ID, input.Profil); err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal mengubah profil user", err.Error(), nil))
			return
		}
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("User berhasil diubah", nil))
}

// Delete menghapus akun beserta baris profil role-nya.
func (s *usersService) Delete(ctx *gin.Context) {
	if !pastikanAdmin(ctx) {
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID user tidak valid", err.Error(), nil))
		return
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("User tidak ditemukan", err.Error(), nil))
		return
	}

	if err := s.profilRepo.DeleteByUser(user.Role, user.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghapus profil user", err.Error(), nil))
		return
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghapus user", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("User berhasil dihapus", nil))
}
