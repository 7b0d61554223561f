package service

import (
	"net/http"

	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DirektoriService melayani direktori publik (untuk user login): daftar
// dosen/guru pembimbing dan instansi tujuan magang/PKL.
type DirektoriService interface {
	Dosen(ctx *gin.Context)
	Guru(ctx *gin.Context)
	Instansi(ctx *gin.Context)
	InstansiDetail(ctx *gin.Context)
}

type direktoriService struct {
	profilRepo repository.ProfilRepository
}

// NewDirektoriService membuat instance direktoriService.
func NewDirektoriService(profilRepo repository.ProfilRepository) DirektoriService {
	return &direktoriService{profilRepo: profilRepo}
}

// Dosen mengembalikan daftar dosen pembimbing, opsional ?fakultas=.
func (s *direktoriService) Dosen(ctx *gin.Context) {
	list, err := s.profilRepo.ListDosen(ctx.Query("fakultas"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil data dosen", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data dosen", list))
}

// Guru mengembalikan daftar guru pembimbing, opsional ?sekolah=.
func (s *direktoriService) Guru(ctx *gin.Context) {
	list, err := s.profilRepo.ListGuru(ctx.Query("sekolah"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil data guru", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data guru", list))
}

// Instansi mengembalikan daftar instansi tujuan.
func (s *direktoriService) Instansi(ctx *gin.Context) {
	list, err := s.profilRepo.ListInstansi()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil data instansi", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data instansi", list))
}

// InstansiDetail mengembalikan satu instansi lengkap dengan akunnya.
func (s *direktoriService) InstansiDetail(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID instansi tidak valid", err.Error(), nil))
		return
	}
	instansi, err := s.profilRepo.FindInstansiByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Instansi tidak ditemukan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail instansi", instansi))
}
