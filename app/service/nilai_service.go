package service

import (
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NilaiService mengelola penilaian per-aspek peserta. Nilai instansi
// diinput akun instansi, nilai pembimbing oleh dosen/guru.
type NilaiService interface {
	GetAll(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
}

type nilaiService struct {
	repo          repository.NilaiRepository
	pengajuanRepo repository.PengajuanRepository
	notifRepo     repository.NotifikasiRepository
	principals    PrincipalService
}

// NewNilaiService membuat instance nilaiService.
func NewNilaiService(
	repo repository.NilaiRepository,
	pengajuanRepo repository.PengajuanRepository,
	notifRepo repository.NotifikasiRepository,
	principals PrincipalService,
) NilaiService {
	return &nilaiService{
		repo:          repo,
		pengajuanRepo: pengajuanRepo,
		notifRepo:     notifRepo,
		principals:    principals,
	}
}

// jenisPenilaiUntuk memetakan role penilai ke jenis_penilai yang boleh
// dia tulis. Role lain tidak boleh menulis nilai sama sekali.
func jenisPenilaiUntuk(role string) (string, bool) {
	switch role {
	case model.RoleInstansi:
		return model.PenilaiInstansi, true
	case model.RoleDosen, model.RoleGuru:
		return model.PenilaiPembimbing, true
	case model.RoleAdmin:
		// Admin boleh input atas nama keduanya, jenis diambil dari body.
		return "", true
	}
	return "", false
}

// GetAll mengembalikan nilai yang boleh dilihat user login.
// Query param: id_pengajuan opsional.
func (s *nilaiService) GetAll(ctx *gin.Context) {
	p, ok := muatPrincipalListing(ctx, s.principals, "Berhasil mengambil nilai")
	if !ok {
		return
	}

	if raw := ctx.Query("id_pengajuan"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
			return
		}
		if _, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, id); !ok {
			return
		}
		list, err := s.repo.FindByPengajuan(id)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal mengambil nilai", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil nilai", list))
		return
	}

	ids, err := pengajuanIDsUntuk(s.pengajuanRepo, s.principals, p)
	if err != nil {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Akses ditolak", err.Error(), nil))
		return
	}
	list, err := s.repo.FindByPengajuanIDs(ids)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil nilai", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil nilai", list))
}

// Create menyimpan nilai aspek baru. Peserta dinotifikasi.
func (s *nilaiService) Create(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	jenis, boleh := jenisPenilaiUntuk(p.Role)
	if !boleh {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Anda tidak berhak menginput nilai", "forbidden", nil))
		return
	}

	var input struct {
		IDPengajuan    uuid.UUID `json:"id_pengajuan" binding:"required"`
		JenisPenilai   string    `json:"jenis_penilai"`
		AspekPenilaian string    `json:"aspek_penilaian" binding:"required"`
		NilaiAngka     *float64  `json:"nilai_angka" binding:"required"`
		Komentar       *string   `json:"komentar"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	if jenis == "" {
		// Admin wajib menyebut jenis penilai secara eksplisit.
		jenis = input.JenisPenilai
		if jenis != model.PenilaiInstansi && jenis != model.PenilaiPembimbing {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Jenis penilai tidak valid", "jenis_penilai_invalid", nil))
			return
		}
	}
	if *input.NilaiAngka < 0 || *input.NilaiAngka > 100 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Nilai harus antara 0 sampai 100", "nilai_invalid", nil))
		return
	}

	pengajuan, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, input.IDPengajuan)
	if !ok {
		return
	}

	n := model.Nilai{
		ID:             uuid.New(),
		IDPengajuan:    input.IDPengajuan,
		JenisPenilai:   jenis,
		AspekPenilaian: input.AspekPenilaian,
		NilaiAngka:     *input.NilaiAngka,
		Komentar:       input.Komentar,
	}
	if err := s.repo.Create(&n); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyimpan nilai", err.Error(), nil))
		return
	}

	if target, ok := participantUserID(pengajuan); ok {
		kirimNotifikasi(s.notifRepo, target,
			"Nilai Baru",
			"Nilai aspek \""+input.AspekPenilaian+"\" telah diinput",
			"info")
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Nilai berhasil disimpan", n))
}

// Update mengubah nilai yang sudah ada. Penilai hanya boleh mengubah
// nilai dengan jenis_penilai yang sesuai role-nya.
func (s *nilaiService) Update(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	jenis, boleh := jenisPenilaiUntuk(p.Role)
	if !boleh {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Anda tidak berhak mengubah nilai", "forbidden", nil))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID nilai tidak valid", err.Error(), nil))
		return
	}
	n, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Nilai tidak ditemukan", err.Error(), nil))
		return
	}
	if _, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, n.IDPengajuan); !ok {
		return
	}
	if jenis != "" && n.JenisPenilai != jenis {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Nilai ini bukan wewenang Anda", "forbidden", nil))
		return
	}

	var input struct {
		AspekPenilaian *string  `json:"aspek_penilaian"`
		NilaiAngka     *float64 `json:"nilai_angka"`
		Komentar       *string  `json:"komentar"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	updates := map[string]interface{}{}
	if input.AspekPenilaian != nil {
		updates["aspek_penilaian"] = *input.AspekPenilaian
	}
	if input.NilaiAngka != nil {
		if *input.NilaiAngka < 0 || *input.NilaiAngka > 100 {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Nilai harus antara 0 sampai 100", "nilai_invalid", nil))
			return
		}
		updates["nilai_angka"] = *input.NilaiAngka
	}
	if input.Komentar != nil {
		updates["komentar"] = *input.Komentar
	}
	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Tidak ada data yang diubah", "empty_update", nil))
		return
	}

	if err := s.repo.Updates(n.ID, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengubah nilai", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Nilai berhasil diubah", nil))
}
