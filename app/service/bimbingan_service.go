package service

import (
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BimbinganService mengelola sesi bimbingan: Diajukan -> Dijadwalkan ->
// Selesai | Dibatalkan. Rating hanya boleh masuk setelah Selesai.
type BimbinganService interface {
	GetAll(ctx *gin.Context)
	Create(ctx *gin.Context)
	Jadwal(ctx *gin.Context)
	Selesai(ctx *gin.Context)
	Rating(ctx *gin.Context)
	Batal(ctx *gin.Context)
}

type bimbinganService struct {
	repo          repository.BimbinganRepository
	pengajuanRepo repository.PengajuanRepository
	notifRepo     repository.NotifikasiRepository
	principals    PrincipalService
}

// NewBimbinganService membuat instance bimbinganService.
func NewBimbinganService(
	repo repository.BimbinganRepository,
	pengajuanRepo repository.PengajuanRepository,
	notifRepo repository.NotifikasiRepository,
	principals PrincipalService,
) BimbinganService {
	return &bimbinganService{
		repo:          repo,
		pengajuanRepo: pengajuanRepo,
		notifRepo:     notifRepo,
		principals:    principals,
	}
}

// GetAll mengembalikan sesi bimbingan yang boleh dilihat user login.
// Query param: id_pengajuan (persempit ke satu pengajuan), status.
func (s *bimbinganService) GetAll(ctx *gin.Context) {
	p, ok := muatPrincipalListing(ctx, s.principals, "Berhasil mengambil bimbingan")
	if !ok {
		return
	}
	status := ctx.Query("status")

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
		list, err := s.repo.FindByPengajuan(id, status)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal mengambil bimbingan", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil bimbingan", list))
		return
	}

	ids, err := pengajuanIDsUntuk(s.pengajuanRepo, s.principals, p)
	if err != nil {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Akses ditolak", err.Error(), nil))
		return
	}
	list, err := s.repo.FindByPengajuanIDs(ids, status)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil bimbingan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil bimbingan", list))
}

// Create mengajukan sesi bimbingan baru (khusus peserta).
// Status awal selalu Diajukan. Pembimbing dinotifikasi kalau sudah ada.
func (s *bimbinganService) Create(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	if p.Role != model.RoleMahasiswa && p.Role != model.RoleSiswa {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya peserta yang dapat mengajukan bimbingan", "forbidden", nil))
		return
	}

	var input struct {
		IDPengajuan      uuid.UUID `json:"id_pengajuan" binding:"required"`
		TopikBimbingan   string    `json:"topik_bimbingan" binding:"required"`
		DeskripsiMasalah string    `json:"deskripsi_masalah"`
		TanggalBimbingan string    `json:"tanggal_bimbingan"`
		CatatanMahasiswa *string   `json:"catatan_mahasiswa"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	pengajuan, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, input.IDPengajuan)
	if !ok {
		return
	}
	if !pesertaPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Bimbingan hanya untuk pengajuan milik sendiri", "forbidden", nil))
		return
	}

	b := model.Bimbingan{
		ID:               uuid.New(),
		IDPengajuan:      input.IDPengajuan,
		TopikBimbingan:   input.TopikBimbingan,
		DeskripsiMasalah: input.DeskripsiMasalah,
		TanggalBimbingan: input.TanggalBimbingan,
		StatusBimbingan:  model.BimbinganDiajukan,
		CatatanMahasiswa: input.CatatanMahasiswa,
	}
	if err := s.repo.Create(&b); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengajukan bimbingan", err.Error(), nil))
		return
	}

	if target, ok := pembimbingUserID(pengajuan); ok {
		kirimNotifikasi(s.notifRepo, target,
			"Pengajuan Bimbingan Baru",
			"Ada pengajuan bimbingan baru: "+input.TopikBimbingan,
			"info")
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Bimbingan berhasil diajukan", b))
}

// muatBimbingan memuat sesi + pengajuan induknya dengan cek akses.
func (s *bimbinganService) muatBimbingan(ctx *gin.Context, p *Principal) (*model.Bimbingan, *model.Pengajuan, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID bimbingan tidak valid", err.Error(), nil))
		return nil, nil, false
	}
	b, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Bimbingan tidak ditemukan", err.Error(), nil))
		return nil, nil, false
	}
	pengajuan, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, b.IDPengajuan)
	if !ok {
		return nil, nil, false
	}
	return b, pengajuan, true
}

func rolePembimbingAtauAdmin(role string) bool {
	return role == model.RoleDosen || role == model.RoleGuru || role == model.RoleAdmin
}

// Jadwal menetapkan jadwal sesi (khusus pembimbing/admin):
// tanggal + lokasi, status jadi Dijadwalkan, peserta dinotifikasi.
func (s *bimbinganService) Jadwal(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	if !rolePembimbingAtauAdmin(p.Role) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya pembimbing yang dapat menjadwalkan bimbingan", "forbidden", nil))
		return
	}

	b, pengajuan, ok := s.muatBimbingan(ctx, p)
	if !ok {
		return
	}

	var input struct {
		TanggalBimbingan string  `json:"tanggal_bimbingan" binding:"required"`
		LokasiBimbingan  *string `json:"lokasi_bimbingan"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	updates := map[string]interface{}{
		"status_bimbingan":  model.BimbinganDijadwalkan,
		"tanggal_bimbingan": input.TanggalBimbingan,
	}
	if input.LokasiBimbingan != nil {
		updates["lokasi_bimbingan"] = *input.LokasiBimbingan
	}
	if err := s.repo.Updates(b.ID, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menjadwalkan bimbingan", err.Error(), nil))
		return
	}

	if target, ok := participantUserID(pengajuan); ok {
		kirimNotifikasi(s.notifRepo, target,
			"Bimbingan Dijadwalkan",
			"Bimbingan \""+b.TopikBimbingan+"\" dijadwalkan pada "+input.TanggalBimbingan,
			"info")
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Bimbingan berhasil dijadwalkan", nil))
}

// Selesai menutup sesi dengan feedback pembimbing; peserta dinotifikasi.
func (s *bimbinganService) Selesai(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	if !rolePembimbingAtauAdmin(p.Role) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya pembimbing yang dapat menyelesaikan bimbingan", "forbidden", nil))
		return
	}

	b, pengajuan, ok := s.muatBimbingan(ctx, p)
	if !ok {
		return
	}

	var input struct {
		FeedbackPembimbing *string `json:"feedback_pembimbing"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	updates := map[string]interface{}{"status_bimbingan": model.BimbinganSelesai}
	if input.FeedbackPembimbing != nil {
		updates["feedback_pembimbing"] = *input.FeedbackPembimbing
	}
	if err := s.repo.Updates(b.ID, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyelesaikan bimbingan", err.Error(), nil))
		return
	}

	if target, ok := participantUserID(pengajuan); ok {
		kirimNotifikasi(s.notifRepo, target,
			"Bimbingan Selesai",
			"Bimbingan \""+b.TopikBimbingan+"\" telah diselesaikan pembimbing",
			"success")
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Bimbingan berhasil diselesaikan", nil))
}

// Rating menyimpan rating 1-5 dari peserta; hanya sah untuk sesi yang
// sudah Selesai.
func (s *bimbinganService) Rating(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	if p.Role != model.RoleMahasiswa && p.Role != model.RoleSiswa {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya peserta yang dapat memberi rating", "forbidden", nil))
		return
	}

	b, pengajuan, ok := s.muatBimbingan(ctx, p)
	if !ok {
		return
	}
	if !pesertaPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Rating hanya untuk bimbingan milik sendiri", "forbidden", nil))
		return
	}

	// Pointer supaya rating 0 lolos binding dan kena pesan rentang,
	// sama seperti nilai_angka di penilaian.
	var input struct {
		Rating *int `json:"rating" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	if b.StatusBimbingan != model.BimbinganSelesai {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Rating hanya untuk bimbingan yang sudah selesai", "status_invalid", nil))
		return
	}
	if *input.Rating < 1 || *input.Rating > 5 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Rating harus antara 1 sampai 5", "rating_invalid", nil))
		return
	}

	if err := s.repo.Updates(b.ID, map[string]interface{}{"rating": *input.Rating}); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyimpan rating", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Rating berhasil disimpan", nil))
}

// Batal membatalkan sesi (peserta maupun pembimbing).
func (s *bimbinganService) Batal(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}

	b, pengajuan, ok := s.muatBimbingan(ctx, p)
	if !ok {
		return
	}

	if b.StatusBimbingan == model.BimbinganSelesai {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Bimbingan yang sudah selesai tidak bisa dibatalkan", "status_invalid", nil))
		return
	}

	if err := s.repo.Updates(b.ID, map[string]interface{}{"status_bimbingan": model.BimbinganDibatalkan}); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membatalkan bimbingan", err.Error(), nil))
		return
	}

	// Notifikasi pihak lawan
	if pesertaPengajuan(p, pengajuan) {
		if target, ok := pembimbingUserID(pengajuan); ok {
			kirimNotifikasi(s.notifRepo, target,
				"Bimbingan Dibatalkan",
				"Bimbingan \""+b.TopikBimbingan+"\" dibatalkan oleh peserta",
				"warning")
		}
	} else if target, ok := participantUserID(pengajuan); ok {
		kirimNotifikasi(s.notifRepo, target,
			"Bimbingan Dibatalkan",
			"Bimbingan \""+b.TopikBimbingan+"\" dibatalkan oleh pembimbing",
			"warning")
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Bimbingan dibatalkan", nil))
}
