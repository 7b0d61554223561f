package service

import (
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LaporanService mengelola laporan kegiatan peserta (harian/periodik)
// beserta review dari pembimbing.
type LaporanService interface {
	GetAll(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Review(ctx *gin.Context)
}

type laporanService struct {
	repo          repository.LaporanRepository
	pengajuanRepo repository.PengajuanRepository
	notifRepo     repository.NotifikasiRepository
	principals    PrincipalService
}

// NewLaporanService membuat instance laporanService.
func NewLaporanService(
	repo repository.LaporanRepository,
	pengajuanRepo repository.PengajuanRepository,
	notifRepo repository.NotifikasiRepository,
	principals PrincipalService,
) LaporanService {
	return &laporanService{
		repo:          repo,
		pengajuanRepo: pengajuanRepo,
		notifRepo:     notifRepo,
		principals:    principals,
	}
}

var jenisLaporanValid = map[string]bool{
	model.LaporanHarian:   true,
	model.LaporanPeriodik: true,
}

// GetAll mengembalikan laporan yang boleh dilihat user login.
// Query param: id_pengajuan opsional.
func (s *laporanService) GetAll(ctx *gin.Context) {
	p, ok := muatPrincipalListing(ctx, s.principals, "Berhasil mengambil laporan")
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
				utils.BuildResponseFailed("Gagal mengambil laporan", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil laporan", list))
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
			utils.BuildResponseFailed("Gagal mengambil laporan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil laporan", list))
}

// Create menyimpan laporan baru (khusus peserta). Status awal Pending,
// pembimbing dinotifikasi kalau sudah ditugaskan.
func (s *laporanService) Create(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	if p.Role != model.RoleMahasiswa && p.Role != model.RoleSiswa {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya peserta yang dapat membuat laporan", "forbidden", nil))
		return
	}

	var input struct {
		IDPengajuan  uuid.UUID `json:"id_pengajuan" binding:"required"`
		JenisLaporan string    `json:"jenis_laporan"`
		Tanggal      string    `json:"tanggal" binding:"required"`
		Kegiatan     string    `json:"kegiatan" binding:"required"`
		FileLaporan  *string   `json:"file_laporan"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}
	if input.JenisLaporan == "" {
		input.JenisLaporan = model.LaporanHarian
	}
	if !jenisLaporanValid[input.JenisLaporan] {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Jenis laporan tidak valid", "jenis_invalid", nil))
		return
	}

	pengajuan, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, input.IDPengajuan)
	if !ok {
		return
	}
	if !pesertaPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Laporan hanya untuk pengajuan milik sendiri", "forbidden", nil))
		return
	}

	l := model.Laporan{
		ID:           uuid.New(),
		IDPengajuan:  input.IDPengajuan,
		JenisLaporan: input.JenisLaporan,
		Tanggal:      input.Tanggal,
		Kegiatan:     input.Kegiatan,
		FileLaporan:  input.FileLaporan,
		Status:       model.LaporanPending,
	}
	if err := s.repo.Create(&l); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyimpan laporan", err.Error(), nil))
		return
	}

	if target, ok := pembimbingUserID(pengajuan); ok {
		kirimNotifikasi(s.notifRepo, target,
			"Laporan Baru",
			"Ada laporan "+input.JenisLaporan+" baru untuk tanggal "+input.Tanggal,
			"info")
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Laporan berhasil disimpan", l))
}

// muatLaporan memuat laporan + pengajuan induknya dengan cek akses.
func (s *laporanService) muatLaporan(ctx *gin.Context, p *Principal) (*model.Laporan, *model.Pengajuan, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID laporan tidak valid", err.Error(), nil))
		return nil, nil, false
	}
	l, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Laporan tidak ditemukan", err.Error(), nil))
		return nil, nil, false
	}
	pengajuan, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, l.IDPengajuan)
	if !ok {
		return nil, nil, false
	}
	return l, pengajuan, true
}

// Update mengubah isi laporan milik sendiri; laporan yang sudah direview
// Sesuai tidak bisa diubah lagi.
func (s *laporanService) Update(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}

	l, pengajuan, ok := s.muatLaporan(ctx, p)
	if !ok {
		return
	}
	if !pesertaPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya pemilik laporan yang dapat mengubah", "forbidden", nil))
		return
	}
	if l.Status == model.LaporanSesuai {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Laporan yang sudah disetujui tidak bisa diubah", "status_invalid", nil))
		return
	}

	var input struct {
		JenisLaporan *string `json:"jenis_laporan"`
		Tanggal      *string `json:"tanggal"`
		Kegiatan     *string `json:"kegiatan"`
		FileLaporan  *string `json:"file_laporan"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	updates := map[string]interface{}{}
	if input.JenisLaporan != nil {
		if !jenisLaporanValid[*input.JenisLaporan] {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Jenis laporan tidak valid", "jenis_invalid", nil))
			return
		}
		updates["jenis_laporan"] = *input.JenisLaporan
	}
	if input.Tanggal != nil {
		updates["tanggal"] = *input.Tanggal
	}
	if input.Kegiatan != nil {
		updates["kegiatan"] = *input.Kegiatan
	}
	if input.FileLaporan != nil {
		updates["file_laporan"] = *input.FileLaporan
	}
	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Tidak ada data yang diubah", "empty_update", nil))
		return
	}

	// Revisi ulang mengembalikan status ke Pending supaya direview lagi
	updates["status"] = model.LaporanPending

	if err := s.repo.Updates(l.ID, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengubah laporan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Laporan berhasil diubah", nil))
}

// Review dipakai pembimbing (dosen/guru/instansi/admin) menilai laporan:
// sesuai=true -> Sesuai, sesuai=false -> Perlu Revisi. Peserta dinotifikasi.
func (s *laporanService) Review(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	switch p.Role {
	case model.RoleDosen, model.RoleGuru, model.RoleInstansi, model.RoleAdmin:
	default:
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya pembimbing yang dapat mereview laporan", "forbidden", nil))
		return
	}

	l, pengajuan, ok := s.muatLaporan(ctx, p)
	if !ok {
		return
	}

	var input struct {
		Sesuai             *bool   `json:"sesuai" binding:"required"`
		KomentarPembimbing *string `json:"komentar_pembimbing"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	status := model.LaporanPerluRevisi
	tipe := "warning"
	if *input.Sesuai {
		status = model.LaporanSesuai
		tipe = "success"
	}

	updates := map[string]interface{}{"status": status}
	if input.KomentarPembimbing != nil {
		updates["komentar_pembimbing"] = *input.KomentarPembimbing
	}
	if err := s.repo.Updates(l.ID, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mereview laporan", err.Error(), nil))
		return
	}

	if target, ok := participantUserID(pengajuan); ok {
		kirimNotifikasi(s.notifRepo, target,
			"Laporan Direview",
			"Laporan tanggal "+l.Tanggal+" direview dengan status: "+status,
			tipe)
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Laporan berhasil direview", gin.H{"status": status}))
}
