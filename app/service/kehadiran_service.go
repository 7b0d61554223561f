package service

import (
	"errors"
	"math"
	"net/http"
	"time"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KehadiranService mengelola absensi harian, termasuk check-in/check-out
// dengan validasi jarak GPS. Validasi lokasi bersifat advisory: di luar
// radius tetap tercatat, hanya ditandai lokasi_valid=false.
type KehadiranService interface {
	GetAll(ctx *gin.Context)
	GetToday(ctx *gin.Context)
	Statistik(ctx *gin.Context)
	Create(ctx *gin.Context)
	Checkin(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type kehadiranService struct {
	repo          repository.KehadiranRepository
	pengajuanRepo repository.PengajuanRepository
	principals    PrincipalService
}

// NewKehadiranService membuat instance kehadiranService.
func NewKehadiranService(
	repo repository.KehadiranRepository,
	pengajuanRepo repository.PengajuanRepository,
	principals PrincipalService,
) KehadiranService {
	return &kehadiranService{
		repo:          repo,
		pengajuanRepo: pengajuanRepo,
		principals:    principals,
	}
}

// GetAll mengembalikan absensi yang boleh dilihat user login.
// Query param id_pengajuan mempersempit ke satu pengajuan.
func (s *kehadiranService) GetAll(ctx *gin.Context) {
	p, ok := muatPrincipalListing(ctx, s.principals, "Berhasil mengambil kehadiran")
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
				utils.BuildResponseFailed("Gagal mengambil kehadiran", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil kehadiran", list))
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
			utils.BuildResponseFailed("Gagal mengambil kehadiran", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil kehadiran", list))
}

// GetToday mengembalikan absensi hari ini untuk satu pengajuan, atau
// null kalau belum ada.
func (s *kehadiranService) GetToday(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	id, err := uuid.Parse(ctx.Param("id_pengajuan"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return
	}
	if _, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, id); !ok {
		return
	}

	today := time.Now().Format("2006-01-02")
	k, err := s.repo.FindByTanggal(id, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Belum ada absensi hari ini", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil kehadiran", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil absensi hari ini", k))
}

// Statistik mengembalikan rekap per status + persentase hadir.
func (s *kehadiranService) Statistik(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	id, err := uuid.Parse(ctx.Param("id_pengajuan"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return
	}
	if _, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, id); !ok {
		return
	}

	stat, err := s.repo.Statistik(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghitung statistik", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil menghitung statistik kehadiran", stat))
}

var statusKehadiranValid = map[string]bool{
	model.KehadiranHadir: true,
	model.KehadiranIzin:  true,
	model.KehadiranSakit: true,
	model.KehadiranAlpha: true,
}

// Create mencatat absensi manual (tanpa GPS). Satu baris per tanggal;
// tanggal ganda ditolak sebagai kesalahan input.
func (s *kehadiranService) Create(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}

	var input struct {
		IDPengajuan     uuid.UUID `json:"id_pengajuan" binding:"required"`
		Tanggal         string    `json:"tanggal" binding:"required"`
		StatusKehadiran string    `json:"status_kehadiran"`
		JamMasuk        *string   `json:"jam_masuk"`
		JamKeluar       *string   `json:"jam_keluar"`
		Keterangan      *string   `json:"keterangan"`
		LokasiCheckin   *string   `json:"lokasi_checkin"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}
	if input.StatusKehadiran == "" {
		input.StatusKehadiran = model.KehadiranHadir
	}
	if !statusKehadiranValid[input.StatusKehadiran] {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Status kehadiran tidak valid", "status_invalid", nil))
		return
	}

	pengajuan, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, input.IDPengajuan)
	if !ok {
		return
	}
	if !pesertaPengajuan(p, pengajuan) && p.Role != model.RoleAdmin {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya peserta yang dapat mencatat absensinya", "forbidden", nil))
		return
	}

	if _, err := s.repo.FindByTanggal(input.IDPengajuan, input.Tanggal); err == nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Absensi untuk tanggal ini sudah ada", "duplicate_tanggal", nil))
		return
	}

	k := model.Kehadiran{
		ID:              uuid.New(),
		IDPengajuan:     input.IDPengajuan,
		Tanggal:         input.Tanggal,
		StatusKehadiran: input.StatusKehadiran,
		JamMasuk:        input.JamMasuk,
		JamKeluar:       input.JamKeluar,
		Keterangan:      input.Keterangan,
		LokasiCheckin:   input.LokasiCheckin,
	}
	if err := s.repo.Create(&k); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mencatat kehadiran", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Kehadiran berhasil dicatat", k))
}

// Checkin adalah toggle absensi GPS:
//   - belum ada baris hari ini  -> check-in (baris baru, jam_masuk terisi)
//   - sudah check-in            -> check-out (jam_keluar + GPS checkout)
//   - sudah check-out           -> error
//
// Jarak dihitung kalau instansi punya koordinat dan klien mengirim
// koordinat; di luar radius tetap dicatat dengan lokasi_valid=false.
func (s *kehadiranService) Checkin(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}

	var input struct {
		IDPengajuan uuid.UUID `json:"id_pengajuan" binding:"required"`
		Latitude    *float64  `json:"latitude"`
		Longitude   *float64  `json:"longitude"`
		Akurasi     *int      `json:"akurasi"`
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
			utils.BuildResponseFailed("Hanya peserta yang dapat melakukan check-in", "forbidden", nil))
		return
	}

	// Validasi jarak GPS terhadap koordinat instansi
	lokasiValid := true
	var jarak *int
	instansi := pengajuan.Instansi
	if instansi.Latitude != nil && instansi.Longitude != nil &&
		input.Latitude != nil && input.Longitude != nil {
		meter := utils.HitungJarak(*input.Latitude, *input.Longitude,
			*instansi.Latitude, *instansi.Longitude)
		radius := instansi.RadiusAbsensi
		if radius <= 0 {
			radius = 100
		}
		lokasiValid = utils.DalamRadius(meter, float64(radius))
		bulat := int(math.Round(meter))
		jarak = &bulat
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	jam := now.Format("15:04:05")

	existing, err := s.repo.FindByTanggal(input.IDPengajuan, today)
	if err == nil {
		// Sudah ada baris hari ini: jalur check-out
		if existing.JamKeluar != nil {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Anda sudah check-out hari ini", "already_checked_out", nil))
			return
		}
		updates := map[string]interface{}{
			"jam_keluar":            jam,
			"latitude_checkout":     input.Latitude,
			"longitude_checkout":    input.Longitude,
			"akurasi_checkout":      input.Akurasi,
			"jarak_checkout":        jarak,
			"lokasi_valid_checkout": lokasiValid,
		}
		if err := s.repo.Updates(existing.ID, updates); err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal check-out", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Check-out berhasil", gin.H{
			"jam_keluar":   jam,
			"lokasi_valid": lokasiValid,
			"jarak":        jarak,
		}))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil absensi", err.Error(), nil))
		return
	}

	// Jalur check-in
	k := model.Kehadiran{
		ID:                 uuid.New(),
		IDPengajuan:        input.IDPengajuan,
		Tanggal:            today,
		StatusKehadiran:    model.KehadiranHadir,
		JamMasuk:           &jam,
		LatitudeCheckin:    input.Latitude,
		LongitudeCheckin:   input.Longitude,
		AkurasiCheckin:     input.Akurasi,
		JarakCheckin:       jarak,
		LokasiValidCheckin: &lokasiValid,
	}
	if err := s.repo.Create(&k); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal check-in", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Check-in berhasil", gin.H{
		"jam_masuk":    jam,
		"lokasi_valid": lokasiValid,
		"jarak":        jarak,
	}))
}

// Update mengubah field absensi yang dikirim saja.
func (s *kehadiranService) Update(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID kehadiran tidak valid", err.Error(), nil))
		return
	}

	k, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Kehadiran tidak ditemukan", err.Error(), nil))
		return
	}
	if _, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, k.IDPengajuan); !ok {
		return
	}

	var input struct {
		StatusKehadiran *string `json:"status_kehadiran"`
		JamMasuk        *string `json:"jam_masuk"`
		JamKeluar       *string `json:"jam_keluar"`
		Keterangan      *string `json:"keterangan"`
		LokasiCheckin   *string `json:"lokasi_checkin"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	updates := map[string]interface{}{}
	if input.StatusKehadiran != nil {
		if !statusKehadiranValid[*input.StatusKehadiran] {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Status kehadiran tidak valid", "status_invalid", nil))
			return
		}
		updates["status_kehadiran"] = *input.StatusKehadiran
	}
	if input.JamMasuk != nil {
		updates["jam_masuk"] = *input.JamMasuk
	}
	if input.JamKeluar != nil {
		updates["jam_keluar"] = *input.JamKeluar
	}
	if input.Keterangan != nil {
		updates["keterangan"] = *input.Keterangan
	}
	if input.LokasiCheckin != nil {
		updates["lokasi_checkin"] = *input.LokasiCheckin
	}
	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Tidak ada data yang diupdate", "empty_update", nil))
		return
	}

	if err := s.repo.Updates(id, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengupdate kehadiran", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Kehadiran berhasil diupdate", nil))
}

// Delete menghapus satu baris absensi. Hanya admin: kehadiran adalah
// bukti presensi, peserta maupun pembimbing tidak boleh menghapusnya.
func (s *kehadiranService) Delete(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	if p.Role != model.RoleAdmin {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya admin yang dapat menghapus kehadiran", "forbidden", nil))
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID kehadiran tidak valid", err.Error(), nil))
		return
	}

	k, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Kehadiran tidak ditemukan", err.Error(), nil))
		return
	}
	if _, ok := muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, k.IDPengajuan); !ok {
		return
	}

	if err := s.repo.Delete(id); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghapus kehadiran", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Kehadiran berhasil dihapus", nil))
}
