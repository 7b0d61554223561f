package service

import (
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CetakService menyediakan data siap cetak: rekap peserta/nilai untuk
// admin dan data surat (permohonan/balasan) per pengajuan.
type CetakService interface {
	RekapMahasiswa(ctx *gin.Context)
	RekapSiswa(ctx *gin.Context)
	RekapNilai(ctx *gin.Context)
	SuratPermohonan(ctx *gin.Context)
	SuratBalasan(ctx *gin.Context)
	Dokumen(ctx *gin.Context)
}

type cetakService struct {
	pengajuanRepo repository.PengajuanRepository
	profilRepo    repository.ProfilRepository
	nilaiRepo     repository.NilaiRepository
	dokumenRepo   repository.DokumenRepository
	principals    PrincipalService
}

// NewCetakService membuat instance cetakService.
func NewCetakService(
	pengajuanRepo repository.PengajuanRepository,
	profilRepo repository.ProfilRepository,
	nilaiRepo repository.NilaiRepository,
	dokumenRepo repository.DokumenRepository,
	principals PrincipalService,
) CetakService {
	return &cetakService{
		pengajuanRepo: pengajuanRepo,
		profilRepo:    profilRepo,
		nilaiRepo:     nilaiRepo,
		dokumenRepo:   dokumenRepo,
		principals:    principals,
	}
}

// RekapMahasiswa: daftar mahasiswa untuk dicetak. Admin fakultas otomatis
// terbatas ke fakultasnya, super admin bisa filter ?fakultas=.
func (s *cetakService) RekapMahasiswa(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	var fakultas string
	switch p.Role {
	case model.RoleAdminFak:
		fakultas = p.Fakultas
	case model.RoleAdmin:
		fakultas = ctx.Query("fakultas")
	default:
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Rekap mahasiswa khusus admin", "forbidden", nil))
		return
	}

	list, err := s.profilRepo.ListMahasiswa(fakultas)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil rekap mahasiswa", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil rekap mahasiswa", list))
}

// RekapSiswa: simetris untuk admin sekolah.
func (s *cetakService) RekapSiswa(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	var sekolah string
	switch p.Role {
	case model.RoleAdminSekolah:
		sekolah = p.NamaSekolah
	case model.RoleAdmin:
		sekolah = ctx.Query("sekolah")
	default:
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Rekap siswa khusus admin", "forbidden", nil))
		return
	}

	list, err := s.profilRepo.ListSiswa(sekolah)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil rekap siswa", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil rekap siswa", list))
}

// RekapNilai: nilai seluruh pengajuan yang terlihat oleh admin pemanggil,
// dikelompokkan per pengajuan.
func (s *cetakService) RekapNilai(ctx *gin.Context) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return
	}
	switch p.Role {
	case model.RoleAdmin, model.RoleAdminFak, model.RoleAdminSekolah:
	default:
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Rekap nilai khusus admin", "forbidden", nil))
		return
	}

	scope, err := s.principals.ScopeFor(p)
	if err != nil {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Akses ditolak", err.Error(), nil))
		return
	}
	pengajuanList, err := s.pengajuanRepo.FindScoped(scope)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil pengajuan", err.Error(), nil))
		return
	}

	type rekapNilai struct {
		Pengajuan model.Pengajuan `json:"pengajuan"`
		Nilai     []model.Nilai   `json:"nilai"`
		RataRata  float64         `json:"rata_rata"`
	}
	rekap := make([]rekapNilai, 0, len(pengajuanList))
	for _, pengajuan := range pengajuanList {
		nilaiList, err := s.nilaiRepo.FindByPengajuan(pengajuan.ID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal mengambil nilai", err.Error(), nil))
			return
		}
		var total float64
		for _, n := range nilaiList {
			total += n.NilaiAngka
		}
		r := rekapNilai{Pengajuan: pengajuan, Nilai: nilaiList}
		if len(nilaiList) > 0 {
			r.RataRata = total / float64(len(nilaiList))
		}
		rekap = append(rekap, r)
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil rekap nilai", rekap))
}

// muatUntukSurat memuat pengajuan dengan cek akses untuk endpoint surat.
func (s *cetakService) muatUntukSurat(ctx *gin.Context) (*model.Pengajuan, bool) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return nil, false
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return nil, false
	}
	return muatPengajuanDenganAkses(ctx, s.pengajuanRepo, s.principals, p, id)
}

// SuratPermohonan mengembalikan data surat permohonan: pengajuan lengkap,
// nomor surat, dan arsip terakhir dari Mongo kalau sudah pernah digenerate.
func (s *cetakService) SuratPermohonan(ctx *gin.Context) {
	pengajuan, ok := s.muatUntukSurat(ctx)
	if !ok {
		return
	}

	data := gin.H{
		"pengajuan":   pengajuan,
		"nomor_surat": BuatNomorSurat(pengajuan, model.DokumenSuratPermohonan),
	}
	// Arsip boleh kosong (belum pernah digenerate), bukan error.
	if doc, err := s.dokumenRepo.FindLatest(ctx, pengajuan.ID, model.DokumenSuratPermohonan); err == nil {
		data["dokumen"] = doc
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data surat permohonan", data))
}

// SuratBalasan hanya tersedia untuk pengajuan Disetujui/Selesai.
func (s *cetakService) SuratBalasan(ctx *gin.Context) {
	pengajuan, ok := s.muatUntukSurat(ctx)
	if !ok {
		return
	}
	if pengajuan.Status != model.StatusDisetujui && pengajuan.Status != model.StatusSelesai {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Surat balasan hanya untuk pengajuan yang sudah disetujui", "status_invalid", nil))
		return
	}

	data := gin.H{
		"pengajuan":   pengajuan,
		"nomor_surat": BuatNomorSurat(pengajuan, model.DokumenSuratBalasan),
	}
	if doc, err := s.dokumenRepo.FindLatest(ctx, pengajuan.ID, model.DokumenSuratBalasan); err == nil {
		data["dokumen"] = doc
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data surat balasan", data))
}

// Dokumen mengembalikan riwayat dokumen hasil generate satu pengajuan.
func (s *cetakService) Dokumen(ctx *gin.Context) {
	pengajuan, ok := s.muatUntukSurat(ctx)
	if !ok {
		return
	}
	docs, err := s.dokumenRepo.FindByPengajuan(ctx, pengajuan.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil riwayat dokumen", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil riwayat dokumen", docs))
}
