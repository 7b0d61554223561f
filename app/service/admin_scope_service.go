package service

import (
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminScopeService adalah read model untuk admin fakultas dan admin
// sekolah: profil sendiri, pengajuan wilayahnya, statistik, serta daftar
// peserta dan pembimbing di wilayahnya.
type AdminScopeService interface {
	Profil(ctx *gin.Context)
	Pengajuan(ctx *gin.Context)
	Statistik(ctx *gin.Context)
	Peserta(ctx *gin.Context)
	Pembimbing(ctx *gin.Context)
}

type adminScopeService struct {
	role          string // model.RoleAdminFak atau model.RoleAdminSekolah
	pengajuanRepo repository.PengajuanRepository
	profilRepo    repository.ProfilRepository
	principals    PrincipalService
}

// NewAdminFakultasService membuat read model untuk admin fakultas.
func NewAdminFakultasService(
	pengajuanRepo repository.PengajuanRepository,
	profilRepo repository.ProfilRepository,
	principals PrincipalService,
) AdminScopeService {
	return &adminScopeService{
		role:          model.RoleAdminFak,
		pengajuanRepo: pengajuanRepo,
		profilRepo:    profilRepo,
		principals:    principals,
	}
}

// NewAdminSekolahService membuat read model untuk admin sekolah.
func NewAdminSekolahService(
	pengajuanRepo repository.PengajuanRepository,
	profilRepo repository.ProfilRepository,
	principals PrincipalService,
) AdminScopeService {
	return &adminScopeService{
		role:          model.RoleAdminSekolah,
		pengajuanRepo: pengajuanRepo,
		profilRepo:    profilRepo,
		principals:    principals,
	}
}

// muatAdmin menolak principal yang bukan admin wilayah ini (super admin
// tetap boleh lewat).
func (s *adminScopeService) muatAdmin(ctx *gin.Context) (*Principal, bool) {
	p, ok := muatPrincipal(ctx, s.principals)
	if !ok {
		return nil, false
	}
	if p.Role != s.role && p.Role != model.RoleAdmin {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Endpoint ini khusus "+s.role, "forbidden", nil))
		return nil, false
	}
	return p, true
}

// Profil mengembalikan identitas admin beserta wilayah yang dipegangnya.
func (s *adminScopeService) Profil(ctx *gin.Context) {
	p, ok := s.muatAdmin(ctx)
	if !ok {
		return
	}
	profil, err := s.profilRepo.FindByUser(p.Role, p.UserID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil profil", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil profil", profil.Detail))
}

// daftarScoped mengambil pengajuan di wilayah admin ini.
func (s *adminScopeService) daftarScoped(p *Principal) ([]model.Pengajuan, error) {
	scope, err := s.principals.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	return s.pengajuanRepo.FindScoped(scope)
}

// Pengajuan mengembalikan pengajuan di wilayah admin ini.
func (s *adminScopeService) Pengajuan(ctx *gin.Context) {
	p, ok := s.muatAdmin(ctx)
	if !ok {
		return
	}
	list, err := s.daftarScoped(p)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil pengajuan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil pengajuan", list))
}

// Statistik menghitung pengajuan wilayah ini per status.
func (s *adminScopeService) Statistik(ctx *gin.Context) {
	p, ok := s.muatAdmin(ctx)
	if !ok {
		return
	}
	list, err := s.daftarScoped(p)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghitung statistik", err.Error(), nil))
		return
	}

	stat := gin.H{
		"total":     len(list),
		"diajukan":  0,
		"disetujui": 0,
		"ditolak":   0,
		"selesai":   0,
	}
	for _, pengajuan := range list {
		switch pengajuan.Status {
		case model.StatusDiajukan:
			stat["diajukan"] = stat["diajukan"].(int) + 1
		case model.StatusDisetujui:
			stat["disetujui"] = stat["disetujui"].(int) + 1
		case model.StatusDitolak:
			stat["ditolak"] = stat["ditolak"].(int) + 1
		case model.StatusSelesai:
			stat["selesai"] = stat["selesai"].(int) + 1
		}
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil menghitung statistik", stat))
}

// Peserta mengembalikan mahasiswa se-fakultas (admin fakultas) atau
// siswa se-sekolah (admin sekolah).
func (s *adminScopeService) Peserta(ctx *gin.Context) {
	p, ok := s.muatAdmin(ctx)
	if !ok {
		return
	}
	if s.role == model.RoleAdminFak {
		list, err := s.profilRepo.ListMahasiswa(p.Fakultas)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal mengambil data mahasiswa", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data mahasiswa", list))
		return
	}
	list, err := s.profilRepo.ListSiswa(p.NamaSekolah)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil data siswa", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data siswa", list))
}

// Pembimbing mengembalikan dosen se-fakultas atau guru se-sekolah.
func (s *adminScopeService) Pembimbing(ctx *gin.Context) {
	p, ok := s.muatAdmin(ctx)
	if !ok {
		return
	}
	if s.role == model.RoleAdminFak {
		list, err := s.profilRepo.ListDosen(p.Fakultas)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal mengambil data dosen", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data dosen", list))
		return
	}
	list, err := s.profilRepo.ListGuru(p.NamaSekolah)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil data guru", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data guru", list))
}
