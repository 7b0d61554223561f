package service

import (
	"errors"
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Helper bersama untuk entity turunan (kehadiran, bimbingan, nilai,
// laporan): semuanya mewarisi aturan akses dari pengajuan induknya.

// muatPrincipal me-resolve Principal atau menulis respons 403.
func muatPrincipal(ctx *gin.Context, principals PrincipalService) (*Principal, bool) {
	p, err := principals.FromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Akses ditolak", err.Error(), nil))
		return nil, false
	}
	return p, true
}

// muatPrincipalListing adalah varian muatPrincipal untuk endpoint listing:
// user yang profilnya belum ada tidak mungkin punya data, jadi dijawab
// 200 dengan daftar kosong. Error lain tetap 403 seperti biasa.
func muatPrincipalListing(ctx *gin.Context, principals PrincipalService, pesan string) (*Principal, bool) {
	p, err := principals.FromContext(ctx)
	if err != nil {
		if errors.Is(err, ErrProfilTidakDitemukan) {
			ctx.JSON(http.StatusOK,
				utils.BuildResponseSuccess(pesan, []interface{}{}))
			return nil, false
		}
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Akses ditolak", err.Error(), nil))
		return nil, false
	}
	return p, true
}

// muatPengajuanDenganAkses memuat pengajuan induk lalu menjalankan cek
// akses transitif. Menulis respons 404/403 sendiri kalau gagal.
func muatPengajuanDenganAkses(
	ctx *gin.Context,
	repo repository.PengajuanRepository,
	principals PrincipalService,
	p *Principal,
	id uuid.UUID,
) (*model.Pengajuan, bool) {
	pengajuan, err := repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Pengajuan tidak ditemukan", err.Error(), nil))
		return nil, false
	}
	if !principals.CanAccessPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Anda tidak berhak mengakses pengajuan ini", "forbidden", nil))
		return nil, false
	}
	return pengajuan, true
}

// pengajuanIDsUntuk mengambil daftar ID pengajuan yang terlihat oleh
// principal (dipakai listing entity turunan tanpa filter id_pengajuan).
func pengajuanIDsUntuk(
	repo repository.PengajuanRepository,
	principals PrincipalService,
	p *Principal,
) ([]uuid.UUID, error) {
	scope, err := principals.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	list, err := repo.FindScoped(scope)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(list))
	for _, pengajuan := range list {
		ids = append(ids, pengajuan.ID)
	}
	return ids, nil
}

// pesertaPengajuan mengecek apakah principal adalah peserta (pemilik)
// pengajuan tsb.
func pesertaPengajuan(p *Principal, pengajuan *model.Pengajuan) bool {
	switch p.Role {
	case model.RoleMahasiswa:
		return pengajuan.IDMahasiswa != nil && *pengajuan.IDMahasiswa == p.ProfilID
	case model.RoleSiswa:
		return pengajuan.IDSiswa != nil && *pengajuan.IDSiswa == p.ProfilID
	}
	return false
}

// pembimbingUserID mencari id_user pembimbing pengajuan (target notifikasi
// laporan/bimbingan baru). false kalau belum ada pembimbing.
func pembimbingUserID(pengajuan *model.Pengajuan) (uuid.UUID, bool) {
	if pengajuan.DosenPembimbing != nil {
		return pengajuan.DosenPembimbing.IDUser, true
	}
	if pengajuan.GuruPembimbing != nil {
		return pengajuan.GuruPembimbing.IDUser, true
	}
	return uuid.Nil, false
}
