package service

import (
	"errors"
	"fmt"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Principal adalah identitas ter-resolve satu request: user + role dari
// token, plus ID baris profilnya dari database. Di-resolve sekali lalu
// dioper eksplisit, menggantikan lookup profil yang tersebar per endpoint.
type Principal struct {
	UserID      uuid.UUID
	Role        string
	ProfilID    uuid.UUID
	Fakultas    string // terisi untuk mahasiswa / dosen / admin_fakultas
	NamaSekolah string // terisi untuk siswa / guru / admin_sekolah
}

var (
	ErrRoleTidakDikenal = errors.New("role tidak dikenal")

	// ErrProfilTidakDitemukan: user valid tapi baris profil role-nya belum
	// ada. Listing memperlakukan ini sebagai hasil kosong, bukan error.
	ErrProfilTidakDitemukan = errors.New("profil tidak ditemukan")
)

// PrincipalService me-resolve Principal dari gin context dan menurunkan
// keputusan akses dari situ.
type PrincipalService interface {
	FromContext(ctx *gin.Context) (*Principal, error)
	ScopeFor(p *Principal) (repository.PengajuanScope, error)
	CanAccessPengajuan(p *Principal, pengajuan *model.Pengajuan) bool
}

type principalService struct {
	profilRepo repository.ProfilRepository
}

// NewPrincipalService membuat instance principalService.
func NewPrincipalService(profilRepo repository.ProfilRepository) PrincipalService {
	return &principalService{profilRepo}
}

// FromContext membaca userID+role yang sudah di-set AuthMiddleware lalu
// me-resolve baris profilnya.
func (s *principalService) FromContext(ctx *gin.Context) (*Principal, error) {
	userIDVal, ok := ctx.Get("userID")
	if !ok {
		return nil, errors.New("userID tidak ada di context")
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil, errors.New("userID di context bukan uuid")
	}
	role := ctx.GetString("role")

	profil, err := s.profilRepo.FindByUser(role, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProfilTidakDitemukan, role)
		}
		return nil, fmt.Errorf("profil %s tidak ditemukan: %w", role, err)
	}

	return &Principal{
		UserID:      userID,
		Role:        role,
		ProfilID:    profil.ProfilID,
		Fakultas:    profil.Fakultas,
		NamaSekolah: profil.NamaSekolah,
	}, nil
}

// ScopeFor menerjemahkan principal menjadi filter listing pengajuan.
// Role tidak dikenal -> error, bukan hasil kosong.
func (s *principalService) ScopeFor(p *Principal) (repository.PengajuanScope, error) {
	switch p.Role {
	case model.RoleAdmin:
		return repository.PengajuanScope{All: true}, nil
	case model.RoleMahasiswa:
		id := p.ProfilID
		return repository.PengajuanScope{MahasiswaID: &id}, nil
	case model.RoleSiswa:
		id := p.ProfilID
		return repository.PengajuanScope{SiswaID: &id}, nil
	case model.RoleDosen:
		id := p.ProfilID
		return repository.PengajuanScope{DosenID: &id}, nil
	case model.RoleGuru:
		id := p.ProfilID
		return repository.PengajuanScope{GuruID: &id}, nil
	case model.RoleInstansi:
		id := p.ProfilID
		return repository.PengajuanScope{InstansiID: &id}, nil
	case model.RoleAdminFak:
		f := p.Fakultas
		return repository.PengajuanScope{Fakultas: &f}, nil
	case model.RoleAdminSekolah:
		sek := p.NamaSekolah
		return repository.PengajuanScope{NamaSekolah: &sek}, nil
	}
	return repository.PengajuanScope{}, fmt.Errorf("%w: %s", ErrRoleTidakDikenal, p.Role)
}

// CanAccessPengajuan memutuskan akses single-entity. Aturannya sama
// dengan ScopeFor, diterapkan ke satu baris (pengajuan harus sudah
// di-load lengkap dengan relasi peserta).
func (s *principalService) CanAccessPengajuan(p *Principal, pengajuan *model.Pengajuan) bool {
	switch p.Role {
	case model.RoleAdmin:
		return true
	case model.RoleMahasiswa:
		return pengajuan.IDMahasiswa != nil && *pengajuan.IDMahasiswa == p.ProfilID
	case model.RoleSiswa:
		return pengajuan.IDSiswa != nil && *pengajuan.IDSiswa == p.ProfilID
	case model.RoleDosen:
		if pengajuan.IDDosenPembimbing != nil && *pengajuan.IDDosenPembimbing == p.ProfilID {
			return true
		}
		return pengajuan.JenisPengajuan == model.JenisMagang && pengajuan.Status == model.StatusDiajukan
	case model.RoleGuru:
		if pengajuan.IDGuruPembimbing != nil && *pengajuan.IDGuruPembimbing == p.ProfilID {
			return true
		}
		return pengajuan.JenisPengajuan == model.JenisPKL && pengajuan.Status == model.StatusDiajukan
	case model.RoleInstansi:
		return pengajuan.IDInstansi == p.ProfilID
	case model.RoleAdminFak:
		return pengajuan.JenisPengajuan == model.JenisMagang &&
			pengajuan.Mahasiswa != nil && pengajuan.Mahasiswa.Fakultas == p.Fakultas
	case model.RoleAdminSekolah:
		return pengajuan.JenisPengajuan == model.JenisPKL &&
			pengajuan.Siswa != nil && pengajuan.Siswa.NamaSekolah == p.NamaSekolah
	}
	return false
}
