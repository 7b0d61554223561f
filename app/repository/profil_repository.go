package repository

import (
	"fmt"

	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profil adalah hasil resolve baris profil seorang user, apapun role-nya.
// Field yang tidak relevan untuk role tsb dibiarkan kosong.
type Profil struct {
	ProfilID    uuid.UUID
	Fakultas    string // terisi untuk mahasiswa, dosen, admin_fakultas
	NamaSekolah string // terisi untuk siswa, guru, admin_sekolah
	Detail      interface{}
}

// ProfilRepository memetakan role -> tabel profil di satu tempat,
// menggantikan lookup tersebar per endpoint.
type ProfilRepository interface {
	FindByUser(role string, userID uuid.UUID) (*Profil, error)
	UpdatesByUser(role string, userID uuid.UUID, updates map[string]interface{}) error
	DeleteByUser(role string, userID uuid.UUID) error

	FindInstansiByID(id uuid.UUID) (*model.Instansi, error)

	ListMahasiswa(fakultas string) ([]model.Mahasiswa, error)
	ListSiswa(sekolah string) ([]model.Siswa, error)
	ListDosen(fakultas string) ([]model.DosenPembimbing, error)
	ListGuru(sekolah string) ([]model.GuruPembimbing, error)
	ListInstansi() ([]model.Instansi, error)
}

type profilRepository struct {
	db *gorm.DB
}

// NewProfilRepository membuat instance baru profilRepository.
func NewProfilRepository(db *gorm.DB) ProfilRepository {
	return &profilRepository{db}
}

// FindByUser mengambil baris profil milik satu user sesuai role-nya.
// Role admin tidak punya tabel profil: dikembalikan Profil kosong.
// Role di luar daftar -> error (bukan hasil kosong).
func (r *profilRepository) FindByUser(role string, userID uuid.UUID) (*Profil, error) {
	switch role {
	case model.RoleMahasiswa:
		var m model.Mahasiswa
		if err := r.db.Where("id_user = ?", userID).First(&m).Error; err != nil {
			return nil, err
		}
		return &Profil{ProfilID: m.ID, Fakultas: m.Fakultas, Detail: m}, nil

	case model.RoleSiswa:
		var s model.Siswa
		if err := r.db.Where("id_user = ?", userID).First(&s).Error; err != nil {
			return nil, err
		}
		return &Profil{ProfilID: s.ID, NamaSekolah: s.NamaSekolah, Detail: s}, nil

	case model.RoleDosen:
		var d model.DosenPembimbing
		if err := r.db.Where("id_user = ?", userID).First(&d).Error; err != nil {
			return nil, err
		}
		return &Profil{ProfilID: d.ID, Fakultas: d.Fakultas, Detail: d}, nil

	case model.RoleGuru:
		var g model.GuruPembimbing
		if err := r.db.Where("id_user = ?", userID).First(&g).Error; err != nil {
			return nil, err
		}
		return &Profil{ProfilID: g.ID, NamaSekolah: g.NamaSekolah, Detail: g}, nil

	case model.RoleInstansi:
		var i model.Instansi
		if err := r.db.Where("id_user = ?", userID).First(&i).Error; err != nil {
			return nil, err
		}
		return &Profil{ProfilID: i.ID, Detail: i}, nil

	case model.RoleAdminFak:
		var a model.AdminFakultas
		if err := r.db.Where("id_user = ?", userID).First(&a).Error; err != nil {
			return nil, err
		}
		return &Profil{ProfilID: a.ID, Fakultas: a.Fakultas, Detail: a}, nil

	case model.RoleAdminSekolah:
		var a model.AdminSekolah
		if err := r.db.Where("id_user = ?", userID).First(&a).Error; err != nil {
			return nil, err
		}
		return &Profil{ProfilID: a.ID, NamaSekolah: a.NamaSekolah, Detail: a}, nil

	case model.RoleAdmin:
		return &Profil{}, nil
	}

	return nil, fmt.Errorf("role tidak dikenal: %s", role)
}

// UpdatesByUser menulis partial update ke tabel profil sesuai role.
func (r *profilRepository) UpdatesByUser(role string, userID uuid.UUID, updates map[string]interface{}) error {
	switch role {
	case model.RoleMahasiswa:
		return r.db.Model(&model.Mahasiswa{}).Where("id_user = ?", userID).Updates(updates).Error
	case model.RoleSiswa:
		return r.db.Model(&model.Siswa{}).Where("id_user = ?", userID).Updates(updates).Error
	case model.RoleDosen:
		return r.db.Model(&model.DosenPembimbing{}).Where("id_user = ?", userID).Updates(updates).Error
	case model.RoleGuru:
		return r.db.Model(&model.GuruPembimbing{}).Where("id_user = ?", userID).Updates(updates).Error
	case model.RoleInstansi:
		return r.db.Model(&model.Instansi{}).Where("id_user = ?", userID).Updates(updates).Error
	case model.RoleAdminFak:
		return r.db.Model(&model.AdminFakultas{}).Where("id_user = ?", userID).Updates(updates).Error
	case model.RoleAdminSekolah:
		return r.db.Model(&model.AdminSekolah{}).Where("id_user = ?", userID).Updates(updates).Error
	case model.RoleAdmin:
		return nil
	}
	return fmt.Errorf("role tidak dikenal: %s", role)
}

// DeleteByUser menghapus baris profil milik satu user (dipakai saat
// admin menghapus akun).
func (r *profilRepository) DeleteByUser(role string, userID uuid.UUID) error {
	switch role {
	case model.RoleMahasiswa:
		return r.db.Where("id_user = ?", userID).Delete(&model.Mahasiswa{}).Error
	case model.RoleSiswa:
		return r.db.Where("id_user = ?", userID).Delete(&model.Siswa{}).Error
	case model.RoleDosen:
		return r.db.Where("id_user = ?", userID).Delete(&model.DosenPembimbing{}).Error
	case model.RoleGuru:
		return r.db.Where("id_user = ?", userID).Delete(&model.GuruPembimbing{}).Error
	case model.RoleInstansi:
		return r.db.Where("id_user = ?", userID).Delete(&model.Instansi{}).Error
	case model.RoleAdminFak:
		return r.db.Where("id_user = ?", userID).Delete(&model.AdminFakultas{}).Error
	case model.RoleAdminSekolah:
		return r.db.Where("id_user = ?", userID).Delete(&model.AdminSekolah{}).Error
	case model.RoleAdmin:
		return nil
	}
	return fmt.Errorf("role tidak dikenal: %s", role)
}

func (r *profilRepository) FindInstansiByID(id uuid.UUID) (*model.Instansi, error) {
	var i model.Instansi
	err := r.db.Preload("User").Where("id = ?", id).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *profilRepository) ListMahasiswa(fakultas string) ([]model.Mahasiswa, error) {
	var list []model.Mahasiswa
	q := r.db.Preload("User")
	if fakultas != "" {
		q = q.Where("fakultas = ?", fakultas)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *profilRepository) ListSiswa(sekolah string) ([]model.Siswa, error) {
	var list []model.Siswa
	q := r.db.Preload("User")
	if sekolah != "" {
		q = q.Where("sekolah = ?", sekolah)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *profilRepository) ListDosen(fakultas string) ([]model.DosenPembimbing, error) {
	var list []model.DosenPembimbing
	q := r.db.Preload("User")
	if fakultas != "" {
		q = q.Where("fakultas = ?", fakultas)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *profilRepository) ListGuru(sekolah string) ([]model.GuruPembimbing, error) {
	var list []model.GuruPembimbing
	q := r.db.Preload("User")
	if sekolah != "" {
		q = q.Where("sekolah = ?", sekolah)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *profilRepository) ListInstansi() ([]model.Instansi, error) {
	var list []model.Instansi
	err := r.db.Order("nama_instansi ASC").Find(&list).Error
	return list, err
}
