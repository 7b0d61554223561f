package repository

import (
	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository mendefinisikan kontrak operasi database untuk entity User.
// CreateWithProfile dipakai jalur registrasi: user + baris profil role-nya
// masuk dalam satu transaksi, gagal salah satu berarti batal semua.
type UserRepository interface {
	CreateWithProfile(user *model.User, profile interface{}) error
	FindForLogin(role, identifier string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll(role string) ([]model.User, error)
	FindIDsByRole(role string) ([]uuid.UUID, error)
	Updates(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
	ExistsUsername(username string, exclude *uuid.UUID) (bool, error)
	ExistsEmail(email string, exclude *uuid.UUID) (bool, error)
}

// userRepository adalah implementasi konkret UserRepository berbasis GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository membuat instance baru userRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

// CreateWithProfile menyimpan user baru beserta baris profilnya secara atomik.
// profile boleh nil untuk role admin (tidak punya tabel profil).
func (r *userRepository) CreateWithProfile(user *model.User, profile interface{}) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if profile != nil {
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindForLogin mencari user sesuai role-nya:
//   - mahasiswa : NIM lalu username
//   - siswa     : NISN lalu username
//   - dosen     : NIDN lalu username
//   - guru      : NIP lalu username
//   - lainnya   : username lalu email
//
// Role kosong dipakai sebagai fallback auto-detect (username/email saja).
func (r *userRepository) FindForLogin(role, identifier string) (*model.User, error) {
	var user model.User

	type join struct{ table, column string }
	joins := map[string]join{
		model.RoleMahasiswa: {"mahasiswa", "nim"},
		model.RoleSiswa:     {"siswa", "nisn"},
		model.RoleDosen:     {"dosen_pembimbing", "nidn"},
		model.RoleGuru:      {"guru_pembimbing", "nip"},
	}

	if j, ok := joins[role]; ok {
		err := r.db.
			Joins("JOIN "+j.table+" ON "+j.table+".id_user = users.id").
			Where(j.table+"."+j.column+" = ? AND users.role = ?", identifier, role).
			First(&user).Error
		if err == nil {
			return &user, nil
		}

		err = r.db.Where("username = ? AND role = ?", identifier, role).First(&user).Error
		if err != nil {
			return nil, err
		}
		return &user, nil
	}

	q := r.db.Where("username = ? OR email = ?", identifier, identifier)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID mengambil user berdasarkan ID (dipakai endpoint profil).
func (r *userRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll mengambil seluruh user, opsional difilter per role.
func (r *userRepository) FindAll(role string) ([]model.User, error) {
	var users []model.User
	q := r.db.Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&users).Error
	return users, err
}

// FindIDsByRole mengambil ID semua user dengan role tertentu.
// Dipakai broadcast notifikasi ke seluruh calon pembimbing.
func (r *userRepository) FindIDsByRole(role string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.User{}).Where("role = ?", role).Pluck("id", &ids).Error
	return ids, err
}

// Updates mengubah hanya field yang dikirim (partial update).
func (r *userRepository) Updates(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}

// Delete menghapus user. Baris profilnya dihapus service lewat
// ProfilRepository sesuai role.
func (r *userRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&model.User{}).Error
}

// ExistsUsername mengecek apakah username sudah dipakai user lain.
func (r *userRepository) ExistsUsername(username string, exclude *uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.User{}).Where("username = ?", username)
	if exclude != nil {
		q = q.Where("id != ?", *exclude)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// ExistsEmail mengecek apakah email sudah dipakai user lain.
func (r *userRepository) ExistsEmail(email string, exclude *uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.User{}).Where("email = ?", email)
	if exclude != nil {
		q = q.Where("id != ?", *exclude)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
