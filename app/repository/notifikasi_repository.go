package repository

import (
	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotifikasiRepository mendefinisikan operasi database untuk notifikasi.
// Insert dipanggil fire-and-forget oleh workflow: error-nya di-log,
// tidak pernah menggagalkan operasi utama.
type NotifikasiRepository interface {
	Create(n *model.Notifikasi) error
	CreateMany(list []model.Notifikasi) error
	FindByUser(userID uuid.UUID) ([]model.Notifikasi, error)
	CountUnread(userID uuid.UUID) (int64, error)
	MarkAsRead(id, userID uuid.UUID) error
	MarkAllAsRead(userID uuid.UUID) error
	Delete(id, userID uuid.UUID) error
}

type notifikasiRepository struct {
	db *gorm.DB
}

// NewNotifikasiRepository membuat instance repository notifikasi.
func NewNotifikasiRepository(db *gorm.DB) NotifikasiRepository {
	return &notifikasiRepository{db}
}

func (r *notifikasiRepository) Create(n *model.Notifikasi) error {
	return r.db.Create(n).Error
}

// CreateMany dipakai broadcast (mis. pengajuan baru -> semua dosen/guru).
func (r *notifikasiRepository) CreateMany(list []model.Notifikasi) error {
	if len(list) == 0 {
		return nil
	}
	return r.db.Create(&list).Error
}

func (r *notifikasiRepository) FindByUser(userID uuid.UUID) ([]model.Notifikasi, error) {
	var list []model.Notifikasi
	err := r.db.Where("id_user = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *notifikasiRepository) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notifikasi{}).
		Where("id_user = ? AND dibaca = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead menandai satu notifikasi terbaca. Filter id_user menjamin
// user hanya bisa menandai miliknya sendiri.
func (r *notifikasiRepository) MarkAsRead(id, userID uuid.UUID) error {
	return r.db.Model(&model.Notifikasi{}).
		Where("id = ? AND id_user = ?", id, userID).
		Update("dibaca", true).Error
}

func (r *notifikasiRepository) MarkAllAsRead(userID uuid.UUID) error {
	return r.db.Model(&model.Notifikasi{}).
		Where("id_user = ? AND dibaca = ?", userID, false).
		Update("dibaca", true).Error
}

func (r *notifikasiRepository) Delete(id, userID uuid.UUID) error {
	return r.db.Where("id = ? AND id_user = ?", id, userID).Delete(&model.Notifikasi{}).Error
}
