package repository

import (
	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BimbinganRepository mendefinisikan operasi database untuk sesi bimbingan.
type BimbinganRepository interface {
	Create(b *model.Bimbingan) error
	FindByID(id uuid.UUID) (*model.Bimbingan, error)
	FindByPengajuan(pengajuanID uuid.UUID, status string) ([]model.Bimbingan, error)
	FindByPengajuanIDs(ids []uuid.UUID, status string) ([]model.Bimbingan, error)
	Updates(id uuid.UUID, updates map[string]interface{}) error
}

type bimbinganRepository struct {
	db *gorm.DB
}

// NewBimbinganRepository membuat instance repository bimbingan.
func NewBimbinganRepository(db *gorm.DB) BimbinganRepository {
	return &bimbinganRepository{db}
}

func (r *bimbinganRepository) Create(b *model.Bimbingan) error {
	return r.db.Create(b).Error
}

func (r *bimbinganRepository) FindByID(id uuid.UUID) (*model.Bimbingan, error) {
	var b model.Bimbingan
	err := r.db.Where("id = ?", id).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByPengajuan mengambil sesi bimbingan satu pengajuan,
// opsional difilter status.
func (r *bimbinganRepository) FindByPengajuan(pengajuanID uuid.UUID, status string) ([]model.Bimbingan, error) {
	var list []model.Bimbingan
	q := r.db.Where("id_pengajuan = ?", pengajuanID).Order("created_at DESC")
	if status != "" {
		q = q.Where("status_bimbingan = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

// FindByPengajuanIDs mengambil sesi bimbingan dari beberapa pengajuan
// sekaligus (listing untuk pembimbing/admin).
func (r *bimbinganRepository) FindByPengajuanIDs(ids []uuid.UUID, status string) ([]model.Bimbingan, error) {
	if len(ids) == 0 {
		return []model.Bimbingan{}, nil
	}
	var list []model.Bimbingan
	q := r.db.Where("id_pengajuan IN ?", ids).Order("created_at DESC")
	if status != "" {
		q = q.Where("status_bimbingan = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *bimbinganRepository) Updates(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&model.Bimbingan{}).Where("id = ?", id).Updates(updates).Error
}
