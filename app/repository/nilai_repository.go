package repository

import (
	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NilaiRepository mendefinisikan operasi database untuk penilaian.
type NilaiRepository interface {
	Create(n *model.Nilai) error
	FindByID(id uuid.UUID) (*model.Nilai, error)
	FindByPengajuan(pengajuanID uuid.UUID) ([]model.Nilai, error)
	FindByPengajuanIDs(ids []uuid.UUID) ([]model.Nilai, error)
	Updates(id uuid.UUID, updates map[string]interface{}) error
}

type nilaiRepository struct {
	db *gorm.DB
}

// NewNilaiRepository membuat instance repository nilai.
func NewNilaiRepository(db *gorm.DB) NilaiRepository {
	return &nilaiRepository{db}
}

func (r *nilaiRepository) Create(n *model.Nilai) error {
	return r.db.Create(n).Error
}

func (r *nilaiRepository) FindByID(id uuid.UUID) (*model.Nilai, error) {
	var n model.Nilai
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *nilaiRepository) FindByPengajuan(pengajuanID uuid.UUID) ([]model.Nilai, error) {
	var list []model.Nilai
	err := r.db.Where("id_pengajuan = ?", pengajuanID).Order("aspek_penilaian ASC").Find(&list).Error
	return list, err
}

func (r *nilaiRepository) FindByPengajuanIDs(ids []uuid.UUID) ([]model.Nilai, error) {
	if len(ids) == 0 {
		return []model.Nilai{}, nil
	}
	var list []model.Nilai
	err := r.db.Where("id_pengajuan IN ?", ids).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *nilaiRepository) Updates(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&model.Nilai{}).Where("id = ?", id).Updates(updates).Error
}
