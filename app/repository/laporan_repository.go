package repository

import (
	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LaporanRepository mendefinisikan operasi database untuk laporan kegiatan.
type LaporanRepository interface {
	Create(l *model.Laporan) error
	FindByID(id uuid.UUID) (*model.Laporan, error)
	FindByPengajuan(pengajuanID uuid.UUID) ([]model.Laporan, error)
	FindByPengajuanIDs(ids []uuid.UUID) ([]model.Laporan, error)
	Updates(id uuid.UUID, updates map[string]interface{}) error
}

type laporanRepository struct {
	db *gorm.DB
}

// NewLaporanRepository membuat instance repository laporan.
func NewLaporanRepository(db *gorm.DB) LaporanRepository {
	return &laporanRepository{db}
}

func (r *laporanRepository) Create(l *model.Laporan) error {
	return r.db.Create(l).Error
}

func (r *laporanRepository) FindByID(id uuid.UUID) (*model.Laporan, error) {
	var l model.Laporan
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *laporanRepository) FindByPengajuan(pengajuanID uuid.UUID) ([]model.Laporan, error) {
	var list []model.Laporan
	err := r.db.Where("id_pengajuan = ?", pengajuanID).Order("tanggal DESC").Find(&list).Error
	return list, err
}

func (r *laporanRepository) FindByPengajuanIDs(ids []uuid.UUID) ([]model.Laporan, error) {
	if len(ids) == 0 {
		return []model.Laporan{}, nil
	}
	var list []model.Laporan
	err := r.db.Where("id_pengajuan IN ?", ids).Order("tanggal DESC").Find(&list).Error
	return list, err
}

func (r *laporanRepository) Updates(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&model.Laporan{}).Where("id = ?", id).Updates(updates).Error
}
