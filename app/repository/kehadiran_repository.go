package repository

import (
	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatistikKehadiran adalah rekap absensi satu pengajuan.
type StatistikKehadiran struct {
	Total           int64   `json:"total"`
	Hadir           int64   `json:"hadir"`
	Izin            int64   `json:"izin"`
	Sakit           int64   `json:"sakit"`
	Alpha           int64   `json:"alpha"`
	PersentaseHadir float64 `json:"persentase_hadir"`
}

// KehadiranRepository mendefinisikan operasi database untuk absensi harian.
type KehadiranRepository interface {
	Create(k *model.Kehadiran) error
	FindByID(id uuid.UUID) (*model.Kehadiran, error)
	FindByPengajuan(pengajuanID uuid.UUID) ([]model.Kehadiran, error)
	FindByPengajuanIDs(ids []uuid.UUID) ([]model.Kehadiran, error)
	FindByTanggal(pengajuanID uuid.UUID, tanggal string) (*model.Kehadiran, error)
	Updates(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
	Statistik(pengajuanID uuid.UUID) (*StatistikKehadiran, error)
}

type kehadiranRepository struct {
	db *gorm.DB
}

// NewKehadiranRepository membuat instance repository kehadiran.
func NewKehadiranRepository(db *gorm.DB) KehadiranRepository {
	return &kehadiranRepository{db}
}

// Create menyimpan baris absensi baru. Unique index (id_pengajuan, tanggal)
// menolak absensi ganda di hari yang sama.
func (r *kehadiranRepository) Create(k *model.Kehadiran) error {
	return r.db.Create(k).Error
}

func (r *kehadiranRepository) FindByID(id uuid.UUID) (*model.Kehadiran, error) {
	var k model.Kehadiran
	err := r.db.Where("id = ?", id).First(&k).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *kehadiranRepository) FindByPengajuan(pengajuanID uuid.UUID) ([]model.Kehadiran, error) {
	var list []model.Kehadiran
	err := r.db.Where("id_pengajuan = ?", pengajuanID).Order("tanggal DESC").Find(&list).Error
	return list, err
}

// FindByPengajuanIDs mengambil absensi beberapa pengajuan sekaligus
// (listing untuk pembimbing/admin).
func (r *kehadiranRepository) FindByPengajuanIDs(ids []uuid.UUID) ([]model.Kehadiran, error) {
	if len(ids) == 0 {
		return []model.Kehadiran{}, nil
	}
	var list []model.Kehadiran
	err := r.db.Where("id_pengajuan IN ?", ids).Order("tanggal DESC").Find(&list).Error
	return list, err
}

// FindByTanggal mengambil absensi satu hari tertentu; gorm.ErrRecordNotFound
// kalau belum ada (dipakai endpoint today dan toggle checkin/checkout).
func (r *kehadiranRepository) FindByTanggal(pengajuanID uuid.UUID, tanggal string) (*model.Kehadiran, error) {
	var k model.Kehadiran
	err := r.db.Where("id_pengajuan = ? AND tanggal = ?", pengajuanID, tanggal).First(&k).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *kehadiranRepository) Updates(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&model.Kehadiran{}).Where("id = ?", id).Updates(updates).Error
}

func (r *kehadiranRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&model.Kehadiran{}).Error
}

// Statistik menghitung rekap per status + persentase hadir.
func (r *kehadiranRepository) Statistik(pengajuanID uuid.UUID) (*StatistikKehadiran, error) {
	stat := &StatistikKehadiran{}

	base := func() *gorm.DB {
		return r.db.Model(&model.Kehadiran{}).Where("id_pengajuan = ?", pengajuanID)
	}

	if err := base().Count(&stat.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status_kehadiran = ?", model.KehadiranHadir).Count(&stat.Hadir).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status_kehadiran = ?", model.KehadiranIzin).Count(&stat.Izin).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status_kehadiran = ?", model.KehadiranSakit).Count(&stat.Sakit).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status_kehadiran = ?", model.KehadiranAlpha).Count(&stat.Alpha).Error; err != nil {
		return nil, err
	}

	if stat.Total > 0 {
		stat.PersentaseHadir = float64(stat.Hadir) / float64(stat.Total) * 100
	}
	return stat, nil
}
