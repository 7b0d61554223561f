package repository

import (
	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PengajuanScope adalah hasil terjemahan (role, profil) menjadi filter
// listing pengajuan. Tepat satu field yang terisi; All berarti tanpa filter
// (super admin).
type PengajuanScope struct {
	All         bool
	MahasiswaID *uuid.UUID
	SiswaID     *uuid.UUID
	InstansiID  *uuid.UUID
	DosenID     *uuid.UUID // pengajuan yang dibimbing, plus Magang berstatus Diajukan
	GuruID      *uuid.UUID // simetris untuk PKL
	Fakultas    *string    // admin fakultas: Magang dari fakultasnya
	NamaSekolah *string    // admin sekolah: PKL dari sekolahnya
}

// PengajuanRepository mendefinisikan operasi database untuk entity Pengajuan.
type PengajuanRepository interface {
	Create(p *model.Pengajuan) error
	FindByID(id uuid.UUID) (*model.Pengajuan, error)
	FindScoped(scope PengajuanScope) ([]model.Pengajuan, error)
	Updates(id uuid.UUID, updates map[string]interface{}) error
	CountByStatus(status string) (int64, error)
	CountByJenis(jenis string) (int64, error)
	FindCreatedSince(since string) ([]model.Pengajuan, error)
}

type pengajuanRepository struct {
	db *gorm.DB
}

// NewPengajuanRepository membuat instance repository pengajuan.
func NewPengajuanRepository(db *gorm.DB) PengajuanRepository {
	return &pengajuanRepository{db}
}

func (r *pengajuanRepository) preload(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Mahasiswa.User").
		Preload("Siswa.User").
		Preload("Instansi").
		Preload("DosenPembimbing.User").
		Preload("GuruPembimbing.User")
}

// Create menyimpan pengajuan baru (status awal Diajukan, semua track null).
func (r *pengajuanRepository) Create(p *model.Pengajuan) error {
	return r.db.Create(p).Error
}

// FindByID mengambil satu pengajuan lengkap dengan peserta, instansi,
// dan pembimbingnya.
func (r *pengajuanRepository) FindByID(id uuid.UUID) (*model.Pengajuan, error) {
	var p model.Pengajuan
	err := r.preload(r.db).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindScoped menjalankan listing dengan filter visibilitas per role.
// Aturannya:
//   - peserta/instansi : hanya baris miliknya sendiri
//   - dosen/guru       : baris yang dibimbingnya ATAU pengajuan sejenis
//     yang masih Diajukan (kandidat verifikasi), tanpa filter fakultas
//   - admin fakultas   : Magang yang fakultas pesertanya sama
//   - admin sekolah    : PKL yang sekolah pesertanya sama
//   - admin            : semua
func (r *pengajuanRepository) FindScoped(scope PengajuanScope) ([]model.Pengajuan, error) {
	var list []model.Pengajuan
	q := r.preload(r.db.Model(&model.Pengajuan{})).Order("pengajuan.created_at DESC")

	switch {
	case scope.All:
		// tanpa filter
	case scope.MahasiswaID != nil:
		q = q.Where("id_mahasiswa = ?", *scope.MahasiswaID)
	case scope.SiswaID != nil:
		q = q.Where("id_siswa = ?", *scope.SiswaID)
	case scope.InstansiID != nil:
		q = q.Where("id_instansi = ?", *scope.InstansiID)
	case scope.DosenID != nil:
		q = q.Where("id_dosen_pembimbing = ? OR (jenis_pengajuan = ? AND status = ?)",
			*scope.DosenID, model.JenisMagang, model.StatusDiajukan)
	case scope.GuruID != nil:
		q = q.Where("id_guru_pembimbing = ? OR (jenis_pengajuan = ? AND status = ?)",
			*scope.GuruID, model.JenisPKL, model.StatusDiajukan)
	case scope.Fakultas != nil:
		q = q.Joins("JOIN mahasiswa ON mahasiswa.id = pengajuan.id_mahasiswa").
			Where("pengajuan.jenis_pengajuan = ? AND mahasiswa.fakultas = ?",
				model.JenisMagang, *scope.Fakultas)
	case scope.NamaSekolah != nil:
		q = q.Joins("JOIN siswa ON siswa.id = pengajuan.id_siswa").
			Where("pengajuan.jenis_pengajuan = ? AND siswa.sekolah = ?",
				model.JenisPKL, *scope.NamaSekolah)
	default:
		// scope kosong = tidak ada profil yang cocok, kembalikan kosong
		return []model.Pengajuan{}, nil
	}

	err := q.Find(&list).Error
	return list, err
}

// Updates menulis hanya field yang ada di map (partial update).
// Dipakai update biasa, verifikasi legacy, dan kedua track approval admin.
func (r *pengajuanRepository) Updates(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&model.Pengajuan{}).Where("id = ?", id).Updates(updates).Error
}

// CountByStatus menghitung pengajuan per status (dashboard).
func (r *pengajuanRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Pengajuan{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountByJenis menghitung pengajuan per jenis (dashboard).
func (r *pengajuanRepository) CountByJenis(jenis string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Pengajuan{}).Where("jenis_pengajuan = ?", jenis).Count(&count).Error
	return count, err
}

// FindCreatedSince mengambil pengajuan yang dibuat sejak tanggal tertentu
// (format YYYY-MM-DD). Grouping per bulan dilakukan di service supaya
// query-nya portable antara Postgres dan sqlite.
func (r *pengajuanRepository) FindCreatedSince(since string) ([]model.Pengajuan, error) {
	var list []model.Pengajuan
	err := r.db.Where("created_at >= ?", since).Find(&list).Error
	return list, err
}
