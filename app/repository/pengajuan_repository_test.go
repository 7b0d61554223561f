package repository

import (
	"testing"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPengajuanTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// buatPeserta menanam user + profil mahasiswa/siswa sekaligus.
func buatMahasiswaRepoTest(t *testing.T, db *gorm.DB, fakultas string) model.Mahasiswa {
	t.Helper()
	user := model.User{
		ID: uuid.New(), Username: "mhs_" + uuid.NewString()[:8],
		Email: uuid.NewString()[:8] + "@test.id", Password: "x",
		NamaLengkap: "Mahasiswa Test", Role: model.RoleMahasiswa, IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	m := model.Mahasiswa{
		ID: uuid.New(), IDUser: user.ID,
		NIM: uuid.NewString()[:12], Fakultas: fakultas, Prodi: "Informatika",
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func buatSiswaRepoTest(t *testing.T, db *gorm.DB, sekolah string) model.Siswa {
	t.Helper()
	user := model.User{
		ID: uuid.New(), Username: "sis_" + uuid.NewString()[:8],
		Email: uuid.NewString()[:8] + "@test.id", Password: "x",
		NamaLengkap: "Siswa Test", Role: model.RoleSiswa, IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	s := model.Siswa{
		ID: uuid.New(), IDUser: user.ID,
		NISN: uuid.NewString()[:12], NamaSekolah: sekolah, Jurusan: "RPL",
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func buatInstansiRepoTest(t *testing.T, db *gorm.DB) model.Instansi {
	t.Helper()
	user := model.User{
		ID: uuid.New(), Username: "ins_" + uuid.NewString()[:8],
		Email: uuid.NewString()[:8] + "@test.id", Password: "x",
		NamaLengkap: "Instansi Test", Role: model.RoleInstansi, IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	i := model.Instansi{
		ID: uuid.New(), IDUser: user.ID,
		NamaInstansi: "PT Test", RadiusAbsensi: 100,
	}
	require.NoError(t, db.Create(&i).Error)
	return i
}

func buatPengajuanMagang(t *testing.T, db *gorm.DB, mahasiswaID, instansiID uuid.UUID, status string) model.Pengajuan {
	t.Helper()
	p := model.Pengajuan{
		ID: uuid.New(), JenisPengajuan: model.JenisMagang,
		IDMahasiswa: &mahasiswaID, IDInstansi: instansiID,
		Posisi: "Backend", TanggalMulai: "2026-09-01", TanggalSelesai: "2026-12-01",
		DurasiBulan: 3, Status: status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func buatPengajuanPKL(t *testing.T, db *gorm.DB, siswaID, instansiID uuid.UUID, status string) model.Pengajuan {
	t.Helper()
	p := model.Pengajuan{
		ID: uuid.New(), JenisPengajuan: model.JenisPKL,
		IDSiswa: &siswaID, IDInstansi: instansiID,
		Posisi: "Teknisi", TanggalMulai: "2026-09-01", TanggalSelesai: "2026-12-01",
		DurasiBulan: 3, Status: status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Dosen melihat pengajuan yang dibimbingnya plus semua Magang berstatus
// Diajukan (kandidat verifikasi), tapi tidak pernah PKL.
func TestFindScopedDosen(t *testing.T) {
	db := setupPengajuanTestDB(t)
	repo := NewPengajuanRepository(db)

	instansi := buatInstansiRepoTest(t, db)
	m1 := buatMahasiswaRepoTest(t, db, "Fakultas Teknik")
	m2 := buatMahasiswaRepoTest(t, db, "Fakultas Ekonomi")
	sis := buatSiswaRepoTest(t, db, "SMKN 1")

	dosenID := uuid.New()

	dibimbing := buatPengajuanMagang(t, db, m1.ID, instansi.ID, model.StatusDisetujui)
	require.NoError(t, db.Model(&model.Pengajuan{}).Where("id = ?", dibimbing.ID).
		Update("id_dosen_pembimbing", dosenID).Error)

	kandidat := buatPengajuanMagang(t, db, m2.ID, instansi.ID, model.StatusDiajukan)
	buatPengajuanPKL(t, db, sis.ID, instansi.ID, model.StatusDiajukan)
	ditolak := buatPengajuanMagang(t, db, m2.ID, instansi.ID, model.StatusDitolak)

	list, err := repo.FindScoped(PengajuanScope{DosenID: &dosenID})
	require.NoError(t, err)

	ids := map[uuid.UUID]bool{}
	for _, p := range list {
		ids[p.ID] = true
	}
	assert.True(t, ids[dibimbing.ID], "pengajuan yang dibimbing harus terlihat")
	assert.True(t, ids[kandidat.ID], "kandidat Magang Diajukan harus terlihat")
	assert.False(t, ids[ditolak.ID], "Magang Ditolak milik orang lain tidak terlihat")
	assert.Len(t, list, 2)
}

// Admin fakultas hanya melihat Magang yang fakultas pesertanya sama.
func TestFindScopedAdminFakultas(t *testing.T) {
	db := setupPengajuanTestDB(t)
	repo := NewPengajuanRepository(db)

	instansi := buatInstansiRepoTest(t, db)
	teknik := buatMahasiswaRepoTest(t, db, "Fakultas Teknik")
	ekonomi := buatMahasiswaRepoTest(t, db, "Fakultas Ekonomi")
	sis := buatSiswaRepoTest(t, db, "SMKN 1")

	milikTeknik := buatPengajuanMagang(t, db, teknik.ID, instansi.ID, model.StatusDiajukan)
	buatPengajuanMagang(t, db, ekonomi.ID, instansi.ID, model.StatusDiajukan)
	buatPengajuanPKL(t, db, sis.ID, instansi.ID, model.StatusDiajukan)

	fakultas := "Fakultas Teknik"
	list, err := repo.FindScoped(PengajuanScope{Fakultas: &fakultas})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, milikTeknik.ID, list[0].ID)
}

// Peserta hanya melihat pengajuannya sendiri; scope kosong berarti tidak
// ada yang terlihat.
func TestFindScopedPesertaDanKosong(t *testing.T) {
	db := setupPengajuanTestDB(t)
	repo := NewPengajuanRepository(db)

	instansi := buatInstansiRepoTest(t, db)
	m1 := buatMahasiswaRepoTest(t, db, "Fakultas Teknik")
	m2 := buatMahasiswaRepoTest(t, db, "Fakultas Teknik")

	milik := buatPengajuanMagang(t, db, m1.ID, instansi.ID, model.StatusDiajukan)
	buatPengajuanMagang(t, db, m2.ID, instansi.ID, model.StatusDiajukan)

	list, err := repo.FindScoped(PengajuanScope{MahasiswaID: &m1.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, milik.ID, list[0].ID)

	kosong, err := repo.FindScoped(PengajuanScope{})
	require.NoError(t, err)
	assert.Empty(t, kosong)
}

// Updates menulis hanya kolom yang ada di map.
func TestUpdatesPartial(t *testing.T) {
	db := setupPengajuanTestDB(t)
	repo := NewPengajuanRepository(db)

	instansi := buatInstansiRepoTest(t, db)
	m := buatMahasiswaRepoTest(t, db, "Fakultas Teknik")
	p := buatPengajuanMagang(t, db, m.ID, instansi.ID, model.StatusDiajukan)

	require.NoError(t, repo.Updates(p.ID, map[string]interface{}{"posisi": "Data Engineer"}))

	after, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", after.Posisi)
	assert.Equal(t, model.StatusDiajukan, after.Status, "kolom lain tidak berubah")
	assert.Nil(t, after.StatusAdminFakultas)
}
