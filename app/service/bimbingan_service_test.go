package service

import (
	"net/http"
	"testing"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBimbinganServiceTest(t *testing.T, db *gorm.DB) BimbinganService {
	t.Helper()
	return NewBimbinganService(
		repository.NewBimbinganRepository(db),
		repository.NewPengajuanRepository(db),
		repository.NewNotifikasiRepository(db),
		NewPrincipalService(repository.NewProfilRepository(db)),
	)
}

// Fixture satu pengajuan Magang disetujui dengan dosen pembimbing.
type bimbinganFixture struct {
	userMhs   model.User
	userDosen model.User
	pengajuan model.Pengajuan
}

func seedBimbinganFixture(t *testing.T, db *gorm.DB) bimbinganFixture {
	t.Helper()
	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	userDosen, dosen := seedDosen(t, db)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)
	require.NoError(t, db.Model(&model.Pengajuan{}).Where("id = ?", p.ID).
		Update("id_dosen_pembimbing", dosen.ID).Error)
	return bimbinganFixture{userMhs: userMhs, userDosen: userDosen, pengajuan: p}
}

func seedBimbingan(t *testing.T, db *gorm.DB, pengajuanID uuid.UUID, status string) model.Bimbingan {
	t.Helper()
	b := model.Bimbingan{
		ID:              uuid.New(),
		IDPengajuan:     pengajuanID,
		TopikBimbingan:  "Progres laporan bab 2",
		StatusBimbingan: status,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// Peserta mengajukan bimbingan: status awal Diajukan, pembimbing
// mendapat notifikasi.
func TestCreateBimbinganNotifikasiPembimbing(t *testing.T) {
	db := setupServiceDB(t)
	svc := newBimbinganServiceTest(t, db)
	fx := seedBimbinganFixture(t, db)

	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"id_pengajuan":    fx.pengajuan.ID,
		"topik_bimbingan": "Konsultasi judul",
	}, fx.userMhs.ID, model.RoleMahasiswa, nil)
	svc.Create(ctx)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b model.Bimbingan
	require.NoError(t, db.First(&b, "id_pengajuan = ?", fx.pengajuan.ID).Error)
	assert.Equal(t, model.BimbinganDiajukan, b.StatusBimbingan)

	assert.EqualValues(t, 1, hitungNotifikasi(t, db, fx.userDosen.ID))
}

// Rating sah hanya pada sesi Selesai, dan hanya nilai 1-5.
func TestRatingHanyaUntukBimbinganSelesai(t *testing.T) {
	db := setupServiceDB(t)
	svc := newBimbinganServiceTest(t, db)
	fx := seedBimbinganFixture(t, db)

	dijadwalkan := seedBimbingan(t, db, fx.pengajuan.ID, model.BimbinganDijadwalkan)
	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{"rating": 5},
		fx.userMhs.ID, model.RoleMahasiswa, paramID(dijadwalkan.ID))
	svc.Rating(ctx)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status_invalid")

	selesai := seedBimbingan(t, db, fx.pengajuan.ID, model.BimbinganSelesai)
	for _, nilai := range []int{1, 5} {
		ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{"rating": nilai},
			fx.userMhs.ID, model.RoleMahasiswa, paramID(selesai.ID))
		svc.Rating(ctx)
		require.Equal(t, http.StatusOK, w.Code, "rating %d harus diterima", nilai)
	}

	var after model.Bimbingan
	require.NoError(t, db.First(&after, "id = ?", selesai.ID).Error)
	require.NotNil(t, after.Rating)
	assert.Equal(t, 5, *after.Rating)
}

// Semua nilai di luar 1-5 kena pesan rentang yang sama, termasuk 0.
func TestRatingDiLuarRentangDitolak(t *testing.T) {
	db := setupServiceDB(t)
	svc := newBimbinganServiceTest(t, db)
	fx := seedBimbinganFixture(t, db)
	selesai := seedBimbingan(t, db, fx.pengajuan.ID, model.BimbinganSelesai)

	for _, nilai := range []int{-1, 0, 6} {
		ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{"rating": nilai},
			fx.userMhs.ID, model.RoleMahasiswa, paramID(selesai.ID))
		svc.Rating(ctx)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d harus ditolak", nilai)
		assert.Contains(t, w.Body.String(), "rating_invalid", "rating %d kena pesan rentang", nilai)
	}
}

// Pembimbing menjadwalkan sesi; peserta dinotifikasi.
func TestJadwalOlehPembimbing(t *testing.T) {
	db := setupServiceDB(t)
	svc := newBimbinganServiceTest(t, db)
	fx := seedBimbinganFixture(t, db)
	b := seedBimbingan(t, db, fx.pengajuan.ID, model.BimbinganDiajukan)

	lokasi := "Ruang Dosen Lt. 2"
	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"tanggal_bimbingan": "2026-09-15",
		"lokasi_bimbingan":  lokasi,
	}, fx.userDosen.ID, model.RoleDosen, paramID(b.ID))
	svc.Jadwal(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after model.Bimbingan
	require.NoError(t, db.First(&after, "id = ?", b.ID).Error)
	assert.Equal(t, model.BimbinganDijadwalkan, after.StatusBimbingan)
	assert.Equal(t, "2026-09-15", after.TanggalBimbingan)

	assert.EqualValues(t, 1, hitungNotifikasi(t, db, fx.userMhs.ID))
}

// Peserta tidak boleh menjadwalkan sendiri.
func TestJadwalOlehPesertaDitolak(t *testing.T) {
	db := setupServiceDB(t)
	svc := newBimbinganServiceTest(t, db)
	fx := seedBimbinganFixture(t, db)
	b := seedBimbingan(t, db, fx.pengajuan.ID, model.BimbinganDiajukan)

	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"tanggal_bimbingan": "2026-09-15",
	}, fx.userMhs.ID, model.RoleMahasiswa, paramID(b.ID))
	svc.Jadwal(ctx)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// Sesi Selesai tidak bisa dibatalkan; sesi lain bisa, dan pihak lawan
// dinotifikasi.
func TestBatalBimbingan(t *testing.T) {
	db := setupServiceDB(t)
	svc := newBimbinganServiceTest(t, db)
	fx := seedBimbinganFixture(t, db)

	selesai := seedBimbingan(t, db, fx.pengajuan.ID, model.BimbinganSelesai)
	ctx1, w1 := newTestCtx(t, http.MethodPut, nil,
		fx.userMhs.ID, model.RoleMahasiswa, paramID(selesai.ID))
	svc.Batal(ctx1)
	assert.Equal(t, http.StatusBadRequest, w1.Code)

	diajukan := seedBimbingan(t, db, fx.pengajuan.ID, model.BimbinganDiajukan)
	ctx2, w2 := newTestCtx(t, http.MethodPut, nil,
		fx.userMhs.ID, model.RoleMahasiswa, paramID(diajukan.ID))
	svc.Batal(ctx2)
	require.Equal(t, http.StatusOK, w2.Code)

	var after model.Bimbingan
	require.NoError(t, db.First(&after, "id = ?", diajukan.ID).Error)
	assert.Equal(t, model.BimbinganDibatalkan, after.StatusBimbingan)
	assert.EqualValues(t, 1, hitungNotifikasi(t, db, fx.userDosen.ID),
		"pembimbing dinotifikasi saat peserta membatalkan")
}
