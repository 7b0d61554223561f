package service

import (
	"net/http"
	"testing"
	"time"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newKehadiranServiceTest(t *testing.T, db *gorm.DB) KehadiranService {
	t.Helper()
	return NewKehadiranService(
		repository.NewKehadiranRepository(db),
		repository.NewPengajuanRepository(db),
		NewPrincipalService(repository.NewProfilRepository(db)),
	)
}

// Toggle check-in: panggilan pertama membuat baris dengan jam_masuk,
// kedua mengisi jam_keluar, ketiga ditolak.
func TestCheckinToggle(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)

	body := map[string]interface{}{"id_pengajuan": p.ID}

	ctx1, w1 := newTestCtx(t, http.MethodPost, body, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Checkin(ctx1)
	require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

	today := time.Now().Format("2006-01-02")
	var k model.Kehadiran
	require.NoError(t, db.First(&k, "id_pengajuan = ? AND tanggal = ?", p.ID, today).Error)
	assert.NotNil(t, k.JamMasuk)
	assert.Nil(t, k.JamKeluar)
	assert.Equal(t, model.KehadiranHadir, k.StatusKehadiran)

	ctx2, w2 := newTestCtx(t, http.MethodPost, body, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Checkin(ctx2)
	require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	require.NoError(t, db.First(&k, "id = ?", k.ID).Error)
	assert.NotNil(t, k.JamKeluar)

	ctx3, w3 := newTestCtx(t, http.MethodPost, body, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Checkin(ctx3)
	assert.Equal(t, http.StatusBadRequest, w3.Code)
	assert.Contains(t, w3.Body.String(), "already_checked_out")
}

// Check-in di luar radius tetap tercatat, hanya ditandai tidak valid.
func TestCheckinDiLuarRadiusTetapTercatat(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	lat, lng := -4.013, 119.627
	_, instansi := seedInstansi(t, db, &lat, &lng)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)

	// Geser ~0.002 derajat lintang, kira-kira 220 m dari instansi
	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"id_pengajuan": p.ID,
		"latitude":     lat + 0.002,
		"longitude":    lng,
		"akurasi":      10,
	}, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Checkin(ctx)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var k model.Kehadiran
	require.NoError(t, db.First(&k, "id_pengajuan = ?", p.ID).Error)
	require.NotNil(t, k.LokasiValidCheckin)
	assert.False(t, *k.LokasiValidCheckin, "di luar radius 100m ditandai tidak valid")
	require.NotNil(t, k.JarakCheckin)
	assert.Greater(t, *k.JarakCheckin, 100)
	assert.NotNil(t, k.JamMasuk, "absensi tetap tercatat")
}

// Check-in dalam radius valid dan jaraknya terekam.
func TestCheckinDalamRadius(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	lat, lng := -4.013, 119.627
	_, instansi := seedInstansi(t, db, &lat, &lng)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)

	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"id_pengajuan": p.ID,
		"latitude":     lat,
		"longitude":    lng,
	}, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Checkin(ctx)
	require.Equal(t, http.StatusCreated, w.Code)

	var k model.Kehadiran
	require.NoError(t, db.First(&k, "id_pengajuan = ?", p.ID).Error)
	require.NotNil(t, k.LokasiValidCheckin)
	assert.True(t, *k.LokasiValidCheckin)
	require.NotNil(t, k.JarakCheckin)
	assert.Equal(t, 0, *k.JarakCheckin)
}

// Instansi tanpa koordinat: validasi dilewati, jarak nil, tetap valid.
func TestCheckinTanpaKoordinatInstansi(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)

	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"id_pengajuan": p.ID,
		"latitude":     -4.013,
		"longitude":    119.627,
	}, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Checkin(ctx)
	require.Equal(t, http.StatusCreated, w.Code)

	var k model.Kehadiran
	require.NoError(t, db.First(&k, "id_pengajuan = ?", p.ID).Error)
	require.NotNil(t, k.LokasiValidCheckin)
	assert.True(t, *k.LokasiValidCheckin)
	assert.Nil(t, k.JarakCheckin)
}

// Pembimbing bukan peserta: tidak boleh check-in atas nama orang lain.
func TestCheckinBukanPesertaDitolak(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	_, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	dosenUser, dosen := seedDosen(t, db)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)
	require.NoError(t, db.Model(&model.Pengajuan{}).Where("id = ?", p.ID).
		Update("id_dosen_pembimbing", dosen.ID).Error)

	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"id_pengajuan": p.ID,
	}, dosenUser.ID, model.RoleDosen, nil)
	svc.Checkin(ctx)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// Catat manual dua kali di tanggal yang sama ditolak.
func TestCreateKehadiranTanggalGanda(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)

	body := map[string]interface{}{
		"id_pengajuan":     p.ID,
		"tanggal":          "2026-09-02",
		"status_kehadiran": model.KehadiranIzin,
		"keterangan":       "Urusan keluarga",
	}

	ctx1, w1 := newTestCtx(t, http.MethodPost, body, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Create(ctx1)
	require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

	ctx2, w2 := newTestCtx(t, http.MethodPost, body, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Create(ctx2)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
	assert.Contains(t, w2.Body.String(), "duplicate_tanggal")
}

// Status kehadiran di luar enum ditolak.
func TestCreateKehadiranStatusTidakValid(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)

	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"id_pengajuan":     p.ID,
		"tanggal":          "2026-09-02",
		"status_kehadiran": "Bolos",
	}, userMhs.ID, model.RoleMahasiswa, nil)
	svc.Create(ctx)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status_invalid")
}

// Hapus kehadiran khusus admin: peserta tidak boleh menghapus bukti
// presensinya sendiri, pembimbing juga tidak.
func TestDeleteKehadiranHanyaAdmin(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDisetujui)

	k := model.Kehadiran{
		ID: uuid.New(), IDPengajuan: p.ID,
		Tanggal: "2026-09-02", StatusKehadiran: model.KehadiranHadir,
	}
	require.NoError(t, db.Create(&k).Error)

	ctxPeserta, wPeserta := newTestCtx(t, http.MethodDelete, nil, userMhs.ID, model.RoleMahasiswa, paramID(k.ID))
	svc.Delete(ctxPeserta)
	assert.Equal(t, http.StatusForbidden, wPeserta.Code)

	var count int64
	require.NoError(t, db.Model(&model.Kehadiran{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "baris tetap utuh")

	admin := seedUser(t, db, model.RoleAdmin)
	ctxAdmin, wAdmin := newTestCtx(t, http.MethodDelete, nil, admin.ID, model.RoleAdmin, paramID(k.ID))
	svc.Delete(ctxAdmin)
	require.Equal(t, http.StatusOK, wAdmin.Code, wAdmin.Body.String())

	require.NoError(t, db.Model(&model.Kehadiran{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Siswa yang baris profilnya belum ada mendapat daftar kosong, bukan 403.
func TestGetAllKehadiranTanpaProfil(t *testing.T) {
	db := setupServiceDB(t)
	svc := newKehadiranServiceTest(t, db)

	u := seedUser(t, db, model.RoleSiswa) // sengaja tanpa baris siswa
	ctx, w := newTestCtx(t, http.MethodGet, nil, u.ID, model.RoleSiswa, nil)
	svc.GetAll(ctx)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
