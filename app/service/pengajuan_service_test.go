package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPengajuanServiceTest(t *testing.T, db *gorm.DB) (PengajuanService, *stubGenerator) {
	t.Helper()
	gen := &stubGenerator{}
	svc := NewPengajuanService(
		repository.NewPengajuanRepository(db),
		repository.NewUserRepository(db),
		repository.NewNotifikasiRepository(db),
		NewPrincipalService(repository.NewProfilRepository(db)),
		gen,
	)
	return svc, gen
}

func muatPengajuanTest(t *testing.T, db *gorm.DB, id uuid.UUID) model.Pengajuan {
	t.Helper()
	var p model.Pengajuan
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p
}

// Approval fakultas yang disetujui menulis status keseluruhan, seluruh
// kolom track fakultas, menugaskan dosen, men-trigger generate surat,
// dan menotifikasi peserta.
func TestApproveFakultasDisetujui(t *testing.T) {
	db := setupServiceDB(t)
	svc, gen := newPengajuanServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	_, dosen := seedDosen(t, db)
	admin, _ := seedAdminFakultas(t, db, "Fakultas Teknik")
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDiajukan)

	catatan := "Lengkapi proposal"
	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"approved":      true,
		"catatan":       catatan,
		"id_pembimbing": dosen.ID,
	}, admin.ID, model.RoleAdminFak, paramID(p.ID))

	svc.ApproveFakultas(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	after := muatPengajuanTest(t, db, p.ID)
	assert.Equal(t, model.StatusDisetujui, after.Status)
	require.NotNil(t, after.StatusAdminFakultas)
	assert.Equal(t, model.TrackApproved, *after.StatusAdminFakultas)
	require.NotNil(t, after.ApprovedByFakultas)
	assert.Equal(t, admin.ID, *after.ApprovedByFakultas)
	assert.NotNil(t, after.ApprovedAtFakultas)
	require.NotNil(t, after.CatatanFakultas)
	assert.Equal(t, catatan, *after.CatatanFakultas)
	require.NotNil(t, after.IDDosenPembimbing)
	assert.Equal(t, dosen.ID, *after.IDDosenPembimbing)

	assert.Equal(t, 1, gen.dipanggil, "surat digenerate sekali saat approved")
	assert.EqualValues(t, 1, hitungNotifikasi(t, db, userMhs.ID))
}

// Approval yang ditolak tetap menulis track lengkap tapi tidak pernah
// men-trigger generate surat.
func TestApproveFakultasDitolak(t *testing.T) {
	db := setupServiceDB(t)
	svc, gen := newPengajuanServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	admin, _ := seedAdminFakultas(t, db, "Fakultas Teknik")
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDiajukan)

	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"approved": false,
		"catatan":  "Instansi tidak sesuai prodi",
	}, admin.ID, model.RoleAdminFak, paramID(p.ID))

	svc.ApproveFakultas(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	after := muatPengajuanTest(t, db, p.ID)
	assert.Equal(t, model.StatusDitolak, after.Status)
	require.NotNil(t, after.StatusAdminFakultas)
	assert.Equal(t, model.TrackRejected, *after.StatusAdminFakultas)
	assert.Nil(t, after.IDDosenPembimbing, "rejected tidak menugaskan pembimbing")

	assert.Zero(t, gen.dipanggil, "surat tidak digenerate saat rejected")
	assert.EqualValues(t, 1, hitungNotifikasi(t, db, userMhs.ID))
}

// Admin fakultas mencoba approve pengajuan PKL lewat endpoint sekolah:
// 400 jenis_mismatch dan TIDAK ada kolom yang berubah.
func TestApproveJenisMismatchTidakMengubahApapun(t *testing.T) {
	db := setupServiceDB(t)
	svc, gen := newPengajuanServiceTest(t, db)

	_, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	admin, _ := seedAdminSekolah(t, db, "SMKN 1")
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDiajukan)

	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"approved": true,
	}, admin.ID, model.RoleAdminSekolah, paramID(p.ID))

	svc.ApproveSekolah(ctx)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	after := muatPengajuanTest(t, db, p.ID)
	assert.Equal(t, model.StatusDiajukan, after.Status)
	assert.Nil(t, after.StatusAdminSekolah)
	assert.Nil(t, after.ApprovedBySekolah)
	assert.Zero(t, gen.dipanggil)
}

// Jalur verifikasi legacy menulis status + pembimbing saja; kolom track
// admin tidak pernah disentuh.
func TestVerifikasiTidakMenyentuhTrackAdmin(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPengajuanServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	dosenUser, dosen := seedDosen(t, db)
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDiajukan)

	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"disetujui":       true,
		"id_pembimbing":   dosen.ID,
		"tipe_pembimbing": "dosen",
	}, dosenUser.ID, model.RoleDosen, paramID(p.ID))

	svc.Verifikasi(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	after := muatPengajuanTest(t, db, p.ID)
	assert.Equal(t, model.StatusDisetujui, after.Status)
	require.NotNil(t, after.IDDosenPembimbing)
	assert.Equal(t, dosen.ID, *after.IDDosenPembimbing)

	assert.Nil(t, after.StatusAdminFakultas)
	assert.Nil(t, after.ApprovedByFakultas)
	assert.Nil(t, after.ApprovedAtFakultas)
	assert.Nil(t, after.StatusAdminSekolah)

	assert.EqualValues(t, 1, hitungNotifikasi(t, db, userMhs.ID))
}

// Kedua jalur approval boleh jalan di satu pengajuan; yang menulis
// terakhir menentukan status keseluruhan, track admin tetap utuh.
func TestVerifikasiSetelahApprovalAdminLastWriteWins(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPengajuanServiceTest(t, db)

	_, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	dosenUser, _ := seedDosen(t, db)
	admin, _ := seedAdminFakultas(t, db, "Fakultas Teknik")
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDiajukan)

	ctxA, wA := newTestCtx(t, http.MethodPut, map[string]interface{}{"approved": true},
		admin.ID, model.RoleAdminFak, paramID(p.ID))
	svc.ApproveFakultas(ctxA)
	require.Equal(t, http.StatusOK, wA.Code)

	ctxV, wV := newTestCtx(t, http.MethodPut, map[string]interface{}{"disetujui": false},
		dosenUser.ID, model.RoleDosen, paramID(p.ID))
	svc.Verifikasi(ctxV)
	require.Equal(t, http.StatusOK, wV.Code)

	after := muatPengajuanTest(t, db, p.ID)
	assert.Equal(t, model.StatusDitolak, after.Status, "penulis terakhir menang")
	require.NotNil(t, after.StatusAdminFakultas)
	assert.Equal(t, model.TrackApproved, *after.StatusAdminFakultas,
		"track admin tidak ikut ditimpa verifikasi")
}

// Peserta membuat pengajuan: jenis mengikuti role, status awal Diajukan,
// dan semua dosen mendapat notifikasi broadcast.
func TestCreatePengajuanBroadcastKeDosen(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPengajuanServiceTest(t, db)

	userMhs, _ := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	dosen1, _ := seedDosen(t, db)
	dosen2, _ := seedDosen(t, db)
	guru, _ := seedGuru(t, db, "SMKN 1")

	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"id_instansi":     instansi.ID,
		"posisi":          "Backend Developer",
		"tanggal_mulai":   "2026-09-01",
		"tanggal_selesai": "2026-12-01",
		"durasi_bulan":    3,
	}, userMhs.ID, model.RoleMahasiswa, nil)

	svc.Create(ctx)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p model.Pengajuan
	require.NoError(t, db.First(&p, "id_instansi = ?", instansi.ID).Error)
	assert.Equal(t, model.JenisMagang, p.JenisPengajuan, "jenis default mengikuti role")
	assert.Equal(t, model.StatusDiajukan, p.Status)
	require.NotNil(t, p.IDMahasiswa)
	assert.Nil(t, p.IDSiswa)

	assert.EqualValues(t, 1, hitungNotifikasi(t, db, dosen1.ID))
	assert.EqualValues(t, 1, hitungNotifikasi(t, db, dosen2.ID))
	assert.Zero(t, hitungNotifikasi(t, db, guru.ID), "guru tidak dapat broadcast Magang")
}

// Mahasiswa yang memaksa jenis PKL ditolak 400 tanpa membuat baris.
func TestCreatePengajuanJenisTidakSesuaiRole(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPengajuanServiceTest(t, db)

	userMhs, _ := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)

	ctx, w := newTestCtx(t, http.MethodPost, map[string]interface{}{
		"jenis_pengajuan": model.JenisPKL,
		"id_instansi":     instansi.ID,
		"posisi":          "Backend Developer",
		"tanggal_mulai":   "2026-09-01",
		"tanggal_selesai": "2026-12-01",
	}, userMhs.ID, model.RoleMahasiswa, nil)

	svc.Create(ctx)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.Pengajuan{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Proyeksi workflow: langkah 3 selesai hanya saat status Disetujui.
func TestBuildWorkflowStepsStepTiga(t *testing.T) {
	trackApproved := model.TrackApproved
	diajukan := &model.Pengajuan{JenisPengajuan: model.JenisMagang, Status: model.StatusDiajukan}
	disetujui := &model.Pengajuan{
		JenisPengajuan:      model.JenisMagang,
		Status:              model.StatusDisetujui,
		StatusAdminFakultas: &trackApproved,
	}

	stepsAwal := BuildWorkflowSteps(diajukan, nil)
	require.Len(t, stepsAwal, 3)
	assert.Equal(t, "pending", stepsAwal[2].Status)

	stepsSelesai := BuildWorkflowSteps(disetujui, nil)
	require.Len(t, stepsSelesai, 3)
	assert.Equal(t, "completed", stepsSelesai[2].Status)
	assert.Equal(t, model.TrackApproved, stepsSelesai[1].Status)
	assert.Equal(t, "Review Admin Fakultas", stepsSelesai[1].Title)
}

// Role yang tidak dikenal di token menghasilkan 403, bukan list kosong.
func TestGetAllRoleTidakDikenal(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPengajuanServiceTest(t, db)

	ctx, w := newTestCtx(t, http.MethodGet, nil, uuid.New(), "superuser", nil)
	svc.GetAll(ctx)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// User yang baris profil role-nya belum dibuat tidak mungkin punya data:
// listing menjawab 200 dengan daftar kosong. Akses single-entity tetap 403.
func TestGetAllTanpaProfilDaftarKosong(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPengajuanServiceTest(t, db)

	u := seedUser(t, db, model.RoleMahasiswa) // sengaja tanpa baris mahasiswa

	ctx, w := newTestCtx(t, http.MethodGet, nil, u.ID, model.RoleMahasiswa, nil)
	svc.GetAll(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	data, ok := resp.Data.([]interface{})
	require.True(t, ok, "data berupa array")
	assert.Empty(t, data)

	ctxByID, wByID := newTestCtx(t, http.MethodGet, nil, u.ID, model.RoleMahasiswa, paramID(uuid.New()))
	svc.GetByID(ctxByID)
	assert.Equal(t, http.StatusForbidden, wByID.Code)
}

// Gagal generate surat tidak membatalkan approval, tapi notifikasi ke
// peserta tidak boleh mengklaim suratnya sudah jadi.
func TestApproveNotifikasiSaatGagalGenerate(t *testing.T) {
	db := setupServiceDB(t)
	svc, gen := newPengajuanServiceTest(t, db)
	gen.gagal = errors.New("mongo down")

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	admin, _ := seedAdminFakultas(t, db, "Fakultas Teknik")
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDiajukan)

	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"approved": true,
	}, admin.ID, model.RoleAdminFak, paramID(p.ID))

	svc.ApproveFakultas(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	after := muatPengajuanTest(t, db, p.ID)
	assert.Equal(t, model.StatusDisetujui, after.Status, "approval tetap final")
	assert.Equal(t, 1, gen.dipanggil)

	var n model.Notifikasi
	require.NoError(t, db.First(&n, "id_user = ?", userMhs.ID).Error)
	assert.Equal(t, "Pengajuan Disetujui", n.Judul)
	assert.NotContains(t, n.Pesan, "Surat permohonan telah digenerate")
}

// Saat generate berhasil, notifikasi menyebutkan suratnya.
func TestApproveNotifikasiSaatGenerateBerhasil(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPengajuanServiceTest(t, db)

	userMhs, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	_, instansi := seedInstansi(t, db, nil, nil)
	admin, _ := seedAdminFakultas(t, db, "Fakultas Teknik")
	p := seedPengajuanMagang(t, db, mhs.ID, instansi.ID, model.StatusDiajukan)

	ctx, w := newTestCtx(t, http.MethodPut, map[string]interface{}{
		"approved": true,
	}, admin.ID, model.RoleAdminFak, paramID(p.ID))

	svc.ApproveFakultas(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	var n model.Notifikasi
	require.NoError(t, db.First(&n, "id_user = ?", userMhs.ID).Error)
	assert.Contains(t, n.Pesan, "Surat permohonan telah digenerate")
}
