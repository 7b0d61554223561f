package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestCtx membangun gin.Context seolah-olah sudah melewati
// AuthMiddleware: userID + role terpasang, body JSON siap di-bind.
func newTestCtx(t *testing.T, method string, body interface{}, userID uuid.UUID, role string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/test", &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	ctx.Params = params
	ctx.Set("userID", userID)
	ctx.Set("role", role)
	return ctx, w
}

func seedUser(t *testing.T, db *gorm.DB, role string) model.User {
	t.Helper()
	u := model.User{
		ID:          uuid.New(),
		Username:    role + "_" + uuid.NewString()[:8],
		Email:       uuid.NewString()[:8] + "@test.id",
		Password:    "x",
		NamaLengkap: "User " + role,
		Role:        role,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedMahasiswa(t *testing.T, db *gorm.DB, fakultas string) (model.User, model.Mahasiswa) {
	t.Helper()
	u := seedUser(t, db, model.RoleMahasiswa)
	m := model.Mahasiswa{
		ID: uuid.New(), IDUser: u.ID,
		NIM: uuid.NewString()[:12], Fakultas: fakultas, Prodi: "Informatika",
	}
	require.NoError(t, db.Create(&m).Error)
	return u, m
}

func seedSiswa(t *testing.T, db *gorm.DB, sekolah string) (model.User, model.Siswa) {
	t.Helper()
	u := seedUser(t, db, model.RoleSiswa)
	s := model.Siswa{
		ID: uuid.New(), IDUser: u.ID,
		NISN: uuid.NewString()[:12], NamaSekolah: sekolah, Jurusan: "RPL",
	}
	require.NoError(t, db.Create(&s).Error)
	return u, s
}

func seedDosen(t *testing.T, db *gorm.DB) (model.User, model.DosenPembimbing) {
	t.Helper()
	u := seedUser(t, db, model.RoleDosen)
	d := model.DosenPembimbing{
		ID: uuid.New(), IDUser: u.ID,
		NIDN: uuid.NewString()[:10], Fakultas: "Fakultas Teknik",
	}
	require.NoError(t, db.Create(&d).Error)
	return u, d
}

func seedGuru(t *testing.T, db *gorm.DB, sekolah string) (model.User, model.GuruPembimbing) {
	t.Helper()
	u := seedUser(t, db, model.RoleGuru)
	g := model.GuruPembimbing{
		ID: uuid.New(), IDUser: u.ID,
		NIP: uuid.NewString()[:10], NamaSekolah: sekolah,
	}
	require.NoError(t, db.Create(&g).Error)
	return u, g
}

func seedAdminFakultas(t *testing.T, db *gorm.DB, fakultas string) (model.User, model.AdminFakultas) {
	t.Helper()
	u := seedUser(t, db, model.RoleAdminFak)
	a := model.AdminFakultas{ID: uuid.New(), IDUser: u.ID, Fakultas: fakultas}
	require.NoError(t, db.Create(&a).Error)
	return u, a
}

func seedAdminSekolah(t *testing.T, db *gorm.DB, sekolah string) (model.User, model.AdminSekolah) {
	t.Helper()
	u := seedUser(t, db, model.RoleAdminSekolah)
	a := model.AdminSekolah{ID: uuid.New(), IDUser: u.ID, NamaSekolah: sekolah}
	require.NoError(t, db.Create(&a).Error)
	return u, a
}

func seedInstansi(t *testing.T, db *gorm.DB, lat, lng *float64) (model.User, model.Instansi) {
	t.Helper()
	u := seedUser(t, db, model.RoleInstansi)
	i := model.Instansi{
		ID: uuid.New(), IDUser: u.ID,
		NamaInstansi: "PT Contoh", Alamat: "Jl. Contoh No. 1",
		Latitude: lat, Longitude: lng, RadiusAbsensi: 100,
	}
	require.NoError(t, db.Create(&i).Error)
	return u, i
}

func seedPengajuanMagang(t *testing.T, db *gorm.DB, mahasiswaID, instansiID uuid.UUID, status string) model.Pengajuan {
	t.Helper()
	p := model.Pengajuan{
		ID: uuid.New(), JenisPengajuan: model.JenisMagang,
		IDMahasiswa: &mahasiswaID, IDInstansi: instansiID,
		Posisi: "Backend Developer", TanggalMulai: "2026-09-01",
		TanggalSelesai: "2026-12-01", DurasiBulan: 3, Status: status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedPengajuanPKL(t *testing.T, db *gorm.DB, siswaID, instansiID uuid.UUID, status string) model.Pengajuan {
	t.Helper()
	p := model.Pengajuan{
		ID: uuid.New(), JenisPengajuan: model.JenisPKL,
		IDSiswa: &siswaID, IDInstansi: instansiID,
		Posisi: "Teknisi Jaringan", TanggalMulai: "2026-09-01",
		TanggalSelesai: "2026-12-01", DurasiBulan: 3, Status: status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// stubGenerator merekam pemanggilan generate tanpa menyentuh Mongo.
type stubGenerator struct {
	dipanggil int
	gagal     error
}

func (g *stubGenerator) GenerateSuratPermohonan(_ context.Context, _ *model.Pengajuan) error {
	g.dipanggil++
	return g.gagal
}

func hitungNotifikasi(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Notifikasi{}).Where("id_user = ?", userID).Count(&count).Error)
	return count
}

func paramID(id uuid.UUID) gin.Params {
	return gin.Params{{Key: "id", Value: id.String()}}
}
