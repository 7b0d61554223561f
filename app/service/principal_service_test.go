package service

import (
	"testing"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Role yang tidak dikenal menghasilkan error eksplisit, bukan scope
// kosong yang diam-diam menampilkan semua data.
func TestScopeForRoleTidakDikenal(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPrincipalService(repository.NewProfilRepository(db))

	_, err := svc.ScopeFor(&Principal{UserID: uuid.New(), Role: "superuser"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoleTidakDikenal)
}

func TestScopeForAdminSemua(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPrincipalService(repository.NewProfilRepository(db))

	scope, err := svc.ScopeFor(&Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, scope.All)
}

// Admin fakultas hanya boleh mengakses Magang yang fakultas pesertanya
// sama dengan fakultasnya.
func TestCanAccessPengajuanAdminFakultas(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPrincipalService(repository.NewProfilRepository(db))

	admin := &Principal{
		UserID: uuid.New(), Role: model.RoleAdminFak,
		ProfilID: uuid.New(), Fakultas: "Fakultas Teknik",
	}
	mhsID := uuid.New()

	cocok := &model.Pengajuan{
		JenisPengajuan: model.JenisMagang,
		IDMahasiswa:    &mhsID,
		Mahasiswa:      &model.Mahasiswa{ID: mhsID, Fakultas: "Fakultas Teknik"},
	}
	assert.True(t, svc.CanAccessPengajuan(admin, cocok))

	bedaFakultas := &model.Pengajuan{
		JenisPengajuan: model.JenisMagang,
		IDMahasiswa:    &mhsID,
		Mahasiswa:      &model.Mahasiswa{ID: mhsID, Fakultas: "Fakultas Ekonomi"},
	}
	assert.False(t, svc.CanAccessPengajuan(admin, bedaFakultas))

	siswaID := uuid.New()
	pkl := &model.Pengajuan{
		JenisPengajuan: model.JenisPKL,
		IDSiswa:        &siswaID,
		Siswa:          &model.Siswa{ID: siswaID, NamaSekolah: "SMKN 1"},
	}
	assert.False(t, svc.CanAccessPengajuan(admin, pkl), "admin fakultas tidak menyentuh PKL")
}

// Dosen mengakses pengajuan yang dibimbingnya atau kandidat Magang
// berstatus Diajukan.
func TestCanAccessPengajuanDosen(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPrincipalService(repository.NewProfilRepository(db))

	dosenID := uuid.New()
	dosen := &Principal{UserID: uuid.New(), Role: model.RoleDosen, ProfilID: dosenID}

	dibimbing := &model.Pengajuan{
		JenisPengajuan:    model.JenisMagang,
		Status:            model.StatusDisetujui,
		IDDosenPembimbing: &dosenID,
	}
	assert.True(t, svc.CanAccessPengajuan(dosen, dibimbing))

	kandidat := &model.Pengajuan{
		JenisPengajuan: model.JenisMagang,
		Status:         model.StatusDiajukan,
	}
	assert.True(t, svc.CanAccessPengajuan(dosen, kandidat))

	orangLain := &model.Pengajuan{
		JenisPengajuan: model.JenisMagang,
		Status:         model.StatusDisetujui,
	}
	assert.False(t, svc.CanAccessPengajuan(dosen, orangLain))
}

// FromContext me-resolve profil sesuai role dan membawa fakultas/sekolah.
func TestFromContextMembawaFakultas(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPrincipalService(repository.NewProfilRepository(db))

	user, mhs := seedMahasiswa(t, db, "Fakultas Teknik")
	ctx, _ := newTestCtx(t, "GET", nil, user.ID, model.RoleMahasiswa, nil)

	p, err := svc.FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, mhs.ID, p.ProfilID)
	assert.Equal(t, "Fakultas Teknik", p.Fakultas)
	assert.Empty(t, p.NamaSekolah)
}

// User tanpa baris profil tidak bisa di-resolve.
func TestFromContextProfilTidakAda(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPrincipalService(repository.NewProfilRepository(db))

	user := seedUser(t, db, model.RoleMahasiswa)
	ctx, _ := newTestCtx(t, "GET", nil, user.ID, model.RoleMahasiswa, nil)

	_, err := svc.FromContext(ctx)
	assert.Error(t, err)
}
