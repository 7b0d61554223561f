package database

import (
	"log"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder yang dibutuhkan.
// Panggil ini sekali di main.go setelah InitDB berhasil.
func RunSeeders(db *gorm.DB) {
	SeedAdminUsers(db)
}

// SeedAdminUsers membuat 3 akun administratif awal:
// - admin (super admin)
// - admin fakultas (Fakultas Teknik)
// - admin sekolah (SMKN 1 Parepare)
// Akun peserta/pembimbing/instansi dibuat lewat registrasi biasa.
func SeedAdminUsers(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] User sudah ada, skip seeding.")
		return
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatalf("[SEEDER] Gagal hash password: %v", err)
	}

	admin := model.User{
		ID:          uuid.New(),
		Username:    "admin",
		Email:       "admin@umpar.ac.id",
		Password:    hash,
		NamaLengkap: "Administrator Sistem",
		Role:        model.RoleAdmin,
		IsActive:    true,
	}

	adminFak := model.User{
		ID:          uuid.New(),
		Username:    "admin_ft",
		Email:       "admin.ft@umpar.ac.id",
		Password:    hash,
		NamaLengkap: "Admin Fakultas Teknik",
		Role:        model.RoleAdminFak,
		IsActive:    true,
	}

	adminSek := model.User{
		ID:          uuid.New(),
		Username:    "admin_smkn1",
		Email:       "admin.smkn1@sekolah.sch.id",
		Password:    hash,
		NamaLengkap: "Admin SMKN 1 Parepare",
		Role:        model.RoleAdminSekolah,
		IsActive:    true,
	}

	// User + profil dibuat satu transaksi, sama seperti jalur registrasi.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&[]model.User{admin, adminFak, adminSek}).Error; err != nil {
			return err
		}

		profilFak := model.AdminFakultas{
			ID:       uuid.New(),
			IDUser:   adminFak.ID,
			Fakultas: "Fakultas Teknik",
			Jabatan:  "Staf Akademik",
		}
		if err := tx.Create(&profilFak).Error; err != nil {
			return err
		}

		profilSek := model.AdminSekolah{
			ID:          uuid.New(),
			IDUser:      adminSek.ID,
			NamaSekolah: "SMKN 1 Parepare",
			Jabatan:     "Staf Tata Usaha",
		}
		return tx.Create(&profilSek).Error
	})
	if err != nil {
		log.Fatalf("[SEEDER] Gagal seed users: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 3 akun admin (admin, admin_ft, admin_smkn1), password: admin123")
}
