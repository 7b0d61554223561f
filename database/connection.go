package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	Postgres *gorm.DB
	Mongo    *mongo.Database
}

func InitDB(cfg *config.Config) (*Database, error) {
	// 1. Setup PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Makassar",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke postgres: %v", err)
	}

	// Auto Migrate
	log.Println("Menjalankan migrasi database PostgreSQL...")
	err = Migrate(pgDB)
	if err != nil {
		return nil, fmt.Errorf("gagal migrasi database: %v", err)
	}

	// 2. Setup MongoDB (arsip dokumen surat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke mongo: %v", err)
	}

	err = mongoClient.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("gagal ping mongo: %v", err)
	}

	mongoDatabase := mongoClient.Database(cfg.MongoDBName)

	log.Println("Berhasil terhubung ke PostgreSQL dan MongoDB!")

	return &Database{
		Postgres: pgDB,
		Mongo:    mongoDatabase,
	}, nil
}

// Migrate menjalankan AutoMigrate untuk seluruh tabel relasional.
// Dipisah supaya bisa dipakai ulang di test dengan sqlite in-memory.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Mahasiswa{},
		&model.Siswa{},
		&model.DosenPembimbing{},
		&model.GuruPembimbing{},
		&model.Instansi{},
		&model.AdminFakultas{},
		&model.AdminSekolah{},
		&model.Pengajuan{},
		&model.Kehadiran{},
		&model.Bimbingan{},
		&model.Nilai{},
		&model.Laporan{},
		&model.Notifikasi{},
	)
}
