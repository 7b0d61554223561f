package repository

import (
	"context"

	"magang-pkl-backend/app/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DokumenRepository mengarsipkan surat hasil generate di MongoDB
// (collection: dokumen_pengajuan). Baris Postgres cuma menyimpan
// filename terakhir; riwayat lengkap ada di sini.
type DokumenRepository interface {
	Create(ctx context.Context, d *model.DokumenPengajuan) error
	FindByPengajuan(ctx context.Context, pengajuanID uuid.UUID) ([]model.DokumenPengajuan, error)
	FindLatest(ctx context.Context, pengajuanID uuid.UUID, tipe string) (*model.DokumenPengajuan, error)
}

type dokumenRepository struct {
	mongoDB *mongo.Database
}

// NewDokumenRepository membuat instance repository dokumen.
func NewDokumenRepository(mongoDB *mongo.Database) DokumenRepository {
	return &dokumenRepository{mongoDB: mongoDB}
}

func (r *dokumenRepository) collection() *mongo.Collection {
	return r.mongoDB.Collection("dokumen_pengajuan")
}

func (r *dokumenRepository) Create(ctx context.Context, d *model.DokumenPengajuan) error {
	_, err := r.collection().InsertOne(ctx, d)
	return err
}

// FindByPengajuan mengambil seluruh riwayat dokumen satu pengajuan,
// terbaru dulu.
func (r *dokumenRepository) FindByPengajuan(ctx context.Context, pengajuanID uuid.UUID) ([]model.DokumenPengajuan, error) {
	cur, err := r.collection().Find(ctx,
		bson.M{"pengajuanId": pengajuanID},
		options.Find().SetSort(bson.D{{Key: "generatedAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []model.DokumenPengajuan
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindLatest mengambil dokumen terakhir dengan tipe tertentu.
func (r *dokumenRepository) FindLatest(ctx context.Context, pengajuanID uuid.UUID, tipe string) (*model.DokumenPengajuan, error) {
	var d model.DokumenPengajuan
	err := r.collection().FindOne(ctx,
		bson.M{"pengajuanId": pengajuanID, "tipe": tipe},
		options.FindOne().SetSort(bson.D{{Key: "generatedAt", Value: -1}}),
	).Decode(&d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
