package model

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tipe dokumen yang diarsipkan di MongoDB.
const (
	DokumenSuratPermohonan = "surat_permohonan"
	DokumenSuratBalasan    = "surat_balasan"
)

// DokumenPengajuan adalah 1 dokumen surat hasil generate di MongoDB
// (collection: dokumen_pengajuan). Baris pengajuan di Postgres hanya
// menyimpan pointer filename terakhir; arsip lengkapnya di sini.
type DokumenPengajuan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PengajuanID uuid.UUID          `bson:"pengajuanId" json:"pengajuan_id"` // sama dengan pengajuan.id di Postgres
	Tipe        string             `bson:"tipe" json:"type"`                // surat_permohonan / surat_balasan
	Filename    string             `bson:"filename" json:"filename"`
	NomorSurat  string             `bson:"nomorSurat" json:"nomor_surat"`
	KontenHTML  string             `bson:"kontenHtml" json:"-"` // hasil render template
	GeneratedAt time.Time          `bson:"generatedAt" json:"generated_at"`
}
