package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
)

// DocumentGenerator merender surat permohonan saat pengajuan disetujui,
// mengarsipkannya ke MongoDB, dan meng-update pointer filename terakhir
// di baris pengajuan. Best-effort: error-nya di-log pemanggil, approval
// tidak pernah di-rollback gara-gara gagal generate.
//
// Dipanggil dua kali menghasilkan dua dokumen arsip; pointer di Postgres
// selalu menunjuk yang terakhir.
type DocumentGenerator interface {
	GenerateSuratPermohonan(ctx context.Context, p *model.Pengajuan) error
}

type documentGenerator struct {
	dokumenRepo   repository.DokumenRepository
	pengajuanRepo repository.PengajuanRepository
}

// NewDocumentGenerator membuat instance documentGenerator.
func NewDocumentGenerator(dokumenRepo repository.DokumenRepository, pengajuanRepo repository.PengajuanRepository) DocumentGenerator {
	return &documentGenerator{
		dokumenRepo:   dokumenRepo,
		pengajuanRepo: pengajuanRepo,
	}
}

var suratPermohonanTmpl = template.Must(template.New("surat_permohonan").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
	<meta charset="UTF-8">
	<title>Surat Permohonan {{.JenisKegiatan}}</title>
</head>
<body>
	<div class="kop">
		<h1>UNIVERSITAS MUHAMMADIYAH PAREPARE</h1>
		<h2>BIRO ADMINISTRASI MAGANG DAN PKL</h2>
	</div>
	<div class="nomor-surat">
		<table>
			<tr><td>Nomor</td><td>: {{.NomorSurat}}</td></tr>
			<tr><td>Perihal</td><td>: Permohonan {{.JenisKegiatan}}</td></tr>
		</table>
	</div>
	<p>Kepada Yth.<br>Pimpinan {{.NamaInstansi}}<br>{{.AlamatInstansi}}</p>
	<p>Dengan hormat, bersama surat ini kami mengajukan permohonan {{.JenisKegiatan}}
	atas nama:</p>
	<table>
		<tr><td>Nama</td><td>: {{.NamaPeserta}}</td></tr>
		<tr><td>{{.LabelIdentitas}}</td><td>: {{.NomorIdentitas}}</td></tr>
		<tr><td>Program/Jurusan</td><td>: {{.ProdiJurusan}}</td></tr>
		<tr><td>Posisi</td><td>: {{.Posisi}}</td></tr>
		<tr><td>Periode</td><td>: {{.TanggalMulai}} s.d. {{.TanggalSelesai}} ({{.DurasiBulan}} bulan)</td></tr>
	</table>
	<p>Demikian permohonan ini kami sampaikan. Atas perhatian dan kerja sama
	Bapak/Ibu, kami ucapkan terima kasih.</p>
	<p>Parepare, {{.TanggalSurat}}</p>
</body>
</html>
`))

type suratData struct {
	NomorSurat     string
	JenisKegiatan  string
	NamaInstansi   string
	AlamatInstansi string
	NamaPeserta    string
	LabelIdentitas string
	NomorIdentitas string
	ProdiJurusan   string
	Posisi         string
	TanggalMulai   string
	TanggalSelesai string
	DurasiBulan    int
	TanggalSurat   string
}

// BuatNomorSurat menyusun nomor surat dari pengajuan dan tahun berjalan.
// Format: <8 hex pertama id>/UMPAR/PMH/<MGG|PKL>/<tahun>.
func BuatNomorSurat(p *model.Pengajuan, tipe string) string {
	kode := "MGG"
	if p.JenisPengajuan == model.JenisPKL {
		kode = "PKL"
	}
	segmen := "PMH"
	if tipe == model.DokumenSuratBalasan {
		segmen = "BLS"
	}
	idPendek := strings.ToUpper(strings.ReplaceAll(p.ID.String(), "-", "")[:8])
	return fmt.Sprintf("%s/UMPAR/%s/%s/%d", idPendek, segmen, kode, time.Now().Year())
}

// GenerateSuratPermohonan merender surat, menyimpan arsipnya di Mongo,
// lalu meng-update kolom surat_permohonan + document_generated_at.
func (g *documentGenerator) GenerateSuratPermohonan(ctx context.Context, p *model.Pengajuan) error {
	data := suratData{
		NomorSurat:     BuatNomorSurat(p, model.DokumenSuratPermohonan),
		JenisKegiatan:  "Magang",
		NamaInstansi:   p.Instansi.NamaInstansi,
		AlamatInstansi: p.Instansi.Alamat,
		Posisi:         p.Posisi,
		TanggalMulai:   p.TanggalMulai,
		TanggalSelesai: p.TanggalSelesai,
		DurasiBulan:    p.DurasiBulan,
		TanggalSurat:   time.Now().Format("02 January 2006"),
	}
	if p.JenisPengajuan == model.JenisPKL {
		data.JenisKegiatan = "Praktik Kerja Lapangan (PKL)"
	}

	switch {
	case p.Mahasiswa != nil:
		data.NamaPeserta = p.Mahasiswa.User.NamaLengkap
		data.LabelIdentitas = "NIM"
		data.NomorIdentitas = p.Mahasiswa.NIM
		data.ProdiJurusan = p.Mahasiswa.Prodi
	case p.Siswa != nil:
		data.NamaPeserta = p.Siswa.User.NamaLengkap
		data.LabelIdentitas = "NISN"
		data.NomorIdentitas = p.Siswa.NISN
		data.ProdiJurusan = p.Siswa.Jurusan
	default:
		return fmt.Errorf("pengajuan %s tidak punya peserta", p.ID)
	}

	var buf bytes.Buffer
	if err := suratPermohonanTmpl.Execute(&buf, data); err != nil {
		return err
	}

	now := time.Now()
	kode := "MGG"
	if p.JenisPengajuan == model.JenisPKL {
		kode = "PKL"
	}
	filename := fmt.Sprintf("surat_permohonan_%s_%s_%s.html",
		kode, p.ID.String()[:8], now.Format("20060102150405"))

	doc := model.DokumenPengajuan{
		PengajuanID: p.ID,
		Tipe:        model.DokumenSuratPermohonan,
		Filename:    filename,
		NomorSurat:  data.NomorSurat,
		KontenHTML:  buf.String(),
		GeneratedAt: now,
	}
	if err := g.dokumenRepo.Create(ctx, &doc); err != nil {
		return err
	}

	return g.pengajuanRepo.Updates(p.ID, map[string]interface{}{
		"surat_permohonan":      filename,
		"document_generated_at": now,
	})
}
