package model

import (
	"time"

	"github.com/google/uuid"
)

// Role pengguna yang dikenal sistem. Role di luar daftar ini ditolak.
const (
	RoleMahasiswa    = "mahasiswa"
	RoleSiswa        = "siswa"
	RoleDosen        = "dosen"
	RoleGuru         = "guru"
	RoleInstansi     = "instansi"
	RoleAdminFak     = "admin_fakultas"
	RoleAdminSekolah = "admin_sekolah"
	RoleAdmin        = "admin"
)

// Jenis pengajuan menentukan jalur approval dan tipe pembimbing.
const (
	JenisMagang = "Magang" // jalur kampus: dibimbing dosen, disetujui admin fakultas
	JenisPKL    = "PKL"    // jalur sekolah: dibimbing guru, disetujui admin sekolah
)

// Status keseluruhan pengajuan.
const (
	StatusDiajukan  = "Diajukan"
	StatusDisetujui = "Disetujui"
	StatusDitolak   = "Ditolak"
	StatusSelesai   = "Selesai"
)

// Status track approval admin (fakultas/sekolah). Null berarti belum ditinjau.
const (
	TrackApproved = "approved"
	TrackRejected = "rejected"
)

// Status bimbingan.
const (
	BimbinganDiajukan    = "Diajukan"
	BimbinganDijadwalkan = "Dijadwalkan"
	BimbinganSelesai     = "Selesai"
	BimbinganDibatalkan  = "Dibatalkan"
)

// Jenis dan status review laporan.
const (
	LaporanHarian   = "Harian"
	LaporanPeriodik = "Periodik"

	LaporanPending     = "Pending"
	LaporanSesuai      = "Sesuai"
	LaporanPerluRevisi = "Perlu Revisi"
)

// User merepresentasikan akun login. Setiap user punya tepat satu baris
// profil sesuai role-nya (mahasiswa, siswa, dosen, dst), dibuat dalam
// satu transaksi saat registrasi.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_user"`
	Username    string    `gorm:"type:varchar(50);unique;not null" json:"username"`
	Email       string    `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // bcrypt, atau MD5 legacy untuk akun lama
	NamaLengkap string    `gorm:"type:varchar(100);not null" json:"nama_lengkap"`
	Role        string    `gorm:"type:varchar(20);not null" json:"role"`
	FotoProfil  *string   `json:"foto_profil"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Mahasiswa adalah profil peserta jalur Magang (kampus).
type Mahasiswa struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_mahasiswa"`
	IDUser   uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	User     User      `gorm:"foreignKey:IDUser" json:"-"`
	NIM      string    `gorm:"type:varchar(20);unique;not null;column:nim" json:"nim"`
	Fakultas string    `gorm:"type:varchar(100)" json:"fakultas"`
	Prodi    string    `gorm:"type:varchar(100)" json:"prodi"`
	Semester *int      `json:"semester"`
}

func (Mahasiswa) TableName() string { return "mahasiswa" }

// Siswa adalah profil peserta jalur PKL (sekolah).
type Siswa struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_siswa"`
	IDUser      uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	User        User      `gorm:"foreignKey:IDUser" json:"-"`
	NISN        string    `gorm:"type:varchar(20);unique;not null;column:nisn" json:"nisn"`
	NamaSekolah string    `gorm:"type:varchar(100);column:sekolah" json:"sekolah"`
	Jurusan     string    `gorm:"type:varchar(100)" json:"jurusan"`
	Kelas       string    `gorm:"type:varchar(20)" json:"kelas"`
}

func (Siswa) TableName() string { return "siswa" }

// DosenPembimbing membimbing pengajuan Magang.
type DosenPembimbing struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_dosen"`
	IDUser   uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	User     User      `gorm:"foreignKey:IDUser" json:"-"`
	NIDN     string    `gorm:"type:varchar(20);unique;not null;column:nidn" json:"nidn"`
	Fakultas string    `gorm:"type:varchar(100)" json:"fakultas"`
	Prodi    string    `gorm:"type:varchar(100)" json:"prodi"`
}

func (DosenPembimbing) TableName() string { return "dosen_pembimbing" }

// GuruPembimbing membimbing pengajuan PKL.
type GuruPembimbing struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_guru"`
	IDUser        uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	User          User      `gorm:"foreignKey:IDUser" json:"-"`
	NIP           string    `gorm:"type:varchar(20);unique;not null;column:nip" json:"nip"`
	NamaSekolah   string    `gorm:"type:varchar(100);column:sekolah" json:"sekolah"`
	MataPelajaran string    `gorm:"type:varchar(100)" json:"mata_pelajaran"`
}

func (GuruPembimbing) TableName() string { return "guru_pembimbing" }

// Instansi adalah organisasi tempat magang/PKL berlangsung. Koordinat
// dipakai validasi GPS saat check-in; boleh kosong (validasi dilewati).
type Instansi struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_instansi"`
	IDUser        uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	User          User      `gorm:"foreignKey:IDUser" json:"-"`
	NamaInstansi  string    `gorm:"type:varchar(100);not null" json:"nama_instansi"`
	Bidang        string    `gorm:"type:varchar(100)" json:"bidang"`
	Alamat        string    `json:"alamat"`
	Kontak        string    `gorm:"type:varchar(50)" json:"kontak"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	RadiusAbsensi int       `gorm:"default:100" json:"radius_absensi"` // meter
}

func (Instansi) TableName() string { return "instansi" }

// AdminFakultas meninjau pengajuan Magang dari fakultasnya sendiri.
type AdminFakultas struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_admin_fakultas"`
	IDUser   uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	User     User      `gorm:"foreignKey:IDUser" json:"-"`
	NIP      string    `gorm:"type:varchar(20);column:nip" json:"nip"`
	Fakultas string    `gorm:"type:varchar(100);not null" json:"fakultas"`
	Jabatan  string    `gorm:"type:varchar(100)" json:"jabatan"`
}

func (AdminFakultas) TableName() string { return "admin_fakultas" }

// AdminSekolah meninjau pengajuan PKL dari sekolahnya sendiri
// (dicocokkan per nama sekolah).
type AdminSekolah struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_admin_sekolah"`
	IDUser      uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	User        User      `gorm:"foreignKey:IDUser" json:"-"`
	NIP         string    `gorm:"type:varchar(20);column:nip" json:"nip"`
	NamaSekolah string    `gorm:"type:varchar(100);not null;column:sekolah" json:"sekolah"`
	Jabatan     string    `gorm:"type:varchar(100)" json:"jabatan"`
}

func (AdminSekolah) TableName() string { return "admin_sekolah" }

// Pengajuan adalah entitas inti: permohonan magang/PKL satu peserta ke
// satu instansi. Tepat satu dari IDMahasiswa/IDSiswa terisi, sesuai
// JenisPengajuan. Dua track approval admin berjalan independen dari
// jalur verifikasi legacy; keduanya boleh menulis Status (last write wins).
type Pengajuan struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id_pengajuan"`
	JenisPengajuan string     `gorm:"type:varchar(10);not null" json:"jenis_pengajuan"`
	IDMahasiswa    *uuid.UUID `gorm:"type:uuid;column:id_mahasiswa" json:"id_mahasiswa"`
	Mahasiswa      *Mahasiswa `gorm:"foreignKey:IDMahasiswa" json:"mahasiswa,omitempty"`
	IDSiswa        *uuid.UUID `gorm:"type:uuid;column:id_siswa" json:"id_siswa"`
	Siswa          *Siswa     `gorm:"foreignKey:IDSiswa" json:"siswa,omitempty"`
	IDInstansi     uuid.UUID  `gorm:"type:uuid;not null;column:id_instansi" json:"id_instansi"`
	Instansi       Instansi   `gorm:"foreignKey:IDInstansi" json:"instansi"`
	Posisi         string     `gorm:"type:varchar(100)" json:"posisi"`
	TanggalMulai   string     `gorm:"type:date" json:"tanggal_mulai"`
	TanggalSelesai string     `gorm:"type:date" json:"tanggal_selesai"`
	DurasiBulan    int        `json:"durasi_bulan"`
	Keterangan     string     `json:"keterangan"`
	Status         string     `gorm:"type:varchar(20);default:'Diajukan'" json:"status"`

	// Pembimbing: dosen untuk Magang, guru untuk PKL. Null sampai ditugaskan.
	IDDosenPembimbing *uuid.UUID       `gorm:"type:uuid;column:id_dosen_pembimbing" json:"id_dosen_pembimbing"`
	DosenPembimbing   *DosenPembimbing `gorm:"foreignKey:IDDosenPembimbing" json:"dosen_pembimbing,omitempty"`
	IDGuruPembimbing  *uuid.UUID       `gorm:"type:uuid;column:id_guru_pembimbing" json:"id_guru_pembimbing"`
	GuruPembimbing    *GuruPembimbing  `gorm:"foreignKey:IDGuruPembimbing" json:"guru_pembimbing,omitempty"`

	// Track approval admin fakultas (hanya bermakna untuk Magang).
	StatusAdminFakultas *string    `gorm:"type:varchar(10)" json:"status_admin_fakultas"`
	ApprovedByFakultas  *uuid.UUID `gorm:"type:uuid" json:"approved_by_fakultas"`
	ApprovedAtFakultas  *time.Time `json:"approved_at_fakultas"`
	CatatanFakultas     *string    `json:"catatan_fakultas"`

	// Track approval admin sekolah (hanya bermakna untuk PKL).
	StatusAdminSekolah *string    `gorm:"type:varchar(10)" json:"status_admin_sekolah"`
	ApprovedBySekolah  *uuid.UUID `gorm:"type:uuid" json:"approved_by_sekolah"`
	ApprovedAtSekolah  *time.Time `json:"approved_at_sekolah"`
	CatatanSekolah     *string    `json:"catatan_sekolah"`

	// Pointer dokumen terakhir yang digenerate saat approval.
	SuratPermohonan     *string    `json:"surat_permohonan"`
	SuratBalasan        *string    `json:"surat_balasan"`
	DocumentGeneratedAt *time.Time `json:"document_generated_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Pengajuan) TableName() string { return "pengajuan" }

// Status kehadiran harian.
const (
	KehadiranHadir = "Hadir"
	KehadiranIzin  = "Izin"
	KehadiranSakit = "Sakit"
	KehadiranAlpha = "Alpha"
)

// Kehadiran mencatat absensi harian satu pengajuan. Maksimal satu baris
// per (pengajuan, tanggal). Data GPS disimpan per sisi (checkin/checkout);
// lokasi tidak valid tetap direkam, hanya ditandai.
type Kehadiran struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_kehadiran"`
	IDPengajuan uuid.UUID `gorm:"type:uuid;not null;column:id_pengajuan;uniqueIndex:idx_kehadiran_tanggal" json:"id_pengajuan"`
	Pengajuan   Pengajuan `gorm:"foreignKey:IDPengajuan" json:"-"`
	Tanggal     string    `gorm:"type:date;not null;uniqueIndex:idx_kehadiran_tanggal" json:"tanggal"`

	StatusKehadiran string  `gorm:"type:varchar(10);default:'Hadir'" json:"status_kehadiran"`
	JamMasuk        *string `gorm:"type:varchar(8)" json:"jam_masuk"`
	JamKeluar       *string `gorm:"type:varchar(8)" json:"jam_keluar"`
	Keterangan      *string `json:"keterangan"`
	LokasiCheckin   *string `json:"lokasi_checkin"`

	LatitudeCheckin    *float64 `json:"latitude_checkin"`
	LongitudeCheckin   *float64 `json:"longitude_checkin"`
	AkurasiCheckin     *int     `json:"akurasi_checkin"`
	JarakCheckin       *int     `json:"jarak_checkin"` // meter dari instansi
	LokasiValidCheckin *bool    `json:"lokasi_valid_checkin"`

	LatitudeCheckout    *float64 `json:"latitude_checkout"`
	LongitudeCheckout   *float64 `json:"longitude_checkout"`
	AkurasiCheckout     *int     `json:"akurasi_checkout"`
	JarakCheckout       *int     `json:"jarak_checkout"`
	LokasiValidCheckout *bool    `json:"lokasi_valid_checkout"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Kehadiran) TableName() string { return "kehadiran" }

// Bimbingan adalah sesi konsultasi peserta dengan pembimbingnya.
// Rating 1-5 hanya boleh diisi setelah sesi Selesai.
type Bimbingan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_bimbingan"`
	IDPengajuan uuid.UUID `gorm:"type:uuid;not null;column:id_pengajuan" json:"id_pengajuan"`
	Pengajuan   Pengajuan `gorm:"foreignKey:IDPengajuan" json:"-"`

	TopikBimbingan     string  `gorm:"type:varchar(200);not null" json:"topik_bimbingan"`
	DeskripsiMasalah   string  `json:"deskripsi_masalah"`
	TanggalBimbingan   string  `gorm:"type:date" json:"tanggal_bimbingan"`
	LokasiBimbingan    *string `gorm:"type:varchar(200)" json:"lokasi_bimbingan"`
	StatusBimbingan    string  `gorm:"type:varchar(20);default:'Diajukan'" json:"status_bimbingan"`
	CatatanMahasiswa   *string `json:"catatan_mahasiswa"`
	FeedbackPembimbing *string `json:"feedback_pembimbing"`
	Rating             *int    `json:"rating"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bimbingan) TableName() string { return "bimbingan" }

// Jenis penilai untuk Nilai.
const (
	PenilaiInstansi   = "instansi"
	PenilaiPembimbing = "pembimbing"
)

// Nilai adalah satu aspek penilaian pada satu pengajuan. Bisa berasal
// dari instansi maupun pembimbing (dibedakan lewat JenisPenilai).
type Nilai struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_nilai"`
	IDPengajuan uuid.UUID `gorm:"type:uuid;not null;column:id_pengajuan" json:"id_pengajuan"`
	Pengajuan   Pengajuan `gorm:"foreignKey:IDPengajuan" json:"-"`

	JenisPenilai   string  `gorm:"type:varchar(20);not null" json:"jenis_penilai"`
	AspekPenilaian string  `gorm:"type:varchar(100);not null" json:"aspek_penilaian"`
	NilaiAngka     float64 `gorm:"not null" json:"nilai_angka"`
	Komentar       *string `json:"komentar"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Nilai) TableName() string { return "nilai" }

// Laporan kegiatan peserta, direview pembimbing/instansi.
type Laporan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_laporan"`
	IDPengajuan uuid.UUID `gorm:"type:uuid;not null;column:id_pengajuan" json:"id_pengajuan"`
	Pengajuan   Pengajuan `gorm:"foreignKey:IDPengajuan" json:"-"`

	JenisLaporan       string  `gorm:"type:varchar(20);default:'Harian'" json:"jenis_laporan"` // Harian | Periodik
	Tanggal            string  `gorm:"type:date;not null" json:"tanggal"`
	Kegiatan           string  `gorm:"not null" json:"kegiatan"`
	FileLaporan        *string `json:"file_laporan"`
	Status             string  `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	KomentarPembimbing *string `json:"komentar_pembimbing"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Laporan) TableName() string { return "laporan" }

// Notifikasi bersifat insert-only dari sisi workflow: gagal menulis
// notifikasi tidak pernah menggagalkan operasi utamanya.
type Notifikasi struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id_notifikasi"`
	IDUser    uuid.UUID `gorm:"type:uuid;not null;column:id_user" json:"id_user"`
	Judul     string    `gorm:"type:varchar(200);not null" json:"judul"`
	Pesan     string    `gorm:"not null" json:"pesan"`
	Tipe      string    `gorm:"type:varchar(20);default:'info'" json:"tipe"`
	Dibaca    bool      `gorm:"default:false" json:"dibaca"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notifikasi) TableName() string { return "notifikasi" }
