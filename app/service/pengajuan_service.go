package service

import (
	"errors"
	"log"
	"net/http"
	"time"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PengajuanService adalah inti sistem: lifecycle pengajuan magang/PKL,
// visibilitas per role, dua jalur approval, dan side effect notifikasi +
// generate dokumen.
type PengajuanService interface {
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Verifikasi(ctx *gin.Context)
	ApproveFakultas(ctx *gin.Context)
	ApproveSekolah(ctx *gin.Context)
	Workflow(ctx *gin.Context)
}

type pengajuanService struct {
	repo       repository.PengajuanRepository
	userRepo   repository.UserRepository
	notifRepo  repository.NotifikasiRepository
	principals PrincipalService
	generator  DocumentGenerator
}

// NewPengajuanService membuat instance pengajuanService.
func NewPengajuanService(
	repo repository.PengajuanRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotifikasiRepository,
	principals PrincipalService,
	generator DocumentGenerator,
) PengajuanService {
	return &pengajuanService{
		repo:       repo,
		userRepo:   userRepo,
		notifRepo:  notifRepo,
		principals: principals,
		generator:  generator,
	}
}

// resolvePrincipal memuat Principal atau menulis respons error.
// Profil yang tidak ketemu dianggap 403, role tidak dikenal juga.
func (s *pengajuanService) resolvePrincipal(ctx *gin.Context) *Principal {
	p, err := s.principals.FromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Akses ditolak", err.Error(), nil))
		return nil
	}
	return p
}

// participantUserID mencari id_user peserta untuk target notifikasi.
func participantUserID(p *model.Pengajuan) (uuid.UUID, bool) {
	if p.Mahasiswa != nil {
		return p.Mahasiswa.IDUser, true
	}
	if p.Siswa != nil {
		return p.Siswa.IDUser, true
	}
	return uuid.Nil, false
}

// GetAll mengembalikan pengajuan yang boleh dilihat user login,
// difilter server-side sesuai role-nya.
func (s *pengajuanService) GetAll(ctx *gin.Context) {
	p, ok := muatPrincipalListing(ctx, s.principals, "Berhasil mengambil pengajuan")
	if !ok {
		return
	}

	scope, err := s.principals.ScopeFor(p)
	if err != nil {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Akses ditolak", err.Error(), nil))
		return
	}

	list, err := s.repo.FindScoped(scope)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil pengajuan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil pengajuan", list))
}

// GetByID mengembalikan satu pengajuan setelah lolos cek akses.
func (s *pengajuanService) GetByID(ctx *gin.Context) {
	p := s.resolvePrincipal(ctx)
	if p == nil {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return
	}

	pengajuan, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Pengajuan tidak ditemukan", err.Error(), nil))
		return
	}

	if !s.principals.CanAccessPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Anda tidak berhak mengakses pengajuan ini", "forbidden", nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil pengajuan", pengajuan))
}

// Create membuat pengajuan baru (khusus peserta). Status awal Diajukan,
// kedua track admin null, pembimbing null. Side effect: broadcast
// notifikasi ke SEMUA user ber-role pembimbing yang cocok dengan jenisnya
// (tanpa filter fakultas/sekolah).
func (s *pengajuanService) Create(ctx *gin.Context) {
	p := s.resolvePrincipal(ctx)
	if p == nil {
		return
	}

	if p.Role != model.RoleMahasiswa && p.Role != model.RoleSiswa {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya mahasiswa/siswa yang dapat membuat pengajuan", "forbidden", nil))
		return
	}

	var input struct {
		JenisPengajuan string    `json:"jenis_pengajuan"`
		IDInstansi     uuid.UUID `json:"id_instansi" binding:"required"`
		Posisi         string    `json:"posisi" binding:"required"`
		TanggalMulai   string    `json:"tanggal_mulai" binding:"required"`
		TanggalSelesai string    `json:"tanggal_selesai" binding:"required"`
		DurasiBulan    int       `json:"durasi_bulan"`
		Keterangan     string    `json:"keterangan"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	// Jenis mengikuti role peserta; kalau dikirim, harus cocok.
	jenisSesuaiRole := model.JenisMagang
	if p.Role == model.RoleSiswa {
		jenisSesuaiRole = model.JenisPKL
	}
	if input.JenisPengajuan == "" {
		input.JenisPengajuan = jenisSesuaiRole
	}
	if input.JenisPengajuan != jenisSesuaiRole {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Jenis pengajuan tidak sesuai dengan role Anda", "jenis_mismatch", nil))
		return
	}
	if input.DurasiBulan <= 0 {
		input.DurasiBulan = 1
	}

	pengajuan := model.Pengajuan{
		ID:             uuid.New(),
		JenisPengajuan: input.JenisPengajuan,
		IDInstansi:     input.IDInstansi,
		Posisi:         input.Posisi,
		TanggalMulai:   input.TanggalMulai,
		TanggalSelesai: input.TanggalSelesai,
		DurasiBulan:    input.DurasiBulan,
		Keterangan:     input.Keterangan,
		Status:         model.StatusDiajukan,
	}
	profilID := p.ProfilID
	if p.Role == model.RoleMahasiswa {
		pengajuan.IDMahasiswa = &profilID
	} else {
		pengajuan.IDSiswa = &profilID
	}

	if err := s.repo.Create(&pengajuan); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membuat pengajuan", err.Error(), nil))
		return
	}

	// Broadcast ke semua calon pembimbing sesuai jenis
	pembimbingRole := model.RoleDosen
	if input.JenisPengajuan == model.JenisPKL {
		pembimbingRole = model.RoleGuru
	}
	if ids, err := s.userRepo.FindIDsByRole(pembimbingRole); err == nil {
		kirimNotifikasiBatch(s.notifRepo, ids,
			"Pengajuan Baru",
			"Ada pengajuan "+input.JenisPengajuan+" baru yang perlu diverifikasi",
			"info")
	} else {
		log.Printf("⚠️  Gagal mengambil daftar %s untuk notifikasi: %v", pembimbingRole, err)
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Pengajuan berhasil dibuat", gin.H{"id_pengajuan": pengajuan.ID}))
}

// Update mengubah field dasar pengajuan; hanya field yang dikirim yang
// ditulis. Status dan kolom approval tidak bisa diubah dari sini.
func (s *pengajuanService) Update(ctx *gin.Context) {
	p := s.resolvePrincipal(ctx)
	if p == nil {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return
	}

	pengajuan, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Pengajuan tidak ditemukan", err.Error(), nil))
		return
	}
	if !s.principals.CanAccessPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Anda tidak berhak mengubah pengajuan ini", "forbidden", nil))
		return
	}

	var input struct {
		Posisi         *string    `json:"posisi"`
		TanggalMulai   *string    `json:"tanggal_mulai"`
		TanggalSelesai *string    `json:"tanggal_selesai"`
		DurasiBulan    *int       `json:"durasi_bulan"`
		Keterangan     *string    `json:"keterangan"`
		IDInstansi     *uuid.UUID `json:"id_instansi"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	updates := map[string]interface{}{}
	if input.Posisi != nil {
		updates["posisi"] = *input.Posisi
	}
	if input.TanggalMulai != nil {
		updates["tanggal_mulai"] = *input.TanggalMulai
	}
	if input.TanggalSelesai != nil {
		updates["tanggal_selesai"] = *input.TanggalSelesai
	}
	if input.DurasiBulan != nil {
		updates["durasi_bulan"] = *input.DurasiBulan
	}
	if input.Keterangan != nil {
		updates["keterangan"] = *input.Keterangan
	}
	if input.IDInstansi != nil {
		updates["id_instansi"] = *input.IDInstansi
	}
	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Tidak ada data yang diupdate", "empty_update", nil))
		return
	}

	if err := s.repo.Updates(id, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengupdate pengajuan", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Pengajuan berhasil diupdate", nil))
}

// Verifikasi adalah jalur approval legacy milik dosen/guru/admin: menulis
// status langsung dari flag disetujui dan (opsional) menugaskan pembimbing.
// TIDAK menyentuh kolom track admin sama sekali. Jalur ini dan approval
// admin bisa sama-sama jalan di satu pengajuan; yang terakhir menulislah
// yang menang.
func (s *pengajuanService) Verifikasi(ctx *gin.Context) {
	role := ctx.GetString("role")
	if role != model.RoleDosen && role != model.RoleGuru && role != model.RoleAdmin {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya dosen/guru/admin yang dapat memverifikasi", "forbidden", nil))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return
	}

	var input struct {
		Disetujui      bool       `json:"disetujui"`
		Catatan        *string    `json:"catatan"`
		IDPembimbing   *uuid.UUID `json:"id_pembimbing"`
		TipePembimbing *string    `json:"tipe_pembimbing"` // dosen | guru
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	if _, err := s.repo.FindByID(id); err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Pengajuan tidak ditemukan", err.Error(), nil))
		return
	}

	status := model.StatusDitolak
	if input.Disetujui {
		status = model.StatusDisetujui
	}

	updates := map[string]interface{}{"status": status}
	if input.Disetujui && input.IDPembimbing != nil && input.TipePembimbing != nil {
		if *input.TipePembimbing == "dosen" {
			updates["id_dosen_pembimbing"] = *input.IDPembimbing
		} else {
			updates["id_guru_pembimbing"] = *input.IDPembimbing
		}
	}

	if err := s.repo.Updates(id, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal memverifikasi pengajuan", err.Error(), nil))
		return
	}

	// Notifikasi ke peserta (best-effort)
	if pengajuan, err := s.repo.FindByID(id); err == nil {
		if target, ok := participantUserID(pengajuan); ok {
			tipe := "warning"
			pesan := "Pengajuan Anda ditolak."
			if input.Disetujui {
				tipe = "success"
				pesan = "Pengajuan Anda telah disetujui. Silakan mulai kegiatan sesuai jadwal."
			} else if input.Catatan != nil && *input.Catatan != "" {
				pesan += " Catatan: " + *input.Catatan
			}
			kirimNotifikasi(s.notifRepo, target, "Pengajuan "+status, pesan, tipe)
		}
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Pengajuan berhasil "+status, nil))
}

// approveInput adalah payload kedua endpoint approval admin.
type approveInput struct {
	Approved     bool       `json:"approved"`
	Catatan      *string    `json:"catatan"`
	IDPembimbing *uuid.UUID `json:"id_pembimbing"`
}

// ApproveFakultas menulis track approval admin fakultas untuk pengajuan
// Magang: status track, approver, timestamp, catatan; kalau approved juga
// menugaskan dosen (bila dikirim), menaikkan status keseluruhan jadi
// Disetujui, dan men-trigger generate surat. Kalau rejected, status jadi
// Ditolak. Peserta dinotifikasi dua-duanya.
func (s *pengajuanService) ApproveFakultas(ctx *gin.Context) {
	s.approve(ctx, model.JenisMagang)
}

// ApproveSekolah adalah padanan ApproveFakultas untuk PKL.
func (s *pengajuanService) ApproveSekolah(ctx *gin.Context) {
	s.approve(ctx, model.JenisPKL)
}

func (s *pengajuanService) approve(ctx *gin.Context, jenis string) {
	adminRole := model.RoleAdminFak
	namaAdmin := "Admin Fakultas"
	if jenis == model.JenisPKL {
		adminRole = model.RoleAdminSekolah
		namaAdmin = "Admin Sekolah"
	}

	role := ctx.GetString("role")
	if role != adminRole && role != model.RoleAdmin {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya "+namaAdmin+"/admin yang dapat melakukan approval ini", "forbidden", nil))
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Tidak terautentikasi", "missing_user", nil))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return
	}

	var input approveInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	pengajuan, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Pengajuan tidak ditemukan", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil pengajuan", err.Error(), nil))
		return
	}

	// Validasi jenis vs endpoint; mismatch ditolak tanpa mengubah apapun.
	if pengajuan.JenisPengajuan != jenis {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Hanya pengajuan "+jenis+" yang dapat disetujui oleh "+namaAdmin, "jenis_mismatch", nil))
		return
	}

	trackStatus := model.TrackRejected
	statusBaru := model.StatusDitolak
	if input.Approved {
		trackStatus = model.TrackApproved
		statusBaru = model.StatusDisetujui
	}

	now := time.Now()
	updates := map[string]interface{}{"status": statusBaru}
	if jenis == model.JenisMagang {
		updates["status_admin_fakultas"] = trackStatus
		updates["approved_by_fakultas"] = userID
		updates["approved_at_fakultas"] = now
		updates["catatan_fakultas"] = input.Catatan
		if input.Approved && input.IDPembimbing != nil {
			updates["id_dosen_pembimbing"] = *input.IDPembimbing
		}
	} else {
		updates["status_admin_sekolah"] = trackStatus
		updates["approved_by_sekolah"] = userID
		updates["approved_at_sekolah"] = now
		updates["catatan_sekolah"] = input.Catatan
		if input.Approved && input.IDPembimbing != nil {
			updates["id_guru_pembimbing"] = *input.IDPembimbing
		}
	}

	if err := s.repo.Updates(id, updates); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyimpan approval", err.Error(), nil))
		return
	}

	// Generate surat hanya saat approved; gagal generate cuma di-log,
	// approval-nya sendiri sudah final.
	suratDigenerate := false
	if input.Approved {
		if fresh, err := s.repo.FindByID(id); err == nil {
			if err := s.generator.GenerateSuratPermohonan(ctx.Request.Context(), fresh); err != nil {
				log.Printf("⚠️  Gagal generate surat permohonan %s: %v", id, err)
			} else {
				suratDigenerate = true
			}
		}
	}

	// Notifikasi peserta
	if target, ok := participantUserID(pengajuan); ok {
		tipe := "warning"
		pesan := "Pengajuan " + jenis + " Anda ditolak oleh " + namaAdmin + "."
		judul := "Pengajuan Ditolak"
		if input.Approved {
			tipe = "success"
			judul = "Pengajuan Disetujui"
			pesan = "Pengajuan " + jenis + " Anda telah disetujui oleh " + namaAdmin + "."
			if suratDigenerate {
				pesan += " Surat permohonan telah digenerate."
			}
		} else if input.Catatan != nil && *input.Catatan != "" {
			pesan += " Catatan: " + *input.Catatan
		}
		kirimNotifikasi(s.notifRepo, target, judul, pesan, tipe)
	}

	hasil := "ditolak"
	if input.Approved {
		hasil = "disetujui"
	}
	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Pengajuan berhasil "+hasil+" oleh "+namaAdmin, nil))
}

// Workflow mengembalikan proyeksi 3 langkah untuk tampilan progres:
// submit -> review admin yang relevan -> penugasan pembimbing.
// Murni turunan dari kolom tersimpan, tanpa mutasi. Langkah 3 dianggap
// selesai hanya saat status keseluruhan Disetujui.
func (s *pengajuanService) Workflow(ctx *gin.Context) {
	p := s.resolvePrincipal(ctx)
	if p == nil {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID pengajuan tidak valid", err.Error(), nil))
		return
	}

	pengajuan, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Pengajuan tidak ditemukan", err.Error(), nil))
		return
	}
	if !s.principals.CanAccessPengajuan(p, pengajuan) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Anda tidak berhak mengakses pengajuan ini", "forbidden", nil))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil status workflow", gin.H{
		"pengajuan":      pengajuan,
		"workflow_steps": BuildWorkflowSteps(pengajuan, s.approverName),
	}))
}

// approverName me-resolve nama approver untuk tampilan workflow.
func (s *pengajuanService) approverName(id uuid.UUID) string {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return ""
	}
	return user.NamaLengkap
}

// WorkflowStep adalah satu langkah proyeksi workflow.
type WorkflowStep struct {
	Step       int        `json:"step"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Actor      string     `json:"actor"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Catatan    string     `json:"catatan,omitempty"`
}

// BuildWorkflowSteps menyusun proyeksi 3 langkah dari kolom tersimpan.
// resolveNama boleh nil kalau nama approver tidak dibutuhkan.
func BuildWorkflowSteps(p *model.Pengajuan, resolveNama func(uuid.UUID) string) []WorkflowStep {
	nama := func(id *uuid.UUID) string {
		if id == nil || resolveNama == nil {
			return ""
		}
		return resolveNama(*id)
	}
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	var steps []WorkflowStep
	if p.JenisPengajuan == model.JenisMagang {
		steps = append(steps,
			WorkflowStep{Step: 1, Title: "Pengajuan Disubmit", Status: "completed", Actor: "Mahasiswa"},
			WorkflowStep{
				Step:       2,
				Title:      "Review Admin Fakultas",
				Status:     deref(p.StatusAdminFakultas),
				Actor:      "Admin Fakultas",
				ApprovedBy: nama(p.ApprovedByFakultas),
				ApprovedAt: p.ApprovedAtFakultas,
				Catatan:    deref(p.CatatanFakultas),
			})
	} else {
		steps = append(steps,
			WorkflowStep{Step: 1, Title: "Pengajuan Disubmit", Status: "completed", Actor: "Siswa"},
			WorkflowStep{
				Step:       2,
				Title:      "Review Admin Sekolah",
				Status:     deref(p.StatusAdminSekolah),
				Actor:      "Admin Sekolah",
				ApprovedBy: nama(p.ApprovedBySekolah),
				ApprovedAt: p.ApprovedAtSekolah,
				Catatan:    deref(p.CatatanSekolah),
			})
	}

	step3 := WorkflowStep{Step: 3, Title: "Penugasan Pembimbing", Status: "pending", Actor: "System"}
	if p.Status == model.StatusDisetujui {
		step3.Status = "completed"
	}
	return append(steps, step3)
}
