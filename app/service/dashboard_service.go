package service

import (
	"net/http"
	"time"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
)

// DashboardService menyusun angka ringkasan untuk dashboard admin.
type DashboardService interface {
	AdminStats(ctx *gin.Context)
}

type dashboardService struct {
	pengajuanRepo repository.PengajuanRepository
	userRepo      repository.UserRepository
}

// NewDashboardService membuat instance dashboardService.
func NewDashboardService(pengajuanRepo repository.PengajuanRepository, userRepo repository.UserRepository) DashboardService {
	return &dashboardService{pengajuanRepo: pengajuanRepo, userRepo: userRepo}
}

// AdminStats mengembalikan counter pengajuan per status/jenis, jumlah user
// per role, dan data chart 6 bulan terakhir.
func (s *dashboardService) AdminStats(ctx *gin.Context) {
	if !pastikanAdmin(ctx) {
		return
	}

	pengajuanStat := gin.H{}
	for label, status := range map[string]string{
		"diajukan":  model.StatusDiajukan,
		"disetujui": model.StatusDisetujui,
		"ditolak":   model.StatusDitolak,
		"selesai":   model.StatusSelesai,
	} {
		count, err := s.pengajuanRepo.CountByStatus(status)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal menghitung statistik", err.Error(), nil))
			return
		}
		pengajuanStat[label] = count
	}
	for label, jenis := range map[string]string{
		"magang": model.JenisMagang,
		"pkl":    model.JenisPKL,
	} {
		count, err := s.pengajuanRepo.CountByJenis(jenis)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal menghitung statistik", err.Error(), nil))
			return
		}
		pengajuanStat[label] = count
	}

	userStat := gin.H{}
	for _, role := range []string{
		model.RoleMahasiswa, model.RoleSiswa, model.RoleDosen,
		model.RoleGuru, model.RoleInstansi,
	} {
		ids, err := s.userRepo.FindIDsByRole(role)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal menghitung user", err.Error(), nil))
			return
		}
		userStat[role] = len(ids)
	}

	chart, err := s.chartEnamBulan()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyusun data chart", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil statistik", gin.H{
		"pengajuan": pengajuanStat,
		"user":      userStat,
		"chart":     chart,
	}))
}

// chartBulan adalah satu titik data chart pengajuan per bulan.
type chartBulan struct {
	Bulan  string `json:"bulan"` // format YYYY-MM
	Magang int    `json:"magang"`
	PKL    int    `json:"pkl"`
}

// chartEnamBulan menghitung pengajuan per bulan untuk 6 bulan terakhir.
// Grouping dilakukan di Go supaya query-nya sama untuk Postgres dan sqlite.
func (s *dashboardService) chartEnamBulan() ([]chartBulan, error) {
	now := time.Now()
	awal := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -5, 0)

	list, err := s.pengajuanRepo.FindCreatedSince(awal.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	perBulan := map[string]*chartBulan{}
	urutan := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		key := awal.AddDate(0, i, 0).Format("2006-01")
		perBulan[key] = &chartBulan{Bulan: key}
		urutan = append(urutan, key)
	}

	for _, p := range list {
		key := p.CreatedAt.Format("2006-01")
		titik, ok := perBulan[key]
		if !ok {
			continue
		}
		if p.JenisPengajuan == model.JenisPKL {
			titik.PKL++
		} else {
			titik.Magang++
		}
	}

	chart := make([]chartBulan, 0, 6)
	for _, key := range urutan {
		chart = append(chart, *perBulan[key])
	}
	return chart, nil
}
