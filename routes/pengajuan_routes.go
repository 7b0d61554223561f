package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// PengajuanRoutes mendaftarkan endpoint pengajuan magang/PKL.
// Semua endpoint wajib melalui AuthMiddleware; pembatasan per role
// dilakukan di service lewat Principal.
func PengajuanRoutes(r *gin.Engine, s service.PengajuanService) {
	grup := r.Group("/api/pengajuan")
	grup.Use(middleware.AuthMiddleware())
	{
		// Listing role-scoped: peserta lihat miliknya, pembimbing lihat
		// bimbingannya + kandidat, admin wilayah lihat wilayahnya.
		grup.GET("", s.GetAll)
		grup.GET("/:id", s.GetByID)

		// Peserta membuat dan merevisi pengajuannya sendiri.
		grup.POST("", s.Create)
		grup.PUT("/:id", s.Update)

		// Jalur verifikasi lama (dosen/guru/admin).
		grup.PUT("/:id/verifikasi", s.Verifikasi)

		// Dua jalur approval admin yang independen.
		grup.PUT("/:id/approve-fakultas", s.ApproveFakultas)
		grup.PUT("/:id/approve-sekolah", s.ApproveSekolah)

		// Proyeksi 3 langkah untuk tracking di frontend.
		grup.GET("/:id/workflow", s.Workflow)
	}
}
