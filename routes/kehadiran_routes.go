package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// KehadiranRoutes mendaftarkan endpoint absensi harian.
func KehadiranRoutes(r *gin.Engine, s service.KehadiranService) {
	grup := r.Group("/api/kehadiran")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("", s.GetAll)

		// Toggle check-in/check-out dengan validasi GPS.
		grup.POST("/checkin", s.Checkin)

		// Absensi hari ini (null kalau belum ada) dan rekap per pengajuan.
		grup.GET("/today/:id_pengajuan", s.GetToday)
		grup.GET("/statistik/:id_pengajuan", s.Statistik)

		// Entri manual + koreksi (peserta/admin).
		grup.POST("", s.Create)
		grup.PUT("/:id", s.Update)
		grup.DELETE("/:id", s.Delete)
	}
}
