package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// LaporanRoutes mendaftarkan endpoint laporan kegiatan.
func LaporanRoutes(r *gin.Engine, s service.LaporanService) {
	grup := r.Group("/api/laporan")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("", s.GetAll)
		grup.POST("", s.Create)
		grup.PUT("/:id", s.Update)
		grup.PUT("/:id/review", s.Review)
	}
}
