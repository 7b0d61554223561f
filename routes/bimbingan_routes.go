package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// BimbinganRoutes mendaftarkan endpoint sesi bimbingan.
func BimbinganRoutes(r *gin.Engine, s service.BimbinganService) {
	grup := r.Group("/api/bimbingan")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("", s.GetAll)
		grup.POST("", s.Create)

		// Sub-aksi siklus hidup sesi.
		grup.PUT("/:id/jadwal", s.Jadwal)
		grup.PUT("/:id/selesai", s.Selesai)
		grup.PUT("/:id/rating", s.Rating)
		grup.PUT("/:id/batal", s.Batal)
	}
}
