package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// NilaiRoutes mendaftarkan endpoint penilaian.
func NilaiRoutes(r *gin.Engine, s service.NilaiService) {
	grup := r.Group("/api/nilai")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("", s.GetAll)
		grup.POST("", s.Create)
		grup.PUT("/:id", s.Update)
	}
}
