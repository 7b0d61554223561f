package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// NotifikasiRoutes mendaftarkan endpoint notifikasi milik user login.
func NotifikasiRoutes(r *gin.Engine, s service.NotifikasiService) {
	grup := r.Group("/api/notifikasi")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("", s.GetAll)
		grup.PUT("/read-all", s.MarkAllAsRead)
		grup.PUT("/:id/read", s.MarkAsRead)
		grup.DELETE("/:id", s.Delete)
	}
}
