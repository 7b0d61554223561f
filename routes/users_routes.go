package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// UsersRoutes mendaftarkan endpoint manajemen akun (khusus admin,
// dijaga di service).
func UsersRoutes(r *gin.Engine, s service.UsersService) {
	grup := r.Group("/api/users")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("", s.GetAll)
		grup.GET("/:id", s.GetDetail)
		grup.POST("", s.Create)
		grup.PUT("/:id", s.Update)
		grup.DELETE("/:id", s.Delete)
	}
}
