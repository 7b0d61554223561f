package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// DashboardRoutes mendaftarkan endpoint statistik dashboard admin.
func DashboardRoutes(r *gin.Engine, s service.DashboardService) {
	grup := r.Group("/api/dashboard")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("/admin/stats", s.AdminStats)
	}
}
