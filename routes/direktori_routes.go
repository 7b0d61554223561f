package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// DirektoriRoutes mendaftarkan direktori pembimbing dan instansi.
// Dipakai peserta saat memilih tujuan dan calon pembimbing.
func DirektoriRoutes(r *gin.Engine, s service.DirektoriService) {
	pembimbing := r.Group("/api/pembimbing")
	pembimbing.Use(middleware.AuthMiddleware())
	{
		pembimbing.GET("/dosen", s.Dosen)
		pembimbing.GET("/guru", s.Guru)
	}

	instansi := r.Group("/api/instansi")
	instansi.Use(middleware.AuthMiddleware())
	{
		instansi.GET("", s.Instansi)
		instansi.GET("/:id", s.InstansiDetail)
	}
}
