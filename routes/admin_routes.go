package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// AdminFakultasRoutes mendaftarkan read model admin fakultas.
func AdminFakultasRoutes(r *gin.Engine, s service.AdminScopeService) {
	grup := r.Group("/api/admin-fakultas")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("/profil", s.Profil)
		grup.GET("/pengajuan", s.Pengajuan)
		grup.GET("/statistik", s.Statistik)
		grup.GET("/mahasiswa", s.Peserta)
		grup.GET("/dosen", s.Pembimbing)
	}
}

// AdminSekolahRoutes mendaftarkan read model admin sekolah.
func AdminSekolahRoutes(r *gin.Engine, s service.AdminScopeService) {
	grup := r.Group("/api/admin-sekolah")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("/profil", s.Profil)
		grup.GET("/pengajuan", s.Pengajuan)
		grup.GET("/statistik", s.Statistik)
		grup.GET("/siswa", s.Peserta)
		grup.GET("/guru", s.Pembimbing)
	}
}
