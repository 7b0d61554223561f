package routes

import (
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/middleware"

	"github.com/gin-gonic/gin"
)

// CetakRoutes mendaftarkan endpoint data siap cetak (rekap + surat).
func CetakRoutes(r *gin.Engine, s service.CetakService) {
	grup := r.Group("/api/cetak")
	grup.Use(middleware.AuthMiddleware())
	{
		grup.GET("/mahasiswa", s.RekapMahasiswa)
		grup.GET("/siswa", s.RekapSiswa)
		grup.GET("/nilai", s.RekapNilai)

		grup.GET("/surat-permohonan/:id", s.SuratPermohonan)
		grup.GET("/surat-balasan/:id", s.SuratBalasan)
		grup.GET("/dokumen/:id", s.Dokumen)
	}
}
