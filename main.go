package main

import (
	"log"

	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/app/service"
	"magang-pkl-backend/config"
	"magang-pkl-backend/database"
	"magang-pkl-backend/middleware"
	"magang-pkl-backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV + CONFIG
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}
	cfg := config.Load()
	log.Printf("Environment: %s", cfg.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "" {
			log.Fatal("❌ JWT_SECRET wajib di-set di production")
		}
	}

	// =================================================================
	// INIT DB (POSTGRES + MONGODB)
	// =================================================================
	dbConn, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA (AKUN ADMIN AWAL)
	// =================================================================
	database.RunSeeders(dbConn.Postgres)

	// =================================================================
	// REPOSITORIES
	// =================================================================
	userRepo := repository.NewUserRepository(dbConn.Postgres)
	profilRepo := repository.NewProfilRepository(dbConn.Postgres)
	pengajuanRepo := repository.NewPengajuanRepository(dbConn.Postgres)
	kehadiranRepo := repository.NewKehadiranRepository(dbConn.Postgres)
	bimbinganRepo := repository.NewBimbinganRepository(dbConn.Postgres)
	nilaiRepo := repository.NewNilaiRepository(dbConn.Postgres)
	laporanRepo := repository.NewLaporanRepository(dbConn.Postgres)
	notifikasiRepo := repository.NewNotifikasiRepository(dbConn.Postgres)
	dokumenRepo := repository.NewDokumenRepository(dbConn.Mongo)

	// =================================================================
	// SERVICES
	// =================================================================
	principalService := service.NewPrincipalService(profilRepo)
	authService := service.NewAuthService(userRepo, profilRepo)
	generator := service.NewDocumentGenerator(dokumenRepo, pengajuanRepo)
	pengajuanService := service.NewPengajuanService(
		pengajuanRepo, userRepo, notifikasiRepo, principalService, generator)
	kehadiranService := service.NewKehadiranService(kehadiranRepo, pengajuanRepo, principalService)
	bimbinganService := service.NewBimbinganService(
		bimbinganRepo, pengajuanRepo, notifikasiRepo, principalService)
	nilaiService := service.NewNilaiService(
		nilaiRepo, pengajuanRepo, notifikasiRepo, principalService)
	laporanService := service.NewLaporanService(
		laporanRepo, pengajuanRepo, notifikasiRepo, principalService)
	notifikasiService := service.NewNotifikasiService(notifikasiRepo)
	usersService := service.NewUsersService(userRepo, profilRepo, authService)
	adminFakultasService := service.NewAdminFakultasService(pengajuanRepo, profilRepo, principalService)
	adminSekolahService := service.NewAdminSekolahService(pengajuanRepo, profilRepo, principalService)
	cetakService := service.NewCetakService(
		pengajuanRepo, profilRepo, nilaiRepo, dokumenRepo, principalService)
	dashboardService := service.NewDashboardService(pengajuanRepo, userRepo)
	direktoriService := service.NewDirektoriService(profilRepo)

	// =================================================================
	// ROUTER
	// =================================================================
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	if cfg.RateLimitEnabled {
		r.Use(middleware.RateLimiter(cfg.RateLimitPerMin))
	}

	routes.NewAuthHandler(authService).SetupAuthRoutes(r)
	routes.PengajuanRoutes(r, pengajuanService)
	routes.KehadiranRoutes(r, kehadiranService)
	routes.BimbinganRoutes(r, bimbinganService)
	routes.NilaiRoutes(r, nilaiService)
	routes.LaporanRoutes(r, laporanService)
	routes.NotifikasiRoutes(r, notifikasiService)
	routes.UsersRoutes(r, usersService)
	routes.AdminFakultasRoutes(r, adminFakultasService)
	routes.AdminSekolahRoutes(r, adminSekolahService)
	routes.CetakRoutes(r, cetakService)
	routes.DashboardRoutes(r, dashboardService)
	routes.DirektoriRoutes(r, direktoriService)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Magang & PKL API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER
	// =================================================================
	log.Println("🚀 Server running at http://localhost:" + cfg.AppPort)

	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
