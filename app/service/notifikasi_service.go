package service

import (
	"log"
	"net/http"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotifikasiService melayani endpoint notifikasi milik user login.
type NotifikasiService interface {
	GetAll(ctx *gin.Context)
	MarkAsRead(ctx *gin.Context)
	MarkAllAsRead(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type notifikasiService struct {
	repo repository.NotifikasiRepository
}

// NewNotifikasiService membuat instance notifikasiService.
func NewNotifikasiService(repo repository.NotifikasiRepository) NotifikasiService {
	return &notifikasiService{repo}
}

// kirimNotifikasi menulis satu notifikasi fire-and-forget.
// Gagal insert cuma di-log; operasi utama jalan terus.
func kirimNotifikasi(repo repository.NotifikasiRepository, userID uuid.UUID, judul, pesan, tipe string) {
	n := model.Notifikasi{
		ID:     uuid.New(),
		IDUser: userID,
		Judul:  judul,
		Pesan:  pesan,
		Tipe:   tipe,
	}
	if err := repo.Create(&n); err != nil {
		log.Printf("⚠️  Gagal kirim notifikasi ke %s: %v", userID, err)
	}
}

// kirimNotifikasiBatch broadcast ke banyak user sekaligus.
func kirimNotifikasiBatch(repo repository.NotifikasiRepository, userIDs []uuid.UUID, judul, pesan, tipe string) {
	list := make([]model.Notifikasi, 0, len(userIDs))
	for _, id := range userIDs {
		list = append(list, model.Notifikasi{
			ID:     uuid.New(),
			IDUser: id,
			Judul:  judul,
			Pesan:  pesan,
			Tipe:   tipe,
		})
	}
	if err := repo.CreateMany(list); err != nil {
		log.Printf("⚠️  Gagal broadcast notifikasi ke %d user: %v", len(userIDs), err)
	}
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get("userID")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetAll mengembalikan notifikasi milik user login plus jumlah yang
// belum dibaca.
func (s *notifikasiService) GetAll(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Tidak terautentikasi", "missing_user", nil))
		return
	}

	list, err := s.repo.FindByUser(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil notifikasi", err.Error(), nil))
		return
	}
	unread, err := s.repo.CountUnread(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghitung notifikasi", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil notifikasi", gin.H{
		"notifikasi":   list,
		"belum_dibaca": unread,
	}))
}

// MarkAsRead menandai satu notifikasi milik user login sudah dibaca.
func (s *notifikasiService) MarkAsRead(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID notifikasi tidak valid", err.Error(), nil))
		return
	}

	if err := s.repo.MarkAsRead(id, userID); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menandai notifikasi", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Notifikasi ditandai sudah dibaca", nil))
}

// MarkAllAsRead menandai semua notifikasi user login sudah dibaca.
func (s *notifikasiService) MarkAllAsRead(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)
	if err := s.repo.MarkAllAsRead(userID); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menandai notifikasi", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Semua notifikasi ditandai sudah dibaca", nil))
}

// Delete menghapus satu notifikasi milik user login.
func (s *notifikasiService) Delete(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID notifikasi tidak valid", err.Error(), nil))
		return
	}

	if err := s.repo.Delete(id, userID); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghapus notifikasi", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Notifikasi dihapus", nil))
}
