package service

import (
	"errors"

	"magang-pkl-backend/app/model"
	"magang-pkl-backend/app/repository"
	"magang-pkl-backend/utils"

	"github.com/google/uuid"
)

// RegisterInput menampung data registrasi. Field profil diisi sesuai role;
// sisanya diabaikan.
type RegisterInput struct {
	Username    string `json:"username" binding:"required,min=4"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	NamaLengkap string `json:"nama_lengkap" binding:"required"`
	Role        string `json:"role" binding:"required"`

	// mahasiswa
	NIM      string `json:"nim"`
	Fakultas string `json:"fakultas"`
	Prodi    string `json:"prodi"`
	Semester *int   `json:"semester"`

	// siswa
	NISN    string `json:"nisn"`
	Sekolah string `json:"sekolah"`
	Jurusan string `json:"jurusan"`
	Kelas   string `json:"kelas"`

	// dosen
	NIDN string `json:"nidn"`

	// guru
	NIP           string `json:"nip"`
	MataPelajaran string `json:"mata_pelajaran"`

	// instansi
	NamaInstansi string `json:"nama_instansi"`
	Bidang       string `json:"bidang"`
	Alamat       string `json:"alamat"`
	Kontak       string `json:"kontak"`

	// admin fakultas / sekolah
	Jabatan string `json:"jabatan"`
}

// Interface AuthService mendefinisikan apa saja yang bisa dilakukan layanan ini.
type AuthService interface {
	Login(identifier, password, role string) (*model.User, string, error)
	Register(input RegisterInput) (*model.User, error)
	GetProfil(userID uuid.UUID, role string) (*model.User, interface{}, error)
	UpdateProfil(userID uuid.UUID, role string, userUpdates, profilUpdates map[string]interface{}) error
	UpdatePassword(userID uuid.UUID, passwordLama, passwordBaru string) error
}

type authService struct {
	userRepo   repository.UserRepository
	profilRepo repository.ProfilRepository
}

// NewAuthService menghubungkan Service dengan Repository.
func NewAuthService(userRepo repository.UserRepository, profilRepo repository.ProfilRepository) AuthService {
	return &authService{
		userRepo:   userRepo,
		profilRepo: profilRepo,
	}
}

// Login memverifikasi kredensial dan mengembalikan user + token JWT.
// Identifier mengikuti role-nya: NIM/NISN/NIDN/NIP atau username;
// instansi/admin pakai username atau email.
func (s *authService) Login(identifier, password, role string) (*model.User, string, error) {
	user, err := s.userRepo.FindForLogin(role, identifier)
	if err != nil {
		return nil, "", errors.New("username/identitas tidak ditemukan")
	}

	// Verifikasi password: bcrypt atau MD5 legacy, dua-duanya diterima.
	if !utils.VerifyPassword(user.Password, password) {
		return nil, "", errors.New("password salah")
	}

	if !user.IsActive {
		return nil, "", errors.New("akun belum diaktivasi, hubungi administrator")
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Register membuat akun baru berstatus nonaktif (menunggu aktivasi admin)
// beserta baris profil role-nya, dalam satu transaksi.
func (s *authService) Register(input RegisterInput) (*model.User, error) {
	if taken, err := s.userRepo.ExistsUsername(input.Username, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.New("username sudah digunakan")
	}
	if taken, err := s.userRepo.ExistsEmail(input.Email, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.New("email sudah digunakan")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:          uuid.New(),
		Username:    input.Username,
		Email:       input.Email,
		Password:    hash,
		NamaLengkap: input.NamaLengkap,
		Role:        input.Role,
		IsActive:    false, // diaktifkan admin setelah diverifikasi
	}

	profile, err := buildProfile(&user, input)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateWithProfile(&user, profile); err != nil {
		// constraint unik (NIM/NISN/NIDN/NIP ganda) juga berakhir di sini
		return nil, err
	}
	return &user, nil
}

// buildProfile memetakan input registrasi menjadi baris profil per role.
// Role admin tidak punya profil (nil). Role di luar daftar -> error.
func buildProfile(user *model.User, input RegisterInput) (interface{}, error) {
	switch input.Role {
	case model.RoleMahasiswa:
		if input.NIM == "" {
			return nil, errors.New("NIM wajib diisi")
		}
		return &model.Mahasiswa{
			ID:       uuid.New(),
			IDUser:   user.ID,
			NIM:      input.NIM,
			Fakultas: input.Fakultas,
			Prodi:    input.Prodi,
			Semester: input.Semester,
		}, nil
	case model.RoleSiswa:
		if input.NISN == "" {
			return nil, errors.New("NISN wajib diisi")
		}
		return &model.Siswa{
			ID:          uuid.New(),
			IDUser:      user.ID,
			NISN:        input.NISN,
			NamaSekolah: input.Sekolah,
			Jurusan:     input.Jurusan,
			Kelas:       input.Kelas,
		}, nil
	case model.RoleDosen:
		if input.NIDN == "" {
			return nil, errors.New("NIDN wajib diisi")
		}
		return &model.DosenPembimbing{
			ID:       uuid.New(),
			IDUser:   user.ID,
			NIDN:     input.NIDN,
			Fakultas: input.Fakultas,
			Prodi:    input.Prodi,
		}, nil
	case model.RoleGuru:
		if input.NIP == "" {
			return nil, errors.New("NIP wajib diisi")
		}
		return &model.GuruPembimbing{
			ID:            uuid.New(),
			IDUser:        user.ID,
			NIP:           input.NIP,
			NamaSekolah:   input.Sekolah,
			MataPelajaran: input.MataPelajaran,
		}, nil
	case model.RoleInstansi:
		if input.NamaInstansi == "" {
			return nil, errors.New("nama instansi wajib diisi")
		}
		return &model.Instansi{
			ID:            uuid.New(),
			IDUser:        user.ID,
			NamaInstansi:  input.NamaInstansi,
			Bidang:        input.Bidang,
			Alamat:        input.Alamat,
			Kontak:        input.Kontak,
			RadiusAbsensi: 100,
		}, nil
	case model.RoleAdminFak:
		if input.Fakultas == "" {
			return nil, errors.New("fakultas wajib diisi")
		}
		return &model.AdminFakultas{
			ID:       uuid.New(),
			IDUser:   user.ID,
			NIP:      input.NIP,
			Fakultas: input.Fakultas,
			Jabatan:  input.Jabatan,
		}, nil
	case model.RoleAdminSekolah:
		if input.Sekolah == "" {
			return nil, errors.New("nama sekolah wajib diisi")
		}
		return &model.AdminSekolah{
			ID:          uuid.New(),
			IDUser:      user.ID,
			NIP:         input.NIP,
			NamaSekolah: input.Sekolah,
			Jabatan:     input.Jabatan,
		}, nil
	case model.RoleAdmin:
		return nil, nil
	}
	return nil, errors.New("role tidak dikenal: " + input.Role)
}

// GetProfil mengembalikan user + detail profil role-nya.
func (s *authService) GetProfil(userID uuid.UUID, role string) (*model.User, interface{}, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, err
	}
	profil, err := s.profilRepo.FindByUser(role, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profil.Detail, nil
}

// UpdateProfil menulis hanya field yang dikirim, baik di tabel users
// maupun tabel profil role-nya.
func (s *authService) UpdateProfil(userID uuid.UUID, role string, userUpdates, profilUpdates map[string]interface{}) error {
	if len(userUpdates) > 0 {
		if username, ok := userUpdates["username"].(string); ok {
			if taken, err := s.userRepo.ExistsUsername(username, &userID); err != nil {
				return err
			} else if taken {
				return errors.New("username sudah digunakan")
			}
		}
		if email, ok := userUpdates["email"].(string); ok {
			if taken, err := s.userRepo.ExistsEmail(email, &userID); err != nil {
				return err
			} else if taken {
				return errors.New("email sudah digunakan")
			}
		}
		if err := s.userRepo.Updates(userID, userUpdates); err != nil {
			return err
		}
	}
	if len(profilUpdates) > 0 {
		return s.profilRepo.UpdatesByUser(role, userID, profilUpdates)
	}
	return nil
}

// UpdatePassword memverifikasi password lama (bcrypt ataupun MD5 legacy)
// lalu menulis hash bcrypt baru. Akun MD5 otomatis ter-upgrade di sini.
func (s *authService) UpdatePassword(userID uuid.UUID, passwordLama, passwordBaru string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if !utils.VerifyPassword(user.Password, passwordLama) {
		return errors.New("password lama salah")
	}

	hash, err := utils.HashPassword(passwordBaru)
	if err != nil {
		return err
	}
	return s.userRepo.Updates(userID, map[string]interface{}{"password": hash})
}
