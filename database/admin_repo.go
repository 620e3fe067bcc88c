package database

import (
	"errors"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// FindByUsername returns an admin by username, or (nil, nil) when no row
// matches.
func (r *AdminRepo) FindByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// CheckPassword verifies a username/password pair against the stored bcrypt
// hash. Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (r *AdminRepo) CheckPassword(username, password string) (bool, error) {
	admin, err := r.FindByUsername(username)
	if err != nil {
		return false, err
	}
	if admin == nil {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil, nil
}

// EnsureAdmin seeds the admin row on first boot. Existing rows are left
// untouched, so password changes go through the database, not the env.
func (r *AdminRepo) EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	existing, err := r.FindByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("seeding admin account")
	return r.db.Create(&models.Admin{Username: username, PasswordHash: string(hash)}).Error
}
