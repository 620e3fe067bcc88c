package database

import (
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo *ProjectRepo
	adminRepo   *AdminRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
		adminRepo:   NewAdminRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

// Migrate creates or updates the projects and admins tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.ProjectRecord{}, &models.Admin{})
}
