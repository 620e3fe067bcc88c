package database

import (
	"errors"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxSelectedProjects caps how many projects can be featured on the
// homepage carousel at once.
const MaxSelectedProjects = 3

type ProjectRepo struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{
		db:     db,
		logger: log.With().Str("repoName", "projectRepo").Logger(),
	}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns every project ordered by year descending. A store error
// degrades to an empty list so the public site keeps rendering; the error is
// logged, never propagated.
func (r *ProjectRepo) FindAll() []models.Project {
	var records []models.ProjectRecord
	if err := r.db.Order("year DESC").Find(&records).Error; err != nil {
		r.logger.Error().Err(err).Msg("failed to list projects, serving empty list")
		return []models.Project{}
	}
	return toProjects(records)
}

// FindByID returns a project by its id, or (nil, nil) when no row matches.
func (r *ProjectRepo) FindByID(id int) (*models.Project, error) {
	var record models.ProjectRecord
	err := r.db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	project := record.ToProject()
	return &project, nil
}

// Add inserts a new project and returns it with its assigned id and
// timestamps.
func (r *ProjectRepo) Add(input models.ProjectInput) (*models.Project, error) {
	record := recordFromInput(input)
	if err := r.db.Create(&record).Error; err != nil {
		return nil, err
	}

	project := record.ToProject()
	return &project, nil
}

// Update loads the current row and merges the supplied fields over it,
// field by field: absent fields keep their prior values, so omitting
// languages preserves the stored list instead of wiping it. Returns
// (nil, nil) when the id does not exist.
func (r *ProjectRepo) Update(id int, input models.ProjectInput) (*models.Project, error) {
	var record models.ProjectRecord
	err := r.db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		record.Title = input.Title
	}
	if input.Year != nil {
		record.Year = *input.Year
	}
	if input.Description != "" {
		record.Description = input.Description
	}
	if input.Details != nil {
		record.Details = input.Details
	}
	if input.Category != nil {
		record.Category = input.Category
	}
	if input.Languages != nil {
		record.Languages = models.EncodeLanguages(input.Languages)
	}
	if input.Image != nil {
		normalized := models.NormalizeImagePath(input.Image.Src)
		record.ImageURL = &normalized
	}
	if input.GithubLink != nil {
		record.GithubLink = input.GithubLink
	}
	if input.LiveLink != nil {
		record.LiveLink = input.LiveLink
	}

	if err := r.db.Save(&record).Error; err != nil {
		return nil, err
	}

	project := record.ToProject()
	return &project, nil
}

// Delete removes a project by id. Deleting an id with no matching row is
// reported as not-found rather than silent success.
func (r *ProjectRepo) Delete(id int) error {
	result := r.db.Delete(&models.ProjectRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

// FindSelected returns the featured projects ordered by rank, capped at
// MaxSelectedProjects even if more rows were somehow marked selected.
func (r *ProjectRepo) FindSelected() ([]models.Project, error) {
	var records []models.ProjectRecord
	err := r.db.Where("selected = ?", 1).
		Order("selected_order ASC").
		Limit(MaxSelectedProjects).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toProjects(records), nil
}

// SetSelected replaces the featured set: every row is cleared, then the
// first MaxSelectedProjects ids are marked selected with 1-based contiguous
// ranks derived from their position. Both phases run in one transaction so a
// failure cannot leave the store with nothing selected.
func (r *ProjectRepo) SetSelected(ids []int) error {
	if len(ids) > MaxSelectedProjects {
		ids = ids[:MaxSelectedProjects]
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.ProjectRecord{}).
			Where("1 = 1").
			Updates(map[string]any{"selected": 0, "selected_order": 0}).Error
		if err != nil {
			return err
		}

		for position, id := range ids {
			err := tx.Model(&models.ProjectRecord{}).
				Where("id = ?", id).
				Updates(map[string]any{"selected": 1, "selected_order": position + 1}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func recordFromInput(input models.ProjectInput) models.ProjectRecord {
	record := models.ProjectRecord{
		Title:       input.Title,
		Description: input.Description,
		Details:     input.Details,
		Category:    input.Category,
		Languages:   models.EncodeLanguages(input.Languages),
		GithubLink:  input.GithubLink,
		LiveLink:    input.LiveLink,
	}
	if input.Year != nil {
		record.Year = *input.Year
	}
	if input.Image != nil {
		normalized := models.NormalizeImagePath(input.Image.Src)
		record.ImageURL = &normalized
	}
	return record
}

func toProjects(records []models.ProjectRecord) []models.Project {
	projects := make([]models.Project, 0, len(records))
	for _, record := range records {
		projects = append(projects, record.ToProject())
	}
	return projects
}
