package models

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Image is the canonical in-memory shape of a project image reference.
type Image struct {
	Src string `json:"src"`
}

// Project represents a portfolio project as served by the API.
type Project struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Year          int       `json:"year"`
	Description   string    `json:"description"`
	Details       string    `json:"details"`
	Category      string    `json:"category"`
	Languages     []string  `json:"languages"`
	Image         Image     `json:"image"`
	GithubLink    string    `json:"githubLink"`
	LiveLink      string    `json:"liveLink"`
	Selected      int       `json:"selected"`
	SelectedOrder int       `json:"selectedOrder"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectRecord is the persisted row backing a Project. Languages is a
// JSON-encoded array in a single text column; the nullable text columns
// default to empty string when mapped to the entity.
type ProjectRecord struct {
	ID            int       `db:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `db:"title" gorm:"type:text;not null"`
	Year          int       `db:"year" gorm:"not null"`
	Description   string    `db:"description" gorm:"type:text;not null"`
	Details       *string   `db:"details" gorm:"type:text"`
	Category      *string   `db:"category" gorm:"type:text"`
	Languages     string    `db:"languages" gorm:"type:text;not null"`
	ImageURL      *string   `db:"image_url" gorm:"column:image_url;type:text"`
	GithubLink    *string   `db:"github_link" gorm:"column:github_link;type:text"`
	LiveLink      *string   `db:"live_link" gorm:"column:live_link;type:text"`
	Selected      int       `db:"selected" gorm:"not null;default:0"`
	SelectedOrder int       `db:"selected_order" gorm:"column:selected_order;not null;default:0"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (ProjectRecord) TableName() string {
	return "projects"
}

// ToProject maps the persisted row to the API entity: deserializes the
// languages column, normalizes the image reference, and defaults nullable
// text columns to empty string. A malformed languages column degrades to an
// empty list so one corrupt row cannot take down a public read.
func (r ProjectRecord) ToProject() Project {
	var languages []string
	if err := json.Unmarshal([]byte(r.Languages), &languages); err != nil {
		log.Warn().Int("projectID", r.ID).Str("languages", r.Languages).
			Msg("malformed languages column, serving empty list")
		languages = []string{}
	}

	imageURL := ""
	if r.ImageURL != nil {
		imageURL = *r.ImageURL
	}

	return Project{
		ID:            r.ID,
		Title:         r.Title,
		Year:          r.Year,
		Description:   r.Description,
		Details:       derefOrEmpty(r.Details),
		Category:      derefOrEmpty(r.Category),
		Languages:     languages,
		Image:         Image{Src: NormalizeImageRef(imageURL)},
		GithubLink:    derefOrEmpty(r.GithubLink),
		LiveLink:      derefOrEmpty(r.LiveLink),
		Selected:      r.Selected,
		SelectedOrder: r.SelectedOrder,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// EncodeLanguages serializes a languages list for the text column.
func EncodeLanguages(languages []string) string {
	encoded, err := json.Marshal(languages)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
