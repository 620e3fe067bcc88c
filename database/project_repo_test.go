package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func projectInput(title string, year int, languages ...string) models.ProjectInput {
	y := year
	return models.ProjectInput{
		Title:       title,
		Year:        &y,
		Description: "about " + title,
		Languages:   languages,
	}
}

func TestProjectRepoRoundTrip(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	input := projectInput("T", 2024, "Go")
	created, err := repo.Add(input)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, 2024, created.Year)
	assert.Equal(t, []string{"Go"}, created.Languages)
	assert.Equal(t, models.FallbackImagePath, created.Image.Src)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Title, found.Title)
	assert.Equal(t, created.Languages, found.Languages)

	// normalization is stable across repeated reads
	assert.Equal(t, found.Image.Src, models.NormalizeImagePath(found.Image.Src))
}

func TestProjectRepoFindByIDMissing(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	found, err := repo.FindByID(999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProjectRepoCreateStoresImageAndOptionals(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	input := projectInput("Site", 2023, "Go", "TypeScript")
	input.Details = strPtr("long form")
	input.Category = strPtr("web")
	input.Image = &models.ImageRef{Src: "uploads/site.png"}
	input.GithubLink = strPtr("https://github.com/x/site")

	created, err := repo.Add(input)
	require.NoError(t, err)

	assert.Equal(t, "/uploads/site.png", created.Image.Src)
	assert.Equal(t, "long form", created.Details)
	assert.Equal(t, "web", created.Category)
	assert.Equal(t, "https://github.com/x/site", created.GithubLink)
	assert.Equal(t, "", created.LiveLink)
}

func TestProjectRepoUpdateMergesFieldByField(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	input := projectInput("Old", 2021, "Go", "Rust")
	input.Category = strPtr("tools")
	input.Image = &models.ImageRef{Src: "/uploads/old.png"}
	created, err := repo.Add(input)
	require.NoError(t, err)

	t.Run("updating only the title preserves everything else", func(t *testing.T) {
		updated, err := repo.Update(created.ID, models.ProjectInput{Title: "New"})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, 2021, updated.Year)
		assert.Equal(t, []string{"Go", "Rust"}, updated.Languages)
		assert.Equal(t, "tools", updated.Category)
		assert.Equal(t, "/uploads/old.png", updated.Image.Src)
	})

	t.Run("supplied fields replace prior values", func(t *testing.T) {
		year := 2025
		updated, err := repo.Update(created.ID, models.ProjectInput{
			Year:      &year,
			Languages: []string{"Zig"},
			Image:     &models.ImageRef{Src: "uploads/new.png"},
		})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, 2025, updated.Year)
		assert.Equal(t, []string{"Zig"}, updated.Languages)
		assert.Equal(t, "/uploads/new.png", updated.Image.Src)
	})

	t.Run("id never changes", func(t *testing.T) {
		updated, err := repo.Update(created.ID, models.ProjectInput{Title: "Another"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
	})
}

func TestProjectRepoUpdateMissing(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	updated, err := repo.Update(42, models.ProjectInput{Title: "X"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestProjectRepoDelete(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	created, err := repo.Add(projectInput("T", 2024, "Go"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// deleting an id with no row is not-found, not silent success
	err = repo.Delete(created.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectRepoFindAllOrdersByYearDesc(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	for _, year := range []int{2020, 2024, 2022} {
		_, err := repo.Add(projectInput(fmt.Sprintf("P%d", year), year, "Go"))
		require.NoError(t, err)
	}

	projects := repo.FindAll()
	require.Len(t, projects, 3)
	assert.Equal(t, []int{2024, 2022, 2020}, []int{projects[0].Year, projects[1].Year, projects[2].Year})
}

func TestProjectRepoFindAllDegradesToEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)

	_, err := repo.Add(projectInput("T", 2024, "Go"))
	require.NoError(t, err)

	require.NoError(t, db.Exec("DROP TABLE projects").Error)

	projects := repo.FindAll()
	assert.Empty(t, projects)
	assert.NotNil(t, projects)
}

func TestProjectRepoSetSelected(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	for i := 1; i <= 4; i++ {
		_, err := repo.Add(projectInput(fmt.Sprintf("P%d", i), 2020+i, "Go"))
		require.NoError(t, err)
	}

	require.NoError(t, repo.SetSelected([]int{3, 1, 2}))

	selected, err := repo.FindSelected()
	require.NoError(t, err)
	require.Len(t, selected, 3)

	assert.Equal(t, []int{3, 1, 2}, []int{selected[0].ID, selected[1].ID, selected[2].ID})
	assert.Equal(t, []int{1, 2, 3}, []int{selected[0].SelectedOrder, selected[1].SelectedOrder, selected[2].SelectedOrder})

	unselected, err := repo.FindByID(4)
	require.NoError(t, err)
	assert.Equal(t, 0, unselected.Selected)
	assert.Equal(t, 0, unselected.SelectedOrder)
}

func TestProjectRepoSetSelectedReplacesPriorSet(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	for i := 1; i <= 3; i++ {
		_, err := repo.Add(projectInput(fmt.Sprintf("P%d", i), 2020+i, "Go"))
		require.NoError(t, err)
	}

	require.NoError(t, repo.SetSelected([]int{1, 2}))
	require.NoError(t, repo.SetSelected([]int{3}))

	selected, err := repo.FindSelected()
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, 3, selected[0].ID)
	assert.Equal(t, 1, selected[0].SelectedOrder)
}

func TestProjectRepoSetSelectedCapsAtThree(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	for i := 1; i <= 5; i++ {
		_, err := repo.Add(projectInput(fmt.Sprintf("P%d", i), 2020+i, "Go"))
		require.NoError(t, err)
	}

	require.NoError(t, repo.SetSelected([]int{1, 2, 3, 4, 5}))

	selected, err := repo.FindSelected()
	require.NoError(t, err)
	require.Len(t, selected, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{selected[0].ID, selected[1].ID, selected[2].ID})
}

func TestProjectRepoSetSelectedEmptyClearsAll(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	for i := 1; i <= 2; i++ {
		_, err := repo.Add(projectInput(fmt.Sprintf("P%d", i), 2020+i, "Go"))
		require.NoError(t, err)
	}
	require.NoError(t, repo.SetSelected([]int{1, 2}))

	require.NoError(t, repo.SetSelected(nil))

	selected, err := repo.FindSelected()
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestProjectRepoFindSelectedCapsAtThree(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)

	for i := 1; i <= 4; i++ {
		_, err := repo.Add(projectInput(fmt.Sprintf("P%d", i), 2020+i, "Go"))
		require.NoError(t, err)
	}

	// mark more rows selected than SetSelected would ever allow
	require.NoError(t, db.Exec("UPDATE projects SET selected = 1, selected_order = id").Error)

	selected, err := repo.FindSelected()
	require.NoError(t, err)
	assert.Len(t, selected, MaxSelectedProjects)
}

func strPtr(s string) *string { return &s }
