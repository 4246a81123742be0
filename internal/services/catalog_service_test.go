package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/internal/services"
	apperrors "github.com/fsel/admin-console-api/pkg/errors"
)

func TestGetProductPackages_CachesListing(t *testing.T) {
	catalog := new(MockPackageCatalog)
	catalog.On("GetProductPackages", mock.Anything).
		Return([]models.ProductPackageItem{{ID: "pkg-1", Name: "12 months", Price: 1990000}}, nil).
		Once()

	svc := services.NewCatalogService(catalog, t.TempDir())

	first, err := svc.GetProductPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second call is served from cache, not the gateway.
	second, err := svc.GetProductPackages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	catalog.AssertExpectations(t)
}

func TestGetProductPackages_FailureWithoutCache(t *testing.T) {
	catalog := new(MockPackageCatalog)
	catalog.On("GetProductPackages", mock.Anything).
		Return(nil, errors.New("ordering gateway down"))

	svc := services.NewCatalogService(catalog, t.TempDir())

	_, err := svc.GetProductPackages(context.Background())
	require.Error(t, err)
}

func writeCourse(t *testing.T, dir, id, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(body), 0644))
}

func TestListCurriculumCourses(t *testing.T) {
	dir := t.TempDir()
	writeCourse(t, dir, "steam-3", `{"track": "STEAM", "level": "3"}`)
	writeCourse(t, dir, "english-1", `{"track": "English", "level": "1"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))

	svc := services.NewCatalogService(nil, dir)

	ids, err := svc.ListCurriculumCourses()
	require.NoError(t, err)
	assert.Equal(t, []string{"english-1", "steam-3"}, ids)
}

func TestGetCurriculumCourse(t *testing.T) {
	dir := t.TempDir()
	writeCourse(t, dir, "english-1", `{"track": "English", "level": "1", "lessons": []}`)

	svc := services.NewCatalogService(nil, dir)

	course, err := svc.GetCurriculumCourse("english-1")
	require.NoError(t, err)
	assert.Equal(t, "english-1", course.CourseID)
	assert.Equal(t, "English", course.Track)
	assert.Equal(t, "1", course.Level)
	assert.Contains(t, course.Content, "lessons")
}

func TestGetCurriculumCourse_UnknownCourse(t *testing.T) {
	svc := services.NewCatalogService(nil, t.TempDir())

	_, err := svc.GetCurriculumCourse("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetCurriculumCourse_RejectsPathCharacters(t *testing.T) {
	svc := services.NewCatalogService(nil, t.TempDir())

	for _, id := range []string{"", "../etc/passwd", "a/b", `a\b`, "a.b"} {
		_, err := svc.GetCurriculumCourse(id)
		require.Error(t, err, id)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, id)
	}
}
