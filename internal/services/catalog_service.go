package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/circuitbreaker"
	apperrors "github.com/fsel/admin-console-api/pkg/errors"
)

const packagesCacheKey = "product_packages"

// CatalogService serves the product-package listing and the static
// curriculum catalog.
//
// The ordering gateway is the least reliable of the four, so the package
// listing sits behind a circuit breaker; while the breaker is open, the
// last good listing is served from cache.
type CatalogService struct {
	packages      PackageCatalog
	breaker       *gobreaker.CircuitBreaker
	cache         *gocache.Cache
	curriculumDir string
}

func NewCatalogService(packages PackageCatalog, curriculumDir string) *CatalogService {
	return &CatalogService{
		packages:      packages,
		breaker:       circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("ordering-packages")),
		cache:         gocache.New(5*time.Minute, 10*time.Minute),
		curriculumDir: curriculumDir,
	}
}

// GetProductPackages lists purchasable packages, through the breaker with a
// stale-cache fallback.
func (s *CatalogService) GetProductPackages(ctx context.Context) ([]models.ProductPackageItem, error) {
	if cached, found := s.cache.Get(packagesCacheKey); found {
		return cached.([]models.ProductPackageItem), nil
	}

	items, err := circuitbreaker.ExecuteWithFallback(s.breaker,
		func() ([]models.ProductPackageItem, error) {
			return s.packages.GetProductPackages(ctx)
		},
		func() ([]models.ProductPackageItem, error) {
			if stale, found := s.cache.Get(packagesCacheKey); found {
				return stale.([]models.ProductPackageItem), nil
			}
			return nil, apperrors.InternalError("package listing unavailable")
		})
	if err != nil {
		return nil, err
	}

	s.cache.Set(packagesCacheKey, items, gocache.DefaultExpiration)
	return items, nil
}

// ListCurriculumCourses returns the ids of all courses in the static
// curriculum catalog, sorted.
func (s *CatalogService) ListCurriculumCourses() ([]string, error) {
	entries, err := os.ReadDir(s.curriculumDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read curriculum directory: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// GetCurriculumCourse loads one course's lesson-plan document. Documents are
// authored offline by the academic team and change rarely, so they are
// cached once loaded.
func (s *CatalogService) GetCurriculumCourse(courseID string) (*models.CurriculumCourse, error) {
	if courseID == "" || strings.ContainsAny(courseID, `/\.`) {
		return nil, apperrors.InvalidInputError("courseId", "contains invalid characters")
	}

	cacheKey := "curriculum_" + courseID
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*models.CurriculumCourse), nil
	}

	raw, err := os.ReadFile(filepath.Join(s.curriculumDir, courseID+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFoundError("curriculum course")
		}
		return nil, fmt.Errorf("failed to read curriculum course %s: %w", courseID, err)
	}

	var content map[string]interface{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("curriculum course %s is not valid JSON: %w", courseID, err)
	}

	course := &models.CurriculumCourse{
		CourseID: courseID,
		Content:  content,
	}
	if v, ok := content["track"].(string); ok {
		course.Track = v
	}
	if v, ok := content["level"].(string); ok {
		course.Level = v
	}

	s.cache.Set(cacheKey, course, gocache.NoExpiration)
	return course, nil
}
