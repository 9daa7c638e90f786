package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sikt-nva/fs-courses-api/internal/fs"
	"github.com/sikt-nva/fs-courses-api/internal/models"
	"github.com/sikt-nva/fs-courses-api/pkg/config"
	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
)

// LogMessagePrefixFSCommunicationProblem prefixes the diagnostic logged when a
// year could not be fetched from FS.
const LogMessagePrefixFSCommunicationProblem = "Unable to communicate with FS API for "

type taughtCoursesFetcher interface {
	FetchTaughtCourses(ctx context.Context, inst models.InstitutionConfig, year int) ([]fs.Record, error)
}

type institutionLookup interface {
	ResolveInstitutionCode(identity models.CallerIdentity) (int, bool)
	LookupCredentials(ctx context.Context, code int) (models.InstitutionConfig, bool, error)
}

// CourseServiceConfig tunes the course listing.
type CourseServiceConfig struct {
	// FailurePolicy is config.FailurePolicySoft or config.FailurePolicyStrict.
	FailurePolicy string
	Location      *time.Location
	CacheTTL      time.Duration
}

// CourseServiceParams groups constructor dependencies.
type CourseServiceParams struct {
	Fetcher      taughtCoursesFetcher
	Decoder      fs.RecordDecoder
	Institutions institutionLookup
	Cache        *CacheService
	Metrics      *MetricsService
	Logger       *zap.Logger
	Config       CourseServiceConfig
}

// CourseService lists the courses currently taught at the caller's institution.
type CourseService struct {
	fetcher      taughtCoursesFetcher
	decoder      fs.RecordDecoder
	institutions institutionLookup
	cache        *CacheService
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
	cfg          CourseServiceConfig
}

// YearResult is the outcome of fetching one year of the relevant window.
type YearResult struct {
	Year    int
	Courses []models.Course
	Dropped int
	Err     error
}

// NewCourseService constructs a CourseService with sane defaults.
func NewCourseService(params CourseServiceParams) *CourseService {
	cfg := params.Config
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = config.FailurePolicySoft
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	decoder := params.Decoder
	if decoder == nil {
		decoder = fs.StructuredDecoder{}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		fetcher:      params.Fetcher,
		decoder:      decoder,
		institutions: params.Institutions,
		cache:        params.Cache,
		metrics:      params.Metrics,
		logger:       logger,
		now:          time.Now,
		cfg:          cfg,
	}
}

// ListForCaller resolves the caller's institution and returns its currently
// taught courses. Callers without an FS-enabled institution get an empty list.
// The boolean reports a cache hit.
func (s *CourseService) ListForCaller(ctx context.Context, identity models.CallerIdentity) ([]models.Course, bool, error) {
	code, ok := s.institutions.ResolveInstitutionCode(identity)
	if !ok {
		s.logger.Debug("caller has no resolvable institution", zap.String("user_id", identity.UserID))
		return []models.Course{}, false, nil
	}

	inst, ok, err := s.institutions.LookupCredentials(ctx, code)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		s.logger.Debug("institution has no FS integration", zap.Int("institution", code))
		return []models.Course{}, false, nil
	}

	asOf := s.now().In(s.cfg.Location)
	key := courseCacheKey(inst.Code, asOf)
	var cached []models.Course
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	courses, results, err := s.currentlyTaught(ctx, inst, asOf)
	if err != nil {
		return nil, false, err
	}
	if allSucceeded(results) {
		s.cache.Set(ctx, key, courses, s.cfg.CacheTTL)
	}
	s.metrics.ObserveCoursesReturned(len(courses))
	return courses, false, nil
}

// GetCurrentlyTaughtCourses returns the sorted courses taught at inst in the
// window around asOf. Per-year FS failures contribute no courses. Under the
// strict policy an error is returned when every year failed.
func (s *CourseService) GetCurrentlyTaughtCourses(ctx context.Context, inst models.InstitutionConfig, asOf time.Time) ([]models.Course, error) {
	courses, _, err := s.currentlyTaught(ctx, inst, asOf)
	return courses, err
}

func (s *CourseService) currentlyTaught(ctx context.Context, inst models.InstitutionConfig, asOf time.Time) ([]models.Course, []YearResult, error) {
	s.logger.Debug("fetching courses from FS", zap.Int("institution", inst.Code))

	window := RelevantWindow(asOf.Year(), asOf.Month())
	years := windowYears(window)
	results := make([]YearResult, len(years))

	var g errgroup.Group
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			results[i] = s.fetchYear(ctx, inst, year, window[year])
			return nil
		})
	}
	_ = g.Wait()

	courses := make([]models.Course, 0)
	var failures []error
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, res.Err)
			continue
		}
		courses = append(courses, res.Courses...)
	}
	models.SortCourses(courses)

	if s.cfg.FailurePolicy == config.FailurePolicyStrict && len(failures) == len(results) && len(results) > 0 {
		return nil, results, appErrors.Wrap(errors.Join(failures...), appErrors.ErrUpstreamUnavailable.Code,
			appErrors.ErrUpstreamUnavailable.Status, fmt.Sprintf("%s%d", LogMessagePrefixFSCommunicationProblem, inst.Code))
	}
	return courses, results, nil
}

func (s *CourseService) fetchYear(ctx context.Context, inst models.InstitutionConfig, year int, terms models.TermSet) YearResult {
	result := YearResult{Year: year}

	records, err := s.fetcher.FetchTaughtCourses(ctx, inst, year)
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s%d", LogMessagePrefixFSCommunicationProblem, inst.Code),
			zap.Int("institution", inst.Code),
			zap.Int("year", year),
			zap.Error(err))
		result.Err = err
		return result
	}

	result.Courses = make([]models.Course, 0, len(records))
	for _, rec := range records {
		course, err := s.decoder.Decode(rec)
		if err != nil {
			result.Dropped++
			s.logger.Warn("skipping malformed FS record",
				zap.Int("institution", inst.Code),
				zap.Int("year", year),
				zap.Error(err))
			continue
		}
		if terms.HasCode(course.Term) {
			result.Courses = append(result.Courses, course)
		}
	}
	return result
}

func allSucceeded(results []YearResult) bool {
	for _, res := range results {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// the window only changes at the mid-year boundary and on new year
func courseCacheKey(institution int, asOf time.Time) string {
	half := 1
	if asOf.Month() > midYear {
		half = 2
	}
	return fmt.Sprintf("courses:%d:%d:h%d", institution, asOf.Year(), half)
}
