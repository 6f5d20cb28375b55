package job

import (
	"context"
	"errors"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/domain/application"
	"jobify/internal/domain/job"
	"jobify/internal/domain/user"
	"jobify/internal/pkg/query"
)

var (
	ErrValidation         = errors.New("missing or invalid required fields")
	ErrFeaturedNotAllowed = errors.New("only premium employers can feature jobs")
	ErrNotFound           = errors.New("job not found")
	ErrForbidden          = errors.New("not permitted")
	ErrInternal           = errors.New("internal error")
)

const listCachePrefix = "jobs:list:"

type CreateInput struct {
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Category            string      `json:"category"`
	Company             job.Company `json:"company"`
	Salary              *float64    `json:"salary"`
	JobType             string      `json:"jobType"`
	Featured            bool        `json:"featured"`
	Remote              bool        `json:"remote"`
	Requirements        []string    `json:"requirement"`
	Benefits            []string    `json:"benefits"`
	ApplicationDeadline *time.Time  `json:"applicationDeadline"`
}

type Usecase interface {
	List(ctx context.Context, params map[string]string) ([]job.Job, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (job.Job, error)
	Create(ctx context.Context, actor user.User, in CreateInput) (job.Job, error)
	Update(ctx context.Context, actor user.User, id primitive.ObjectID, fields map[string]any) (job.Job, error)
	Delete(ctx context.Context, actor user.User, id primitive.ObjectID) (job.Job, error)
	Categories(ctx context.Context) ([]job.CategoryCount, error)
	Featured(ctx context.Context) ([]job.Job, error)
	CountByCreator(ctx context.Context, creator primitive.ObjectID) (int64, error)
	ByCreator(ctx context.Context, creator primitive.ObjectID) ([]job.Job, error)
	ApplicationsForCreator(ctx context.Context, creator primitive.ObjectID) ([]application.Application, error)
}

// ListCache is the slice of the redis cache the job list uses.
type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Service struct {
	jobs   job.Repository
	apps   application.Repository
	cache  ListCache
	logger *log.Logger
}

func NewService(jobs job.Repository, apps application.Repository, cache ListCache, logger *log.Logger) *Service {
	return &Service{jobs: jobs, apps: apps, cache: cache, logger: logger}
}

func (s *Service) List(ctx context.Context, params map[string]string) ([]job.Job, error) {
	cacheKey := listCacheKey(params)
	if s.cache != nil {
		var cached []job.Job
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			s.logf("[Jobs] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		s.logf("[Jobs] Cache MISS: %s", cacheKey)
	}

	filter, opts := query.NewBuilder(params).WithLogger(s.logger).Build()

	jobs, err := s.jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, ErrInternal
	}

	if s.cache != nil && len(jobs) > 0 {
		_ = s.cache.SetJSON(ctx, cacheKey, jobs, 0)
	}
	return jobs, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (job.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (s *Service) Create(ctx context.Context, actor user.User, in CreateInput) (job.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Company.Name = strings.TrimSpace(in.Company.Name)
	in.Company.Location = strings.TrimSpace(in.Company.Location)
	in.Company.Website = strings.TrimSpace(in.Company.Website)

	if in.Title == "" || in.Description == "" ||
		in.Company.Name == "" || in.Company.Website == "" || in.Company.Location == "" ||
		in.Salary == nil || in.JobType == "" || len(in.Requirements) == 0 {
		return job.Job{}, ErrValidation
	}
	if len(in.Title) < 5 {
		return job.Job{}, ErrValidation
	}
	if *in.Salary < 0 {
		return job.Job{}, ErrValidation
	}
	jobType, ok := job.ParseType(in.JobType)
	if !ok {
		return job.Job{}, ErrValidation
	}
	if !validWebsite(in.Company.Website) {
		return job.Job{}, ErrValidation
	}
	if in.Featured && !actor.Premium {
		return job.Job{}, ErrFeaturedNotAllowed
	}

	benefits := in.Benefits
	if benefits == nil {
		benefits = []string{}
	}

	j := job.Job{
		Title:               in.Title,
		Description:         in.Description,
		Category:            strings.TrimSpace(in.Category),
		Company:             in.Company,
		Salary:              *in.Salary,
		JobType:             jobType,
		Featured:            in.Featured,
		Remote:              in.Remote,
		Requirements:        in.Requirements,
		Benefits:            benefits,
		ApplicationDeadline: in.ApplicationDeadline,
		DatePosted:          time.Now().UTC(),
		CreatedBy:           actor.ID,
	}

	created, err := s.jobs.Insert(ctx, j)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	s.invalidateListCache(ctx)
	return created, nil
}

var updatableFields = map[string]bool{
	"title":               true,
	"description":         true,
	"category":            true,
	"company":             true,
	"salary":              true,
	"jobType":             true,
	"featured":            true,
	"remote":              true,
	"requirement":         true,
	"benefits":            true,
	"applicationDeadline": true,
}

func (s *Service) Update(ctx context.Context, actor user.User, id primitive.ObjectID, fields map[string]any) (job.Job, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if !canMutate(actor, existing) {
		return job.Job{}, ErrForbidden
	}

	set := bson.M{}
	for k, v := range fields {
		if !updatableFields[k] {
			continue
		}
		switch k {
		case "jobType":
			raw, _ := v.(string)
			t, ok := job.ParseType(raw)
			if !ok {
				return job.Job{}, ErrValidation
			}
			set[k] = t
		case "salary":
			n, ok := v.(float64)
			if !ok || n < 0 {
				return job.Job{}, ErrValidation
			}
			set[k] = n
		case "featured":
			on, _ := v.(bool)
			if on && !actor.Premium && actor.Role != user.RoleAdmin {
				return job.Job{}, ErrFeaturedNotAllowed
			}
			set[k] = on
		default:
			set[k] = v
		}
	}
	if len(set) == 0 {
		return job.Job{}, ErrValidation
	}

	updated, err := s.jobs.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	s.invalidateListCache(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actor user.User, id primitive.ObjectID) (job.Job, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if !canMutate(actor, existing) {
		return job.Job{}, ErrForbidden
	}

	if err := s.jobs.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	s.invalidateListCache(ctx)
	return existing, nil
}

func (s *Service) Categories(ctx context.Context) ([]job.CategoryCount, error) {
	cats, err := s.jobs.Categories(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return cats, nil
}

func (s *Service) Featured(ctx context.Context) ([]job.Job, error) {
	jobs, err := s.jobs.Find(ctx, bson.M{"featured": true}, nil)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (s *Service) CountByCreator(ctx context.Context, creator primitive.ObjectID) (int64, error) {
	n, err := s.jobs.CountByCreator(ctx, creator)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func (s *Service) ByCreator(ctx context.Context, creator primitive.ObjectID) ([]job.Job, error) {
	jobs, err := s.jobs.Find(ctx, bson.M{"createdBy": creator}, nil)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (s *Service) ApplicationsForCreator(ctx context.Context, creator primitive.ObjectID) ([]application.Application, error) {
	jobs, err := s.jobs.Find(ctx, bson.M{"createdBy": creator}, nil)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]primitive.ObjectID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}

	apps, err := s.apps.FindByJobIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, listCachePrefix+"*"); err != nil {
		s.logf("[Jobs] cache invalidation failed: %v", err)
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func canMutate(actor user.User, j job.Job) bool {
	return actor.Role == user.RoleAdmin || j.CreatedBy == actor.ID
}

// listCacheKey canonicalizes the query params so equivalent requests
// share an entry.
func listCacheKey(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(listCachePrefix)
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// validWebsite accepts absolute http(s) URLs and bare hosts with a TLD.
func validWebsite(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	raw := s
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return host != "" && strings.Contains(host, ".") && !strings.HasSuffix(host, ".")
}
