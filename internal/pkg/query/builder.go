// Package query translates list-endpoint query parameters into a
// document-store filter and find options. It never fails: malformed
// input is logged where a logger is present and otherwise dropped, so
// a bad parameter degrades the query instead of aborting the request.
package query

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1

	defaultDateField = "datePosted"
)

// Known parameter names. Anything else in the raw query map is ignored.
const (
	ParamSort          = "sort"
	ParamLimit         = "limit"
	ParamPage          = "page"
	ParamFilter        = "filter"
	ParamFields        = "fields"
	ParamExcludeFields = "excludeFields"
	ParamDateFrom      = "dateFrom"
	ParamDateTo        = "dateTo"
	ParamSearch        = "search"
	ParamSearchBy      = "searchBy"
)

type Builder struct {
	params    map[string]string
	dateField string
	logger    *log.Logger

	filter bson.M
	opts   *options.FindOptions
}

// NewBuilder takes the request's query parameters as a flat map, which
// is what fiber's Queries() produces.
func NewBuilder(params map[string]string) *Builder {
	return &Builder{
		params:    params,
		dateField: defaultDateField,
		filter:    bson.M{},
		opts:      options.Find(),
	}
}

// WithDateField changes the field the dateFrom/dateTo range applies to.
func (b *Builder) WithDateField(field string) *Builder {
	field = strings.TrimSpace(field)
	if field != "" {
		b.dateField = field
	}
	return b
}

func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	b.logger = logger
	return b
}

func (b *Builder) Build() (bson.M, *options.FindOptions) {
	b.setSort()
	b.setPagination()
	b.setFilters()
	b.setFields()
	b.setDateRange()
	b.setSearch()
	return b.filter, b.opts
}

// setSort translates "a,-b" (or space separated) into an ordered sort
// document. Field names pass through unvalidated; an unknown field is
// the store's problem, not the translator's.
func (b *Builder) setSort() {
	raw := strings.TrimSpace(b.params[ParamSort])
	if raw == "" {
		return
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})

	sort := bson.D{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(f, "-") {
			order = -1
			f = f[1:]
		}
		if f == "" {
			continue
		}
		sort = append(sort, bson.E{Key: f, Value: order})
	}
	if len(sort) > 0 {
		b.opts.SetSort(sort)
	}
}

func (b *Builder) setPagination() {
	limit := positiveIntOr(b.params[ParamLimit], DefaultLimit)
	page := positiveIntOr(b.params[ParamPage], DefaultPage)

	b.opts.SetLimit(int64(limit))
	b.opts.SetSkip(int64((page - 1) * limit))
}

// setFilters merges a JSON-encoded filter object into the predicate.
// Malformed JSON is dropped, not surfaced to the caller.
func (b *Builder) setFilters() {
	raw := strings.TrimSpace(b.params[ParamFilter])
	if raw == "" {
		return
	}

	parsed := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		b.logf("[Query] invalid filter format, ignoring: %v", err)
		return
	}
	for k, v := range parsed {
		b.filter[k] = v
	}
}

// setFields builds the projection. An inclusion list wins over an
// exclusion list when both are supplied.
func (b *Builder) setFields() {
	if fields := splitFields(b.params[ParamFields]); len(fields) > 0 {
		proj := bson.M{}
		for _, f := range fields {
			proj[f] = 1
		}
		b.opts.SetProjection(proj)
		return
	}

	if fields := splitFields(b.params[ParamExcludeFields]); len(fields) > 0 {
		proj := bson.M{}
		for _, f := range fields {
			proj[f] = 0
		}
		b.opts.SetProjection(proj)
	}
}

func (b *Builder) setDateRange() {
	from, okFrom := parseDate(b.params[ParamDateFrom])
	to, okTo := parseDate(b.params[ParamDateTo])
	if !okFrom && !okTo {
		return
	}

	rng := bson.M{}
	if okFrom {
		rng["$gte"] = from
	}
	if okTo {
		rng["$lte"] = to
	}
	b.filter[b.dateField] = rng
}

func (b *Builder) setSearch() {
	search := strings.TrimSpace(b.params[ParamSearch])
	searchBy := strings.TrimSpace(b.params[ParamSearchBy])
	if search == "" || searchBy == "" {
		return
	}
	b.filter[searchBy] = bson.M{
		"$regex": primitive.Regex{Pattern: search, Options: "i"},
	}
}

func (b *Builder) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}

func positiveIntOr(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitFields(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
