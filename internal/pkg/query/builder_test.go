package query

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuilder_Defaults(t *testing.T) {
	filter, opts := NewBuilder(map[string]string{}).Build()

	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
	if opts.Limit == nil || *opts.Limit != DefaultLimit {
		t.Fatalf("expected limit %d, got %v", DefaultLimit, opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 0 {
		t.Fatalf("expected skip 0, got %v", opts.Skip)
	}
}

func TestBuilder_Pagination(t *testing.T) {
	_, opts := NewBuilder(map[string]string{
		ParamLimit: "25",
		ParamPage:  "3",
	}).Build()

	if *opts.Limit != 25 {
		t.Fatalf("expected limit 25, got %d", *opts.Limit)
	}
	if *opts.Skip != 50 {
		t.Fatalf("expected skip 50, got %d", *opts.Skip)
	}
}

func TestBuilder_Pagination_InvalidFallsBack(t *testing.T) {
	for _, bad := range []string{"-5", "0", "abc", ""} {
		_, opts := NewBuilder(map[string]string{ParamLimit: bad, ParamPage: bad}).Build()
		if *opts.Limit != DefaultLimit {
			t.Fatalf("limit %q: expected %d, got %d", bad, DefaultLimit, *opts.Limit)
		}
		if *opts.Skip != 0 {
			t.Fatalf("page %q: expected skip 0, got %d", bad, *opts.Skip)
		}
	}
}

func TestBuilder_Sort(t *testing.T) {
	_, opts := NewBuilder(map[string]string{ParamSort: "-salary,datePosted"}).Build()

	sort, ok := opts.Sort.(bson.D)
	if !ok {
		t.Fatalf("expected bson.D sort, got %T", opts.Sort)
	}
	want := bson.D{{Key: "salary", Value: -1}, {Key: "datePosted", Value: 1}}
	if len(sort) != len(want) {
		t.Fatalf("expected %d sort keys, got %d", len(want), len(sort))
	}
	for i := range want {
		if sort[i] != want[i] {
			t.Fatalf("sort[%d]: expected %v, got %v", i, want[i], sort[i])
		}
	}
}

func TestBuilder_Sort_SpaceSeparated(t *testing.T) {
	_, opts := NewBuilder(map[string]string{ParamSort: "title -salary"}).Build()

	sort := opts.Sort.(bson.D)
	if len(sort) != 2 || sort[0].Key != "title" || sort[1].Value != -1 {
		t.Fatalf("unexpected sort: %v", sort)
	}
}

func TestBuilder_Filter_MergesJSON(t *testing.T) {
	filter, _ := NewBuilder(map[string]string{
		ParamFilter: `{"category":"Engineering","type":"Full-time"}`,
	}).Build()

	if filter["category"] != "Engineering" || filter["type"] != "Full-time" {
		t.Fatalf("unexpected filter: %v", filter)
	}
}

func TestBuilder_Filter_MalformedIgnoredAndLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	filter, _ := NewBuilder(map[string]string{
		ParamFilter: `{not json`,
	}).WithLogger(logger).Build()

	if len(filter) != 0 {
		t.Fatalf("expected malformed filter to be dropped, got %v", filter)
	}
	if !strings.Contains(buf.String(), "[Query] invalid filter format") {
		t.Fatalf("expected log line, got %q", buf.String())
	}
}

func TestBuilder_Fields_InclusionWins(t *testing.T) {
	_, opts := NewBuilder(map[string]string{
		ParamFields:        "title,company",
		ParamExcludeFields: "salary",
	}).Build()

	proj, ok := opts.Projection.(bson.M)
	if !ok {
		t.Fatalf("expected bson.M projection, got %T", opts.Projection)
	}
	if proj["title"] != 1 || proj["company"] != 1 {
		t.Fatalf("unexpected projection: %v", proj)
	}
	if _, exists := proj["salary"]; exists {
		t.Fatalf("exclusion list should be ignored when fields is present: %v", proj)
	}
}

func TestBuilder_Fields_Exclusion(t *testing.T) {
	_, opts := NewBuilder(map[string]string{ParamExcludeFields: "description, requirement"}).Build()

	proj := opts.Projection.(bson.M)
	if proj["description"] != 0 || proj["requirement"] != 0 {
		t.Fatalf("unexpected projection: %v", proj)
	}
}

func TestBuilder_DateRange(t *testing.T) {
	filter, _ := NewBuilder(map[string]string{
		ParamDateFrom: "2026-01-01",
		ParamDateTo:   "2026-02-01T12:00:00Z",
	}).Build()

	rng, ok := filter["datePosted"].(bson.M)
	if !ok {
		t.Fatalf("expected date range on datePosted, got %v", filter)
	}
	from := rng["$gte"].(time.Time)
	to := rng["$lte"].(time.Time)
	if from.Format("2006-01-02") != "2026-01-01" {
		t.Fatalf("unexpected from: %v", from)
	}
	if to.Hour() != 12 {
		t.Fatalf("unexpected to: %v", to)
	}
}

func TestBuilder_DateRange_CustomField(t *testing.T) {
	filter, _ := NewBuilder(map[string]string{ParamDateFrom: "2026-01-01"}).
		WithDateField("createdAt").Build()

	if _, ok := filter["createdAt"]; !ok {
		t.Fatalf("expected range on createdAt, got %v", filter)
	}
}

func TestBuilder_DateRange_UnparseableIgnored(t *testing.T) {
	filter, _ := NewBuilder(map[string]string{ParamDateFrom: "yesterday"}).Build()
	if len(filter) != 0 {
		t.Fatalf("expected unparseable date to be dropped, got %v", filter)
	}
}

func TestBuilder_Search(t *testing.T) {
	filter, _ := NewBuilder(map[string]string{
		ParamSearch:   "engineer",
		ParamSearchBy: "title",
	}).Build()

	pred, ok := filter["title"].(bson.M)
	if !ok {
		t.Fatalf("expected search predicate on title, got %v", filter)
	}
	re, ok := pred["$regex"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex predicate, got %v", pred)
	}
	if re.Pattern != "engineer" || re.Options != "i" {
		t.Fatalf("unexpected regex: %+v", re)
	}
}

func TestBuilder_Search_RequiresBothParams(t *testing.T) {
	filter, _ := NewBuilder(map[string]string{ParamSearch: "engineer"}).Build()
	if len(filter) != 0 {
		t.Fatalf("search without searchBy should be ignored, got %v", filter)
	}
}
