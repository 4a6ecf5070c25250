// internal/app/system/query/query.go

// Package query builds the Mongo clauses behind every list endpoint:
// free-text search OR-ed across an entity's searchable fields, AND-ed
// with exact-match filters, plus sort, page/limit/skip, and a
// comma-separated field projection. Pure and side-effect free.
package query

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Options are the raw list parameters as supplied by the client.
type Options struct {
	SearchTerm string
	Filters    map[string]string // exact-match clauses, field -> value
	SortBy     string
	SortOrder  string // "asc" or "desc"
	Page       int
	Limit      int
	Fields     string // comma-separated projection list
}

// FromRequest picks the list parameters out of the query string.
// filterable names the exact-match filter fields the endpoint accepts;
// everything else in the query string is ignored.
func FromRequest(r *http.Request, filterable []string) Options {
	q := r.URL.Query()

	opts := Options{
		SearchTerm: strings.TrimSpace(q.Get("searchTerm")),
		SortBy:     strings.TrimSpace(q.Get("sortBy")),
		SortOrder:  strings.TrimSpace(q.Get("sortOrder")),
		Fields:     strings.TrimSpace(q.Get("fields")),
		Filters:    map[string]string{},
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = n
	}

	for _, f := range filterable {
		if v := strings.TrimSpace(q.Get(f)); v != "" {
			opts.Filters[f] = v
		}
	}
	return opts
}

// Clauses are the ready-to-use query pieces for a Find + CountDocuments
// pair.
type Clauses struct {
	Where      bson.M
	Sort       bson.D
	Skip       int64
	Limit      int64
	Page       int
	PageSize   int
	Projection bson.M // nil when the client asked for whole documents
}

// Build combines the options with an entity's searchable fields.
// The search term matches case-insensitively as a partial string against
// each searchable field (OR); exact-match filters are AND-ed on top.
func (o Options) Build(searchable []string) Clauses {
	var and []bson.M

	if o.SearchTerm != "" && len(searchable) > 0 {
		or := make([]bson.M, 0, len(searchable))
		for _, field := range searchable {
			or = append(or, bson.M{field: bson.M{
				"$regex":   regexEscape(o.SearchTerm),
				"$options": "i",
			}})
		}
		and = append(and, bson.M{"$or": or})
	}

	for _, field := range sortedKeys(o.Filters) {
		value := o.Filters[field]
		if field == "id" {
			field = "_id"
		}
		and = append(and, bson.M{field: filterValue(field, value)})
	}

	where := bson.M{}
	if len(and) > 0 {
		where = bson.M{"$and": and}
	}

	page := o.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := o.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Clauses{
		Where:      where,
		Sort:       sortClause(o.SortBy, o.SortOrder),
		Skip:       int64((page - 1) * limit),
		Limit:      int64(limit),
		Page:       page,
		PageSize:   limit,
		Projection: projection(o.Fields),
	}
}

// FindOptions converts the clauses into driver options for Find.
func (c Clauses) FindOptions() *options.FindOptions {
	fo := options.Find().
		SetSort(c.Sort).
		SetSkip(c.Skip).
		SetLimit(c.Limit)
	if c.Projection != nil {
		fo.SetProjection(c.Projection)
	}
	return fo
}

// sortClause maps the client's sortBy/sortOrder onto a bson sort,
// defaulting to newest-first. The JSON names of the timestamp fields are
// translated to their stored names.
func sortClause(sortBy, sortOrder string) bson.D {
	field := "created_at"
	switch sortBy {
	case "", "createdAt":
	case "updatedAt":
		field = "updated_at"
	default:
		field = sortBy
	}

	order := -1
	if strings.EqualFold(sortOrder, "asc") {
		order = 1
	}
	return bson.D{{Key: field, Value: order}}
}

// projection turns "title,goalAmount" into an inclusion projection.
func projection(fields string) bson.M {
	if fields == "" {
		return nil
	}
	proj := bson.M{}
	for _, f := range strings.Split(fields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			proj[f] = 1
		}
	}
	if len(proj) == 0 {
		return nil
	}
	return proj
}

// filterValue upgrades hex object ids so id and reference filters match
// the stored ObjectID values.
func filterValue(field, value string) any {
	switch field {
	case "_id", "user", "donor", "cause", "createdBy":
		if oid, err := primitive.ObjectIDFromHex(value); err == nil {
			return oid
		}
	}
	return value
}

// sortedKeys keeps filter clause order deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// regexEscape neutralizes regex metacharacters so a search term is
// always a literal match.
func regexEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
