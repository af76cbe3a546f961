package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

// QueryEngine executes advanced list queries over the resource descriptors.
type QueryEngine struct {
	db     DBTX
	logger *logrus.Logger
}

func NewQueryEngine(db DBTX, logger *logrus.Logger) *QueryEngine {
	return &QueryEngine{db: db, logger: logger}
}

var _ repository.Finder = (*QueryEngine)(nil)

type statement struct {
	sql  string
	args []any
}

type listPlan struct {
	res     *resource
	columns []string
	count   statement
	page    statement
}

// Find counts the filtered rows and loads the requested page, then expands
// the populate paths.
func (e *QueryEngine) Find(ctx context.Context, name string, spec query.Spec, populate ...query.Populate) (query.Result, error) {
	res, ok := resources[name]
	if !ok {
		return query.Result{}, fmt.Errorf("unknown resource %q", name)
	}
	required, err := populateKeys(res, populate)
	if err != nil {
		return query.Result{}, err
	}
	plan, err := planList(res, spec, required...)
	if err != nil {
		return query.Result{}, err
	}

	db := conn(ctx, e.db)
	var (
		total   int64
		records []map[string]any
	)
	countFn := func(ctx context.Context) error {
		return translateError(db.QueryRow(ctx, plan.count.sql, plan.count.args...).Scan(&total))
	}
	pageFn := func(ctx context.Context) error {
		rows, err := e.fetch(ctx, db, plan.page)
		records = rows
		return err
	}

	// a transaction's connection cannot serve two queries at once
	if inTx(ctx) {
		if err := countFn(ctx); err != nil {
			return query.Result{}, err
		}
		if err := pageFn(ctx); err != nil {
			return query.Result{}, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return countFn(gctx) })
		g.Go(func() error { return pageFn(gctx) })
		if err := g.Wait(); err != nil {
			return query.Result{}, err
		}
	}

	for _, p := range populate {
		if err := e.expand(ctx, db, res, records, p); err != nil {
			return query.Result{}, err
		}
	}
	for i := range records {
		records[i] = shapeRow(res, records[i])
	}
	return query.Result{Total: total, Records: records}, nil
}

// FindOne loads a single record by id with the given populate paths.
func (e *QueryEngine) FindOne(ctx context.Context, name, id string, populate ...query.Populate) (map[string]any, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	spec := query.Spec{Page: 1, Limit: 1}.WithCondition("id", id)
	out, err := e.Find(ctx, name, spec, populate...)
	if err != nil {
		return nil, err
	}
	if len(out.Records) == 0 {
		return nil, repository.ErrNotFound
	}
	return out.Records[0], nil
}

func (e *QueryEngine) fetch(ctx context.Context, db DBTX, st statement) ([]map[string]any, error) {
	rows, err := db.Query(ctx, st.sql, st.args...)
	if err != nil {
		return nil, translateError(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}

func (e *QueryEngine) expand(ctx context.Context, db DBTX, res *resource, records []map[string]any, p query.Populate) error {
	rel := res.rels[p.Path]
	target := resources[rel.target]
	if len(records) == 0 {
		return nil
	}

	keyField := "id"
	matchField := rel.foreignField
	if !rel.many {
		keyField = rel.localField
		matchField = "id"
	}
	ids := distinctStrings(records, keyField)

	children := map[string][]map[string]any{}
	if len(ids) > 0 {
		spec := query.Spec{Page: 1}
		spec.Select = p.Select
		spec.Conditions = []query.Condition{{Field: matchField, Op: query.OpIn, Values: ids}}
		plan, err := planList(target, spec, matchField)
		if err != nil {
			return err
		}
		rows, err := e.fetch(ctx, db, plan.page)
		if err != nil {
			return err
		}
		for _, row := range rows {
			k, _ := row[matchField].(string)
			children[k] = append(children[k], shapeRow(target, row))
		}
	}

	for _, rec := range records {
		k, _ := rec[keyField].(string)
		if rel.many {
			list := children[k]
			if list == nil {
				list = []map[string]any{}
			}
			rec[p.Path] = list
			continue
		}
		if list := children[k]; len(list) > 0 {
			rec[p.Path] = list[0]
		} else {
			rec[p.Path] = nil
		}
	}
	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{"resource": res.name, "path": p.Path, "keys": len(ids)}).Debug("populated relation")
	}
	return nil
}

// populateKeys validates populate paths and returns the fields the parent
// projection must carry to resolve them.
func populateKeys(res *resource, populate []query.Populate) ([]string, error) {
	var keys []string
	for _, p := range populate {
		rel, ok := res.rels[p.Path]
		if !ok {
			return nil, fmt.Errorf("resource %s has no relation %q", res.name, p.Path)
		}
		if rel.many {
			keys = append(keys, "id")
		} else {
			keys = append(keys, rel.localField)
		}
	}
	return keys, nil
}

// planList builds the count and page statements for spec.
func planList(res *resource, spec query.Spec, required ...string) (*listPlan, error) {
	where, args, err := buildWhere(res, spec.Conditions)
	if err != nil {
		return nil, err
	}
	columns := projection(res, spec.Select, required)

	sel := make([]string, 0, len(columns))
	for _, name := range columns {
		col := res.fields[name]
		expr := col.expr
		if col.kind == kindUUID {
			expr += "::text"
		}
		sel = append(sel, fmt.Sprintf(`%s AS "%s"`, expr, name))
	}

	from := " FROM " + res.table + " t"
	if where != "" {
		from += " WHERE " + where
	}

	count := statement{sql: "SELECT count(*)" + from, args: args}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(sel, ", "))
	b.WriteString(from)
	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy(res, spec.Sort))
	pageArgs := append([]any(nil), args...)
	if spec.Limit > 0 {
		pageArgs = append(pageArgs, spec.Limit, spec.Skip())
		fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(pageArgs)-1, len(pageArgs))
	}

	return &listPlan{
		res:     res,
		columns: columns,
		count:   count,
		page:    statement{sql: b.String(), args: pageArgs},
	}, nil
}

// projection keeps known selected fields in request order; unknown names are
// ignored. The id and any required keys are always present.
func projection(res *resource, selected []string, required []string) []string {
	names := selected
	if len(names) == 0 {
		names = res.defaults
	}
	seen := map[string]bool{}
	out := []string{}
	add := func(n string) {
		if _, ok := res.fields[n]; ok && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	add("id")
	for _, n := range names {
		add(n)
	}
	for _, n := range required {
		add(n)
	}
	return out
}

func orderBy(res *resource, keys []query.SortKey) string {
	var parts []string
	for _, k := range keys {
		col, ok := res.field(k.Field)
		if !ok || col.kind == kindJSON || col.kind == kindTextArray {
			continue
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col.expr+" "+dir)
	}
	if len(parts) == 0 {
		parts = append(parts, "t.created_at DESC")
	}
	parts = append(parts, "t.id ASC")
	return strings.Join(parts, ", ")
}

func buildWhere(res *resource, conds []query.Condition) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	for _, c := range conds {
		col, ok := res.field(c.Field)
		if !ok {
			return "", nil, apperror.Validation(fmt.Sprintf("Cannot filter %s by %s", res.name, c.Field))
		}
		clause, err := conditionSQL(col, c, &args)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
	}
	return strings.Join(clauses, " AND "), args, nil
}

var comparison = map[query.Operator]string{
	query.OpEq:  "=",
	query.OpGt:  ">",
	query.OpGte: ">=",
	query.OpLt:  "<",
	query.OpLte: "<=",
}

var scalarCast = map[fieldKind]string{
	kindText:   "text",
	kindNumber: "float8",
	kindBool:   "bool",
	kindTime:   "timestamptz",
}

func conditionSQL(col column, c query.Condition, args *[]any) (string, error) {
	bind := func(v any) string {
		*args = append(*args, v)
		return "$" + strconv.Itoa(len(*args))
	}
	if len(c.Values) == 0 {
		return "", apperror.Validation(fmt.Sprintf("Missing value for %s", c.Field))
	}

	switch col.kind {
	case kindJSON:
		return "", apperror.Validation(fmt.Sprintf("Cannot filter by %s", c.Field))

	case kindTextArray:
		switch c.Op {
		case query.OpEq:
			return bind(c.Values[0]) + "::text = ANY(" + col.expr + ")", nil
		case query.OpIn:
			return col.expr + " && " + bind(c.Values) + "::text[]", nil
		}
		return "", apperror.Validation(fmt.Sprintf("Unsupported operator %s on %s", c.Op, c.Field))

	case kindUUID:
		for _, v := range c.Values {
			if _, err := uuid.Parse(v); err != nil {
				return "", apperror.ResourceNotFound(v)
			}
		}
		switch c.Op {
		case query.OpEq:
			return col.expr + " = " + bind(c.Values[0]) + "::text::uuid", nil
		case query.OpIn:
			return col.expr + " = ANY(" + bind(c.Values) + "::text[]::uuid[])", nil
		}
		return "", apperror.Validation(fmt.Sprintf("Unsupported operator %s on %s", c.Op, c.Field))
	}

	cast := scalarCast[col.kind]
	if c.Op == query.OpIn {
		list, err := convertList(col.kind, c)
		if err != nil {
			return "", err
		}
		return col.expr + " = ANY(" + bind(list) + "::" + cast + "[])", nil
	}
	op, ok := comparison[c.Op]
	if !ok {
		return "", apperror.Validation(fmt.Sprintf("Unsupported operator %s on %s", c.Op, c.Field))
	}
	v, err := convertValue(col.kind, c.Field, c.Values[0])
	if err != nil {
		return "", err
	}
	return col.expr + " " + op + " " + bind(v) + "::" + cast, nil
}

func convertValue(kind fieldKind, field, raw string) (any, error) {
	switch kind {
	case kindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("%s must be a number", field))
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("%s must be true or false", field))
		}
		return b, nil
	case kindTime:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, apperror.Validation(fmt.Sprintf("%s must be a date", field))
	default:
		return raw, nil
	}
}

func convertList(kind fieldKind, c query.Condition) (any, error) {
	switch kind {
	case kindNumber:
		out := make([]float64, 0, len(c.Values))
		for _, raw := range c.Values {
			v, err := convertValue(kind, c.Field, raw)
			if err != nil {
				return nil, err
			}
			out = append(out, v.(float64))
		}
		return out, nil
	case kindBool:
		out := make([]bool, 0, len(c.Values))
		for _, raw := range c.Values {
			v, err := convertValue(kind, c.Field, raw)
			if err != nil {
				return nil, err
			}
			out = append(out, v.(bool))
		}
		return out, nil
	case kindTime:
		out := make([]time.Time, 0, len(c.Values))
		for _, raw := range c.Values {
			v, err := convertValue(kind, c.Field, raw)
			if err != nil {
				return nil, err
			}
			out = append(out, v.(time.Time))
		}
		return out, nil
	default:
		return append([]string(nil), c.Values...), nil
	}
}

// shapeRow drops NULL aggregates and folds dotted keys into nested objects.
func shapeRow(res *resource, row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	var dotted []string
	for k, v := range row {
		if strings.Contains(k, ".") {
			dotted = append(dotted, k)
			continue
		}
		if v == nil && res.fields[k].omitNull {
			continue
		}
		out[k] = v
	}
	for _, k := range dotted {
		head, tail, _ := strings.Cut(k, ".")
		parent, ok := out[head].(map[string]any)
		if !ok {
			parent = map[string]any{}
			out[head] = parent
		}
		parent[tail] = row[k]
	}
	return out
}

func distinctStrings(records []map[string]any, field string) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range records {
		s, ok := rec[field].(string)
		if !ok || s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
