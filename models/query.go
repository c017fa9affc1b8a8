package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/hoaworks/portal_backend/config"
	"bitbucket.org/hoaworks/portal_backend/utils"
	"gorm.io/gorm"
)

// ListQuery is the record-store read contract. Every engine refresh issues one
// List call per collection with a structured filter; results are plain model
// slices the engine treats as immutable.
type ListQuery struct {
	Filter Predicate
	Fields []string
	Sort   string // "field" ascending, "-field" descending
	Limit  int    // -1 = unbounded
}

// Predicate is a structured filter tree compiled to a single WHERE clause.
// Field names are logical paths ("statement_month", "account.type") resolved
// against the collection's column map, never raw SQL.
type Predicate interface {
	isPredicate()
}

type Eq struct {
	Field string
	Value any
}

type In struct {
	Field  string
	Values []any
}

// Range is inclusive on both ends; a nil bound leaves that side open.
type Range struct {
	Field string
	Min   any
	Max   any
}

type Not struct {
	Inner Predicate
}

type And struct {
	Preds []Predicate
}

type Or struct {
	Preds []Predicate
}

func (Eq) isPredicate()    {}
func (In) isPredicate()    {}
func (Range) isPredicate() {}
func (Not) isPredicate()   {}
func (And) isPredicate()   {}
func (Or) isPredicate()    {}

// BuildWhere compiles a predicate tree into a parameterized WHERE fragment.
// Pure function so filter semantics stay unit-testable without a database.
func BuildWhere(p Predicate, columns map[string]string) (string, []any, error) {
	if p == nil {
		return "", nil, nil
	}
	switch node := p.(type) {
	case Eq:
		col, err := resolveColumn(node.Field, columns)
		if err != nil {
			return "", nil, err
		}
		if node.Value == nil {
			return col + " IS NULL", nil, nil
		}
		return col + " = ?", []any{node.Value}, nil
	case In:
		col, err := resolveColumn(node.Field, columns)
		if err != nil {
			return "", nil, err
		}
		if len(node.Values) == 0 {
			// Empty set matches nothing; keep the clause honest instead of
			// silently dropping the condition.
			return "1 = 0", nil, nil
		}
		return col + " IN ?", []any{node.Values}, nil
	case Range:
		col, err := resolveColumn(node.Field, columns)
		if err != nil {
			return "", nil, err
		}
		switch {
		case node.Min != nil && node.Max != nil:
			return col + " BETWEEN ? AND ?", []any{node.Min, node.Max}, nil
		case node.Min != nil:
			return col + " >= ?", []any{node.Min}, nil
		case node.Max != nil:
			return col + " <= ?", []any{node.Max}, nil
		default:
			return "", nil, fmt.Errorf("range on %q has no bounds", node.Field)
		}
	case Not:
		inner, args, err := BuildWhere(node.Inner, columns)
		if err != nil {
			return "", nil, err
		}
		if inner == "" {
			return "", nil, errors.New("NOT requires an inner predicate")
		}
		return "NOT (" + inner + ")", args, nil
	case And:
		return buildCompound(node.Preds, " AND ", columns)
	case Or:
		return buildCompound(node.Preds, " OR ", columns)
	default:
		return "", nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

func buildCompound(preds []Predicate, op string, columns map[string]string) (string, []any, error) {
	if len(preds) == 0 {
		return "", nil, nil
	}
	clauses := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		clause, clauseArgs, err := BuildWhere(p, columns)
		if err != nil {
			return "", nil, err
		}
		if clause == "" {
			continue
		}
		clauses = append(clauses, "("+clause+")")
		args = append(args, clauseArgs...)
	}
	if len(clauses) == 0 {
		return "", nil, nil
	}
	return strings.Join(clauses, op), args, nil
}

func resolveColumn(field string, columns map[string]string) (string, error) {
	col, ok := columns[field]
	if !ok {
		return "", fmt.Errorf("unknown filter field %q", field)
	}
	return col, nil
}

func resolveSort(sort string, columns map[string]string) (string, error) {
	if sort == "" {
		return "", nil
	}
	field := sort
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		field = sort[1:]
		dir = "DESC"
	}
	col, err := resolveColumn(field, columns)
	if err != nil {
		return "", err
	}
	return col + " " + dir, nil
}

func resolveFields(fields []string, columns map[string]string) ([]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		col, err := resolveColumn(f, columns)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

// ListRecords runs a ListQuery against one collection. Results are always
// scoped to the association carried in ctx; a store failure propagates to the
// caller so the engine never reports over a partial dataset.
func ListRecords[T any](ctx context.Context, q ListQuery, columns map[string]string, joins ...string) ([]T, error) {
	associationId, ok := utils.GetAssociationIdFromContext(ctx)
	if !ok || associationId == "" {
		return nil, errors.New("association id is required")
	}

	db := config.GetDB()
	if db == nil {
		return nil, errors.New("database not ready")
	}

	var model T
	dbCtx := db.WithContext(ctx).Model(&model)
	for _, join := range joins {
		dbCtx = dbCtx.Joins(join)
	}
	dbCtx = dbCtx.Where(columns["association_id"]+" = ?", associationId)

	clause, args, err := BuildWhere(q.Filter, columns)
	if err != nil {
		return nil, err
	}
	if clause != "" {
		dbCtx = dbCtx.Where(clause, args...)
	}

	selectCols, err := resolveFields(q.Fields, columns)
	if err != nil {
		return nil, err
	}
	if len(selectCols) > 0 {
		dbCtx = dbCtx.Select(selectCols)
	}

	order, err := resolveSort(q.Sort, columns)
	if err != nil {
		return nil, err
	}
	if order != "" {
		dbCtx = dbCtx.Order(order)
	}

	if q.Limit > 0 {
		dbCtx = dbCtx.Limit(q.Limit)
	}

	var records []T
	if err := dbCtx.Find(&records).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return records, nil
}
