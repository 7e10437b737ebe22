package sqlengine

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/mikietechie/sapp-library/lendingstore"
)

// applyFilter adds the predicates of filter to a select on table, joining related tables as needed.
func applyFilter(ds *goqu.SelectDataset, table string, filter lendingstore.Filter) (*goqu.SelectDataset, error) {
	if filter.IsEmpty() {
		return ds, nil
	}

	if filter.Entity() != lendingstore.Entity(table) {
		return nil, fmt.Errorf("%w: filter for %q applied to %q", lendingstore.ErrUnknownFilterEntity, filter.Entity(), table)
	}

	joined := make(map[lendingstore.Entity]bool)

	for _, condition := range filter.Conditions() {
		field := condition.Field
		column := goqu.T(table).Col(field.Column)

		if field.IsJoined() {
			through := goqu.T(string(field.Through))
			if !joined[field.Through] {
				ds = ds.InnerJoin(through, goqu.On(goqu.T(table).Col(field.Via).Eq(through.Col(colID))))
				joined[field.Through] = true
			}

			column = through.Col(field.Column)
		}

		ds = ds.Where(predicate(column, condition))
	}

	return ds, nil
}

func predicate(column exp.IdentifierExpression, condition lendingstore.FilterCondition) exp.Expression {
	switch condition.Field.Operator {
	case lendingstore.OpLessOrEqual:
		return column.Lte(condition.Value)
	case lendingstore.OpGreaterOrEqual:
		return column.Gte(condition.Value)
	case lendingstore.OpIsNull:
		if isNull, _ := condition.Value.(bool); isNull {
			return column.IsNull()
		}
		return column.IsNotNull()
	default:
		return column.Eq(condition.Value)
	}
}
