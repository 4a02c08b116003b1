package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Search renders the dialect specific SQL fragments used by free-text
// filters. Only column expressions produced here are interpolated into SQL;
// user input is always bound as a parameter.
type Search struct {
	dialect string
}

// SearchFor inspects the dialector behind tx.
func SearchFor(tx *gorm.DB) Search {
	if tx == nil || tx.Dialector == nil {
		return Search{dialect: TypePostgres}
	}
	return NewSearch(tx.Dialector.Name())
}

func NewSearch(dialect string) Search {
	return Search{dialect: strings.ToLower(strings.TrimSpace(dialect))}
}

// Like is the case-insensitive match operator.
func (s Search) Like() string {
	if s.dialect == TypePostgres {
		return "ILIKE"
	}
	// sqlite LIKE folds ASCII case, mysql relies on the ci collation
	return "LIKE"
}

// Text renders column as text.
func (s Search) Text(column string) string {
	switch s.dialect {
	case TypePostgres:
		return column + "::text"
	case TypeMySQL:
		return fmt.Sprintf("CAST(%s AS CHAR)", column)
	default:
		return fmt.Sprintf("CAST(%s AS TEXT)", column)
	}
}

// Dollars renders an integer column as "$<value>.00".
func (s Search) Dollars(column string) string {
	switch s.dialect {
	case TypePostgres:
		return fmt.Sprintf("TO_CHAR(%s, 'FM$999999999D00')", column)
	case TypeMySQL:
		return fmt.Sprintf("CONCAT('$', %s, '.00')", column)
	default:
		return fmt.Sprintf("printf('$%%d.00', %s)", column)
	}
}

// Contains wraps term for a substring match.
func Contains(term string) string {
	return "%" + term + "%"
}
