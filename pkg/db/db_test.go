package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDialect(t *testing.T) {
	d, err := Dialect(Config{Type: "Postgres", Host: "localhost", Port: "5432"})
	require.NoError(t, err)
	assert.Equal(t, TypePostgres, d.Name())

	d, err = Dialect(Config{Type: "mysql"})
	require.NoError(t, err)
	assert.Equal(t, TypeMySQL, d.Name())

	d, err = Dialect(Config{Type: "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, TypeSQLite, d.Name())

	_, err = Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}

func TestSearchFragments(t *testing.T) {
	pg := NewSearch("postgres")
	assert.Equal(t, "ILIKE", pg.Like())
	assert.Equal(t, "invoices.date::text", pg.Text("invoices.date"))
	assert.Equal(t, "TO_CHAR(invoices.amount, 'FM$999999999D00')", pg.Dollars("invoices.amount"))

	my := NewSearch("mysql")
	assert.Equal(t, "LIKE", my.Like())
	assert.Equal(t, "CAST(amount AS CHAR)", my.Text("amount"))
	assert.Equal(t, "CONCAT('$', amount, '.00')", my.Dollars("amount"))

	assert.Equal(t, "%abc%", Contains("abc"))
}

func TestSearchFragmentsRunOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:search_fragments?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	s := SearchFor(conn)
	assert.Equal(t, "LIKE", s.Like())

	var row struct {
		Dollars string
		AsText  string
		Matched bool
	}
	query := fmt.Sprintf("SELECT %s AS dollars, %s AS as_text, ('Evil Rabbit' %s ?) AS matched",
		s.Dollars("15795"), s.Text("15795"), s.Like())
	require.NoError(t, conn.Raw(query, Contains("evil")).Scan(&row).Error)

	assert.Equal(t, "$15795.00", row.Dollars)
	assert.Equal(t, "15795", row.AsText)
	assert.True(t, row.Matched)
}
