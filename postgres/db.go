package postgres

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/waypoint"
	"gorm.io/gorm"
)

// A DB builds and runs queries on the connection of one request.
//
// Chaining methods return a new *DB; finisher methods execute the query.
type DB struct {
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// They return any errors occurring within the query chain
// or when executing the query.
// **************************************************************************

// Count returns the number of records matching the current query or an error.
func (db *DB) Count() (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	var count int64
	if err := db.db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %s", waypoint.ErrUnexpected, err)
	}

	return count, nil
}

// Create inserts value into the database.
//
// If value violates a unique constraint defined by the database, ErrExists returns.
func (db *DB) Create(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.Create(value).Error
	switch {
	case err == nil:
		return nil

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", ErrExists, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", waypoint.ErrUnexpected, value, err)
	}
}

// Exec executes SQL query sql, passing values to it.
//
// If the query executed does not affect any records, Exec return ErrNotFound.
// There are many use cases where the caller ought to specifically ignore this error,
// since the execution may not change existing records.
func (db *DB) Exec(sql string, values ...any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Exec(sql, values...)
	if res.Error != nil && errSQLSyntax.MatchString(res.Error.Error()) {
		return fmt.Errorf("%w: %s", waypoint.ErrNotValid, res.Error)
	}

	if res.Error != nil {
		return fmt.Errorf("%w: %s", waypoint.ErrUnexpected, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: exec failed to affect any rows", ErrNotFound)
	}

	return nil
}

// Find retrieves all records matching the current query
// and stores them in dest.
//
// If no matches are found, Find returns ErrNotFound.
func (db *DB) Find(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	err := res.Error
	if err != nil && errSQLScan.MatchString(err.Error()) {
		return fmt.Errorf("%w: %T cannot be scanned into", waypoint.ErrNotValid, dest)
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", waypoint.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", waypoint.ErrUnexpected, err)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotFound.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %T", ErrNotFound, dest)
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", waypoint.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", waypoint.ErrUnexpected, err)
	}

	return nil
}

// Raw executes sql, passing values to it, and scans the results into dest.
func (db *DB) Raw(dest any, sql string, values ...any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.Raw(sql, values...).Scan(dest).Error
	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", waypoint.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: failed scanning results: %s", waypoint.ErrUnexpected, err)
	}

	return nil
}

// **************************************************************************
// CHAINING METHODS
//
// These methods add clauses to the current query.
// **************************************************************************

// Limit caps the number of records the query returns.
func (db *DB) Limit(limit int) *DB { return &DB{db: db.db.Limit(limit)} }

// Model specifies the table the query targets by way of model.
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Order sorts the results of the query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Table specifies the table the query targets by name.
func (db *DB) Table(name string) *DB { return &DB{db: db.db.Table(name)} }

// Where applies the query fragment to the current query
// as a WHERE or AND clause.
func (db *DB) Where(query any, args ...any) *DB {
	return &DB{db: db.db.Where(query, args...)}
}
