package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key under which an open transaction travels
const txKey ctxKey = "gorm_tx"

const uniqueViolation = "23505"

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over db
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// conn returns the transaction carried by ctx, or db when there is none
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// SearchScope matches term against each column with ILIKE
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			clauses[i] = c + " ILIKE ?"
			args[i] = "%" + term + "%"
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// AssignedScope filters on whether column is set. A nil flag is a no-op.
func AssignedScope(column string, assigned *bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if assigned == nil {
			return db
		}
		if *assigned {
			return db.Where(column + " IS NOT NULL")
		}
		return db.Where(column + " IS NULL")
	}
}

// translateError maps unique violations to a validation error naming the
// offending column. entity is the singular table name. Other errors pass
// through.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		field := columnFromConstraint(pgErr.ConstraintName, entity)
		return apperror.NewFieldError(field, fmt.Sprintf("%s with this %s already exists.", humanize(entity), humanize(field)))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewBadRequestError(humanize(entity) + " already exists.")
	}
	return err
}

// columnFromConstraint turns gorm's idx_<table>_<column> into <column>
func columnFromConstraint(constraint, table string) string {
	prefix := "idx_" + table + "s_"
	switch {
	case strings.HasPrefix(constraint, prefix):
		return strings.TrimPrefix(constraint, prefix)
	case strings.HasPrefix(constraint, "idx_"+table+"_"):
		return strings.TrimPrefix(constraint, "idx_"+table+"_")
	case constraint == "":
		return "non_field_errors"
	}
	return constraint
}

func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
