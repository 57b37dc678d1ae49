// Package gormstore persists the marketplace collections through GORM,
// against SQLite in development and tests and Postgres in production.
package gormstore

import (
	"errors"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	constraintApplicationPair = "idx_applications_campaign_creator"
	pgUniqueViolationCode     = "23505"
	sqliteConstraintCode      = 19

	errorOperationStore     = "store"
	errorSubjectBrand       = "brand"
	errorSubjectCreator     = "creator"
	errorSubjectCampaign    = "campaign"
	errorSubjectApplication = "application"
	errorSubjectMessage     = "message"
	errorSubjectTransaction = "transaction"
	errorCodeCreate         = "create"
	errorCodeDelete         = "delete"
	errorCodeDuplicate      = "duplicate"
	errorCodeGet            = "get"
	errorCodeInsert         = "insert"
	errorCodeInvalid        = "invalid"
	errorCodeList           = "list"
	errorCodeUpdate         = "update"
	errorCodeCount          = "count"
)

func isUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode && pgErr.ConstraintName == constraintName
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}
