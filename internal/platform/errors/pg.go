package errors

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstateCodes maps the SQLSTATEs repos can hit to project codes
var sqlstateCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"22032": ErrorCodeInvalidArgument, // invalid_json_text
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"57014": ErrorCodeUnavailable,     // query_canceled, eg statement_timeout
}

// ExtractPgError finds a server error anywhere in err's chain
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(err, &pgErr)
	return pgErr, ok
}

// IsDuplicateKey reports a unique constraint violation
func IsDuplicateKey(err error) bool {
	code, ok := DBErrorCode(err)
	return ok && code == ErrorCodeDuplicateKey
}

// DBErrorCode maps a server error to a code, ok is false when err is not one
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if code, known := sqlstateCodes[pgErr.Code]; known {
		return code, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with its mapped code, nil stays nil
// a constraint violation names its column as the field
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, _ := DBErrorCode(err)
	if code == ErrorCodeUnknown {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if pgErr, ok := ExtractPgError(err); ok && pgErr.ColumnName != "" {
		out = WithField(out, pgErr.ColumnName)
	}
	return out
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}
