package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Códigos SQLSTATE tratados pelos repositórios.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeLockNotAvailable    = "55P03"
)

// sqlState extrai o SQLSTATE do erro, qualquer que seja o driver em uso.
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation indica violação de UNIQUE (e.g., código de item duplicado).
func IsUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// IsForeignKeyViolation indica violação de FOREIGN KEY.
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}

// IsCheckViolation indica violação de CHECK (e.g., quantidade negativa).
func IsCheckViolation(err error) bool {
	return sqlState(err) == codeCheckViolation
}

// IsLockTimeout indica que lock_timeout expirou esperando o bloqueio de linha.
func IsLockTimeout(err error) bool {
	return sqlState(err) == codeLockNotAvailable
}
