// Package repository implements the console's domain repositories on SQLite.
package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"datasync-console/internal/domain"
)

func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Message: "resource not found"}
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return &domain.ConflictError{Message: "resource already exists"}
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &domain.NotFoundError{Message: "referenced resource not found"}
	}
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func now() time.Time {
	return time.Now().UTC()
}
