package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows should be not found")
	}
	if !isNotFound(fmt.Errorf("wrapped: %w", sql.ErrNoRows)) {
		t.Fatal("wrapped sql.ErrNoRows should be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatal("arbitrary error should not be not found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: pq.ErrorCode(pqUniqueViolation)}
	if !isUniqueViolation(uniqueErr) {
		t.Fatal("code 23505 should be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", uniqueErr)) {
		t.Fatal("wrapped 23505 should be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: pq.ErrorCode(pqForeignKeyViolation)}) {
		t.Fatal("23503 is not a unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := &pq.Error{Code: pq.ErrorCode(pqForeignKeyViolation)}
	if !isForeignKeyViolation(fkErr) {
		t.Fatal("code 23503 should be a foreign key violation")
	}
	if isForeignKeyViolation(errors.New("boom")) {
		t.Fatal("arbitrary error should not be a foreign key violation")
	}
}
