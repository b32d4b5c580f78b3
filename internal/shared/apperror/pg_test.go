package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		ok         bool
	}{
		{"nil", nil, "", false},
		{"pg error", &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}, "uq_employee_email", true},
		{"wrapped pg error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_x"}), "uq_x", true},
		{"other pg code", &pgconn.PgError{Code: "23503", ConstraintName: "fk_x"}, "fk_x", false},
		{"message only", errors.New(`ERROR: duplicate key value violates unique constraint "uq_payroll_export_period" (SQLSTATE 23505)`), "uq_payroll_export_period", true},
		{"unrelated", errors.New("connection reset"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constraint, ok := UniqueViolation(tt.err)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.constraint, constraint)
			}
		})
	}
}
