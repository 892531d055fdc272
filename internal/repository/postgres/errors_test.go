package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name: "unique_violation_matching_constraint",
			err: &pq.Error{
				Code:       "23505",
				Constraint: ConstraintOrderSlot,
			},
			constraint: ConstraintOrderSlot,
			want:       true,
		},
		{
			name: "unique_violation_any_constraint",
			err: &pq.Error{
				Code:       "23505",
				Constraint: "categories_name_key",
			},
			constraint: "",
			want:       true,
		},
		{
			name: "unique_violation_different_constraint",
			err: &pq.Error{
				Code:       "23505",
				Constraint: "categories_name_key",
			},
			constraint: ConstraintOrderSlot,
			want:       false,
		},
		{
			name: "foreign_key_violation",
			err: &pq.Error{
				Code:       "23503",
				Constraint: ConstraintOrderSlot,
			},
			constraint: ConstraintOrderSlot,
			want:       false,
		},
		{
			name:       "not_pq_error",
			err:        errors.New("some other error"),
			constraint: ConstraintOrderSlot,
			want:       false,
		},
		{
			name:       "nil_error",
			err:        nil,
			constraint: ConstraintOrderSlot,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUniqueViolation(tt.err, tt.constraint)
			if got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUniqueViolation_StringConcatenationDoesNotMatch(t *testing.T) {
	baseErr := &pq.Error{
		Code:       "23505",
		Constraint: ConstraintOrderSlot,
	}

	// Concatenating the message loses the typed error, so errors.As must fail.
	concatenated := errors.New("failed to insert: " + baseErr.Error())
	if IsUniqueViolation(concatenated, ConstraintOrderSlot) {
		t.Error("Expected false for string-concatenated error, but got true")
	}

	if !IsUniqueViolation(baseErr, ConstraintOrderSlot) {
		t.Error("Expected true for a typed pq.Error")
	}
}

func TestIsUniqueViolation_ExactConstraintMatch(t *testing.T) {
	err := &pq.Error{
		Code:       "23505",
		Constraint: ConstraintOrderSlot,
	}

	// Constraint names are case-sensitive in PostgreSQL.
	if IsUniqueViolation(err, "ORDERS_DATE_START_TIME_KEY") {
		t.Error("Expected false for case-mismatched constraint name")
	}

	if !IsUniqueViolation(err, ConstraintOrderSlot) {
		t.Error("Expected true for exact constraint name match")
	}
}
