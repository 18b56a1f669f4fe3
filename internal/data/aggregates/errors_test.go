package aggregates

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
)

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PostgresUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	err := MapError("project.save", fmt.Errorf("save: %w", pgErr))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
	if got := domainagg.MessageOf(err); got != "record already exists" {
		t.Fatalf("message: want=%q got=%q", "record already exists", got)
	}
}

func TestMapError_SqliteUniqueViolation(t *testing.T) {
	err := MapError("user.save", errors.New("UNIQUE constraint failed: users.email"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_UnknownIsInternal(t *testing.T) {
	err := MapError("op", errors.New("connection reset by peer"))
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal code, got %q (%v)", domainagg.CodeOf(err), err)
	}
	if domainagg.IsDomain(err) {
		t.Fatalf("internal errors must not be treated as domain failures")
	}
}

func TestMapError_PassthroughDomainError(t *testing.T) {
	in := domainagg.Validation("name", "project name cannot be empty")
	out := MapError("other", fmt.Errorf("wrapped: %w", in))
	if !domainagg.IsCode(out, domainagg.CodeValidation) {
		t.Fatalf("expected validation passthrough, got %v", out)
	}
	if MapError("op", nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}
