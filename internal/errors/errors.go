// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is matched by every NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrIDMismatch means the identifier in the path differs from the one in the body.
	ErrIDMismatch = errors.New("identifier in path does not match identifier in body")
)

// NotFoundError reports a lookup against an identifier that does not exist.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewCampaignNotFound(id int) error {
	return &NotFoundError{Resource: "campaign", ID: id}
}

func NewDonationNotFound(id int) error {
	return &NotFoundError{Resource: "donation", ID: id}
}

// ValidationError lists required fields missing from a request body.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// PostgreSQL SQLSTATE codes.
const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidTextRep      = "22P02"
	codeInvalidDatetime     = "22007"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	return pqCode(err) == codeCheckViolation
}

// StorageCause names the storage-side reason for err, for logging only.
// Callers still treat every storage failure the same way.
func StorageCause(err error) string {
	switch pqCode(err) {
	case codeForeignKeyViolation:
		return "foreign_key_violation"
	case codeCheckViolation:
		return "check_violation"
	case codeNotNullViolation:
		return "not_null_violation"
	case codeInvalidTextRep, codeInvalidDatetime:
		return "invalid_input"
	case "":
		return "unknown"
	}
	return "constraint"
}
