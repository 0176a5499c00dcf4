// Package validation holds the field rules applied to alumni records before
// they are written.
//
// Rules are kept in a single ordered table. Evaluation stops at the first
// rejected rule, so the order of the table is the order in which callers see
// errors.
package validation

import (
	"regexp"
	"strings"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// Field names an alumni attribute, using its API spelling.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldRollNumber  Field = "rollNumber"
	FieldBatch       Field = "batch"
	FieldDepartment  Field = "department"
	FieldCompany     Field = "company"
	FieldDesignation Field = "designation"
	FieldPhone       Field = "phone"
	FieldLinkedIn    Field = "linkedin"
	FieldRole        Field = "role"
)

var (
	numericRe    = regexp.MustCompile(`^\d+$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rollNumberRe = regexp.MustCompile(`^[a-zA-Z0-9-]{1,20}$`)
	batchRe      = regexp.MustCompile(`^\d{4}$`)
	phoneRe      = regexp.MustCompile(`^\d{10}$`)
	linkedInRe   = regexp.MustCompile(`(?i)^https?://`)
)

// AlumniFields is the raw, unnormalized candidate record.
type AlumniFields struct {
	Name        string
	Email       string
	RollNumber  string
	Batch       string
	Department  string
	Company     string
	Designation string
	Phone       string
	LinkedIn    string
	Role        string
}

func (f AlumniFields) get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldRollNumber:
		return f.RollNumber
	case FieldBatch:
		return f.Batch
	case FieldDepartment:
		return f.Department
	case FieldCompany:
		return f.Company
	case FieldDesignation:
		return f.Designation
	case FieldPhone:
		return f.Phone
	case FieldLinkedIn:
		return f.LinkedIn
	case FieldRole:
		return f.Role
	}
	return ""
}

// rule rejects a value when reject returns true. Optional rules are skipped
// for empty values.
type rule struct {
	field    Field
	optional bool
	reject   func(string) bool
	message  string
}

var alumniRules = []rule{
	{field: FieldName, reject: isBlank, message: "Name is required"},
	{field: FieldName, reject: isNumeric, message: "Name must contain letters"},
	{field: FieldEmail, optional: true, reject: mismatch(emailRe), message: "Invalid email format"},
	{field: FieldRollNumber, optional: true, reject: mismatch(rollNumberRe), message: "Roll number must be alphanumeric (max 20 characters, allowed: letters, numbers, hyphens)"},
	{field: FieldBatch, optional: true, reject: mismatch(batchRe), message: "Batch must be a 4-digit year"},
	{field: FieldDepartment, optional: true, reject: isNumeric, message: "Department must contain letters"},
	{field: FieldCompany, optional: true, reject: isNumeric, message: "Company must contain letters"},
	{field: FieldDesignation, optional: true, reject: isNumeric, message: "Designation must contain letters"},
	{field: FieldPhone, optional: true, reject: mismatch(phoneRe), message: "Phone must be exactly 10 digits"},
	{field: FieldLinkedIn, optional: true, reject: mismatch(linkedInRe), message: "LinkedIn must be a valid URL (starting with http:// or https://)"},
	{field: FieldRole, optional: true, reject: notAlumniRole, message: "Role must be either student or admin"},
}

// ValidateAlumni runs every rule in order and returns the first failure as a
// *domain.ValidationError.
func ValidateAlumni(f AlumniFields) error {
	for _, r := range alumniRules {
		if err := r.check(f.get(r.field)); err != nil {
			return err
		}
	}
	return nil
}

// CheckField runs only the rules registered for field.
func CheckField(field Field, value string) error {
	for _, r := range alumniRules {
		if r.field != field {
			continue
		}
		if err := r.check(value); err != nil {
			return err
		}
	}
	return nil
}

func (r rule) check(value string) error {
	if r.optional && value == "" {
		return nil
	}
	if r.reject(value) {
		return domain.NewValidationError(string(r.field), r.message)
	}
	return nil
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}

func isNumeric(v string) bool {
	return numericRe.MatchString(strings.TrimSpace(v))
}

func mismatch(re *regexp.Regexp) func(string) bool {
	return func(v string) bool { return !re.MatchString(v) }
}

func notAlumniRole(v string) bool {
	return v != domain.AlumniRoleStudent && v != domain.AlumniRoleAdmin
}
