package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alumni role tags. Only records tagged RoleStudent (or untagged legacy
// records) are visible in the public directory.
const (
	AlumniRoleStudent = RoleStudent
	AlumniRoleAdmin   = RoleAdmin
)

// Alumni is a directory record.
type Alumni struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RollNumber  string    `json:"rollNumber,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Batch       string    `json:"batch,omitempty"`
	Department  string    `json:"department,omitempty"`
	Company     string    `json:"company,omitempty"`
	Designation string    `json:"designation,omitempty"`
	LinkedIn    string    `json:"linkedin,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Role        string    `json:"role,omitempty"` // empty on legacy records
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DirectoryVisible reports whether the record belongs in the public listing.
func (a *Alumni) DirectoryVisible() bool {
	return a.Role == "" || a.Role == AlumniRoleStudent
}

// IsValidID reports whether id has the shape of a store identifier.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
