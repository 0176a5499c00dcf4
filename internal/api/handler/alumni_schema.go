package handler

import (
	"bytes"
	"encoding/json"
	"time"
)

// flexString accepts either a JSON string or a JSON number. Older clients
// send batch and phone as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// --- Request / Response types ---

type alumniRequest struct {
	Name        string     `json:"name"`
	RollNumber  string     `json:"rollNumber"`
	Email       string     `json:"email"`
	Phone       flexString `json:"phone"       swaggertype:"string"`
	Batch       flexString `json:"batch"       swaggertype:"string"`
	Department  string     `json:"department"`
	Company     string     `json:"company"`
	Designation string     `json:"designation"`
	LinkedIn    string     `json:"linkedin"`
	Notes       string     `json:"notes"`
	Role        string     `json:"role"`
}

type listAlumniQuery struct {
	Q string `query:"q" validate:"max=100"`
}

// Response-only types owned by the transport layer.

type alumniResponse struct {
	ID          string    `json:"_id"`
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
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type alumniListResponse struct {
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Items []alumniResponse `json:"items"`
}
