package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/adminui/internal/shared"
)

// Field names one of the editable columns of a [Member].
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldRole
)

var fieldNames = [...]string{"name", "email", "role"}

// Fields returns every [Field] in display order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldRole}
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Title returns the column heading for f.
func (f Field) Title() string {
	s := f.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseField maps "name", "email" or "role" (any case) to a [Field].
func ParseField(s string) (Field, error) {
	for i, name := range fieldNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", shared.ErrInvalidField, s)
}

// Member is a single roster record.
type Member struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Editing bool   `json:"-"`
}

// UnmarshalJSON accepts the id as either a JSON string or a JSON number.
func (m *Member) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
		Role  string          `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	*m = Member{ID: id, Name: raw.Name, Email: raw.Email, Role: raw.Role}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id must be a string or number: %w", err)
	}
	return n.String(), nil
}

// Field returns the value of f.
func (m Member) Field(f Field) string {
	switch f {
	case FieldName:
		return m.Name
	case FieldEmail:
		return m.Email
	case FieldRole:
		return m.Role
	default:
		return ""
	}
}

// SetField overwrites the value of f. Unknown fields are ignored.
func (m *Member) SetField(f Field, value string) {
	switch f {
	case FieldName:
		m.Name = value
	case FieldEmail:
		m.Email = value
	case FieldRole:
		m.Role = value
	}
}

// Matches reports whether query is a case-insensitive substring of the name, email, or role.
//
// The empty query matches every member.
func (m Member) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range Fields() {
		if strings.Contains(strings.ToLower(m.Field(f)), q) {
			return true
		}
	}
	return false
}
