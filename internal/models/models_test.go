package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/adminui/internal/shared"
)

func TestParseField(t *testing.T) {
	tc := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{in: "name", want: FieldName},
		{in: "EMAIL", want: FieldEmail},
		{in: " Role ", want: FieldRole},
		{in: "id", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseField(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidField) {
					t.Errorf("ParseField(%q) error = %v, want ErrInvalidField", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseField(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseField(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldTitle(t *testing.T) {
	if got := FieldEmail.Title(); got != "Email" {
		t.Errorf("FieldEmail.Title() = %q, want Email", got)
	}
	if got := Field(9).String(); got != "Field(9)" {
		t.Errorf("Field(9).String() = %q", got)
	}
}

func TestMemberMatches(t *testing.T) {
	m := Member{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"}

	tc := []struct {
		query string
		want  bool
	}{
		{query: "", want: true},
		{query: "aaron", want: true},
		{query: "MILES", want: true},
		{query: "mailinator", want: true},
		{query: "Mem", want: true},
		{query: "admin", want: false},
		{query: "1", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.query, func(t *testing.T) {
			if got := m.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMemberFields(t *testing.T) {
	m := Member{ID: "5"}
	m.SetField(FieldName, "Alice")
	m.SetField(FieldEmail, "alice@example.com")
	m.SetField(FieldRole, "admin")
	m.SetField(Field(42), "ignored")

	if m.Field(FieldName) != "Alice" || m.Field(FieldEmail) != "alice@example.com" || m.Field(FieldRole) != "admin" {
		t.Errorf("unexpected member after SetField: %+v", m)
	}
	if m.Field(Field(42)) != "" {
		t.Error("unknown field should read as empty")
	}
}

func TestMemberUnmarshalJSON(t *testing.T) {
	t.Run("string id", func(t *testing.T) {
		var m Member
		if err := json.Unmarshal([]byte(`{"id":"7","name":"Ann","email":"ann@x.io","role":"admin"}`), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ID != "7" || m.Name != "Ann" || m.Role != "admin" {
			t.Errorf("unexpected member: %+v", m)
		}
	})

	t.Run("number id", func(t *testing.T) {
		var m Member
		if err := json.Unmarshal([]byte(`{"id": 12, "name":"Bo"}`), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ID != "12" {
			t.Errorf("expected id 12, got %q", m.ID)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		var m Member
		if err := json.Unmarshal([]byte(`{"name":"Cy"}`), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ID != "" {
			t.Errorf("expected empty id, got %q", m.ID)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		var m Member
		if err := json.Unmarshal([]byte(`{"id": true}`), &m); err == nil {
			t.Error("expected error for boolean id")
		}
	})

	t.Run("editing is not serialized", func(t *testing.T) {
		data, err := json.Marshal(Member{ID: "1", Editing: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"id":"1","name":"","email":"","role":""}` {
			t.Errorf("unexpected JSON: %s", data)
		}
	})
}
