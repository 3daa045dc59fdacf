package valueobject

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ruudy-sib/stocksync/internal/domain"
)

func TestNewRecordID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain id", input: "42", want: "42"},
		{name: "surrounding whitespace is trimmed", input: "  42 ", want: "42"},
		{name: "app code prefix is kept", input: "ORD-42", want: "ORD-42"},
		{name: "empty string", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewRecordID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidRecordID) {
					t.Fatalf("expected ErrInvalidRecordID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.String() != tt.want {
				t.Fatalf("String() = %q, want %q", id.String(), tt.want)
			}
		})
	}
}

func TestRecordID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantZero bool
		wantErr  bool
	}{
		{name: "string", input: `"7"`, want: "7"},
		{name: "number", input: `7`, want: "7"},
		{name: "null", input: `null`, wantZero: true},
		{name: "empty string", input: `""`, wantZero: true},
		{name: "object", input: `{"value":"7"}`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id RecordID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.IsZero() != tt.wantZero {
				t.Fatalf("IsZero() = %v, want %v", id.IsZero(), tt.wantZero)
			}
			if !tt.wantZero && id.String() != tt.want {
				t.Fatalf("String() = %q, want %q", id.String(), tt.want)
			}
		})
	}
}

func TestRecordID_Equals(t *testing.T) {
	a, _ := NewRecordID("42")
	b, _ := NewRecordID(" 42")
	c, _ := NewRecordID("43")

	if !a.Equals(b) {
		t.Fatal("expected trimmed ids to be equal")
	}
	if a.Equals(c) {
		t.Fatal("expected different ids to differ")
	}
}
