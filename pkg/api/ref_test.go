package api

import (
	"encoding/json"
	"testing"
)

func TestRefUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Ref
	}{
		{"bare id", `"abc123"`, Ref{ID: "abc123"}},
		{"embedded object", `{"_id":"abc123","name":"Office Rent"}`, Ref{ID: "abc123", Name: "Office Rent"}},
		{"contact object", `{"_id":"c1","contactName":"Acme Ltd"}`, Ref{ID: "c1", Name: "Acme Ltd"}},
		{"bank account object", `{"_id":"b1","accountName":"Operating"}`, Ref{ID: "b1", Name: "Operating"}},
		{"alternate id key", `{"id":"x9","name":"GST"}`, Ref{ID: "x9", Name: "GST"}},
		{"null", `null`, Ref{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref
			if err := json.Unmarshal([]byte(tt.input), &r); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if r != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, expected %+v", tt.input, r, tt.want)
			}
		})
	}
}

func TestRefMarshal(t *testing.T) {
	data, err := json.Marshal(Ref{ID: "abc"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"abc"` {
		t.Errorf("Marshal = %s, expected bare ID", data)
	}

	data, err = json.Marshal(Ref{ID: "abc", Name: "Acme Ltd"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"_id":"abc","name":"Acme Ltd"}` {
		t.Errorf("Marshal(named) = %s, expected embedded object", data)
	}

	data, err = json.Marshal(Ref{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "null" {
		t.Errorf("Marshal(zero) = %s, expected null", data)
	}
}

func TestRefMarshalRoundTrip(t *testing.T) {
	orig := Ref{ID: "c1", Name: "Acme Ltd"}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back Ref
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != orig {
		t.Errorf("round trip = %+v, expected %+v", back, orig)
	}
}

func TestRefDisplayName(t *testing.T) {
	if got := (Ref{ID: "x", Name: "Acme"}).DisplayName(); got != "Acme" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := (Ref{ID: "x"}).DisplayName(); got != "x" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := (Ref{}).DisplayName(); got != "Unknown" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // formatted YYYY-MM-DD, "" for zero
	}{
		{"plain date", `"2026-01-15"`, "2026-01-15"},
		{"rfc3339", `"2026-01-15T00:00:00Z"`, "2026-01-15"},
		{"mongo style", `"2026-01-15T10:30:00.000Z"`, "2026-01-15"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if tt.want == "" {
				if !d.IsZero() {
					t.Errorf("expected zero date, got %v", d)
				}
				return
			}
			if got := d.Format("2006-01-02"); got != tt.want {
				t.Errorf("Unmarshal(%s) = %s, expected %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"15/01/2026"`), &d); err == nil {
		t.Error("expected error for unrecognized date format")
	}
}

func TestTaxModeNormalization(t *testing.T) {
	var inv SalesInvoice
	if err := json.Unmarshal([]byte(`{"_id":"i1","amountTreatment":"Exclusive"}`), &inv); err != nil {
		t.Fatal(err)
	}
	if inv.TaxMode() != "Excluding" {
		t.Errorf("TaxMode() = %q, expected legacy Exclusive to normalize to Excluding", inv.TaxMode())
	}
}
