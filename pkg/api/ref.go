package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Ref is a reference to another resource. The backend is inconsistent about
// how references arrive: list endpoints may embed the referenced object,
// detail endpoints may return a bare ID string, and either may be null.
// Ref normalizes all three at the decode boundary.
type Ref struct {
	ID   string
	Name string
}

// refObject covers the name-ish fields the backend uses across collections.
type refObject struct {
	ID          string `json:"_id"`
	AltID       string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	AccountName string `json:"accountName"`
}

// UnmarshalJSON accepts a bare ID string, an embedded object, or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}

	var obj refObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("reference is neither an ID nor an object: %w", err)
	}

	id := obj.ID
	if id == "" {
		id = obj.AltID
	}
	name := obj.Name
	if name == "" {
		name = obj.ContactName
	}
	if name == "" {
		name = obj.AccountName
	}
	*r = Ref{ID: id, Name: name}
	return nil
}

// MarshalJSON emits the bare ID for an unnamed reference and the
// embedded-object form when a display name is known. An empty reference
// marshals as null.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	if r.Name == "" {
		return json.Marshal(r.ID)
	}
	return json.Marshal(struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}{ID: r.ID, Name: r.Name})
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// DisplayName returns the embedded name when present, else the ID, else
// "Unknown". Reports use this for grouping labels.
func (r Ref) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.ID != "" {
		return r.ID
	}
	return "Unknown"
}

// Date is a calendar date that tolerates the backend's two encodings:
// plain "2006-01-02" and full RFC 3339 timestamps.
type Date struct {
	time.Time
}

// UnmarshalJSON parses either date encoding. Null and "" decode to the
// zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date: %q", s)
}

// MarshalJSON emits the plain date form.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}
