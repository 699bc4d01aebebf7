package content

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Ref 是指向分类的可空软引用。分类被删除后引用会被置空，内容本身保留，
// 此时视为"未分类"。
type Ref struct {
	id string
}

// Uncategorized is the empty reference.
var Uncategorized = Ref{}

// RefTo builds a reference to the given category id. A blank id yields Uncategorized.
func RefTo(id string) Ref {
	return Ref{id: strings.TrimSpace(id)}
}

// RefFromPtr converts an optional id into a reference.
func RefFromPtr(id *string) Ref {
	if id == nil {
		return Uncategorized
	}
	return RefTo(*id)
}

// ID returns the referenced category id and whether the reference is set.
func (r Ref) ID() (string, bool) {
	return r.id, r.id != ""
}

// Valid reports whether the reference points at a category.
func (r Ref) Valid() bool {
	return r.id != ""
}

// Is reports whether the reference points at the category with the given id.
func (r Ref) Is(id string) bool {
	return r.id != "" && r.id == id
}

func (r Ref) String() string {
	if r.id == "" {
		return "uncategorized"
	}
	return r.id
}

// Value implements driver.Valuer; an empty reference is stored as NULL.
func (r Ref) Value() (driver.Value, error) {
	if r.id == "" {
		return nil, nil
	}
	return r.id, nil
}

// Scan implements sql.Scanner.
func (r *Ref) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		r.id = ""
	case string:
		r.id = strings.TrimSpace(v)
	case []byte:
		r.id = strings.TrimSpace(string(v))
	default:
		return fmt.Errorf("content: cannot scan %T into Ref", src)
	}
	return nil
}

// GormDataType tells gorm how to store the reference.
func (Ref) GormDataType() string {
	return "string"
}

// MarshalJSON encodes an empty reference as null.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts null, "" or an id string.
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		r.id = ""
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	r.id = strings.TrimSpace(id)
	return nil
}
