// Package jsonfield implements the Valuer/Scanner halves of MySQL JSON
// columns so domain types can embed structured fields without raw strings.
package jsonfield

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value marshals v for storage. Nil maps to SQL NULL.
func Value(v any) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan unmarshals a database value into dest. NULL leaves dest untouched.
func Scan(dest any, src any) error {
	if src == nil {
		return nil
	}
	switch s := src.(type) {
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return json.Unmarshal(s, dest)
	case string:
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), dest)
	default:
		return fmt.Errorf("jsonfield: unsupported source type %T", src)
	}
}
