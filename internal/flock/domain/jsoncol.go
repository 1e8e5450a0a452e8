package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Typed collections stored in a single JSON text column implement
// sql.Scanner and driver.Valuer through these two helpers.

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(v), dst)
	case []byte:
		return json.Unmarshal(v, dst)
	default:
		return fmt.Errorf("domain: cannot scan %T into %T", src, dst)
	}
}
