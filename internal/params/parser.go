package params

import (
	"fmt"
	"strings"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
//
// Example:
//
//	params, err := ParseKeyValuePairs([]string{"VendorID=int64", "store_and_fwd_flag=string"})
//	// Returns: map[string]string{"VendorID": "int64", "store_and_fwd_flag": "string"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q is not in key=value format (example: --column VendorID=int64): %w", pair, tripload.ErrInvalidConfig)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("parameter has empty key: %q: %w", pair, tripload.ErrInvalidConfig)
		}

		result[key] = value
	}

	return result, nil
}

// ParseColumns converts "name=type" pairs into a column type map.
func ParseColumns(pairs []string) (map[string]tripload.ColumnType, error) {
	raw, err := ParseKeyValuePairs(pairs)
	if err != nil {
		return nil, err
	}

	return ParseColumnMap(raw)
}

// ParseColumnMap resolves type names in an already split name-to-type map,
// as read from tripload.yaml.
func ParseColumnMap(raw map[string]string) (map[string]tripload.ColumnType, error) {
	columns := make(map[string]tripload.ColumnType, len(raw))
	for name, typeName := range raw {
		typ, err := tripload.ParseColumnType(typeName)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		columns[name] = typ
	}
	return columns, nil
}

// MergeColumns returns a new map with override applied on top of base.
func MergeColumns(base, override map[string]tripload.ColumnType) map[string]tripload.ColumnType {
	merged := make(map[string]tripload.ColumnType, len(base)+len(override))
	for name, typ := range base {
		merged[name] = typ
	}
	for name, typ := range override {
		merged[name] = typ
	}
	return merged
}
