package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// parseField converts a raw CSV field to the pgtype value of typ.
// An empty field yields an invalid (NULL) value.
func parseField(raw string, typ tripload.ColumnType, layout string) (any, error) {
	s := strings.TrimSpace(raw)

	switch typ {
	case tripload.TypeInt64:
		if s == "" {
			return pgtype.Int8{}, nil
		}
		n, err := parseInt(s)
		if err != nil {
			return nil, err
		}
		return pgtype.Int8{Int64: n, Valid: true}, nil

	case tripload.TypeFloat64:
		if s == "" {
			return pgtype.Float8{}, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q", raw)
		}
		return pgtype.Float8{Float64: f, Valid: true}, nil

	case tripload.TypeTimestamp:
		if s == "" {
			return pgtype.Timestamp{}, nil
		}
		t, err := time.Parse(layout, s)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q (layout %q)", raw, layout)
		}
		return pgtype.Timestamp{Time: t, Valid: true}, nil

	default:
		if raw == "" {
			return pgtype.Text{}, nil
		}
		return pgtype.Text{String: raw, Valid: true}, nil
	}
}

// parseInt accepts plain integers and integral floats such as "1.0", which
// appear in files whose integer columns were once written with gaps.
func parseInt(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int64(f), nil
}
