package db

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Float64Array maps a Go slice onto a Postgres double precision[] column
// through database/sql. The text format is the array literal Postgres emits,
// e.g. {0.25,-0.5,1}.
type Float64Array []float64

// Value implements driver.Valuer.
func (a Float64Array) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte('}')
	return sb.String(), nil
}

// Scan implements sql.Scanner.
func (a *Float64Array) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("db: cannot scan %T into Float64Array", src)
	}

	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return fmt.Errorf("db: malformed array literal %q", s)
	}
	s = s[1 : len(s)-1]
	if s == "" {
		*a = Float64Array{}
		return nil
	}

	parts := strings.Split(s, ",")
	out := make(Float64Array, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("db: malformed array element %q: %w", part, err)
		}
		out = append(out, f)
	}
	*a = out
	return nil
}
