package crime

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLimit  = 1000
	codeGroupSize = 3
	noonSuffix    = "T12:00:00"
	dateLayout    = "2006-01-02"
	timeLayout    = "15:04:05"
)

// FilterCriteria is the parsed form of a listing request. Distinct fields are
// combined with AND, values within one field with OR. StartAfter and EndBefore
// are noon-anchored exclusive bounds on date_time.
type FilterCriteria struct {
	Codes         []int
	Neighborhoods []int
	Grids         []int
	StartAfter    string
	EndBefore     string
	Limit         int
	LimitSet      bool
}

type ParseOptions struct {
	DefaultLimit int
	MaxLimit     int
}

// ParseFilter reads the keys that apply to table and ignores the rest: code
// for Codes, neighborhood or id for Neighborhoods, all of them for Incidents.
// limit applies to every table. Repeated keys are joined with commas, so
// ?code=110&code=600 is the same as ?code=110,600.
func ParseFilter(table Table, values url.Values, opts ParseOptions) (FilterCriteria, error) {
	f := FilterCriteria{Limit: opts.DefaultLimit}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	var err error
	if table == TableCodes || table == TableIncidents {
		if raw := joined(values, "code"); raw != "" {
			if f.Codes, err = ParseCodes(raw); err != nil {
				return FilterCriteria{}, err
			}
		}
	}
	if table == TableNeighborhoods || table == TableIncidents {
		hood := joined(values, "neighborhood")
		if hood == "" {
			hood = joined(values, "id")
		}
		if hood != "" {
			if f.Neighborhoods, err = ParseIDList("neighborhood", hood); err != nil {
				return FilterCriteria{}, err
			}
		}
	}
	if table == TableIncidents {
		if raw := joined(values, "grid"); raw != "" {
			if f.Grids, err = ParseIDList("grid", raw); err != nil {
				return FilterCriteria{}, err
			}
		}
		if raw := strings.TrimSpace(values.Get("start_date")); raw != "" {
			if f.StartAfter, err = noonBound("start_date", raw); err != nil {
				return FilterCriteria{}, err
			}
		}
		if raw := strings.TrimSpace(values.Get("end_date")); raw != "" {
			if f.EndBefore, err = noonBound("end_date", raw); err != nil {
				return FilterCriteria{}, err
			}
		}
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n <= 0 {
			return FilterCriteria{}, &ValidationError{Field: "limit", Message: "must be a positive integer"}
		}
		f.Limit = n
		f.LimitSet = true
	}
	if opts.MaxLimit > 0 && f.Limit > opts.MaxLimit {
		f.Limit = opts.MaxLimit
	}
	return f, nil
}

func joined(values url.Values, key string) string {
	var parts []string
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ",")
}

// ParseCodes splits raw into 3-digit codes. A single non-digit separator may
// follow each group, so "123456" and "123,456" both yield [123 456].
func ParseCodes(raw string) ([]int, error) {
	var codes []int
	for i := 0; i < len(raw); {
		if i+codeGroupSize > len(raw) {
			return nil, &ValidationError{Field: "code", Message: "expected 3-digit groups"}
		}
		group := raw[i : i+codeGroupSize]
		if !isDigits(group) {
			return nil, &ValidationError{Field: "code", Message: "expected 3-digit groups"}
		}
		n, _ := strconv.Atoi(group)
		codes = append(codes, n)
		i += codeGroupSize
		if i < len(raw) && !isDigit(raw[i]) {
			i++
		}
	}
	return codes, nil
}

// ParseIDList parses a comma separated list of integers.
func ParseIDList(field, raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &ValidationError{Field: field, Message: "expected comma separated integers"}
		}
		ids = append(ids, n)
	}
	return ids, nil
}

func noonBound(field, raw string) (string, error) {
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", &ValidationError{Field: field, Message: "expected YYYY-MM-DD"}
	}
	return raw + noonSuffix, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
