package crime

import (
	"fmt"
	"strings"
)

type Table int

const (
	TableCodes Table = iota
	TableNeighborhoods
	TableIncidents
)

func (t Table) String() string {
	switch t {
	case TableCodes:
		return "Codes"
	case TableNeighborhoods:
		return "Neighborhoods"
	case TableIncidents:
		return "Incidents"
	default:
		return fmt.Sprintf("Table(%d)", int(t))
	}
}

// Query is SQL text with "?" placeholders and its bound arguments. Only
// fixed identifiers ever reach SQL; every filter value travels in Args.
type Query struct {
	SQL  string
	Args []any
}

const (
	selectCodes         = `SELECT code, incident_type FROM Codes`
	selectNeighborhoods = `SELECT neighborhood_number, neighborhood_name FROM Neighborhoods`
	selectIncidents     = `SELECT case_number, substr(date_time, 1, 10) AS date, substr(date_time, 12) AS time, code, incident, police_grid, neighborhood_number, block FROM Incidents`
)

func BuildQuery(table Table, f FilterCriteria) (Query, error) {
	switch table {
	case TableCodes:
		return BuildCodesQuery(f), nil
	case TableNeighborhoods:
		return BuildNeighborhoodsQuery(f), nil
	case TableIncidents:
		return BuildIncidentsQuery(f), nil
	default:
		return Query{}, fmt.Errorf("unknown table %s", table)
	}
}

// BuildCodesQuery filters on code only. No limit applies unless one was given.
func BuildCodesQuery(f FilterCriteria) Query {
	var clauses []string
	var args []any
	clauses, args = appendIn(clauses, args, "code", f.Codes)
	q := selectCodes + where(clauses) + " ORDER BY code"
	if f.LimitSet {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}
	return Query{SQL: q, Args: args}
}

func BuildNeighborhoodsQuery(f FilterCriteria) Query {
	var clauses []string
	var args []any
	clauses, args = appendIn(clauses, args, "neighborhood_number", f.Neighborhoods)
	q := selectNeighborhoods + where(clauses) + " ORDER BY neighborhood_number"
	if f.LimitSet {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}
	return Query{SQL: q, Args: args}
}

// BuildIncidentsQuery always ends with a bound LIMIT.
func BuildIncidentsQuery(f FilterCriteria) Query {
	var clauses []string
	var args []any
	if f.StartAfter != "" {
		clauses = append(clauses, "date_time > ?")
		args = append(args, f.StartAfter)
	}
	if f.EndBefore != "" {
		clauses = append(clauses, "date_time < ?")
		args = append(args, f.EndBefore)
	}
	clauses, args = appendIn(clauses, args, "code", f.Codes)
	clauses, args = appendIn(clauses, args, "police_grid", f.Grids)
	clauses, args = appendIn(clauses, args, "neighborhood_number", f.Neighborhoods)
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := selectIncidents + where(clauses) + " ORDER BY date_time DESC LIMIT ?"
	args = append(args, limit)
	return Query{SQL: q, Args: args}
}

func appendIn(clauses []string, args []any, column string, values []int) ([]string, []any) {
	if len(values) == 0 {
		return clauses, args
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(values)), ",")
	clauses = append(clauses, fmt.Sprintf("%s IN (%s)", column, placeholders))
	for _, v := range values {
		args = append(args, v)
	}
	return clauses, args
}

func where(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}
