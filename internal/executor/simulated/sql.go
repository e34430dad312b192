package simulated

import (
	"regexp"
	"strings"

	"github.com/sakif/codeclass/internal/executor"
)

var fromTable = regexp.MustCompile(`(?i)from\s+(\w+)`)

const (
	sqlHeader    = "id | name | value"
	sqlInserted  = "1 row(s) inserted successfully."
	sqlUpdated   = "2 row(s) updated successfully."
	sqlNoRows    = "Query executed. No rows affected."
	defaultTable = "table"
)

var sqlFixtureRows = []string{
	"1 | data1 | 100",
	"2 | data2 | 200",
}

// runSQL never reports an error: every query "succeeds" against a
// two-row fixture.
func runSQL(code string) executor.ExecutionResult {
	src := strings.TrimSpace(code)
	q := strings.ToLower(src)

	switch {
	case strings.Contains(q, "select"):
		return success(selectResult(src))
	case strings.Contains(q, "insert"):
		return success(sqlInserted)
	case strings.Contains(q, "update"):
		return success(sqlUpdated)
	default:
		return success(sqlNoRows)
	}
}

func selectResult(src string) string {
	table := defaultTable
	if m := fromTable.FindStringSubmatch(src); m != nil {
		table = m[1]
	}

	lines := []string{
		"Query executed on " + table + ":",
		"",
		sqlHeader,
		strings.Repeat("-", len(sqlHeader)),
	}
	lines = append(lines, sqlFixtureRows...)
	return strings.Join(lines, "\n")
}
