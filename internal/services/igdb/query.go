package igdb

import (
	"strconv"
	"strings"
)

// Query builds an apicalypse request body, one clause per line.
type Query struct {
	search string
	fields []string
	where  []string
	limit  int
}

// NewQuery starts a query selecting fields.
func NewQuery(fields ...string) *Query {
	return &Query{fields: fields}
}

// Search sets the full-text search term.
func (q *Query) Search(term string) *Query {
	q.search = term
	return q
}

// Where adds a filter clause; clauses are joined with "&".
func (q *Query) Where(clause string) *Query {
	if clause = strings.TrimSpace(clause); clause != "" {
		q.where = append(q.where, clause)
	}
	return q
}

// Limit caps the number of results.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) String() string {
	var b strings.Builder
	if q.search != "" {
		b.WriteString("search ")
		b.WriteString(quote(q.search))
		b.WriteString(";\n")
	}
	if len(q.fields) > 0 {
		b.WriteString("fields ")
		b.WriteString(strings.Join(q.fields, ","))
		b.WriteString(";\n")
	}
	if len(q.where) > 0 {
		b.WriteString("where ")
		b.WriteString(strings.Join(q.where, " & "))
		b.WriteString(";\n")
	}
	if q.limit > 0 {
		b.WriteString("limit ")
		b.WriteString(strconv.Itoa(q.limit))
		b.WriteString(";\n")
	}
	return b.String()
}

func quote(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	return `"` + escaped + `"`
}
