package goquexpr

import (
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/bookshelf/fieldpath"
)

// Select turns collected fields into goqu selectables, aliasing each column whose outbound name differs.
func Select(fields fieldpath.Fields) []any {
	selectables := make([]any, 0, len(fields))
	for _, f := range fields {
		if f.Name == f.Column {
			selectables = append(selectables, goqu.C(f.Column))
			continue
		}

		selectables = append(selectables, goqu.C(f.Column).As(f.Name))
	}

	return selectables
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikeSide escapes the LIKE wildcards in keyword and wraps it in % on both sides.
// A blank keyword is returned as it is.
func LikeSide(keyword string) string {
	if strings.TrimSpace(keyword) == "" {
		return keyword
	}

	return "%" + likeEscaper.Replace(keyword) + "%"
}
