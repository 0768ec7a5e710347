package repositories

import "gorm.io/gorm"

// filterByPersonName applies the tokenized name search to a query that has
// the authorized_persons table joined in. One token prefix-matches either
// the firstname or the surname; two tokens prefix-match the full name in
// either order. Callers must reject longer expressions before getting here.
func filterByPersonName(q *gorm.DB, tokens []string) *gorm.DB {
	switch len(tokens) {
	case 1:
		pattern := tokens[0] + "%"
		return q.Where(
			"authorized_persons.firstname LIKE ? OR authorized_persons.surname LIKE ?",
			pattern, pattern,
		)
	case 2:
		first, second := tokens[0]+"%", tokens[1]+"%"
		return q.Where(
			"(authorized_persons.firstname LIKE ? AND authorized_persons.surname LIKE ?)"+
				" OR (authorized_persons.firstname LIKE ? AND authorized_persons.surname LIKE ?)",
			first, second, second, first,
		)
	default:
		return q
	}
}
