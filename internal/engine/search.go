package engine

import (
	"fmt"
	"strings"

	"github.com/lazypower/rolodex/internal/store"
)

// Search looks contacts up by free text. The query is split on whitespace
// into tokens that must all match (implicit AND) across name, company,
// notes, interests, and job title, via the FTS5 index. Blank input returns
// no results and no error. Results are relevance-ranked and capped.
func (e *Engine) Search(query string) ([]store.Contact, error) {
	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return nil, nil
	}

	contacts, err := e.DB.SearchContacts(ftsQuery, e.Opts.searchLimit())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return contacts, nil
}

// sanitizeFTS quotes each whitespace-separated token so FTS5 treats its
// characters as literals. Tokens joined by spaces are an implicit AND.
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.ReplaceAll(w, `"`, `""`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
