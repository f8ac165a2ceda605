package value

import (
	"net/url"
	"strconv"
)

const (
	ParamCategoryID    = "category_id"
	ParamSubcategoryID = "subcategory_id"
)

// SearchQuery selects providers offering a category and sub-category and
// speaking a language. Zero ids and an empty language are not constrained.
type SearchQuery struct {
	CategoryID    int64
	SubcategoryID int64
	Language      string
}

// ParseSearchQuery converts ids the lenient way: anything that is not an
// integer becomes 0.
func ParseSearchQuery(q url.Values) SearchQuery {
	return SearchQuery{
		CategoryID:    parseID(filled(q, ParamCategoryID)),
		SubcategoryID: parseID(filled(q, ParamSubcategoryID)),
		Language:      filled(q, ParamLanguage),
	}
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}

	return id
}
