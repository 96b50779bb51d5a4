package domain

import (
	"strings"

	"github.com/mediatekformation/internal/constants"
)

// MatchMode says how a search value is compared against a column
type MatchMode int

const (
	MatchContains MatchMode = iota + 1
	MatchExact
)

// ListingColumn is one entry of the closed set of columns the sort and search
// routes may touch. Column and Table are SQL identifiers and never come from
// the request.
type ListingColumn struct {
	Table    string // Table alias as it appears in the URL, "" for formation
	Field    string // Field name as it appears in the URL
	Column   string // Qualified SQL column
	Sortable bool
	Search   MatchMode // Zero means the column is not searchable
}

var listingColumns = []ListingColumn{
	{Table: constants.TableNone, Field: constants.FieldTitle, Column: "f.title", Sortable: true, Search: MatchContains},
	{Table: constants.TableNone, Field: constants.FieldPublishedAt, Column: "f.published_at", Sortable: true},
	{Table: constants.TablePlaylist, Field: constants.FieldName, Column: "p.name", Sortable: true, Search: MatchContains},
	{Table: constants.TableCategories, Field: constants.FieldName, Column: "c.name", Search: MatchContains},
	{Table: constants.TableCategories, Field: constants.FieldID, Column: "c.id", Search: MatchExact},
}

func lookupColumn(table, field string) (ListingColumn, bool) {
	for _, col := range listingColumns {
		if col.Table == table && col.Field == field {
			return col, true
		}
	}
	return ListingColumn{}, false
}

func knownTable(table string) bool {
	for _, col := range listingColumns {
		if col.Table == table {
			return true
		}
	}
	return false
}

// SortSpec is a validated sort request
type SortSpec struct {
	Column    ListingColumn
	Direction string
}

// SearchSpec is a validated search request
type SearchSpec struct {
	Column ListingColumn
	Value  string
}

// ParseSortDirection accepts ASC or DESC in any case
func ParseSortDirection(order string) (string, error) {
	switch strings.ToUpper(order) {
	case constants.SortAsc:
		return constants.SortAsc, nil
	case constants.SortDesc:
		return constants.SortDesc, nil
	}
	return "", WrapInvalidListingParameter("sort order", order)
}

// ParseSort validates the field, direction and optional table of a sort route
func ParseSort(field, order, table string) (SortSpec, error) {
	dir, err := ParseSortDirection(order)
	if err != nil {
		return SortSpec{}, err
	}
	if !knownTable(table) {
		return SortSpec{}, WrapInvalidListingParameter("table", table)
	}

	col, ok := lookupColumn(table, field)
	if !ok || !col.Sortable {
		return SortSpec{}, WrapInvalidListingParameter("sort field", field)
	}

	return SortSpec{Column: col, Direction: dir}, nil
}

// ParseSearch validates the field and optional table of a search route. The
// value is kept as typed, minus surrounding whitespace.
func ParseSearch(field, value, table string) (SearchSpec, error) {
	if !knownTable(table) {
		return SearchSpec{}, WrapInvalidListingParameter("table", table)
	}

	col, ok := lookupColumn(table, field)
	if !ok || col.Search == 0 {
		return SearchSpec{}, WrapInvalidListingParameter("search field", field)
	}

	return SearchSpec{Column: col, Value: strings.TrimSpace(value)}, nil
}

// DefaultSort is the ordering of the plain admin listing
func DefaultSort() SortSpec {
	col, _ := lookupColumn(constants.TableNone, constants.FieldTitle)
	return SortSpec{Column: col, Direction: constants.SortAsc}
}
