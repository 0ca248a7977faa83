package repositories

import (
	"strings"

	"gorm.io/gorm"

	"task-tracker/internal/models"
)

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortDueDate   SortField = "due_date"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListFilter is a pure description of a task listing: free-text search,
// optional status filter, sort column and direction. There is no
// limit/offset; the full matching set is always returned.
type ListFilter struct {
	Query  string
	Status *models.Status
	Sort   SortField
	Order  SortOrder
}

// ParseListFilter turns the raw q/status/sort/order request parameters into
// a filter. An unparseable status is an error (surfaced as a client error);
// unrecognized sort values fall back to the created_at default and
// unrecognized order values fall back to ascending.
func ParseListFilter(q, status, sortBy, order string) (ListFilter, error) {
	f := ListFilter{
		Query: strings.TrimSpace(q),
		Sort:  SortCreatedAt,
		Order: OrderAsc,
	}

	if s := strings.TrimSpace(status); s != "" {
		parsed, err := models.ParseStatus(s)
		if err != nil {
			return ListFilter{}, err
		}
		f.Status = &parsed
	}

	if strings.TrimSpace(sortBy) == string(SortDueDate) {
		f.Sort = SortDueDate
	}
	if strings.EqualFold(strings.TrimSpace(order), string(OrderDesc)) {
		f.Order = OrderDesc
	}

	return f, nil
}

// apply composes the filter onto a tasks query. The free-text match is a
// case-insensitive substring match on title or description. When sorting by
// due date, rows without one always sort last in either direction.
func (f ListFilter) apply(tx *gorm.DB) *gorm.DB {
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.Status != nil {
		tx = tx.Where("status = ?", *f.Status)
	}

	dir := "ASC"
	if f.Order == OrderDesc {
		dir = "DESC"
	}
	if f.Sort == SortDueDate {
		return tx.Order("due_date IS NULL").Order("due_date " + dir)
	}
	return tx.Order("created_at " + dir)
}
