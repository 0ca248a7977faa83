package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/models"
	"task-tracker/internal/repositories"
)

func TestParseListFilter_Defaults(t *testing.T) {
	filter, err := repositories.ParseListFilter("", "", "", "")
	require.NoError(t, err)

	assert.Empty(t, filter.Query)
	assert.Nil(t, filter.Status)
	assert.Equal(t, repositories.SortCreatedAt, filter.Sort)
	assert.Equal(t, repositories.OrderAsc, filter.Order)
}

func TestParseListFilter_TrimsQuery(t *testing.T) {
	filter, err := repositories.ParseListFilter("  report  ", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "report", filter.Query)
}

func TestParseListFilter_Status(t *testing.T) {
	filter, err := repositories.ParseListFilter("", "done", "", "")
	require.NoError(t, err)
	require.NotNil(t, filter.Status)
	assert.Equal(t, models.StatusDone, *filter.Status)
}

func TestParseListFilter_InvalidStatus(t *testing.T) {
	_, err := repositories.ParseListFilter("", "bogus", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todo in_progress done")
}

func TestParseListFilter_SortFallsBackToCreatedAt(t *testing.T) {
	// Unrecognized sort values, including near-misses, fall back to the
	// documented created_at default.
	for _, sort := range []string{"create_at", "title", "id", "CREATED_AT"} {
		filter, err := repositories.ParseListFilter("", "", sort, "")
		require.NoError(t, err)
		assert.Equal(t, repositories.SortCreatedAt, filter.Sort, "sort %q", sort)
	}

	filter, err := repositories.ParseListFilter("", "", "due_date", "")
	require.NoError(t, err)
	assert.Equal(t, repositories.SortDueDate, filter.Sort)
}

func TestParseListFilter_OrderCaseInsensitiveWithAscFallback(t *testing.T) {
	for _, order := range []string{"desc", "DESC", "Desc"} {
		filter, err := repositories.ParseListFilter("", "", "", order)
		require.NoError(t, err)
		assert.Equal(t, repositories.OrderDesc, filter.Order, "order %q", order)
	}

	for _, order := range []string{"", "asc", "ASC", "descending", "random"} {
		filter, err := repositories.ParseListFilter("", "", "", order)
		require.NoError(t, err)
		assert.Equal(t, repositories.OrderAsc, filter.Order, "order %q", order)
	}
}
