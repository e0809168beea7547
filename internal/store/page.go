package store

import "github.com/taskwell/taskwell-api/internal/domain"

// Pagination defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageParams carries pagination parameters for list queries.
// Page is 1-based.
type PageParams struct {
	Page int
	Size int
}

// Normalize clamps the parameters to sane values, applying defaults for
// zero or negative inputs.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized parameters.
func (p PageParams) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// TaskPage is one page of a task listing together with the total counts
// needed by clients to paginate.
type TaskPage struct {
	Items      []*domain.Task `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// NewTaskPage assembles a TaskPage from query results, deriving TotalPages
// from the total row count and page size.
func NewTaskPage(items []*domain.Task, params PageParams, total int64) *TaskPage {
	params = params.Normalize()
	if items == nil {
		items = []*domain.Task{}
	}

	pages := int(total) / params.Size
	if int(total)%params.Size != 0 {
		pages++
	}

	return &TaskPage{
		Items:      items,
		Page:       params.Page,
		Size:       params.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}

// TaskFilter narrows task listings by status and/or priority.
// Nil fields match everything.
type TaskFilter struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
}
