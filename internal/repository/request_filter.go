package repository

import (
	"fmt"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SortKey names a supported listing order. Keys mirror the sort options the
// gateway exposes in its navigation callbacks.
type SortKey string

const (
	SortAcceptedAsc  SortKey = "accepted_asc"
	SortCreatedAsc   SortKey = "created_asc"
	SortCreatedDesc  SortKey = "created_desc"
	SortArchivedDesc SortKey = "archived_desc"
	SortArchivedAsc  SortKey = "archived_asc"
	SortIDAsc        SortKey = "id_asc"
	SortIDDesc       SortKey = "id_desc"
)

var orderClauses = map[SortKey]string{
	SortAcceptedAsc:  "r.accepted_at ASC",
	SortCreatedAsc:   "r.created_at ASC",
	SortCreatedDesc:  "r.created_at DESC",
	SortArchivedDesc: "r.archived_at DESC",
	SortArchivedAsc:  "r.archived_at ASC",
	SortIDAsc:        "r.id ASC",
	SortIDDesc:       "r.id DESC",
}

// OrderClause maps a sort key to its ORDER BY expression, falling back to the
// provided default for unknown keys.
func OrderClause(sort, fallback SortKey) string {
	if clause, ok := orderClauses[sort]; ok {
		return clause
	}
	return orderClauses[fallback]
}

// RequestFilter captures listing parameters for requests.
type RequestFilter struct {
	Statuses        []domain.RequestStatus
	ExcludeStatuses []domain.RequestStatus
	RequesterID     *int64
	EngineerID      *int64
	Sort            SortKey
	DefaultSort     SortKey
	Limit           int
	Offset          int
}

// whereClause builds the WHERE expression and its positional arguments.
func (f RequestFilter) whereClause() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, status := range f.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("r.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(f.ExcludeStatuses) > 0 {
		placeholders := make([]string, len(f.ExcludeStatuses))
		for i, status := range f.ExcludeStatuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("r.status NOT IN (%s)", strings.Join(placeholders, ",")))
	}
	if f.RequesterID != nil {
		args = append(args, *f.RequesterID)
		clauses = append(clauses, fmt.Sprintf("r.requester_id=$%d", len(args)))
	}
	if f.EngineerID != nil {
		args = append(args, *f.EngineerID)
		clauses = append(clauses, fmt.Sprintf("r.engineer_id=$%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}
