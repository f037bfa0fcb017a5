package candidates

import (
	"strings"

	"github.com/Vrinda2013/hireai-frontend/internal/models"
)

// VisibleSubset derives the filtered candidate set shown on screen. It is a
// pure function of its inputs and is recomputed on every render.
//
// A record passes text filtering when search-mode is on (the server already
// filtered) or when the query is a case-insensitive substring of the name,
// email, phone, location, current title, applied role, or any skill. A record
// passes status filtering when the filter is "all" or matches its status.
func VisibleSubset(candidates []models.Candidate, query, statusFilter string, searchMode bool) []models.Candidate {
	q := strings.ToLower(strings.TrimSpace(query))

	visible := make([]models.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if !matchesText(cand, q, searchMode) {
			continue
		}
		if statusFilter != FilterAll && statusFilter != "" && models.Status(statusFilter) != cand.Status {
			continue
		}
		visible = append(visible, cand)
	}
	return visible
}

func matchesText(cand models.Candidate, q string, searchMode bool) bool {
	if searchMode || q == "" {
		return true
	}

	fields := []string{
		cand.FullName,
		cand.Email,
		cand.Phone,
		cand.Location,
		cand.CurrentTitle,
		cand.RoleApplied,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	for _, skill := range cand.TechnicalSkills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	for _, skill := range cand.SoftSkills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

// PageButton is one numbered pagination control.
type PageButton struct {
	Page    int
	Current bool
}

// PaginationView describes the pagination controls for the current state.
type PaginationView struct {
	Visible     bool
	Buttons     []PageButton
	PrevEnabled bool
	NextEnabled bool
}

// BuildPagination derives the pagination controls: one button per page plus
// Previous/Next enablement. The controls are hidden entirely in search-mode.
func BuildPagination(page, totalPages int, loading, searchMode bool) PaginationView {
	if searchMode || totalPages < 1 {
		return PaginationView{}
	}

	buttons := make([]PageButton, 0, totalPages)
	for p := 1; p <= totalPages; p++ {
		buttons = append(buttons, PageButton{Page: p, Current: p == page})
	}

	return PaginationView{
		Visible:     true,
		Buttons:     buttons,
		PrevEnabled: page > 1 && !loading,
		NextEnabled: page < totalPages && !loading,
	}
}
