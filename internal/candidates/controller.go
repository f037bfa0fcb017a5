package candidates

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Vrinda2013/hireai-frontend/internal/api"
	"github.com/Vrinda2013/hireai-frontend/internal/models"
	"github.com/Vrinda2013/hireai-frontend/internal/notify"
)

// FilterAll is the status-filter value that lets every status through.
const FilterAll = "all"

// DefaultPageSize is the fixed page size requested from the listing endpoint.
const DefaultPageSize = 10

// API is the slice of the dashboard API the candidate list depends on.
type API interface {
	ListCandidates(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error)
	SearchCandidates(ctx context.Context, email string) ([]models.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error
}

// ListState is a point-in-time copy of the candidate list view state.
type ListState struct {
	Candidates   []models.Candidate
	Page         int
	TotalPages   int
	SearchMode   bool
	Query        string
	StatusFilter string
	Loading      bool
	LoadError    string
	Deleting     map[string]bool
}

// retryTarget remembers what a failed fetch was trying to do so the Retry
// action can re-issue it.
type retryTarget struct {
	isSearch bool
	page     int
	query    string
}

// Controller owns the candidate listing screen state: the current page or
// search result set, the status filter, and per-record delete tracking.
// All exported methods are safe for concurrent use; the fetching methods
// block and are meant to be called from a background goroutine.
type Controller struct {
	api      API
	pageSize int
	notify   notify.Func
	onChange func()

	mu           sync.Mutex
	candidates   []models.Candidate
	page         int
	totalPages   int
	searchMode   bool
	query        string
	statusFilter string
	loading      bool
	loadError    string
	deleting     map[string]bool
	retry        retryTarget

	// fetchSeq is incremented for every fetch issued. A fetch only applies
	// its response while its token is still the latest, so a slow page load
	// can never overwrite the result of a later search.
	fetchSeq uint64
}

// NewController creates a candidate list controller backed by client.
func NewController(client API) *Controller {
	return &Controller{
		api:          client,
		pageSize:     DefaultPageSize,
		statusFilter: FilterAll,
		deleting:     make(map[string]bool),
	}
}

// SetPageSize overrides the fixed page size. Zero or negative values are
// ignored.
func (c *Controller) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.pageSize = n
	c.mu.Unlock()
}

// SetNotifyFunc sets the callback for transient notifications.
func (c *Controller) SetNotifyFunc(fn notify.Func) {
	c.mu.Lock()
	c.notify = fn
	c.mu.Unlock()
}

// SetOnChange sets the callback invoked after every state change.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// LoadPage fetches page n from the listing endpoint. Requests outside
// [1, totalPages] and requests for the page already shown are no-ops.
func (c *Controller) LoadPage(ctx context.Context, n int) {
	c.mu.Lock()
	if n < 1 || n == c.page || (c.totalPages > 0 && n > c.totalPages) {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.fetchPage(ctx, n)
}

// Search submits the trimmed query to the search endpoint and replaces the
// listing with the result set. An empty query falls back to page 1 of the
// plain listing and leaves search-mode off.
func (c *Controller) Search(ctx context.Context, query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		c.ClearSearch(ctx)
		return
	}

	c.mu.Lock()
	c.fetchSeq++
	token := c.fetchSeq
	c.loading = true
	c.loadError = ""
	c.mu.Unlock()
	c.emitChange()

	data, err := c.api.SearchCandidates(ctx, q)

	c.mu.Lock()
	if token != c.fetchSeq {
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		c.loadError = userMessage(err, "Search failed. Please try again.")
		c.retry = retryTarget{isSearch: true, query: q}
		c.mu.Unlock()
		c.emitChange()
		c.emitNotify(notify.Error, c.loadErrorCopy())
		return
	}

	c.candidates = data
	c.page = 1
	c.totalPages = 1
	c.searchMode = true
	c.query = query
	c.retry = retryTarget{}
	c.mu.Unlock()
	c.emitChange()
}

// ClearSearch drops the query and search-mode and reloads page 1.
func (c *Controller) ClearSearch(ctx context.Context) {
	c.mu.Lock()
	c.query = ""
	c.searchMode = false
	c.mu.Unlock()
	c.emitChange()

	c.fetchPage(ctx, 1)
}

// Retry re-issues the fetch that last failed, or reloads the current page
// when nothing is recorded.
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	target := c.retry
	c.mu.Unlock()

	if target.isSearch {
		c.Search(ctx, target.query)
		return
	}
	page := target.page
	if page < 1 {
		page = 1
	}
	c.fetchPage(ctx, page)
}

// SetQuery updates the live text filter applied to the visible subset.
// No network call is made.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
	c.emitChange()
}

// SetStatusFilter updates the status filter applied to the visible subset.
// No network call is made. Unknown values are ignored.
func (c *Controller) SetStatusFilter(filter string) {
	if filter != FilterAll && !models.IsValidStatus(models.Status(filter)) {
		return
	}
	c.mu.Lock()
	c.statusFilter = filter
	c.mu.Unlock()
	c.emitChange()
}

// ChangeStatus patches the matching record's status in place. The change is
// a session-local annotation; no server call is made.
func (c *Controller) ChangeStatus(id string, status models.Status) {
	if !models.IsValidStatus(status) {
		c.emitNotify(notify.Error, "Unknown candidate status")
		return
	}

	c.mu.Lock()
	changed := false
	for i := range c.candidates {
		if c.candidates[i].ID == id {
			c.candidates[i].Status = status
			changed = true
			break
		}
	}
	c.mu.Unlock()

	if changed {
		c.emitChange()
		c.emitNotify(notify.Success, "Candidate status updated to "+string(status))
	}
}

// Delete removes the candidate with the given id. While the call is in
// flight the record's delete action stays disabled; deletes of other records
// proceed independently.
func (c *Controller) Delete(ctx context.Context, id string) {
	c.mu.Lock()
	if c.deleting[id] {
		c.mu.Unlock()
		return
	}
	c.deleting[id] = true
	c.mu.Unlock()
	c.emitChange()

	err := c.api.DeleteCandidate(ctx, id)

	c.mu.Lock()
	delete(c.deleting, id)
	if err != nil {
		c.mu.Unlock()
		c.emitChange()
		c.emitNotify(notify.Error, userMessage(err, "Failed to delete candidate"))
		return
	}

	kept := c.candidates[:0]
	for _, cand := range c.candidates {
		if cand.ID != id {
			kept = append(kept, cand)
		}
	}
	c.candidates = kept
	c.mu.Unlock()
	c.emitChange()
	c.emitNotify(notify.Success, "Candidate deleted")
}

// Snapshot returns a copy of the current list state for rendering.
func (c *Controller) Snapshot() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidates := make([]models.Candidate, len(c.candidates))
	copy(candidates, c.candidates)

	deleting := make(map[string]bool, len(c.deleting))
	for id := range c.deleting {
		deleting[id] = true
	}

	return ListState{
		Candidates:   candidates,
		Page:         c.page,
		TotalPages:   c.totalPages,
		SearchMode:   c.searchMode,
		Query:        c.query,
		StatusFilter: c.statusFilter,
		Loading:      c.loading,
		LoadError:    c.loadError,
		Deleting:     deleting,
	}
}

// Visible returns the derived visible subset of the current state.
func (c *Controller) Visible() []models.Candidate {
	s := c.Snapshot()
	return VisibleSubset(s.Candidates, s.Query, s.StatusFilter, s.SearchMode)
}

// fetchPage issues an unconditional page fetch. On success it replaces the
// candidate sequence and leaves search-mode off; on failure it records a
// retryable error and keeps the prior data.
func (c *Controller) fetchPage(ctx context.Context, n int) {
	c.mu.Lock()
	c.fetchSeq++
	token := c.fetchSeq
	c.loading = true
	c.loadError = ""
	limit := c.pageSize
	c.mu.Unlock()
	c.emitChange()

	data, pagination, err := c.api.ListCandidates(ctx, n, limit)

	c.mu.Lock()
	if token != c.fetchSeq {
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		c.loadError = userMessage(err, "Failed to load candidates. Please try again.")
		c.retry = retryTarget{page: n}
		c.mu.Unlock()
		c.emitChange()
		c.emitNotify(notify.Error, c.loadErrorCopy())
		return
	}

	c.candidates = data
	c.page = pagination.Page
	if c.page == 0 {
		c.page = n
	}
	c.totalPages = pagination.Pages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.searchMode = false
	c.retry = retryTarget{}
	c.mu.Unlock()
	c.emitChange()
}

func (c *Controller) loadErrorCopy() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadError
}

func (c *Controller) emitChange() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (c *Controller) emitNotify(kind notify.Kind, message string) {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn(kind, message)
	}
}

// userMessage prefers a server-supplied message over the generic fallback.
func userMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
