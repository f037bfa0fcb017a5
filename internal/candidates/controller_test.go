package candidates

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vrinda2013/hireai-frontend/internal/api"
	"github.com/Vrinda2013/hireai-frontend/internal/models"
	"github.com/Vrinda2013/hireai-frontend/internal/notify"
)

// fakeAPI is a scriptable in-memory implementation of the API interface.
type fakeAPI struct {
	mu          sync.Mutex
	listFn      func(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error)
	searchFn    func(ctx context.Context, email string) ([]models.Candidate, error)
	deleteFn    func(ctx context.Context, id string) error
	listCalls   int
	searchCalls int
	deleteCalls int
}

func (f *fakeAPI) ListCandidates(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	return fn(ctx, page, limit)
}

func (f *fakeAPI) SearchCandidates(ctx context.Context, email string) ([]models.Candidate, error) {
	f.mu.Lock()
	f.searchCalls++
	fn := f.searchFn
	f.mu.Unlock()
	return fn(ctx, email)
}

func (f *fakeAPI) DeleteCandidate(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deleteCalls++
	fn := f.deleteFn
	f.mu.Unlock()
	return fn(ctx, id)
}

func (f *fakeAPI) calls() (list, search, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.searchCalls, f.deleteCalls
}

// pagedFake serves the given candidate set in pages of the requested limit.
func pagedFake(all []models.Candidate) *fakeAPI {
	f := &fakeAPI{}
	f.listFn = func(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error) {
		pages := (len(all) + limit - 1) / limit
		start := (page - 1) * limit
		end := start + limit
		if start > len(all) {
			start = len(all)
		}
		if end > len(all) {
			end = len(all)
		}
		return all[start:end], models.Pagination{Page: page, Pages: pages}, nil
	}
	f.searchFn = func(ctx context.Context, email string) ([]models.Candidate, error) {
		return nil, nil
	}
	f.deleteFn = func(ctx context.Context, id string) error {
		return nil
	}
	return f
}

func makeCandidates(n int) []models.Candidate {
	out := make([]models.Candidate, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Candidate{
			ID:       fmt.Sprintf("id-%d", i),
			FullName: fmt.Sprintf("Candidate %d", i),
			Email:    fmt.Sprintf("c%d@example.com", i),
			Status:   models.StatusInProgress,
		})
	}
	return out
}

// notifications records controller notifications for assertions.
type notifications struct {
	mu       sync.Mutex
	messages []string
	kinds    []notify.Kind
}

func (n *notifications) fn() notify.Func {
	return func(kind notify.Kind, message string) {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.kinds = append(n.kinds, kind)
		n.messages = append(n.messages, message)
	}
}

func (n *notifications) last() (notify.Kind, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return notify.Info, ""
	}
	return n.kinds[len(n.kinds)-1], n.messages[len(n.messages)-1]
}

func TestLoadPageSuccess(t *testing.T) {
	fake := pagedFake(makeCandidates(12))
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)

	ctrl.LoadPage(context.Background(), 1)

	state := ctrl.Snapshot()
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, 3, state.TotalPages)
	assert.False(t, state.SearchMode)
	assert.False(t, state.Loading)
	require.Len(t, state.Candidates, 5)

	ctrl.LoadPage(context.Background(), 2)

	state = ctrl.Snapshot()
	assert.Equal(t, 2, state.Page)
	require.Len(t, state.Candidates, 5)
	assert.Equal(t, "Candidate 6", state.Candidates[0].FullName)
	assert.Equal(t, "Candidate 10", state.Candidates[4].FullName)
}

func TestLoadPageNoOps(t *testing.T) {
	fake := pagedFake(makeCandidates(12))
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)

	ctrl.LoadPage(context.Background(), 1)
	before := ctrl.Snapshot()
	listCalls, _, _ := fake.calls()
	require.Equal(t, 1, listCalls)

	// Out of range below, out of range above, and the current page.
	ctrl.LoadPage(context.Background(), 0)
	ctrl.LoadPage(context.Background(), 4)
	ctrl.LoadPage(context.Background(), 1)

	listCalls, _, _ = fake.calls()
	assert.Equal(t, 1, listCalls, "no network call may be issued for a no-op")
	assert.Equal(t, before, ctrl.Snapshot())
}

func TestLoadPageFailureKeepsPriorData(t *testing.T) {
	fake := pagedFake(makeCandidates(12))
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)
	notes := &notifications{}
	ctrl.SetNotifyFunc(notes.fn())

	ctrl.LoadPage(context.Background(), 1)
	before := ctrl.Snapshot()

	fake.mu.Lock()
	fake.listFn = func(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error) {
		return nil, models.Pagination{}, fmt.Errorf("connection refused")
	}
	fake.mu.Unlock()

	ctrl.LoadPage(context.Background(), 2)

	state := ctrl.Snapshot()
	assert.False(t, state.Loading, "loading flag must clear on failure")
	assert.NotEmpty(t, state.LoadError)
	assert.Equal(t, before.Candidates, state.Candidates, "prior data must be untouched")
	assert.Equal(t, before.Page, state.Page)

	kind, _ := notes.last()
	assert.Equal(t, notify.Error, kind)
}

func TestRetryAfterFailure(t *testing.T) {
	all := makeCandidates(12)
	fake := pagedFake(all)
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)

	ctrl.LoadPage(context.Background(), 1)

	failing := true
	good := fake.listFn
	fake.mu.Lock()
	fake.listFn = func(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error) {
		if failing {
			return nil, models.Pagination{}, fmt.Errorf("connection refused")
		}
		return good(ctx, page, limit)
	}
	fake.mu.Unlock()

	ctrl.LoadPage(context.Background(), 3)
	require.NotEmpty(t, ctrl.Snapshot().LoadError)

	failing = false
	ctrl.Retry(context.Background())

	state := ctrl.Snapshot()
	assert.Empty(t, state.LoadError)
	assert.Equal(t, 3, state.Page, "retry must re-issue the failed page fetch")
	assert.Equal(t, "Candidate 11", state.Candidates[0].FullName)
}

func TestSearchEmptyFallsBackToFirstPage(t *testing.T) {
	fake := pagedFake(makeCandidates(12))
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)

	ctrl.LoadPage(context.Background(), 2)
	ctrl.Search(context.Background(), "   ")

	state := ctrl.Snapshot()
	assert.False(t, state.SearchMode)
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, "Candidate 1", state.Candidates[0].FullName)

	_, searchCalls, _ := fake.calls()
	assert.Zero(t, searchCalls, "empty query must not hit the search endpoint")
}

func TestSearchSuccess(t *testing.T) {
	fake := pagedFake(makeCandidates(12))
	match := models.Candidate{ID: "id-7", FullName: "Candidate 7", Email: "c7@example.com"}
	fake.searchFn = func(ctx context.Context, email string) ([]models.Candidate, error) {
		return []models.Candidate{match}, nil
	}
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)

	ctrl.LoadPage(context.Background(), 1)
	ctrl.Search(context.Background(), "c7@example.com")

	state := ctrl.Snapshot()
	assert.True(t, state.SearchMode)
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, 1, state.TotalPages)
	require.Len(t, state.Candidates, 1)
	assert.Equal(t, "id-7", state.Candidates[0].ID)
}

func TestClearSearch(t *testing.T) {
	fake := pagedFake(makeCandidates(12))
	fake.searchFn = func(ctx context.Context, email string) ([]models.Candidate, error) {
		return []models.Candidate{{ID: "id-7"}}, nil
	}
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)

	ctrl.LoadPage(context.Background(), 1)
	ctrl.Search(context.Background(), "c7@example.com")
	require.True(t, ctrl.Snapshot().SearchMode)

	ctrl.ClearSearch(context.Background())

	state := ctrl.Snapshot()
	assert.False(t, state.SearchMode)
	assert.Empty(t, state.Query)
	assert.Equal(t, 1, state.Page)
	assert.Len(t, state.Candidates, 5)
}

func TestChangeStatusOnlyAffectsMatchingRecord(t *testing.T) {
	fake := pagedFake(makeCandidates(5))
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)
	notes := &notifications{}
	ctrl.SetNotifyFunc(notes.fn())

	ctrl.LoadPage(context.Background(), 1)
	ctrl.ChangeStatus("id-3", models.StatusAccepted)

	state := ctrl.Snapshot()
	for _, cand := range state.Candidates {
		if cand.ID == "id-3" {
			assert.Equal(t, models.StatusAccepted, cand.Status)
		} else {
			assert.Equal(t, models.StatusInProgress, cand.Status)
		}
	}

	kind, msg := notes.last()
	assert.Equal(t, notify.Success, kind)
	assert.Contains(t, msg, "accepted")
}

func TestChangeStatusRejectsUnknownValue(t *testing.T) {
	fake := pagedFake(makeCandidates(3))
	ctrl := NewController(fake)
	ctrl.LoadPage(context.Background(), 1)

	ctrl.ChangeStatus("id-1", "archived")

	state := ctrl.Snapshot()
	assert.Equal(t, models.StatusInProgress, state.Candidates[0].Status)
}

func TestDeleteSuccessRemovesExactlyOne(t *testing.T) {
	fake := pagedFake(makeCandidates(5))
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)
	notes := &notifications{}
	ctrl.SetNotifyFunc(notes.fn())

	ctrl.LoadPage(context.Background(), 1)
	ctrl.Delete(context.Background(), "id-2")

	state := ctrl.Snapshot()
	require.Len(t, state.Candidates, 4)
	for _, cand := range state.Candidates {
		assert.NotEqual(t, "id-2", cand.ID)
	}
	assert.False(t, state.Deleting["id-2"], "in-flight flag must clear")

	kind, _ := notes.last()
	assert.Equal(t, notify.Success, kind)
}

func TestDeleteFailureKeepsSequence(t *testing.T) {
	fake := pagedFake(makeCandidates(5))
	fake.deleteFn = func(ctx context.Context, id string) error {
		return &api.Error{StatusCode: 404, Message: "candidate not found"}
	}
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)
	notes := &notifications{}
	ctrl.SetNotifyFunc(notes.fn())

	ctrl.LoadPage(context.Background(), 1)
	before := ctrl.Snapshot()

	ctrl.Delete(context.Background(), "id-2")

	state := ctrl.Snapshot()
	assert.Equal(t, before.Candidates, state.Candidates, "failed delete must leave the sequence unchanged")
	assert.False(t, state.Deleting["id-2"])

	kind, msg := notes.last()
	assert.Equal(t, notify.Error, kind)
	assert.Equal(t, "candidate not found", msg, "server-provided message must surface")
}

func TestDeleteIsGuardedPerRecord(t *testing.T) {
	fake := pagedFake(makeCandidates(5))
	started := make(chan string, 2)
	release := make(chan struct{})
	fake.deleteFn = func(ctx context.Context, id string) error {
		started <- id
		<-release
		return nil
	}
	ctrl := NewController(fake)
	ctrl.SetPageSize(5)
	ctrl.LoadPage(context.Background(), 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ctrl.Delete(context.Background(), "id-1")
	}()
	<-started
	require.True(t, ctrl.Snapshot().Deleting["id-1"])

	// A second delete of the same record is ignored while one is in flight.
	ctrl.Delete(context.Background(), "id-1")
	_, _, deleteCalls := fake.calls()
	assert.Equal(t, 1, deleteCalls)

	// A delete of a different record proceeds independently.
	go func() {
		defer wg.Done()
		ctrl.Delete(context.Background(), "id-4")
	}()
	<-started
	_, _, deleteCalls = fake.calls()
	assert.Equal(t, 2, deleteCalls)

	close(release)
	wg.Wait()

	state := ctrl.Snapshot()
	assert.Len(t, state.Candidates, 3)
	assert.Empty(t, state.Deleting)
}

func TestStaleListResponseIsDiscarded(t *testing.T) {
	all := makeCandidates(12)
	fake := pagedFake(all)

	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	good := fake.listFn
	fake.mu.Lock()
	fake.listFn = func(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error) {
		if page == 2 {
			close(slowStarted)
			<-slowRelease
		}
		return good(ctx, page, limit)
	}
	fake.mu.Unlock()
	fake.searchFn = func(ctx context.Context, email string) ([]models.Candidate, error) {
		return []models.Candidate{{ID: "id-9", FullName: "Candidate 9"}}, nil
	}

	ctrl := NewController(fake)
	ctrl.SetPageSize(5)
	ctrl.LoadPage(context.Background(), 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.LoadPage(context.Background(), 2)
	}()
	<-slowStarted

	// The search is issued after the page fetch and must win.
	ctrl.Search(context.Background(), "c9@example.com")
	require.True(t, ctrl.Snapshot().SearchMode)

	close(slowRelease)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("slow page load did not finish")
	}

	state := ctrl.Snapshot()
	assert.True(t, state.SearchMode, "stale page response must not overwrite the search result")
	require.Len(t, state.Candidates, 1)
	assert.Equal(t, "id-9", state.Candidates[0].ID)
}

func TestVisibleIsDeterministic(t *testing.T) {
	fake := pagedFake(makeCandidates(8))
	ctrl := NewController(fake)
	ctrl.SetPageSize(10)
	ctrl.LoadPage(context.Background(), 1)
	ctrl.SetQuery("candidate 3")

	first := ctrl.Visible()
	second := ctrl.Visible()
	assert.Equal(t, first, second, "identical inputs must yield identical results")
	require.Len(t, first, 1)
	assert.Equal(t, "id-3", first[0].ID)
}
