package interview

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Vrinda2013/hireai-frontend/internal/models"
	"github.com/Vrinda2013/hireai-frontend/internal/notify"
)

// Configuration defaults restored by Reset.
const (
	DefaultComplexity    = 50
	DefaultQuestionCount = 10
)

// API is the slice of the dashboard API the question generator depends on.
type API interface {
	FetchRoleCatalog(ctx context.Context) ([]models.Role, error)
	GenerateQuestions(ctx context.Context, req models.GenerationRequest) ([]models.GeneratedQuestion, error)
}

// State is a point-in-time copy of the generator view state.
type State struct {
	Roles          []models.Role
	CatalogLoaded  bool
	CatalogError   string
	LoadingCatalog bool
	RoleID         string
	Skills         []string
	Complexity     int
	Count          int
	FilePath       string
	Questions      []models.GeneratedQuestion
	Expanded       map[int]bool
	Generating     bool
}

// Controller owns the interview question generator screen state: the role
// catalog, the generation configuration, and the generated question list.
// All exported methods are safe for concurrent use; LoadCatalog and Generate
// block and are meant to be called from a background goroutine.
type Controller struct {
	api      API
	validate *validator.Validate
	notify   notify.Func
	onChange func()

	mu             sync.Mutex
	roles          []models.Role
	catalogLoaded  bool
	catalogError   string
	loadingCatalog bool
	roleID         string
	skills         map[string]bool
	complexity     int
	count          int
	filePath       string
	questions      []models.GeneratedQuestion
	expanded       map[int]bool
	generating     bool
}

// NewController creates a question generator controller backed by client.
func NewController(client API) *Controller {
	return &Controller{
		api:        client,
		validate:   validator.New(),
		skills:     make(map[string]bool),
		complexity: DefaultComplexity,
		count:      DefaultQuestionCount,
		expanded:   make(map[int]bool),
	}
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

// LoadCatalog fetches the role/skill catalog. On failure the whole view
// enters a persistent error state until LoadCatalog is invoked again from
// the retry action.
func (c *Controller) LoadCatalog(ctx context.Context) {
	c.mu.Lock()
	if c.loadingCatalog {
		c.mu.Unlock()
		return
	}
	c.loadingCatalog = true
	c.catalogError = ""
	c.mu.Unlock()
	c.emitChange()

	roles, err := c.api.FetchRoleCatalog(ctx)

	c.mu.Lock()
	c.loadingCatalog = false
	if err != nil {
		c.catalogError = "Failed to load interview roles. Check the API connection and retry."
		c.catalogLoaded = false
		c.mu.Unlock()
		c.emitChange()
		return
	}
	c.roles = roles
	c.catalogLoaded = true
	c.mu.Unlock()
	c.emitChange()
}

// SelectRole sets the current role. Previously selected skills that do not
// belong to the new role's skill list are dropped.
func (c *Controller) SelectRole(roleID string) {
	c.mu.Lock()
	c.roleID = roleID

	available := make(map[string]bool)
	for _, r := range c.roles {
		if r.ID == roleID {
			for _, s := range r.Skills {
				available[s] = true
			}
			break
		}
	}
	for s := range c.skills {
		if !available[s] {
			delete(c.skills, s)
		}
	}
	c.mu.Unlock()
	c.emitChange()
}

// ToggleSkill adds the skill to the selection if absent, removes it if
// present.
func (c *Controller) ToggleSkill(skill string) {
	c.mu.Lock()
	if c.skills[skill] {
		delete(c.skills, skill)
	} else {
		c.skills[skill] = true
	}
	c.mu.Unlock()
	c.emitChange()
}

// SetComplexity sets the complexity value, clamped to [0, 100].
func (c *Controller) SetComplexity(v int) {
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}
	c.mu.Lock()
	c.complexity = v
	c.mu.Unlock()
	c.emitChange()
}

// SetQuestionCount sets the question count, clamped to [1, 20].
func (c *Controller) SetQuestionCount(n int) {
	if n < 1 {
		n = 1
	} else if n > 20 {
		n = 20
	}
	c.mu.Lock()
	c.count = n
	c.mu.Unlock()
	c.emitChange()
}

// AttachFile stores the path of a supporting document. Nothing is uploaded
// until Generate runs.
func (c *Controller) AttachFile(path string) {
	c.mu.Lock()
	c.filePath = path
	c.mu.Unlock()
	c.emitChange()
}

// Generate submits the current configuration and replaces the question list
// with the response. Without a selected role and at least one skill it
// reports a validation notification and never touches the network. While a
// call is in flight further Generate calls are ignored.
func (c *Controller) Generate(ctx context.Context) {
	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return
	}
	req := c.buildRequestLocked()

	if err := c.validate.Struct(req); err != nil {
		c.mu.Unlock()
		c.emitNotify(notify.Error, "Select a role and at least one skill before generating questions")
		return
	}

	c.generating = true
	c.mu.Unlock()
	c.emitChange()

	questions, err := c.api.GenerateQuestions(ctx, req)

	c.mu.Lock()
	c.generating = false
	if err != nil {
		c.mu.Unlock()
		c.emitChange()
		c.emitNotify(notify.Error, "Failed to generate questions. Please try again.")
		return
	}
	c.questions = questions
	c.expanded = make(map[int]bool)
	count := len(questions)
	c.mu.Unlock()
	c.emitChange()
	if count == 1 {
		c.emitNotify(notify.Success, "Generated 1 interview question")
	} else {
		c.emitNotify(notify.Success, fmt.Sprintf("Generated %d interview questions", count))
	}
}

// Reset returns the configuration to its initial state: no role, no skills,
// complexity 50, count 10, no file, no questions. The catalog is kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.roleID = ""
	c.skills = make(map[string]bool)
	c.complexity = DefaultComplexity
	c.count = DefaultQuestionCount
	c.filePath = ""
	c.questions = nil
	c.expanded = make(map[int]bool)
	c.mu.Unlock()
	c.emitChange()
}

// ToggleQuestionExpansion toggles whether the question at index shows its
// expected answer.
func (c *Controller) ToggleQuestionExpansion(index int) {
	c.mu.Lock()
	if c.expanded[index] {
		delete(c.expanded, index)
	} else {
		c.expanded[index] = true
	}
	c.mu.Unlock()
	c.emitChange()
}

// SelectedRole returns the catalog entry for the current role, if any.
func (c *Controller) SelectedRole() (models.Role, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.roles {
		if r.ID == c.roleID {
			return r, true
		}
	}
	return models.Role{}, false
}

// Snapshot returns a copy of the current generator state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	roles := make([]models.Role, len(c.roles))
	copy(roles, c.roles)

	questions := make([]models.GeneratedQuestion, len(c.questions))
	copy(questions, c.questions)

	expanded := make(map[int]bool, len(c.expanded))
	for i := range c.expanded {
		expanded[i] = true
	}

	return State{
		Roles:          roles,
		CatalogLoaded:  c.catalogLoaded,
		CatalogError:   c.catalogError,
		LoadingCatalog: c.loadingCatalog,
		RoleID:         c.roleID,
		Skills:         c.selectedSkillsLocked(),
		Complexity:     c.complexity,
		Count:          c.count,
		FilePath:       c.filePath,
		Questions:      questions,
		Expanded:       expanded,
		Generating:     c.generating,
	}
}

// buildRequestLocked assembles the generation request from the current
// configuration. Caller holds the mutex.
func (c *Controller) buildRequestLocked() models.GenerationRequest {
	roleName := c.roleID
	for _, r := range c.roles {
		if r.ID == c.roleID {
			roleName = r.Role
			break
		}
	}
	return models.GenerationRequest{
		Role:       roleName,
		Skills:     c.selectedSkillsLocked(),
		Complexity: c.complexity,
		Count:      c.count,
		FilePath:   c.filePath,
	}
}

// selectedSkillsLocked returns the selected skills in stable order.
// Caller holds the mutex.
func (c *Controller) selectedSkillsLocked() []string {
	skills := make([]string, 0, len(c.skills))
	for s := range c.skills {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
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
