package gui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Vrinda2013/hireai-frontend/internal/api"
	"github.com/Vrinda2013/hireai-frontend/internal/candidates"
	"github.com/Vrinda2013/hireai-frontend/internal/config"
	"github.com/Vrinda2013/hireai-frontend/internal/export"
	"github.com/Vrinda2013/hireai-frontend/internal/interview"
	"github.com/Vrinda2013/hireai-frontend/internal/models"
	"github.com/Vrinda2013/hireai-frontend/internal/notify"
)

// App represents the main GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	config     *config.Config
	ctx        context.Context

	candidateCtrl *candidates.Controller
	interviewCtrl *interview.Controller

	// Candidates tab
	searchEntry    *widget.Entry
	searchBtn      *widget.Button
	clearSearchBtn *widget.Button
	statusFilter   *widget.Select
	candidateTable *widget.Table
	countLabel     *widget.Label
	loadingBar     *widget.ProgressBarInfinite
	listErrorLabel *widget.Label
	listRetryBtn   *widget.Button
	listErrorBox   *fyne.Container
	paginationBox  *fyne.Container
	exportBtn      *widget.Button
	visibleRows    []models.Candidate

	// Interview tab
	catalogErrorLabel *widget.Label
	catalogRetryBtn   *widget.Button
	catalogErrorBox   *fyne.Container
	generatorBox      *fyne.Container
	roleSelect        *widget.Select
	skillsBox         *fyne.Container
	complexitySlider  *widget.Slider
	complexityLabel   *widget.Label
	countSlider       *widget.Slider
	questionCountLbl  *widget.Label
	fileLabel         *widget.Label
	generateBtn       *widget.Button
	resetBtn          *widget.Button
	questionsBox      *fyne.Container

	// updating suppresses widget-change handlers while a refresh writes
	// values back into widgets.
	updating bool
}

// NewApp creates the dashboard application and wires its controllers.
func NewApp() *App {
	a := app.New()
	w := a.NewWindow("HireAI Dashboard")
	w.Resize(fyne.NewSize(1100, 720))

	guiApp := &App{
		fyneApp:    a,
		mainWindow: w,
		ctx:        context.Background(),
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		cfg = config.DefaultConfig()
	}
	guiApp.config = cfg

	client := api.NewClient(cfg.APIBaseURL)

	guiApp.candidateCtrl = candidates.NewController(client)
	guiApp.candidateCtrl.SetPageSize(cfg.PageSize)
	guiApp.candidateCtrl.SetNotifyFunc(guiApp.showNotification)
	guiApp.candidateCtrl.SetOnChange(func() {
		fyne.Do(guiApp.refreshCandidates)
	})

	guiApp.interviewCtrl = interview.NewController(client)
	guiApp.interviewCtrl.SetNotifyFunc(guiApp.showNotification)
	guiApp.interviewCtrl.SetOnChange(func() {
		fyne.Do(guiApp.refreshInterview)
	})

	guiApp.setupUI()

	// Initial data loads
	go guiApp.candidateCtrl.LoadPage(guiApp.ctx, 1)
	go guiApp.interviewCtrl.LoadCatalog(guiApp.ctx)

	return guiApp
}

// Run starts the GUI application
func (a *App) Run() {
	a.mainWindow.ShowAndRun()
}

// setupUI initializes all UI components
func (a *App) setupUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Candidates", a.createCandidatesTab()),
		container.NewTabItem("Interview Questions", a.createInterviewTab()),
		container.NewTabItem("Settings", a.createSettingsTab()),
	)

	a.mainWindow.SetContent(tabs)
}

// createCandidatesTab creates the candidate listing tab
func (a *App) createCandidatesTab() fyne.CanvasObject {
	a.searchEntry = widget.NewEntry()
	a.searchEntry.SetPlaceHolder("Filter candidates, or search by email on the server...")
	a.searchEntry.OnChanged = func(text string) {
		if a.updating {
			return
		}
		a.candidateCtrl.SetQuery(text)
	}
	a.searchEntry.OnSubmitted = func(text string) {
		a.handleSearch()
	}

	a.searchBtn = widget.NewButton("Search", a.handleSearch)
	a.clearSearchBtn = widget.NewButton("Clear Search", a.handleClearSearch)
	a.clearSearchBtn.Hide()

	filterOptions := []string{candidates.FilterAll}
	for _, s := range models.AllStatuses {
		filterOptions = append(filterOptions, string(s))
	}
	a.statusFilter = widget.NewSelect(filterOptions, func(selected string) {
		if a.updating {
			return
		}
		a.candidateCtrl.SetStatusFilter(selected)
	})
	a.statusFilter.SetSelected(candidates.FilterAll)

	searchBox := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.searchBtn, a.clearSearchBtn, a.statusFilter),
		a.searchEntry,
	)

	a.loadingBar = widget.NewProgressBarInfinite()
	a.loadingBar.Hide()

	a.listErrorLabel = widget.NewLabel("")
	a.listErrorLabel.Wrapping = fyne.TextWrapWord
	a.listRetryBtn = widget.NewButton("Retry", func() {
		go a.candidateCtrl.Retry(a.ctx)
	})
	a.listErrorBox = container.NewVBox(a.listErrorLabel, a.listRetryBtn)
	a.listErrorBox.Hide()

	a.candidateTable = widget.NewTable(
		func() (int, int) {
			return len(a.visibleRows) + 1, 5 // +1 for header
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Template")
		},
		func(id widget.TableCellID, cell fyne.CanvasObject) {
			label := cell.(*widget.Label)
			label.TextStyle = fyne.TextStyle{}
			if id.Row == 0 {
				headers := []string{"Name", "Email", "Role", "Status", "Created"}
				if id.Col < len(headers) {
					label.SetText(headers[id.Col])
					label.TextStyle = fyne.TextStyle{Bold: true}
				}
				return
			}
			if id.Row-1 >= len(a.visibleRows) {
				label.SetText("")
				return
			}
			cand := a.visibleRows[id.Row-1]
			switch id.Col {
			case 0:
				label.SetText(cand.FullName)
			case 1:
				label.SetText(cand.Email)
			case 2:
				label.SetText(cand.RoleApplied)
			case 3:
				label.SetText(string(cand.Status))
			case 4:
				label.SetText(formatCreatedAt(cand.CreatedAt))
			}
		},
	)
	a.candidateTable.SetColumnWidth(0, 220)
	a.candidateTable.SetColumnWidth(1, 260)
	a.candidateTable.SetColumnWidth(2, 180)
	a.candidateTable.SetColumnWidth(3, 120)
	a.candidateTable.SetColumnWidth(4, 140)
	a.candidateTable.OnSelected = func(id widget.TableCellID) {
		a.candidateTable.UnselectAll()
		if id.Row < 1 || id.Row-1 >= len(a.visibleRows) {
			return
		}
		a.showCandidateDetail(a.visibleRows[id.Row-1])
	}

	a.countLabel = widget.NewLabel("")
	a.paginationBox = container.NewHBox()

	a.exportBtn = widget.NewButton("Export to Excel", a.handleExport)

	footer := container.NewVBox(
		a.paginationBox,
		container.NewHBox(a.countLabel, a.exportBtn),
	)

	top := container.NewVBox(searchBox, a.loadingBar, a.listErrorBox)

	return container.NewBorder(top, footer, nil, nil, a.candidateTable)
}

// createInterviewTab creates the interview question generator tab
func (a *App) createInterviewTab() fyne.CanvasObject {
	a.catalogErrorLabel = widget.NewLabel("")
	a.catalogErrorLabel.Wrapping = fyne.TextWrapWord
	a.catalogRetryBtn = widget.NewButton("Retry", func() {
		go a.interviewCtrl.LoadCatalog(a.ctx)
	})
	a.catalogErrorBox = container.NewVBox(a.catalogErrorLabel, a.catalogRetryBtn)
	a.catalogErrorBox.Hide()

	a.roleSelect = widget.NewSelect([]string{}, func(selected string) {
		if a.updating {
			return
		}
		a.handleRoleSelected(selected)
	})
	a.roleSelect.PlaceHolder = "Select a role"

	a.skillsBox = container.NewVBox()

	a.complexitySlider = widget.NewSlider(0, 100)
	a.complexitySlider.Step = 1
	a.complexitySlider.Value = float64(interview.DefaultComplexity)
	a.complexitySlider.OnChanged = func(v float64) {
		if a.updating {
			return
		}
		a.interviewCtrl.SetComplexity(int(v))
	}
	a.complexityLabel = widget.NewLabel("")

	a.countSlider = widget.NewSlider(1, 20)
	a.countSlider.Step = 1
	a.countSlider.Value = float64(interview.DefaultQuestionCount)
	a.countSlider.OnChanged = func(v float64) {
		if a.updating {
			return
		}
		a.interviewCtrl.SetQuestionCount(int(v))
	}
	a.questionCountLbl = widget.NewLabel("")

	a.fileLabel = widget.NewLabel("No file attached")
	fileBtn := widget.NewButton("Attach Document...", a.handleAttachFile)

	a.generateBtn = widget.NewButton("Generate Questions", a.handleGenerate)
	a.resetBtn = widget.NewButton("Reset", func() {
		a.interviewCtrl.Reset()
	})

	a.questionsBox = container.NewVBox()

	form := container.NewVBox(
		widget.NewLabel("Role"),
		a.roleSelect,
		widget.NewLabel("Skills"),
		a.skillsBox,
		widget.NewSeparator(),
		widget.NewLabel("Question Complexity"),
		a.complexitySlider,
		a.complexityLabel,
		widget.NewLabel("Number of Questions"),
		a.countSlider,
		a.questionCountLbl,
		widget.NewSeparator(),
		container.NewHBox(fileBtn, a.fileLabel),
		container.NewHBox(a.generateBtn, a.resetBtn),
	)

	a.generatorBox = container.NewVBox(
		form,
		widget.NewSeparator(),
		widget.NewLabel("Generated Questions"),
		a.questionsBox,
	)

	content := container.NewVScroll(container.NewVBox(
		a.catalogErrorBox,
		a.generatorBox,
	))

	return content
}

// createSettingsTab creates the settings tab
func (a *App) createSettingsTab() fyne.CanvasObject {
	baseURLEntry := widget.NewEntry()
	baseURLEntry.SetText(a.config.APIBaseURL)

	pageSizeEntry := widget.NewEntry()
	pageSizeEntry.SetText(fmt.Sprintf("%d", a.config.PageSize))

	form := widget.NewForm(
		widget.NewFormItem("API Base URL", baseURLEntry),
		widget.NewFormItem("Page Size", pageSizeEntry),
	)

	saveBtn := widget.NewButton("Save Settings", func() {
		a.config.APIBaseURL = baseURLEntry.Text
		if _, err := fmt.Sscanf(pageSizeEntry.Text, "%d", &a.config.PageSize); err != nil {
			dialog.ShowError(fmt.Errorf("page size must be a number"), a.mainWindow)
			return
		}

		if err := a.config.Validate(); err != nil {
			dialog.ShowError(fmt.Errorf("validation failed: %w", err), a.mainWindow)
			return
		}

		if err := a.config.Save(); err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}

		dialog.ShowInformation("Success", "Settings saved. Restart the app to apply them.", a.mainWindow)
	})

	return container.NewVBox(form, saveBtn)
}

// refreshCandidates projects the candidate controller state onto the tab.
func (a *App) refreshCandidates() {
	state := a.candidateCtrl.Snapshot()

	a.updating = true
	defer func() { a.updating = false }()

	a.visibleRows = candidates.VisibleSubset(state.Candidates, state.Query, state.StatusFilter, state.SearchMode)
	a.candidateTable.Refresh()

	if state.Loading {
		a.loadingBar.Show()
	} else {
		a.loadingBar.Hide()
	}

	if state.LoadError != "" {
		a.listErrorLabel.SetText(state.LoadError)
		a.listErrorBox.Show()
	} else {
		a.listErrorBox.Hide()
	}

	if state.SearchMode {
		a.clearSearchBtn.Show()
		a.countLabel.SetText(fmt.Sprintf("%d search results", len(a.visibleRows)))
	} else {
		a.clearSearchBtn.Hide()
		a.countLabel.SetText(fmt.Sprintf("%d candidates shown", len(a.visibleRows)))
	}

	a.rebuildPagination(state)
}

// rebuildPagination regenerates the page button row from the current state.
func (a *App) rebuildPagination(state candidates.ListState) {
	view := candidates.BuildPagination(state.Page, state.TotalPages, state.Loading, state.SearchMode)

	a.paginationBox.RemoveAll()
	if !view.Visible {
		a.paginationBox.Refresh()
		return
	}

	prev := widget.NewButton("Previous", func() {
		go a.candidateCtrl.LoadPage(a.ctx, state.Page-1)
	})
	if !view.PrevEnabled {
		prev.Disable()
	}
	a.paginationBox.Add(prev)

	for _, btn := range view.Buttons {
		page := btn.Page
		pageBtn := widget.NewButton(fmt.Sprintf("%d", page), func() {
			go a.candidateCtrl.LoadPage(a.ctx, page)
		})
		if btn.Current {
			pageBtn.Importance = widget.HighImportance
			pageBtn.Disable()
		}
		if state.Loading {
			pageBtn.Disable()
		}
		a.paginationBox.Add(pageBtn)
	}

	next := widget.NewButton("Next", func() {
		go a.candidateCtrl.LoadPage(a.ctx, state.Page+1)
	})
	if !view.NextEnabled {
		next.Disable()
	}
	a.paginationBox.Add(next)
	a.paginationBox.Refresh()
}

// refreshInterview projects the interview controller state onto the tab.
func (a *App) refreshInterview() {
	state := a.interviewCtrl.Snapshot()

	a.updating = true
	defer func() { a.updating = false }()

	if state.CatalogError != "" {
		a.catalogErrorLabel.SetText(state.CatalogError)
		a.catalogErrorBox.Show()
		a.generatorBox.Hide()
		return
	}
	a.catalogErrorBox.Hide()
	a.generatorBox.Show()

	names := make([]string, 0, len(state.Roles))
	selectedName := ""
	for _, r := range state.Roles {
		names = append(names, r.Role)
		if r.ID == state.RoleID {
			selectedName = r.Role
		}
	}
	a.roleSelect.Options = names
	if a.roleSelect.Selected != selectedName {
		a.roleSelect.Selected = selectedName
	}
	a.roleSelect.Refresh()

	a.rebuildSkillChecks(state)

	a.complexityLabel.SetText(fmt.Sprintf("%d — %s: %s",
		state.Complexity,
		interview.ComplexityLabel(state.Complexity),
		interview.ComplexityDescription(state.Complexity)))
	a.questionCountLbl.SetText(fmt.Sprintf("%d — %s",
		state.Count, interview.QuestionCountLabel(state.Count)))

	if a.complexitySlider.Value != float64(state.Complexity) {
		a.complexitySlider.Value = float64(state.Complexity)
		a.complexitySlider.Refresh()
	}
	if a.countSlider.Value != float64(state.Count) {
		a.countSlider.Value = float64(state.Count)
		a.countSlider.Refresh()
	}

	if state.FilePath == "" {
		a.fileLabel.SetText("No file attached")
	} else {
		a.fileLabel.SetText(filepath.Base(state.FilePath))
	}

	if state.Generating {
		a.generateBtn.Disable()
		a.generateBtn.SetText("Generating...")
	} else {
		a.generateBtn.Enable()
		a.generateBtn.SetText("Generate Questions")
	}

	a.rebuildQuestions(state)
}

// rebuildSkillChecks regenerates the skill checkboxes for the current role.
func (a *App) rebuildSkillChecks(state interview.State) {
	a.skillsBox.RemoveAll()

	role, ok := a.interviewCtrl.SelectedRole()
	if !ok {
		a.skillsBox.Add(widget.NewLabel("Select a role to see its skills"))
		a.skillsBox.Refresh()
		return
	}

	selected := make(map[string]bool, len(state.Skills))
	for _, s := range state.Skills {
		selected[s] = true
	}

	for _, skill := range role.Skills {
		name := skill
		check := widget.NewCheck(name, func(bool) {
			if a.updating {
				return
			}
			a.interviewCtrl.ToggleSkill(name)
		})
		check.Checked = selected[name]
		a.skillsBox.Add(check)
	}
	a.skillsBox.Refresh()
}

// rebuildQuestions regenerates the generated-question cards.
func (a *App) rebuildQuestions(state interview.State) {
	a.questionsBox.RemoveAll()

	if len(state.Questions) == 0 {
		a.questionsBox.Add(widget.NewLabel("No questions generated yet"))
		a.questionsBox.Refresh()
		return
	}

	for i, q := range state.Questions {
		index := i
		title := fmt.Sprintf("%d. %s", i+1, q.Question)
		header := widget.NewButton(title, func() {
			a.interviewCtrl.ToggleQuestionExpansion(index)
		})

		card := container.NewVBox(
			header,
			widget.NewLabel(fmt.Sprintf("%s · %s", q.Type, q.Complexity)),
		)

		if state.Expanded[index] {
			answer := widget.NewLabel("Expected answer: " + q.ExpectedAnswer)
			answer.Wrapping = fyne.TextWrapWord
			card.Add(answer)
		}

		a.questionsBox.Add(card)
		a.questionsBox.Add(widget.NewSeparator())
	}
	a.questionsBox.Refresh()
}

// showCandidateDetail opens the detail dialog for one candidate.
func (a *App) showCandidateDetail(cand models.Candidate) {
	state := a.candidateCtrl.Snapshot()

	statusOptions := make([]string, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		statusOptions = append(statusOptions, string(s))
	}
	statusSelect := widget.NewSelect(statusOptions, func(selected string) {
		a.candidateCtrl.ChangeStatus(cand.ID, models.Status(selected))
	})
	statusSelect.Selected = string(cand.Status)

	items := []*widget.FormItem{
		widget.NewFormItem("Name", widget.NewLabel(cand.FullName)),
		widget.NewFormItem("Email", widget.NewLabel(cand.Email)),
		widget.NewFormItem("Phone", widget.NewLabel(cand.Phone)),
	}
	if cand.Location != "" {
		items = append(items, widget.NewFormItem("Location", widget.NewLabel(cand.Location)))
	}
	if cand.CurrentTitle != "" {
		items = append(items, widget.NewFormItem("Current Title", widget.NewLabel(cand.CurrentTitle)))
	}
	if cand.RoleApplied != "" {
		items = append(items, widget.NewFormItem("Role Applied", widget.NewLabel(cand.RoleApplied)))
	}
	if len(cand.TechnicalSkills) > 0 {
		skills := widget.NewLabel(joinLimited(cand.TechnicalSkills, 12))
		skills.Wrapping = fyne.TextWrapWord
		items = append(items, widget.NewFormItem("Technical Skills", skills))
	}
	if len(cand.SoftSkills) > 0 {
		skills := widget.NewLabel(joinLimited(cand.SoftSkills, 12))
		skills.Wrapping = fyne.TextWrapWord
		items = append(items, widget.NewFormItem("Soft Skills", skills))
	}
	if cand.Summary != "" {
		summary := widget.NewLabel(cand.Summary)
		summary.Wrapping = fyne.TextWrapWord
		items = append(items, widget.NewFormItem("Summary", summary))
	}
	for _, exp := range cand.WorkExperience {
		entry := widget.NewLabel(fmt.Sprintf("%s at %s %s", exp.Title, exp.Company, exp.Duration))
		items = append(items, widget.NewFormItem("Experience", entry))
	}
	items = append(items, widget.NewFormItem("Status", statusSelect))

	deleteBtn := widget.NewButton("Delete Candidate", nil)
	if state.Deleting[cand.ID] {
		deleteBtn.Disable()
	}

	detail := container.NewVScroll(container.NewVBox(
		widget.NewForm(items...),
		widget.NewSeparator(),
		deleteBtn,
	))
	detail.SetMinSize(fyne.NewSize(520, 460))

	d := dialog.NewCustom(cand.FullName, "Close", detail, a.mainWindow)

	deleteBtn.OnTapped = func() {
		dialog.ShowConfirm("Delete Candidate",
			fmt.Sprintf("Delete %s? This cannot be undone.", cand.FullName),
			func(confirmed bool) {
				if !confirmed {
					return
				}
				deleteBtn.Disable()
				go func() {
					a.candidateCtrl.Delete(a.ctx, cand.ID)
					fyne.Do(d.Hide)
				}()
			}, a.mainWindow)
	}

	d.Show()
}

// handleSearch submits the current query to the server-side search.
func (a *App) handleSearch() {
	query := a.searchEntry.Text
	go a.candidateCtrl.Search(a.ctx, query)
}

// handleClearSearch leaves search-mode and reloads the first page.
func (a *App) handleClearSearch() {
	a.updating = true
	a.searchEntry.SetText("")
	a.updating = false
	go a.candidateCtrl.ClearSearch(a.ctx)
}

// handleRoleSelected maps the selected role name back to its catalog id.
func (a *App) handleRoleSelected(name string) {
	state := a.interviewCtrl.Snapshot()
	for _, r := range state.Roles {
		if r.Role == name {
			a.interviewCtrl.SelectRole(r.ID)
			return
		}
	}
}

// handleAttachFile stores a supporting document path for generation.
func (a *App) handleAttachFile() {
	dialog.ShowFileOpen(func(uc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if uc == nil {
			return // User canceled
		}
		path := uc.URI().Path()
		uc.Close()
		a.interviewCtrl.AttachFile(path)
	}, a.mainWindow)
}

// handleGenerate runs question generation in the background.
func (a *App) handleGenerate() {
	go a.interviewCtrl.Generate(a.ctx)
}

// handleExport exports the visible candidate subset to Excel.
func (a *App) handleExport() {
	visible := a.candidateCtrl.Visible()
	if len(visible) == 0 {
		dialog.ShowError(fmt.Errorf("no candidates to export"), a.mainWindow)
		return
	}

	timestamp := time.Now().Format("2006-01-02_150405")
	defaultName := fmt.Sprintf("Candidates_%s.xlsx", timestamp)

	saveDialog := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if uc == nil {
			return // User canceled
		}
		defer uc.Close()

		outputPath := uc.URI().Path()
		if err := export.ExportCandidates(visible, outputPath); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export: %w", err), a.mainWindow)
			return
		}

		dialog.ShowInformation("Success", "Candidates exported to "+filepath.Base(outputPath), a.mainWindow)
	}, a.mainWindow)
	saveDialog.SetFileName(defaultName)
	saveDialog.Show()
}

// showNotification surfaces controller notifications on the UI thread.
func (a *App) showNotification(kind notify.Kind, message string) {
	fyne.Do(func() {
		switch kind {
		case notify.Error:
			dialog.ShowError(errors.New(message), a.mainWindow)
		case notify.Success:
			a.fyneApp.SendNotification(&fyne.Notification{
				Title:   "HireAI",
				Content: message,
			})
		default:
			dialog.ShowInformation("HireAI", message, a.mainWindow)
		}
	})
}

// formatCreatedAt renders the server timestamp as a short date.
func formatCreatedAt(createdAt string) string {
	if createdAt == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		return t.Format("2006-01-02")
	}
	return createdAt
}

// joinLimited joins up to max items, appending a count of the rest.
func joinLimited(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:max], ", "), len(items)-max)
}
