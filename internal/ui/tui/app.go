package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/columns"
)

type screen int

const (
	screenMenu screen = iota
	screenList
	screenItem
	screenForm
	screenLogin
	screenFilter
)

const defaultPageSize = 20

type menuAction int

const (
	actionResource menuAction = iota
	actionLogin
	actionLogout
	actionQuit
)

type menuItem struct {
	title  string
	desc   string
	action menuAction
	res    domain.Resource
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title + " " + m.res.Name }

type model struct {
	theme Theme
	deps  Deps

	scr  screen
	back screen
	menu list.Model

	res   domain.Resource
	view  domain.ViewState
	item  domain.ViewState
	table table.Model
	spin  spinner.Model
	form  formModel
	dirty bool

	filters map[string]string

	user          string
	toast         string
	confirmDelete string

	width  int
	height int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Catalog == nil {
		deps.Catalog = domain.DefaultCatalog()
	}
	if deps.PageSize <= 0 {
		deps.PageSize = defaultPageSize
	}

	items := []list.Item{
		menuItem{title: "Log in", desc: "Sign in with email and password", action: actionLogin},
	}
	for _, r := range deps.Catalog.All() {
		items = append(items, menuItem{
			title:  r.Title,
			desc:   r.Name + " · " + strings.Join(resourceOps(r), ", "),
			action: actionResource,
			res:    r,
		})
	}
	items = append(items,
		menuItem{title: "Log out", desc: "Forget the stored session", action: actionLogout},
		menuItem{title: "Quit", desc: "Exit bmectl", action: actionQuit},
	)

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Big Mann Entertainment"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		scr:   screenMenu,
		menu:  l,
		table: table.New(),
		spin:  sp,
	}
}

func resourceOps(r domain.Resource) []string {
	var ops []string
	if r.CanList() {
		ops = append(ops, "list")
	}
	if r.CanShow() {
		ops = append(ops, "view")
	}
	if r.CanCreate() {
		ops = append(ops, "create")
	}
	if r.CanUpdate() {
		ops = append(ops, "edit")
	}
	if r.CanDelete() {
		ops = append(ops, "delete")
	}
	return ops
}

func (m model) Init() tea.Cmd { return cmdLoadSession(m.deps) }

func (m model) busy() bool {
	return m.view.Loading() || m.item.Loading() || m.form.state.Submitting
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		m.table.SetWidth(msg.Width - 8)
		m.table.SetHeight(tableHeight(msg.Height))
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionLoadedMsg:
		if msg.err == nil && !msg.sess.Empty() {
			m.user = msg.sess.UserLabel()
		}
		return m, nil

	case listLoadedMsg:
		return m.onListLoaded(msg), nil

	case itemLoadedMsg:
		if msg.err != nil {
			if m.item.Fail(msg.seq, msg.err) && sessionCleared(msg.err) {
				m.user = ""
			}
			return m, nil
		}
		m.item.ResolveItem(msg.seq, msg.rec)
		return m, nil

	case submitDoneMsg:
		return m.onSubmitted(msg), nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			if sessionCleared(msg.err) {
				m.user = ""
			}
			return m, nil
		}
		m.toast = msg.out.Message
		return m.reload()

	case loginDoneMsg:
		if msg.err != nil {
			m.form.state.Fail(msg.err)
			return m, nil
		}
		m.form.state.Succeed("", false)
		m.user = msg.sess.UserLabel()
		m.toast = "Logged in as " + m.user
		m.scr = screenMenu
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.user = ""
		m.toast = "Logged out"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.scr {
		case screenMenu:
			return m.updateMenu(msg)
		case screenList:
			return m.updateList(msg)
		case screenItem:
			return m.updateItem(msg)
		case screenForm, screenLogin, screenFilter:
			return m.updateForm(msg)
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenMenu:
		m.menu, cmd = m.menu.Update(msg)
	case screenForm, screenLogin, screenFilter:
		m.form, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.toast = ""
		switch it.action {
		case actionQuit:
			return m, tea.Quit
		case actionLogin:
			m.form = newForm(domain.ResourceLogin, domain.OpCreate, "", domain.ResourceLogin.Fields, nil)
			m.back = screenMenu
			m.scr = screenLogin
			return m, nil
		case actionLogout:
			return m, cmdLogout(m.deps)
		default:
			return m.openResource(it.res)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) openResource(res domain.Resource) (tea.Model, tea.Cmd) {
	m.res = res
	m.confirmDelete = ""
	m.filters = nil
	switch {
	case res.CanList():
		m.scr = screenList
		m.view = domain.ViewState{Seq: m.view.Seq}
		m.table = table.New()
		return m.loadPage(domain.FirstPage(m.deps.PageSize))
	case res.CanShow() && !domain.NeedsID(res.ItemPath):
		m.back = screenMenu
		return m.openItem("")
	case res.CanCreate():
		return m.openForm(domain.OpCreate, "", nil, screenMenu)
	default:
		m.toast = "Nothing to show for " + res.Title
		return m, nil
	}
}

// loadPage starts a list request. Records of the previous page stay on screen until it lands.
func (m model) loadPage(p domain.Page) (tea.Model, tea.Cmd) {
	seq := m.view.Begin()
	return m, tea.Batch(cmdLoadList(m.deps, m.res, p, m.filters, seq), m.spin.Tick)
}

func (m model) reload() (tea.Model, tea.Cmd) {
	if m.scr != screenList || !m.res.CanList() {
		return m, nil
	}
	p := m.view.Page
	if p.Number < 1 {
		p = domain.FirstPage(m.deps.PageSize)
	}
	return m.loadPage(domain.Page{Number: p.Number, Size: m.deps.PageSize})
}

func (m model) onListLoaded(msg listLoadedMsg) model {
	if msg.err != nil {
		if m.view.Fail(msg.seq, msg.err) && sessionCleared(msg.err) {
			m.user = ""
		}
		return m
	}
	if !m.view.Resolve(msg.seq, msg.out.Records, msg.out.Page) {
		return m
	}
	m.table = buildTable(m.res, m.view.Records, m.width, m.height)
	return m
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if id := m.confirmDelete; id != "" {
		m.confirmDelete = ""
		if key == "y" {
			m.toast = "Deleting " + id + "…"
			return m, cmdDelete(m.deps, m.res, id)
		}
		m.toast = "Delete canceled"
		return m, nil
	}

	switch key {
	case "esc", "b", "q":
		m.scr = screenMenu
		return m, nil

	case "n", "right", "pgdown":
		if m.view.Loading() {
			return m, nil
		}
		next, ok := m.view.Page.Next()
		if !ok {
			m.toast = "Already on the last page"
			return m, nil
		}
		m.toast = ""
		return m.loadPage(next)

	case "p", "left", "pgup":
		if m.view.Loading() {
			return m, nil
		}
		prev, ok := m.view.Page.Prev()
		if !ok {
			m.toast = "Already on the first page"
			return m, nil
		}
		m.toast = ""
		return m.loadPage(prev)

	case "r":
		if m.view.Loading() {
			return m, nil
		}
		return m.reload()

	case "enter":
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.back = screenList
		id := recordID(rec)
		if m.res.CanShow() && id != "" {
			return m.openItem(id)
		}
		m.scr = screenItem
		m.item.ResolveItem(m.item.Begin(), rec)
		return m, nil

	case "f":
		if len(m.res.Filters) == 0 {
			m.toast = "No filters for " + m.res.Title
			return m, nil
		}
		m.form = newFilterForm(m.res, m.filters)
		m.back = screenList
		m.scr = screenFilter
		return m, nil

	case "c":
		if !m.res.CanCreate() {
			m.toast = "Create is not available for " + m.res.Title
			return m, nil
		}
		return m.openForm(domain.OpCreate, "", nil, screenList)

	case "e":
		rec, ok := m.selected()
		if !ok || !m.res.CanUpdate() {
			m.toast = "Edit is not available here"
			return m, nil
		}
		return m.openForm(domain.OpUpdate, recordID(rec), rec, screenList)

	case "d":
		rec, ok := m.selected()
		id := recordID(rec)
		if !ok || !m.res.CanDelete() || id == "" {
			m.toast = "Delete is not available here"
			return m, nil
		}
		m.confirmDelete = id
		m.toast = fmt.Sprintf("Delete %s? (y/n)", id)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) selected() (domain.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Records) {
		return nil, false
	}
	return m.view.Records[i], true
}

func (m model) openItem(id string) (tea.Model, tea.Cmd) {
	m.scr = screenItem
	seq := m.item.Begin()
	return m, tea.Batch(cmdLoadItem(m.deps, m.res, id, seq), m.spin.Tick)
}

func (m model) updateItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.scr = m.back
		if m.back == screenList && m.dirty {
			m.dirty = false
			return m.reload()
		}
		return m, nil
	case "q":
		m.scr = screenMenu
		return m, nil
	case "e":
		if !m.res.CanUpdate() || m.item.Item == nil {
			return m, nil
		}
		return m.openForm(domain.OpUpdate, recordID(m.item.Item), m.item.Item, screenItem)
	}
	return m, nil
}

func (m model) openForm(op domain.Operation, id string, prefill domain.Record, back screen) (tea.Model, tea.Cmd) {
	m.form = newForm(m.res, op, id, m.res.Fields, prefill)
	m.back = back
	m.scr = screenForm
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.scr = m.back
		if m.scr == screenList && m.dirty {
			m.dirty = false
			return m.reload()
		}
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.form.onLastField() {
			return m.submit()
		}
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submit sends the form once. While a submission is in flight further submits are ignored.
func (m model) submit() (tea.Model, tea.Cmd) {
	if m.scr == screenFilter {
		return m.applyFilters()
	}
	if !m.form.state.BeginSubmit() {
		return m, nil
	}
	values := m.form.values()
	for k, v := range values {
		m.form.state.Values[k] = v
	}

	if m.scr == screenLogin {
		return m, tea.Batch(cmdLogin(m.deps, values["email"], values["password"]), m.spin.Tick)
	}
	return m, tea.Batch(cmdSubmit(m.deps, m.form.res, m.form.op, m.form.id, values), m.spin.Tick)
}

// applyFilters keeps the non-empty filter inputs and reloads from the first page.
// An empty form clears every filter.
func (m model) applyFilters() (tea.Model, tea.Cmd) {
	var filters map[string]string
	for k, v := range m.form.values() {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if filters == nil {
			filters = map[string]string{}
		}
		filters[k] = v
	}
	m.filters = filters
	m.scr = screenList
	m.toast = ""
	return m.loadPage(domain.FirstPage(m.deps.PageSize))
}

func (m model) onSubmitted(msg submitDoneMsg) model {
	if msg.err != nil {
		m.form.state.Fail(msg.err)
		if sessionCleared(msg.err) {
			m.user = ""
		}
		return m
	}
	reset := msg.op == domain.OpCreate
	m.form.state.Succeed(msg.out.Message, reset)
	if reset {
		m.form.reset()
	}
	m.dirty = true
	return m
}

func buildTable(res domain.Resource, recs []domain.Record, width, height int) table.Model {
	cols := columns.For(res.Columns, recs)
	tc := make([]table.Column, len(cols))
	for i, c := range cols {
		w := c.Width
		if w <= 0 {
			w = 16
		}
		tc[i] = table.Column{Title: c.Title, Width: w}
	}

	rows := make([]table.Row, len(recs))
	for i, rec := range recs {
		rows[i] = table.Row(columns.Row(rec, cols))
	}

	t := table.New(
		table.WithColumns(tc),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	if width > 0 {
		t.SetWidth(width - 8)
	}
	return t
}

func tableHeight(termHeight int) int {
	if termHeight <= 0 {
		return 15
	}
	return max(termHeight-16, 5)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	header := m.theme.Title.Render("bmectl") + "  " +
		m.theme.Subtitle.Render("Big Mann Entertainment console") + "\n"
	if m.user != "" {
		header += m.theme.Help.Render("Logged in as "+m.user) + "\n"
	} else {
		header += m.theme.Help.Render("Not logged in") + "\n"
	}
	if m.toast != "" {
		header += m.theme.Subtitle.Render(m.toast) + "\n"
	}

	switch m.scr {
	case screenMenu:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help)

	case screenList:
		help := m.theme.Help.Render("↑/↓ select • enter view • n/p page • f filter • c create • e edit • d delete • r reload • esc back")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.listView()) + "\n" + help)

	case screenItem:
		help := m.theme.Help.Render("e edit • esc back • q menu")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.itemView()) + "\n" + help)

	case screenForm, screenLogin:
		body := m.form.view(m.theme, m.width)
		if m.form.state.Submitting {
			body += "\n" + m.spin.View() + " Sending…"
		}
		help := m.theme.Help.Render("tab/↓ next • shift+tab/↑ prev • enter on last field or ctrl+s submit • esc back")
		return wrap.Render(header + "\n" + m.theme.Card.Render(body) + "\n" + help)

	case screenFilter:
		help := m.theme.Help.Render("tab/↓ next • enter on last field or ctrl+s apply • empty form clears • esc cancel")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.form.view(m.theme, m.width)) + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func (m model) listView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.res.Title))
	b.WriteString(m.theme.Subtitle.Render("  " + m.res.Name))
	b.WriteString("\n")
	if len(m.filters) > 0 {
		b.WriteString(m.theme.Help.Render("filters: " + filterLabel(m.filters)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.view.Status {
	case domain.StatusLoading:
		b.WriteString(m.spin.View() + " Loading…\n\n")
	case domain.StatusFailed:
		b.WriteString(errorText(m.theme, m.view.Err, m.width) + "\n\n")
	}

	switch {
	case len(m.view.Records) > 0:
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
	case m.view.Status == domain.StatusReady:
		b.WriteString(m.theme.Help.Render("(no records)") + "\n\n")
	}

	b.WriteString(m.pager())
	return b.String()
}

// pager renders prev/next with the unavailable direction disabled.
func (m model) pager() string {
	p := m.view.Page
	prev, next := m.theme.Active, m.theme.Active
	if !p.HasPrev() || m.view.Loading() {
		prev = m.theme.Disabled
	}
	if !p.HasNext() || m.view.Loading() {
		next = m.theme.Disabled
	}
	label := p.Label()
	if p.Known {
		label += fmt.Sprintf(" · %d total", p.Total)
	}
	return prev.Render("‹ prev") + "  " + m.theme.Subtitle.Render(label) + "  " + next.Render("next ›")
}

func (m model) itemView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.res.Title))
	b.WriteString("\n\n")

	switch m.item.Status {
	case domain.StatusLoading:
		b.WriteString(m.spin.View() + " Loading…")
	case domain.StatusFailed:
		b.WriteString(errorText(m.theme, m.item.Err, m.width))
	default:
		b.WriteString(renderRecord(m.item.Item, m.theme, m.width))
	}
	return b.String()
}
