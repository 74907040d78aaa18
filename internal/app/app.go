package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/vidyasagar/navcore/internal/browser"
	"github.com/vidyasagar/navcore/internal/logging"
	"github.com/vidyasagar/navcore/internal/navigation"
	"github.com/vidyasagar/navcore/internal/theme"
	"github.com/vidyasagar/navcore/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInsert       // address bar focused
	ModeCommand      // prompt bar active
	ModeHistory      // history panel focused
)

// PageLoader probes addresses for the Navigator and supplies the page
// summaries shown in the page panel. *browser.Loader implements it.
type PageLoader interface {
	navigation.Prober
	Load(ctx context.Context, addr navigation.Address) (*browser.Page, error)
	Cached(addr navigation.Address) (*browser.Page, bool)
	Forget(addr navigation.Address)
}

// Options configures a Model.
type Options struct {
	Loader    PageLoader
	Logger    *slog.Logger
	StartPage string // visited on Init when set
}

// Model is the top-level bubbletea model.
type Model struct {
	// UI components
	urlBar       ui.URLBar
	statusBar    ui.StatusBar
	commandBar   ui.CommandBar
	pagePanel    ui.PagePanel
	historyPanel ui.HistoryPanel

	session   *session
	loader    PageLoader
	logger    *slog.Logger
	keys      KeyMap
	mode      Mode
	width     int
	height    int
	ready     bool
	lastGKey  bool // for "gh" detection
	loading   bool // a Visit is in flight
	startPage string
}

// openMsg asks the model to visit input, as if typed in the address bar.
type openMsg struct {
	input string
}

// visitDoneMsg is sent when a Visit returns.
type visitDoneMsg struct {
	input string
	addr  navigation.Address
	page  *browser.Page
	err   error
}

// pageLoadedMsg is sent when a page summary for a traversed-to address
// arrives.
type pageLoadedMsg struct {
	addr navigation.Address
	page *browser.Page
	err  error
}

// New creates a Model. A nil Loader gets a default HTTP loader and a nil
// Logger discards everything.
func New(opts Options) Model {
	loader := opts.Loader
	if loader == nil {
		l, err := browser.NewLoader(nil, browser.DefaultCacheSize)
		if err != nil {
			// lru.New only fails for a non-positive size.
			panic(err)
		}
		loader = l
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With("session", uuid.NewString())

	m := Model{
		urlBar:       ui.NewURLBar(),
		statusBar:    ui.NewStatusBar(),
		commandBar:   ui.NewCommandBar(),
		pagePanel:    ui.NewPagePanel(),
		historyPanel: ui.NewHistoryPanel(),
		session:      newSession(loader),
		loader:       loader,
		logger:       logger,
		keys:         DefaultKeyMap(),
		mode:         ModeNormal,
		startPage:    opts.StartPage,
	}
	m.syncNav()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started", "start_page", m.startPage)
	if m.startPage == "" {
		return nil
	}
	input := m.startPage
	return func() tea.Msg { return openMsg{input: input} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case openMsg:
		return m.navigate(msg.input)

	case visitDoneMsg:
		return m.handleVisitDone(msg)

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	pp, cmd := m.pagePanel.Update(msg)
	m.pagePanel = *pp
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading navcore..."
	}

	sections := []string{m.urlBar.View()}

	if m.historyPanel.IsVisible() {
		divider := lipgloss.NewStyle().
			Foreground(theme.Current.Border).
			Render(strings.TrimSuffix(strings.Repeat("│\n", m.contentHeight()), "\n"))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.historyPanel.View(),
			divider,
			m.pagePanel.View(),
		))
	} else {
		sections = append(sections, m.pagePanel.View())
	}

	sections = append(sections, m.statusBar.View())
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

func (m Model) contentHeight() int {
	urlBarHeight := 3 // border adds height
	statusBarHeight := 1
	commandBarHeight := 0
	if m.commandBar.IsActive() {
		commandBarHeight = 1
	}
	return max(m.height-urlBarHeight-statusBarHeight-commandBarHeight, 1)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.urlBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	height := m.contentHeight()
	width := m.width
	if m.historyPanel.IsVisible() {
		panelWidth := max(m.width*30/100, 20)
		m.historyPanel.SetSize(panelWidth, height)
		width = m.width - panelWidth - 1 // divider
	}
	if m.ready {
		m.pagePanel.SetSize(width, height)
	}
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case ModeInsert:
		return m.handleInsertMode(msg)
	case ModeCommand:
		return m.handleCommandMode(msg)
	case ModeHistory:
		return m.handleHistoryMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys in normal (browsing) mode.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.lastGKey {
		m.lastGKey = false
		if key.Matches(msg, m.keys.Home) {
			return m.goHome()
		}
	}

	switch {
	case msg.String() == "g":
		m.lastGKey = true
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case msg.Type == tea.KeyEsc && m.pagePanel.ShowingText():
		m.pagePanel.ClearText()
		m.syncTitle()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		if m.pagePanel.ShowingText() {
			m.pagePanel.ClearText()
			m.syncTitle()
			return m, nil
		}
		m.showHelp()
		return m, nil

	case key.Matches(msg, m.keys.OpenURL):
		m.mode = ModeInsert
		m.statusBar.SetMode("INSERT")
		m.urlBar.Reset()
		cmd := m.urlBar.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		return m.traverse(m.session.back)

	case key.Matches(msg, m.keys.Forward):
		return m.traverse(m.session.forward)

	case key.Matches(msg, m.keys.SetHome):
		return m.setHome()

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.Bookmark):
		return m.openPrompt(ui.CommandMark, "MARK")

	case key.Matches(msg, m.keys.OpenBookmark):
		return m.openPrompt(ui.CommandJump, "JUMP")

	case key.Matches(msg, m.keys.FollowLink):
		return m.openPrompt(ui.CommandFollow, "FOLLOW")

	case key.Matches(msg, m.keys.CommandMode):
		return m.openPrompt(ui.CommandEx, "COMMAND")

	case key.Matches(msg, m.keys.NextLink):
		m.pagePanel.SelectNext()
		m.showSelectedLink()
		return m, nil

	case key.Matches(msg, m.keys.PrevLink):
		m.pagePanel.SelectPrev()
		m.showSelectedLink()
		return m, nil

	case key.Matches(msg, m.keys.OpenLink):
		if link, ok := m.pagePanel.SelectedLink(); ok {
			return m.navigate(link.URL)
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryToggle):
		return m.toggleHistory()

	case key.Matches(msg, m.keys.ScrollDown, m.keys.ScrollUp, m.keys.HalfPageDown, m.keys.HalfPageUp):
		pp, cmd := m.pagePanel.Update(msg)
		m.pagePanel = *pp
		return m, cmd
	}

	return m, nil
}

// handleInsertMode processes keys when the address bar is focused.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.urlBar.Blur()
		m.urlBar.SetValue(m.session.state().Current.String())
		m.statusBar.SetMode("NORMAL")
		return m, nil

	case tea.KeyEnter:
		input := strings.TrimSpace(m.urlBar.Value())
		m.mode = ModeNormal
		m.urlBar.Blur()
		m.statusBar.SetMode("NORMAL")
		if input == "" {
			return m, nil
		}
		return m.navigate(input)
	}

	ub, cmd := m.urlBar.Update(msg)
	m.urlBar = *ub
	return m, cmd
}

// handleCommandMode processes keys while the prompt bar is open.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.mode = ModeNormal
		m.statusBar.SetMode("NORMAL")
		m.layout()
		return m, nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.mode = ModeNormal
		m.statusBar.SetMode("NORMAL")
		m.layout()
		return m.handleCommandResult(result)
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	return m, cmd
}

// handleHistoryMode processes keys when the history panel has focus.
func (m Model) handleHistoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ScrollDown):
		m.historyPanel.CursorDown()
	case key.Matches(msg, m.keys.ScrollUp):
		m.historyPanel.CursorUp()
	case msg.Type == tea.KeyEnter:
		item, ok := m.historyPanel.Selected()
		m = m.closeHistory()
		if ok {
			return m.navigate(item.Address)
		}
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.HistoryToggle):
		m = m.closeHistory()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

func (m Model) openPrompt(ct ui.CommandType, mode string) (tea.Model, tea.Cmd) {
	m.mode = ModeCommand
	m.statusBar.SetMode(mode)
	cmd := m.commandBar.Open(ct)
	if ct == ui.CommandJump || ct == ui.CommandMark {
		m.commandBar.SetSuggestions(m.session.bookmarks())
	}
	m.layout()
	return m, cmd
}

// handleCommandResult processes a submitted prompt.
func (m Model) handleCommandResult(result ui.CommandResult) (tea.Model, tea.Cmd) {
	switch result.Type {
	case ui.CommandEx:
		return m.executeCommand(result.Value)
	case ui.CommandFollow:
		return m.followLink(result.Value)
	case ui.CommandMark:
		return m.addBookmark(result.Value)
	case ui.CommandJump:
		return m.openBookmark(result.Value)
	}
	return m, nil
}

// executeCommand handles :commands.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return m, nil
	}
	arg := strings.Join(parts[1:], " ")

	switch parts[0] {
	case "q", "quit":
		return m.quit()
	case "o", "open":
		if arg == "" {
			m.statusBar.SetError("Usage: :open ADDR")
			return m, nil
		}
		return m.navigate(arg)
	case "back":
		return m.traverse(m.session.back)
	case "forward":
		return m.traverse(m.session.forward)
	case "home":
		return m.goHome()
	case "sethome":
		return m.setHome()
	case "mark":
		return m.addBookmark(arg)
	case "go":
		return m.openBookmark(arg)
	case "marks":
		return m.listBookmarks(arg)
	case "history":
		return m.toggleHistory()
	case "reload":
		return m.reload()
	case "help":
		m.showHelp()
	case "theme":
		if arg == "" {
			m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", ")))
		} else if theme.Set(arg) {
			m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", arg))
			m.pagePanel.SetPage(m.session.state().Current.String(), m.pagePanel.Page())
		} else {
			m.statusBar.SetError(fmt.Sprintf("Unknown theme: %s (available: %s)", arg, strings.Join(theme.List(), ", ")))
		}
	default:
		m.statusBar.SetError(fmt.Sprintf("Unknown command: %s", parts[0]))
	}
	return m, nil
}

// navigate starts a Visit on a command goroutine. Only one Visit may be in
// flight at a time.
func (m Model) navigate(input string) (Model, tea.Cmd) {
	if m.loading {
		m.statusBar.SetError("Still loading the previous address")
		return m, nil
	}
	m.loading = true
	m.statusBar.SetLoading(true)
	m.statusBar.ClearMessage()
	m.logger.Debug("visiting", "input", input)

	sess, loader := m.session, m.loader
	return m, func() tea.Msg {
		addr, err := sess.visit(input)
		if err != nil {
			return visitDoneMsg{input: input, err: err}
		}
		page, _ := loader.Cached(addr)
		return visitDoneMsg{input: input, addr: addr, page: page}
	}
}

func (m Model) handleVisitDone(msg visitDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.logger.Warn("visit failed", "input", msg.input, "error", msg.err)
		m.statusBar.SetError(msg.err.Error())
		return m, nil
	}

	m.logger.Info("visited", "input", msg.input, "address", msg.addr.String())
	cmd := m.showPage(msg.addr, msg.page)
	m.syncNav()
	return m, cmd
}

// traverse moves the cursor with step (back or forward) and shows the page
// at the new position. The summary is fetched only when it is not cached.
func (m Model) traverse(step func() (navigation.Address, error)) (tea.Model, tea.Cmd) {
	if m.loading {
		m.statusBar.SetError("Still loading the previous address")
		return m, nil
	}
	addr, err := step()
	if err != nil {
		m.statusBar.SetError(err.Error())
		return m, nil
	}
	m.statusBar.ClearMessage()
	m.logger.Debug("traversed", "address", addr.String())
	page, _ := m.loader.Cached(addr)
	cmd := m.showPage(addr, page)
	m.syncNav()
	return m, cmd
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.addr != m.session.state().Current {
		return m, nil // the cursor moved on
	}
	if msg.err != nil {
		m.logger.Warn("loading summary failed", "address", msg.addr.String(), "error", msg.err)
		m.statusBar.SetError(fmt.Sprintf("Could not load %s: %s", msg.addr, msg.err))
		return m, nil
	}
	m.statusBar.ClearMessage()
	m.showPage(msg.addr, msg.page)
	m.syncNav()
	return m, nil
}

// showPage displays addr in the page panel and address bar. When page is
// nil it returns a command that fetches the summary.
func (m *Model) showPage(addr navigation.Address, page *browser.Page) tea.Cmd {
	m.pagePanel.ClearText()
	m.pagePanel.SetPage(addr.String(), page)
	m.urlBar.SetValue(addr.String())
	m.syncTitle()
	if page != nil {
		return nil
	}
	m.statusBar.SetMessage("Loading summary...")
	return m.loadSummary(addr)
}

func (m Model) loadSummary(addr navigation.Address) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		page, err := loader.Load(context.Background(), addr)
		return pageLoadedMsg{addr: addr, page: page, err: err}
	}
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	cur := m.session.state().Current
	if cur.IsZero() {
		m.statusBar.SetError("No page to reload")
		return m, nil
	}
	m.loader.Forget(cur)
	cmd := m.showPage(cur, nil)
	return m, cmd
}

func (m Model) goHome() (tea.Model, tea.Cmd) {
	home := m.session.state().Home
	if home.IsZero() {
		m.statusBar.SetError("No home page set")
		return m, nil
	}
	return m.navigate(home.String())
}

func (m Model) setHome() (tea.Model, tea.Cmd) {
	home := m.session.setHome()
	if home.IsZero() {
		m.statusBar.SetError("No page to set as home")
		return m, nil
	}
	m.logger.Info("home set", "address", home.String())
	m.statusBar.SetMessage(fmt.Sprintf("Home: %s", home))
	m.syncNav()
	return m, nil
}

func (m Model) addBookmark(name string) (tea.Model, tea.Cmd) {
	if name == "" {
		m.statusBar.SetError("Bookmark name is empty")
		return m, nil
	}
	cur := m.session.addBookmark(name)
	if cur.IsZero() {
		m.statusBar.SetError("No page to bookmark")
		return m, nil
	}
	m.logger.Info("bookmark added", "name", name, "address", cur.String())
	m.statusBar.SetMessage(fmt.Sprintf("Bookmarked %s as %q", cur, name))
	return m, nil
}

func (m Model) openBookmark(name string) (tea.Model, tea.Cmd) {
	addr, err := m.session.bookmark(name)
	if err != nil {
		var unknown *navigation.UnknownBookmarkError
		if errors.As(err, &unknown) && name != "" {
			if s, ok := closestName(name, m.session.bookmarks()); ok {
				m.statusBar.SetError(fmt.Sprintf("%s, did you mean %q?", err, s))
				return m, nil
			}
		}
		m.statusBar.SetError(err.Error())
		return m, nil
	}
	return m.navigate(addr.String())
}

func (m Model) listBookmarks(pattern string) (tea.Model, tea.Cmd) {
	names, err := filterNames(pattern, m.session.bookmarks())
	if err != nil {
		m.statusBar.SetError(err.Error())
		return m, nil
	}

	t := theme.Current
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	nameStyle := lipgloss.NewStyle().Foreground(t.Secondary)
	addrStyle := lipgloss.NewStyle().Foreground(t.Link)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("\n  Bookmarks (%d)", len(names))))
	sb.WriteString("\n\n")
	if len(names) == 0 {
		sb.WriteString(dimStyle.Render("  No bookmarks."))
		sb.WriteString("\n")
	}
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for _, n := range names {
		addr, err := m.session.bookmark(n)
		if err != nil {
			continue
		}
		sb.WriteString(nameStyle.Render(fmt.Sprintf("  %-*s", width, n)))
		sb.WriteString("  ")
		sb.WriteString(addrStyle.Render(addr.String()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  Esc to return to the page."))

	m.pagePanel.SetText(sb.String())
	m.statusBar.SetTitle("Bookmarks")
	return m, nil
}

// followLink visits the link with the given number. The raw href goes
// through Visit, so relative hrefs resolve against the current address.
func (m Model) followLink(input string) (tea.Model, tea.Cmd) {
	num, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		m.statusBar.SetError(fmt.Sprintf("Invalid link number: %s", input))
		return m, nil
	}
	link, ok := m.pagePanel.Link(num)
	if !ok {
		m.statusBar.SetError(fmt.Sprintf("Link [%d] not found", num))
		return m, nil
	}
	return m.navigate(link.URL)
}

func (m Model) toggleHistory() (tea.Model, tea.Cmd) {
	if m.historyPanel.IsVisible() {
		return m.closeHistory(), nil
	}
	m.syncNav()
	m.historyPanel.Show()
	m.mode = ModeHistory
	m.statusBar.SetMode("HISTORY")
	m.layout()
	return m, nil
}

func (m Model) closeHistory() Model {
	m.historyPanel.Hide()
	m.mode = ModeNormal
	m.statusBar.SetMode("NORMAL")
	m.layout()
	return m
}

func (m *Model) showHelp() {
	m.pagePanel.SetText(renderHelp(m.keys, m.width))
	m.statusBar.SetTitle("Help - Keybindings")
}

// showSelectedLink puts the selected link's href in the status bar.
func (m *Model) showSelectedLink() {
	if link, ok := m.pagePanel.SelectedLink(); ok {
		m.statusBar.SetMessage(link.URL)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	st := m.session.state()
	m.logger.Info("session ended", "history", len(st.Entries), "bookmarks", len(m.session.bookmarks()))
	return m, tea.Quit
}

// syncNav re-reads the Navigator after a mutation and updates the
// controls, the history position and the history panel.
func (m *Model) syncNav() {
	st := m.session.state()
	m.urlBar.SetControls(ui.Controls{
		Back:    st.HasPrevious,
		Forward: st.HasNext,
		Home:    !st.Home.IsZero(),
	})
	m.statusBar.SetPosition(st.Cursor, len(st.Entries))

	items := make([]ui.HistoryItem, len(st.Entries))
	for i, addr := range st.Entries {
		items[i] = ui.HistoryItem{Address: addr.String()}
		if page, ok := m.loader.Cached(addr); ok {
			items[i].Title = page.Title
		}
	}
	m.historyPanel.SetItems(items, st.Cursor)
}

// syncTitle sets the status bar title and link count from the page panel.
func (m *Model) syncTitle() {
	page := m.pagePanel.Page()
	if page == nil {
		m.statusBar.SetTitle(m.session.state().Current.String())
		m.statusBar.SetLinkCount(0)
		return
	}
	m.statusBar.SetTitle(page.Title)
	m.statusBar.SetLinkCount(len(page.Links))
}
