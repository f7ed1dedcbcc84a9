package tui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
	"github.com/blackwell-systems/curatorctl/internal/cache"
	"github.com/blackwell-systems/curatorctl/internal/favorites"
	"github.com/blackwell-systems/curatorctl/internal/met"
)

// BrowserConfig wires the browser to the rest of the program.
type BrowserConfig struct {
	Client  *met.Client
	Store   *favorites.Store
	Set     *favorites.Set
	Cache   *cache.Manager
	Options met.SearchOptions // filters for the initial (and re-run) search
}

// keyMap defines keyboard shortcuts
type keyMap struct {
	quit    key.Binding
	toggle  key.Binding
	preview key.Binding
	search  key.Binding
	favs    key.Binding
	filter  key.Binding
}

var keys = keyMap{
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	toggle: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	preview: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "preview"),
	),
	search: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "new search"),
	),
	favs: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "favorites pane"),
	),
	filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
}

// Messages crossing the worker/event-loop boundary.
type resultMsg met.Result

type imageMsg struct {
	id   string
	data []byte
	err  error
}

// browserModel is the event-loop state. All mutation happens here, on the
// bubbletea goroutine; workers only ever send messages.
type browserModel struct {
	cfg BrowserConfig

	results  list.Model
	favs     []artwork.Record
	spin     spinner.Model
	query    textinput.Model
	querying bool // query input has focus

	// One queue is shared by every search invocation; generation tags let
	// the consumer drop deliveries from superseded searches.
	ch       chan met.Result
	gen      int
	fetching bool

	protocol TerminalImageProtocol
	image    string // rendered escape sequence for the preview pane
	imageID  string

	showFavs bool
	status   string
	width    int
	height   int
}

// RunBrowser opens the interactive results/favorites browser and blocks
// until the user quits.
func RunBrowser(cfg BrowserConfig) error {
	favRecords, err := cfg.Store.List(cfg.Set.User())
	if err != nil {
		return err
	}

	delegate := artDelegate{}
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Search Results"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleMeta

	q := textinput.New()
	q.Placeholder = "title or keywords"
	q.SetValue(cfg.Options.Query)
	q.CharLimit = 120

	m := browserModel{
		cfg:      cfg,
		results:  l,
		favs:     favRecords,
		spin:     sp,
		query:    q,
		ch:       make(chan met.Result, 64),
		gen:      1,
		fetching: true,
		protocol: DetectImageProtocol(),
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m browserModel) Init() tea.Cmd {
	// The model itself already carries generation 1 in fetching state;
	// Init only launches the producer.
	return tea.Batch(searchCmd(m.cfg.Client, m.cfg.Options, m.gen, m.ch), m.spin.Tick)
}

// startSearch begins a new fetch generation. The previous generation may
// still be delivering; its results are recognized by tag and dropped.
func (m *browserModel) startSearch() tea.Cmd {
	m.gen++
	m.fetching = true
	m.status = ""
	m.results.SetItems(nil)

	opts := m.cfg.Options
	opts.Query = m.query.Value()
	return searchCmd(m.cfg.Client, opts, m.gen, m.ch)
}

// searchCmd spawns the fetch pipeline off the event loop and waits for its
// first delivery. Each generation starts its own receive chain on the shared
// channel; a chain from a superseded generation may stay parked on ch until
// the next search feeds it. Every message is still received exactly once,
// and Update routes it by generation tag, so the extra receiver is benign.
func searchCmd(client *met.Client, opts met.SearchOptions, gen int, ch chan met.Result) tea.Cmd {
	req := client.NewSearchWith(opts)
	return func() tea.Msg {
		go met.Stream(context.Background(), req, gen, ch)
		return resultMsg(<-ch)
	}
}

func waitForResult(ch chan met.Result) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-ch)
	}
}

func (m *browserModel) loadImage(rec artwork.Record) tea.Cmd {
	if rec.ImageURL == "" {
		m.status = "no image for " + rec.Title
		return nil
	}
	client := m.cfg.Client
	cacheMgr := m.cfg.Cache
	return func() tea.Msg {
		if data, err := cacheMgr.Read(rec.ID); err == nil {
			return imageMsg{id: rec.ID, data: data}
		}
		data, err := client.FetchImage(context.Background(), rec.ImageURL)
		if err != nil {
			return imageMsg{id: rec.ID, err: err}
		}
		_, _ = cacheMgr.Store(rec.ID, bytes.NewReader(data))
		return imageMsg{id: rec.ID, data: data}
	}
}

// toggleFavorite flips the selected record and updates both render targets:
// the result row's star and the favorites pane.
func (m *browserModel) toggleFavorite() {
	item, ok := m.results.SelectedItem().(ArtItem)
	if !ok {
		return
	}
	rec := item.Record

	status, err := m.cfg.Set.Toggle(rec)
	if err != nil {
		m.status = StyleError.Render("favorite failed: " + err.Error())
		return
	}
	switch status {
	case favorites.Added:
		m.favs = append(m.favs, rec)
		artwork.SortByTitle(m.favs)
		m.status = "added " + rec.Title
	case favorites.Removed:
		for i := range m.favs {
			if m.favs[i].ID == artwork.NormalizeID(rec.ID) {
				m.favs = append(m.favs[:i], m.favs[i+1:]...)
				break
			}
		}
		m.status = "removed " + rec.Title
	}
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(m.listWidth(), m.height-6)
		return m, nil

	case resultMsg:
		if msg.Generation != m.gen {
			// Superseded search still draining; ignore and keep listening.
			return m, waitForResult(m.ch)
		}
		if msg.Err != nil {
			// A failed search leaves the prior favorites pane untouched.
			m.fetching = false
			m.status = StyleError.Render("search failed: " + msg.Err.Error())
			return m, nil
		}
		if msg.Record.IsSentinel() {
			m.fetching = false
			m.status = fmt.Sprintf("%d result(s)", len(m.results.Items()))
			return m, nil
		}
		cmd := m.results.InsertItem(len(m.results.Items()),
			ArtItem{Record: msg.Record, Favorite: m.cfg.Set.IsFavorite})
		return m, tea.Batch(cmd, waitForResult(m.ch))

	case imageMsg:
		if msg.err != nil {
			// One bad image never aborts the results render.
			m.status = StyleError.Render("image load failed")
			return m, nil
		}
		m.image = RenderInlineImageBytes(msg.data, m.protocol)
		m.imageID = msg.id
		m.showFavs = false
		if m.image == "" {
			m.status = "terminal has no inline image support"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.querying {
			switch msg.String() {
			case "enter":
				m.querying = false
				m.query.Blur()
				cmd := m.startSearch()
				return m, cmd
			case "esc":
				m.querying = false
				m.query.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.query, cmd = m.query.Update(msg)
			return m, cmd
		}

		// Let the list's filter input swallow keys while filtering.
		if m.results.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.toggle):
			m.toggleFavorite()
			return m, nil
		case key.Matches(msg, keys.preview):
			if item, ok := m.results.SelectedItem().(ArtItem); ok {
				cmd := m.loadImage(item.Record)
				return m, cmd
			}
			return m, nil
		case key.Matches(msg, keys.search):
			m.querying = true
			m.query.Focus()
			return m, textinput.Blink
		case key.Matches(msg, keys.favs):
			m.showFavs = !m.showFavs
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m browserModel) listWidth() int {
	w := m.width * 3 / 5
	if w < 40 {
		w = 40
	}
	return w
}

func (m browserModel) View() string {
	header := StyleHeader.Render("Met Museum Curator")
	if m.fetching {
		header += "  " + m.spin.View() + StyleHelp.Render("fetching…")
	}

	queryLine := StyleHelp.Render("query: ") + m.query.View()

	var side string
	switch {
	case m.showFavs:
		side = m.favsPane()
	case m.image != "":
		side = StylePane.Render(m.image)
	default:
		side = m.favsPane()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.results.View(), side)

	help := StyleHelp.Render("f favorite · enter preview · s search · tab favorites · / filter · q quit")
	status := m.status

	return lipgloss.JoinVertical(lipgloss.Left, header, queryLine, body, status, help)
}

// favsPane renders the favorites of the current user. It and the result rows
// are two views over the same logical artworks; both change on toggle.
func (m browserModel) favsPane() string {
	title := StyleHeader.Render(fmt.Sprintf("Favorites (%d)", len(m.favs)))
	lines := []string{title}
	maxRows := m.height - 8
	for i, r := range m.favs {
		if maxRows > 0 && i >= maxRows {
			lines = append(lines, StyleHelp.Render(fmt.Sprintf("… and %d more", len(m.favs)-i)))
			break
		}
		lines = append(lines,
			StyleFavorite.Render("★ ")+StyleNormal.Render(padOrTruncate(r.Title, 30)))
	}
	if len(m.favs) == 0 {
		lines = append(lines, StyleHelp.Render("none yet — press f on a result"))
	}
	return StylePane.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
