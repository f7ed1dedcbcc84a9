package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
)

// ArtItem is one search result (or favorite) in a list.
type ArtItem struct {
	Record artwork.Record
	// Favorite is a membership predicate, not a snapshot, so toggling
	// updates every visible row of the same artwork at once.
	Favorite func(id string) bool
}

// FilterValue returns the string used by the list's fuzzy filter.
func (a ArtItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", a.Record.Title, a.Record.Artist, a.Record.Medium)
}

// artDelegate renders one-line rows: star, title, artist, date.
type artDelegate struct{}

func (d artDelegate) Height() int                               { return 1 }
func (d artDelegate) Spacing() int                              { return 0 }
func (d artDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d artDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	art, ok := item.(ArtItem)
	if !ok {
		return
	}

	star := "  "
	if art.Favorite != nil && art.Favorite(art.Record.ID) {
		star = StyleFavorite.Render("★") + " "
	}

	title := padOrTruncate(art.Record.Title, 42)
	artist := padOrTruncate(art.Record.Artist, 24)
	date := art.Record.Date

	var s strings.Builder
	if index == m.Index() {
		s.WriteString(StyleHighlight.Render("› "))
		s.WriteString(star)
		s.WriteString(StyleHighlight.Render(title))
	} else {
		s.WriteString("  ")
		s.WriteString(star)
		s.WriteString(StyleNormal.Render(title))
	}
	s.WriteString(" ")
	s.WriteString(StyleMeta.Render(artist))
	s.WriteString(" ")
	s.WriteString(StyleHelp.Render(date))

	_, _ = fmt.Fprint(w, s.String())
}

// padOrTruncate pads s to exactly width visible chars, truncating with "…"
// if necessary. Rune count, not byte length, so UTF-8 titles align.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	n := len(runes)
	if n > width {
		if width <= 1 {
			return "…"
		}
		return string(runes[:width-1]) + "…"
	}
	if n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
