// Package render draws notes for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/scribe/pkg/core"
)

const (
	dateLayout = "Jan 2, 2006"
	timeLayout = "03:04 PM"

	// EmptyTitle and EmptyHint are shown when there are no notes.
	EmptyTitle = "No notes yet"
	EmptyHint  = "Start organizing your thoughts by creating your first note!"
)

// Renderer formats notes as bordered cards.
type Renderer struct {
	Location *time.Location // Defaults to time.Local.
	Width    int            // Card width in cells. Zero lets content decide.

	card  lipgloss.Style
	title lipgloss.Style
	meta  lipgloss.Style
}

// New creates a renderer.
func New(loc *time.Location, width int) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if width > 0 {
		card = card.Width(width)
	}
	return &Renderer{
		Location: loc,
		Width:    width,
		card:     card,
		title:    lipgloss.NewStyle().Bold(true),
		meta:     lipgloss.NewStyle().Faint(true),
	}
}

// FormatDate renders the day of t, e.g. "Jan 2, 2006".
func (r *Renderer) FormatDate(t time.Time) string {
	return t.In(r.Location).Format(dateLayout)
}

// FormatTime renders the clock time of t, e.g. "03:04 PM".
func (r *Renderer) FormatTime(t time.Time) string {
	return t.In(r.Location).Format(timeLayout)
}

// Card renders one note.
func (r *Renderer) Card(n core.Note) string {
	var b strings.Builder
	b.WriteString(r.title.Render(n.Title))
	b.WriteString("  ")
	b.WriteString(r.meta.Render(n.ID))
	b.WriteString("\n\n")
	b.WriteString(n.Content)
	b.WriteString("\n\n")
	b.WriteString(r.meta.Render(fmt.Sprintf("Created %s at %s", r.FormatDate(n.CreatedAt), r.FormatTime(n.CreatedAt))))
	if !n.UpdatedAt.Equal(n.CreatedAt) {
		b.WriteString("\n")
		b.WriteString(r.meta.Render(fmt.Sprintf("Updated %s at %s", r.FormatDate(n.UpdatedAt), r.FormatTime(n.UpdatedAt))))
	}
	return r.card.Render(b.String())
}

// List renders the notes counter followed by every card, or the empty state.
func (r *Renderer) List(notes []core.Note) string {
	if len(notes) == 0 {
		return r.title.Render(EmptyTitle) + "\n" + EmptyHint + "\n"
	}

	var b strings.Builder
	b.WriteString(r.meta.Render(fmt.Sprintf("%d %s", len(notes), plural(len(notes)))))
	b.WriteString("\n")
	for _, n := range notes {
		b.WriteString(r.Card(n))
		b.WriteString("\n")
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return "note"
	}
	return "notes"
}
