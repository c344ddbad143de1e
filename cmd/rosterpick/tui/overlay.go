package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Overlay renders a centered Yes/No modal on top of existing content.
type Overlay struct {
	title   string
	message string
	cancel  string
	ok      string
	cursor  int // 0=Cancel, 1=OK
	active  bool
}

// NewConfirmOverlay creates a confirmation dialog. The cursor starts on the
// cancel button so a stray enter keeps the user's work.
func NewConfirmOverlay(title, message, cancel, ok string) Overlay {
	return Overlay{
		title:   title,
		message: message,
		cancel:  cancel,
		ok:      ok,
		active:  true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch key.String() {
	case "esc", "n":
		o.active = false
		return o, func() tea.Msg {
			return OverlayCloseMsg{Confirmed: false}
		}
	case "y":
		o.active = false
		return o, func() tea.Msg {
			return OverlayCloseMsg{Confirmed: true}
		}
	case "tab", "left", "right", "h", "l":
		o.cursor = 1 - o.cursor
	case "enter":
		o.active = false
		confirmed := o.cursor == 1
		return o, func() tea.Msg {
			return OverlayCloseMsg{Confirmed: confirmed}
		}
	}
	return o, nil
}

// View renders the overlay box. It does not composite over a background;
// that is the caller's responsibility using Composite().
func (o Overlay) View() string {
	if !o.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	b.WriteString(o.message)
	b.WriteString("\n\n")
	b.WriteString(o.renderButtons())
	return OverlayStyle.Render(b.String())
}

// renderButtons draws two side-by-side buttons with the cursor on one.
func (o Overlay) renderButtons() string {
	cancelBtn := OverlayButtonInactiveStyle.Render(o.cancel)
	okBtn := OverlayButtonInactiveStyle.Render(o.ok)
	if o.cursor == 0 {
		cancelBtn = OverlayButtonActiveStyle.Render(o.cancel)
	} else {
		okBtn = OverlayButtonActiveStyle.Render(o.ok)
	}
	return cancelBtn + "  " + okBtn
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := ansi.StringWidth(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}

		bgRunes := []rune(ansi.Strip(bgLines[row]))
		left := ""
		if startCol <= len(bgRunes) {
			left = string(bgRunes[:startCol])
		} else {
			left = string(bgRunes) + strings.Repeat(" ", startCol-len(bgRunes))
		}
		right := ""
		if end := startCol + ansi.StringWidth(overlayLine); end < len(bgRunes) {
			right = string(bgRunes[end:])
		}
		bgLines[row] = left + overlayLine + right
	}

	if len(bgLines) > totalHeight && totalHeight > 0 {
		bgLines = bgLines[:totalHeight]
	}
	return strings.Join(bgLines, "\n")
}
