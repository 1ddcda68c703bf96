package components

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per style and wrap width. WithAutoStyle is avoided
	// because its terminal background query can block.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// markdownStyle returns the glamour style name, honouring GLAMOUR_STYLE.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE"))) {
	case "light":
		return "light"
	case "notty", "ascii":
		return "notty"
	default:
		return "dark"
	}
}

// RenderMarkdown renders md wrapped at width. On any renderer error the raw
// markdown is returned.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
