package participant

import (
	"chat-relay/domain"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
)

// Renderer prints relay text for the user. System lines get a color when
// colours are enabled; the bare keepalive acknowledgement is suppressed
// so it never clutters the terminal.
type Renderer struct {
	out     io.Writer
	colours bool
}

func NewRenderer(out io.Writer, colours bool) *Renderer {
	return &Renderer{out: out, colours: colours}
}

// Render writes one inbound payload. Returns whether anything was shown.
func (r *Renderer) Render(payload []byte) bool {
	text := string(payload)
	if text == domain.Pong {
		return false
	}

	if r.colours && strings.HasPrefix(text, "SYSTEM:") {
		text = color.New(color.FgYellow).Render(text)
	}
	fmt.Fprintln(r.out, strings.TrimRight(text, "\n"))
	return true
}
