// Package panel implements the content-panel state machine: exactly one
// panel is visible at a time, and a panel is only shown after a matching
// request for it.
package panel

import "fmt"

// Kind identifies a content panel.
type Kind int

const (
	Default Kind = iota
	Loading
	Analysis
	Alerts
	External
	Status
	AiNetwork
)

var kindNames = [...]string{"default", "loading", "analysis", "alerts", "external", "status", "ai_network"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Icon names the header icon shown for a resolved panel.
func (k Kind) Icon() string {
	switch k {
	case Analysis:
		return "robot"
	case Alerts:
		return "bell"
	case External:
		return "globe"
	case Status:
		return "cogs"
	case AiNetwork:
		return "network"
	default:
		return "chart-line"
	}
}

// Header is the panel title area.
type Header struct {
	Icon     string
	Title    string
	Subtitle string
	Spinning bool
}

// Controller owns the panel state. It is not safe for concurrent use; the
// caller's event loop serialises access.
type Controller struct {
	state   Kind
	target  Kind // last requested panel, valid while state == Loading
	header  Header
	loading string
	bodies  map[Kind]string
}

// New returns a controller showing the default panel.
func New() *Controller {
	return &Controller{
		state:  Default,
		header: Header{Icon: Default.Icon(), Title: "Dashboard"},
		bodies: make(map[Kind]string),
	}
}

// State returns the visible panel.
func (c *Controller) State() Kind { return c.state }

// Target returns the panel the current Loading state is waiting for, or
// Default when nothing is loading.
func (c *Controller) Target() Kind {
	if c.state != Loading {
		return Default
	}
	return c.target
}

// Header returns the current title area.
func (c *Controller) Header() Header { return c.header }

// LoadingMessage returns the message shown while loading.
func (c *Controller) LoadingMessage() string { return c.loading }

// Visible reports whether k is the panel on screen.
func (c *Controller) Visible(k Kind) bool { return c.state == k }

// Request hides every content panel and shows the loading panel for
// target. A later request replaces the target of an earlier one.
func (c *Controller) Request(target Kind, title, loadingMessage string) {
	c.state = Loading
	c.target = target
	c.loading = loadingMessage
	c.header = Header{Icon: "spinner", Title: title, Spinning: true}
}

// Resolve shows kind with the given header and body. It returns false and
// changes nothing unless kind is the target of the pending request.
func (c *Controller) Resolve(kind Kind, title, subtitle, body string) bool {
	if c.state != Loading || kind != c.target {
		return false
	}
	c.state = kind
	c.loading = ""
	c.header = Header{Icon: kind.Icon(), Title: title, Subtitle: subtitle}
	c.bodies[kind] = body
	return true
}

// Body returns the body currently on screen.
func (c *Controller) Body() string {
	if c.state == Loading {
		return c.loading
	}
	return c.bodies[c.state]
}

// Text returns the last body rendered into panel k, visible or not.
func (c *Controller) Text(k Kind) string { return c.bodies[k] }
