// Package template expands placeholders in entry templates.
//
// Templates come from the configuration, keyed by file extension, and are
// applied once when an entry is created. The store never sees unexpanded
// placeholders.
package template

import (
	"strings"
	"time"
)

// Recognized placeholders.
const (
	PlaceholderDate      = "{{DATE}}"
	PlaceholderTime      = "{{TIME}}"
	PlaceholderWorkspace = "{{WORKSPACE}}"
	PlaceholderTitle     = "{{TITLE}}"
)

// Context supplies the values substituted into a template.
type Context struct {
	// Now is the timestamp for {{DATE}} and {{TIME}}.
	Now time.Time
	// Workspace replaces {{WORKSPACE}}.
	Workspace string
	// Title replaces {{TITLE}}; conventionally the entry identifier.
	Title string
}

// Expand replaces every recognized placeholder in body. Unknown tokens are
// left alone; they belong to the user's content.
func Expand(body string, ctx Context) string {
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}

	return strings.NewReplacer(
		PlaceholderDate, now.Format("2006-01-02"),
		PlaceholderTime, now.Format("15:04"),
		PlaceholderWorkspace, ctx.Workspace,
		PlaceholderTitle, ctx.Title,
	).Replace(body)
}
