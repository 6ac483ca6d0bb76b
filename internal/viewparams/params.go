// Package viewparams maps the URL-mirrored slice of view state (active tab,
// dashboard, sidebar panel, open document) to query-string entries and back,
// so navigation state survives reload and back/forward.
package viewparams

import (
	"net/url"

	"github.com/google/uuid"

	"docboard/internal/domain"
)

// Query keys form a closed set; unrecognized keys are ignored on parse.
const (
	keyTab       = "tab"
	keyDashboard = "dashboard"
	keyPanel     = "panel"
	keyDocument  = "doc"
)

// Params is the URL-synchronized view state.
type Params struct {
	Tab       domain.Tab
	Dashboard uuid.UUID
	Panel     domain.SidebarPanel
	Document  uuid.UUID
}

// Defaults returns the params navigation falls back to.
func Defaults() Params {
	return Params{Tab: domain.DefaultTab}
}

// Parse reads recognized keys from a query string. Unknown or malformed
// values fall back to their documented defaults; Parse never fails.
func Parse(values url.Values) Params {
	p := Defaults()

	if tab := domain.Tab(values.Get(keyTab)); domain.KnownTabs[tab] {
		p.Tab = tab
	}
	if panel := domain.SidebarPanel(values.Get(keyPanel)); domain.KnownPanels[panel] {
		p.Panel = panel
	}
	if id, err := uuid.Parse(values.Get(keyDashboard)); err == nil {
		p.Dashboard = id
	}
	if id, err := uuid.Parse(values.Get(keyDocument)); err == nil {
		p.Document = id
	}
	return p
}

// Serialize writes params to a query string. Defaults are omitted so that
// shared URLs stay minimal; Parse(Serialize(p)) == p for all valid p.
func Serialize(p Params) url.Values {
	values := url.Values{}
	if p.Tab != domain.DefaultTab && domain.KnownTabs[p.Tab] {
		values.Set(keyTab, string(p.Tab))
	}
	if p.Panel != domain.PanelNone {
		values.Set(keyPanel, string(p.Panel))
	}
	if p.Dashboard != uuid.Nil {
		values.Set(keyDashboard, p.Dashboard.String())
	}
	if p.Document != uuid.Nil {
		values.Set(keyDocument, p.Document.String())
	}
	return values
}
