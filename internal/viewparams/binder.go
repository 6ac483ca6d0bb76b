package viewparams

import (
	"net/url"

	"docboard/internal/state"
)

// History abstracts the navigation environment the binder writes to.
type History interface {
	Push(values url.Values)
	Replace(values url.Values)
}

// Binder keeps the store's view-state slice and the URL in sync in both
// directions. Store commits push a history entry (or replace, when marked);
// external navigation is applied back to the store with unknown values
// falling back to defaults instead of erroring.
type Binder struct {
	store   *state.Store
	history History

	applying    bool
	replaceNext bool
	unsubscribe func()
}

// NewBinder wires a store to a history environment and starts mirroring.
func NewBinder(store *state.Store, history History) *Binder {
	b := &Binder{store: store, history: history}
	b.unsubscribe = store.Subscribe(selectParams, b.onStoreChange)
	return b
}

func selectParams(s state.Snapshot) interface{} {
	return Params{
		Tab:       s.ActiveTab,
		Dashboard: s.ActiveDashboard,
		Panel:     s.ActivePanel,
		Document:  s.ActiveDocumentID,
	}
}

// onStoreChange mirrors a committed view-state change to the URL. Changes
// caused by HandleNavigation are suppressed to avoid echo loops.
func (b *Binder) onStoreChange(v interface{}) {
	if b.applying {
		return
	}
	params := v.(Params)
	values := Serialize(params)
	if b.replaceNext {
		b.replaceNext = false
		b.history.Replace(values)
		return
	}
	b.history.Push(values)
}

// MarkReplace makes the next mirrored change replace the current history
// entry instead of pushing a new one.
func (b *Binder) MarkReplace() {
	b.replaceNext = true
}

// HandleNavigation applies an external URL change (reload, back button) to
// the store. Malformed values land on defaults; the resulting store commit
// is not mirrored back to history.
func (b *Binder) HandleNavigation(values url.Values) error {
	params := Parse(values)
	b.applying = true
	defer func() { b.applying = false }()
	return b.store.SetState(state.Patch{
		ActiveTab:        &params.Tab,
		ActivePanel:      &params.Panel,
		ActiveDashboard:  &params.Dashboard,
		ActiveDocumentID: &params.Document,
	})
}

// Close stops mirroring store changes.
func (b *Binder) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}
