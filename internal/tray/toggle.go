// ABOUTME: Check-menu-item binding with echo suppression for reflective updates.
// ABOUTME: Guarantees the bound action runs exactly once per genuine user click.
package tray

// CheckItem is the minimal surface of a checkable menu item. Implemented
// by *systray.MenuItem and by test spies.
type CheckItem interface {
	Check()
	Uncheck()
}

// Toggle binds a CheckItem to an action. The displayed state may be
// written two ways: Click, a genuine user interaction that runs the bound
// action, and Set, a reflective update that must never fire it. Every
// write to the visual item happens under a scoped suppression so a toolkit
// that echoes programmatic writes back as click events cannot re-enter
// the action.
type Toggle struct {
	item     CheckItem
	checked  bool
	suppress bool
	action   func(enabled bool) error
}

// NewToggle renders the initial state without firing the action.
func NewToggle(item CheckItem, checked bool, action func(enabled bool) error) *Toggle {
	t := &Toggle{item: item, action: action}
	t.Set(checked)
	return t
}

// Checked reports the currently displayed state.
func (t *Toggle) Checked() bool {
	return t.checked
}

// Click handles one user interaction: flips the displayed state and runs
// the bound action with the desired value. When the action fails, the
// displayed state is reverted under suppression so the item never shows a
// state the system did not reach.
func (t *Toggle) Click() {
	if t.suppress {
		return
	}
	desired := !t.checked
	t.checked = desired
	t.render()

	if err := t.action(desired); err != nil {
		t.Set(!desired)
	}
}

// Set applies a programmatic state change. The bound action does not run.
func (t *Toggle) Set(checked bool) {
	t.checked = checked
	t.render()
}

// render writes the checked state to the visual item under a scoped
// suppression: a toolkit that echoes the write back as a click event hits
// the suppress guard in Click instead of the action.
func (t *Toggle) render() {
	t.suppress = true
	defer func() { t.suppress = false }()
	if t.checked {
		t.item.Check()
	} else {
		t.item.Uncheck()
	}
}
