// ABOUTME: Tray presenter: keeps the two toggles and the icon consistent with
// ABOUTME: inhibitor liveness and preferences under both user and programmatic updates.
package tray

import (
	"github.com/awake-desktop/awake/internal/config"
	"github.com/awake-desktop/awake/internal/logging"
)

// Inhibitor is the sleep-lock controller surface the presenter drives.
type Inhibitor interface {
	Enable() error
	Disable() error
	Active() bool
}

// Registrar toggles the login-time service registration.
type Registrar interface {
	Enable() error
	Disable() error
	Enabled() (bool, error)
}

// Notifier surfaces non-fatal failures to the user.
type Notifier interface {
	Warn(summary, body string)
}

// Presenter wires the tray controls to the inhibitor, the autostart
// registrar and the preference store. Tray state is derived, never
// authoritative: the icon and the keep-awake check are keyed off
// Inhibitor.Active(), not off the last command issued.
type Presenter struct {
	inhibitor Inhibitor
	registrar Registrar
	reporter  Notifier
	prefs     config.Preferences
	save      func(config.Preferences) error
	setIcon   func(active bool)

	keepAwake *Toggle
	autostart *Toggle
}

func NewPresenter(
	inh Inhibitor,
	reg Registrar,
	rep Notifier,
	prefs config.Preferences,
	save func(config.Preferences) error,
	setIcon func(active bool),
) *Presenter {
	return &Presenter{
		inhibitor: inh,
		registrar: reg,
		reporter:  rep,
		prefs:     prefs,
		save:      save,
		setIcon:   setIcon,
	}
}

// Bind attaches the menu items and renders initial state. The keep-awake
// check reflects actual inhibitor liveness; the autostart check reflects
// the probed registration state, falling back to the stored preference.
func (p *Presenter) Bind(keepAwakeItem, autostartItem CheckItem) {
	p.keepAwake = NewToggle(keepAwakeItem, p.inhibitor.Active(), p.toggleKeepAwake)

	autostartOn := p.prefs.Autostart
	if probed, err := p.registrar.Enabled(); err == nil {
		autostartOn = probed
	} else {
		logging.Debug("autostart probe failed, using stored preference: %v", err)
	}
	p.autostart = NewToggle(autostartItem, autostartOn, p.toggleAutostart)

	p.refreshIcon()
}

// HandleKeepAwakeClick processes a user click on the keep-awake item.
func (p *Presenter) HandleKeepAwakeClick() {
	p.keepAwake.Click()
}

// HandleAutostartClick processes a user click on the autostart item.
func (p *Presenter) HandleAutostartClick() {
	p.autostart.Click()
}

// Resync reconciles displayed state with inhibitor liveness. Run
// periodically so a sleep-lock process killed out-of-band does not leave
// a stale icon or check. Preferences are not rewritten: the user did not
// change their mind, the process died.
func (p *Presenter) Resync() {
	active := p.inhibitor.Active()
	if p.keepAwake.Checked() != active {
		logging.Warn("inhibitor state drifted (displayed %v, actual %v), resyncing",
			p.keepAwake.Checked(), active)
		p.keepAwake.Set(active)
		p.refreshIcon()
	}
}

// Preferences returns the current in-memory preferences.
func (p *Presenter) Preferences() config.Preferences {
	return p.prefs
}

func (p *Presenter) toggleKeepAwake(enabled bool) error {
	var err error
	if enabled {
		err = p.inhibitor.Enable()
	} else {
		err = p.inhibitor.Disable()
	}
	if err != nil {
		logging.Error("keep-awake toggle failed: %v", err)
		p.reporter.Warn("Keep awake failed", err.Error())
		p.refreshIcon()
		return err
	}

	p.prefs.EnabledByDefault = enabled
	p.persist()
	p.refreshIcon()
	return nil
}

func (p *Presenter) toggleAutostart(enabled bool) error {
	var err error
	if enabled {
		err = p.registrar.Enable()
	} else {
		err = p.registrar.Disable()
	}
	if err != nil {
		logging.Error("autostart toggle failed: %v", err)
		p.reporter.Warn("Autostart change failed", err.Error())
		return err
	}

	p.prefs.Autostart = enabled
	p.persist()
	return nil
}

func (p *Presenter) persist() {
	if err := p.save(p.prefs); err != nil {
		logging.Error("failed to save preferences: %v", err)
		p.reporter.Warn("Could not save preferences", err.Error())
	}
}

func (p *Presenter) refreshIcon() {
	p.setIcon(p.inhibitor.Active())
}
