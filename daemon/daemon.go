package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"globalaccel/accel"
	"globalaccel/config"
	"globalaccel/keys"
	"globalaccel/log"
	"globalaccel/ui/debounce"
)

// Source is a grab backend that also reports presses of grabbed keys.
type Source interface {
	accel.Backend
	Events() <-chan keys.Combo
	Close() error
}

// Options configures a Daemon.
type Options struct {
	// Dir holds config.toml, actions.toml and the shortcut files.
	Dir    string
	Source Source
	// Run starts action commands. Defaults to ExecRunner.
	Run config.Runner
	// DetectMeta reports whether the keyboard has a Meta key. It is only
	// consulted when meta_key is "auto".
	DetectMeta func() bool
}

// Daemon owns the registry and the manager and serves key presses from
// a single goroutine.
type Daemon struct {
	cfg  *config.Config
	opts Options

	reg   *accel.Registry
	mgr   *accel.Manager
	store *config.FileStore
	fleet *accel.Fleet

	watcher *fsnotify.Watcher
	reload  *debounce.Debouncer
	// Set by file events, consumed by the next debounced reload.
	actionsChanged   bool
	shortcutsChanged bool

	chordTimer *time.Timer
}

// New loads actions and bindings from opts.Dir and grabs their keys.
// Invalid action definitions are logged and skipped.
func New(cfg *config.Config, opts Options) (*Daemon, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("no key source")
	}
	if opts.Run == nil {
		opts.Run = ExecRunner
	}
	store, err := config.OpenFileStore(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open shortcut store: %w", err)
	}

	d := &Daemon{
		cfg:    cfg,
		opts:   opts,
		store:  store,
		fleet:  accel.NewFleet(),
		reload: debounce.New(cfg.ReloadDebounce()),
	}
	d.fleet.BlockShortcuts(ShortcutsBlocked(opts.Dir))
	if err := d.loadActions(); err != nil {
		return nil, err
	}
	return d, nil
}

// loadActions builds a fresh registry from actions.toml and the shortcut
// files and attaches a new manager to it. Any previous manager releases
// its keys first.
func (d *Daemon) loadActions() error {
	file, err := config.LoadActions(d.opts.Dir)
	if err != nil {
		return err
	}
	if err := d.store.Reload(); err != nil {
		return err
	}
	reg := accel.NewRegistry(
		accel.WithMetaProbe(d.cfg.MetaProbe(d.opts.DetectMeta)),
		accel.WithExpander(d.cfg.Expander()),
	)
	if err := file.Register(reg, d.opts.Run); err != nil {
		log.ErrorLog.Printf("invalid action definitions: %v", err)
	}
	reg.ReadAll(d.store, d.cfg.Group)

	if d.mgr != nil {
		d.mgr.Close()
	}
	d.reg = reg
	d.mgr = accel.NewManager(reg, d.opts.Source, accel.WithFleet(d.fleet))
	log.InfoLog.Printf("loaded %d actions, %d keys grabbed", reg.Len(), len(d.mgr.Keys()))
	return nil
}

// reloadShortcuts re-reads the shortcut files. Entries that disappeared
// fall back to the defaults. The manager applies the result in one
// rebuild.
func (d *Daemon) reloadShortcuts() error {
	if err := d.store.Reload(); err != nil {
		return err
	}
	d.mgr.SetAutoUpdate(false)
	for _, a := range d.reg.Actions() {
		if a.Configurable() && !a.IsLabel() {
			a.SetShortcuts(a.EffectiveDefaults())
		}
	}
	d.reg.ReadAll(d.store, d.cfg.Group)
	d.mgr.SetAutoUpdate(true)
	log.InfoLog.Printf("reloaded shortcuts, %d keys grabbed", len(d.mgr.Keys()))
	return nil
}

// applyReload handles the file changes gathered since the last reload.
// A rebuild from actions.toml also re-reads the shortcut files; if it
// fails, pending shortcut changes are still applied to the current
// registry.
func (d *Daemon) applyReload() {
	actions, shortcuts := d.actionsChanged, d.shortcutsChanged
	d.actionsChanged, d.shortcutsChanged = false, false

	if actions {
		err := d.loadActions()
		if err == nil {
			return
		}
		log.ErrorLog.Printf("failed to reload actions, keeping current ones: %v", err)
	}
	if shortcuts {
		if err := d.reloadShortcuts(); err != nil {
			log.ErrorLog.Printf("reload failed, keeping current bindings: %v", err)
		}
	}
}

// Registry returns the live registry. It is replaced when actions.toml
// changes.
func (d *Daemon) Registry() *accel.Registry { return d.reg }

// Manager returns the live manager.
func (d *Daemon) Manager() *accel.Manager { return d.mgr }

// applyBlock releases or regrabs every key to match the block file.
func (d *Daemon) applyBlock() {
	blocked := ShortcutsBlocked(d.opts.Dir)
	if blocked == d.fleet.Blocked() {
		return
	}
	d.fleet.BlockShortcuts(blocked)
	if blocked {
		log.InfoLog.Printf("shortcuts blocked")
	} else {
		log.InfoLog.Printf("shortcuts unblocked, %d keys grabbed", len(d.mgr.Keys()))
	}
}

// handleKey dispatches one press and arms the chord timeout while a chord
// is partly typed.
func (d *Daemon) handleKey(c keys.Combo) {
	if !d.mgr.Activate(c) {
		log.InfoLog.Printf("no action for %s", c)
	}
	if d.chordTimer != nil {
		d.chordTimer.Stop()
		d.chordTimer = nil
	}
	if d.mgr.ChordPending() && d.cfg.ChordTimeoutMs > 0 {
		d.chordTimer = time.NewTimer(d.cfg.ChordTimeout())
	}
}

// handleFileEvent marks which part of the configuration needs a reload.
func (d *Daemon) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	switch filepath.Base(event.Name) {
	case config.BlockFileName:
		d.applyBlock()
		return
	case config.ActionsFileName:
		d.actionsChanged = true
	case config.LocalFileName, config.GlobalFileName:
		d.shortcutsChanged = true
	default:
		return
	}
	log.InfoLog.Printf("detected change in file %s", event.Name)
	d.reload.Trigger()
}

// Run serves key presses until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	var fileEvents <-chan fsnotify.Event
	var fileErrors <-chan error
	if d.cfg.WatchConfig {
		w, err := watchDir(d.opts.Dir)
		if err != nil {
			log.ErrorLog.Printf("failed to setup file watcher: %v", err)
		} else {
			d.watcher = w
			fileEvents, fileErrors = w.Events, w.Errors
		}
	}

	// Watcher errors tend to repeat.
	everyN := log.NewEvery(30 * time.Second)

	for {
		var chordTimeout <-chan time.Time
		if d.chordTimer != nil {
			chordTimeout = d.chordTimer.C
		}

		select {
		case <-ctx.Done():
			log.InfoLog.Printf("stopping daemon")
			return nil
		case c, ok := <-d.opts.Source.Events():
			if !ok {
				return fmt.Errorf("key source closed")
			}
			d.handleKey(c)
		case <-chordTimeout:
			d.chordTimer = nil
			log.InfoLog.Printf("chord timed out")
			d.mgr.CancelChord()
		case event, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			d.handleFileEvent(event)
		case err, ok := <-fileErrors:
			if !ok {
				fileErrors = nil
				continue
			}
			if everyN.ShouldLog() {
				log.ErrorLog.Printf("watcher error: %v", err)
			}
		case <-d.reload.C():
			d.applyReload()
		}
	}
}

// Close releases every key and stops watching files.
func (d *Daemon) Close() error {
	d.reload.Cancel()
	if d.chordTimer != nil {
		d.chordTimer.Stop()
	}
	d.mgr.Close()
	if d.watcher != nil {
		if err := d.watcher.Close(); err != nil {
			log.WarningLog.Printf("failed to close watcher: %v", err)
		}
	}
	return d.opts.Source.Close()
}

// watchDir watches the config directory itself, so files replaced by
// rename are still seen.
func watchDir(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to add config directory to watcher: %w", err)
	}
	log.InfoLog.Printf("watching config directory for changes: %s", dir)
	return watcher, nil
}

// RunDaemon runs a daemon until ctx is done, then releases its keys.
func RunDaemon(ctx context.Context, cfg *config.Config, opts Options) error {
	log.InfoLog.Printf("starting daemon")
	d, err := New(cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.ErrorLog.Printf("failed to close key source: %v", err)
		}
	}()
	return d.Run(ctx)
}
