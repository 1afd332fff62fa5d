package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aptlite/internal/config"
	"aptlite/internal/executor"
	"aptlite/internal/history"
	"aptlite/internal/ui"
	"aptlite/pkg/manager"
	"aptlite/pkg/manager/native"

	"github.com/fatih/color"
)

// fakeRunner replays canned events instead of running apt.
type fakeRunner struct {
	events   []executor.Event
	startErr error
	ran      []string
}

func (f *fakeRunner) Command(op manager.Operation, packages []string) ([]string, error) {
	args, err := op.Args(packages)
	if err != nil {
		return nil, err
	}
	return append([]string{"apt"}, args...), nil
}

func (f *fakeRunner) Run(ctx context.Context, op manager.Operation, packages []string) (<-chan executor.Event, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.ran = append(f.ran, string(op))
	ch := make(chan executor.Event, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func setupCLI(t *testing.T) *bytes.Buffer {
	t.Helper()

	t.Setenv("XDG_DATA_HOME", t.TempDir())

	var buf bytes.Buffer
	oldOut, oldNoColor, oldCfg := ui.Out, color.NoColor, cfg
	ui.Out = &buf
	color.NoColor = true
	cfg = config.Default()
	cfg.General.AutoConfirm = true
	cfg.General.History = true
	t.Cleanup(func() {
		ui.Out = oldOut
		color.NoColor = oldNoColor
		cfg = oldCfg
	})
	return &buf
}

func lastEntry(t *testing.T) *history.Entry {
	t.Helper()

	store, err := history.Open()
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	defer store.Close()

	entry, err := store.Last()
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	return entry
}

func TestStreamOperationSuccess(t *testing.T) {
	buf := setupCLI(t)
	runner := &fakeRunner{events: []executor.Event{
		{Line: "Reading package lists..."},
		{Line: "Setting up vim (2:9.0) ..."},
		{Done: true},
	}}

	if err := streamOperation(context.Background(), runner, manager.OpInstall, []string{"vim"}); err != nil {
		t.Fatalf("streamOperation() error = %v", err)
	}

	out := buf.String()
	wantOrder := []string{"Reading package lists...", "Setting up vim", manager.DoneMarker, "Operation completed."}
	pos := 0
	for _, want := range wantOrder {
		i := strings.Index(out[pos:], want)
		if i < 0 {
			t.Fatalf("output missing %q after offset %d:\n%s", want, pos, out)
		}
		pos += i + len(want)
	}

	entry := lastEntry(t)
	if entry == nil {
		t.Fatal("no history entry recorded")
	}
	if !entry.Success || entry.Lines != 2 || entry.Operation != manager.OpInstall {
		t.Errorf("entry = %+v", entry)
	}
}

func TestStreamOperationFailure(t *testing.T) {
	buf := setupCLI(t)
	runner := &fakeRunner{events: []executor.Event{
		{Line: "E: Unable to locate package nosuchpkg"},
		{Done: true, ExitCode: 100, Err: errors.New("exit status 100")},
	}}

	err := streamOperation(context.Background(), runner, manager.OpInstall, []string{"nosuchpkg"})
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("streamOperation() error = %v, want ErrOperationFailed", err)
	}
	if !strings.Contains(err.Error(), "exit status 100") {
		t.Errorf("error %q does not name the exit status", err)
	}

	out := buf.String()
	if !strings.Contains(out, manager.DoneMarker) {
		t.Errorf("done marker missing:\n%s", out)
	}
	if strings.Contains(out, "Operation completed.") {
		t.Errorf("failure reported as completed:\n%s", out)
	}
	if !strings.Contains(out, "Package not found: nosuchpkg") {
		t.Errorf("diagnosis missing:\n%s", out)
	}

	entry := lastEntry(t)
	if entry == nil || entry.Success || entry.ExitCode != 100 {
		t.Errorf("entry = %+v", entry)
	}
}

func TestStreamOperationLaunchError(t *testing.T) {
	buf := setupCLI(t)
	runner := &fakeRunner{startErr: executor.ErrNoPrivileges}

	err := streamOperation(context.Background(), runner, manager.OpUpdate, nil)
	if !errors.Is(err, executor.ErrNoPrivileges) {
		t.Fatalf("streamOperation() error = %v", err)
	}
	if strings.Contains(buf.String(), manager.DoneMarker) {
		t.Errorf("done marker written for a run that never started")
	}

	entry := lastEntry(t)
	if entry == nil || entry.ExitCode != -1 || entry.Success {
		t.Errorf("entry = %+v", entry)
	}
}

func TestStreamOperationInterrupted(t *testing.T) {
	setupCLI(t)
	runner := &fakeRunner{events: []executor.Event{{Line: "Get:1 http://deb.debian.org"}}}

	err := streamOperation(context.Background(), runner, manager.OpUpdate, nil)
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("streamOperation() error = %v", err)
	}
}

func TestStreamOperationHistoryDisabled(t *testing.T) {
	setupCLI(t)
	cfg.General.History = false
	runner := &fakeRunner{events: []executor.Event{{Done: true}}}

	if err := streamOperation(context.Background(), runner, manager.OpUpgrade, nil); err != nil {
		t.Fatalf("streamOperation() error = %v", err)
	}
	if entry := lastEntry(t); entry != nil {
		t.Errorf("history recorded while disabled: %+v", entry)
	}
}

func TestRunOperationShowsCommand(t *testing.T) {
	buf := setupCLI(t)
	runner := &fakeRunner{events: []executor.Event{{Done: true}}}

	if err := runOperation(context.Background(), runner, manager.OpRemove, []string{"nano", "ed"}); err != nil {
		t.Fatalf("runOperation() error = %v", err)
	}
	if !strings.Contains(buf.String(), "apt remove -y nano ed") {
		t.Errorf("command line not shown:\n%s", buf.String())
	}
	if len(runner.ran) != 1 || runner.ran[0] != "remove" {
		t.Errorf("ran = %v", runner.ran)
	}
}

func TestRunOperationNoSelection(t *testing.T) {
	setupCLI(t)
	runner := &fakeRunner{events: []executor.Event{{Done: true}}}

	err := runOperation(context.Background(), runner, manager.OpInstall, nil)
	if !errors.Is(err, manager.ErrNoSelection) {
		t.Fatalf("runOperation() error = %v, want ErrNoSelection", err)
	}
	if len(runner.ran) != 0 {
		t.Errorf("spawned %v with nothing selected", runner.ran)
	}
}

func TestConfigInit(t *testing.T) {
	buf := setupCLI(t)

	oldFile, oldForce := cfgFile, configForce
	cfgFile = filepath.Join(t.TempDir(), "aptlite", "config.toml")
	t.Cleanup(func() { cfgFile, configForce = oldFile, oldForce })

	if err := runConfigInit(nil, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}
	loaded, err := config.LoadFrom(cfgFile)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.APT.QueryBinary != "apt-cache" {
		t.Errorf("QueryBinary = %q", loaded.APT.QueryBinary)
	}

	buf.Reset()
	if err := runConfigInit(nil, nil); err != nil {
		t.Fatalf("second runConfigInit() error = %v", err)
	}
	if !strings.Contains(buf.String(), "already exists") {
		t.Errorf("existing file not reported:\n%s", buf.String())
	}
}

func TestOpenHistoryPrunesOldEntries(t *testing.T) {
	setupCLI(t)
	cfg.General.HistoryDays = 30

	store, err := history.Open()
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	old := history.NewEntry(manager.OpUpdate, nil)
	old.Timestamp = time.Now().Add(-60 * 24 * time.Hour)
	recent := history.NewEntry(manager.OpInstall, []string{"vim"})
	for _, e := range []*history.Entry{old, recent} {
		if err := store.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	store.Close()

	store, err = openHistory()
	if err != nil {
		t.Fatalf("openHistory() error = %v", err)
	}
	defer store.Close()

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ID != recent.ID {
		t.Errorf("entries = %+v, want only the recent one", entries)
	}
}

func TestInstallDryRun(t *testing.T) {
	buf := setupCLI(t)
	cfg.General.DryRun = true

	oldApt := apt
	apt = native.NewAPT(cfg.APT, executor.New(true, false))
	t.Cleanup(func() { apt = oldApt })

	if err := runInstall(nil, []string{"vim", "git"}); err != nil {
		t.Fatalf("runInstall() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		ui.SymbolChecked + " vim",
		ui.SymbolChecked + " git",
		"[dry-run] Would execute: ",
		"install -y vim git",
		manager.DoneMarker,
		"Operation completed.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
