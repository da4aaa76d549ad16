package sigcli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/corvid-labs/sigscan/sigdefs"
	"github.com/corvid-labs/sigscan/sigerr"
	"github.com/corvid-labs/sigscan/sigtree"
)

func watchCommand(c *cli.Context) error {
	defsPath := c.String("defs")
	if defsPath == "" {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"watch: --defs is required")
	}
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}

	defs, err := sigdefs.LoadFile(defsPath)
	if err != nil {
		return err
	}
	scanner := sigtree.NewScanner()
	if err := sigdefs.AddTo(scanner, defs); err != nil {
		return err
	}
	if err := scanner.Prepare(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return sigerr.Wrap(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.InitializeFailed}, err,
			"watch: failed to create fsnotify watcher")
	}
	defer watcher.Close()

	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	}); err != nil {
		return sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.OpenFailed}, err,
			"watch: failed to add watches under %q", dir)
	}

	debounceMs := c.Int("debounce-ms")
	if debounceMs <= 0 {
		debounceMs = 100
	}
	deb := newPathDebouncer(time.Duration(debounceMs)*time.Millisecond, func(path string) {
		rescanOne(scanner, path)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					deb.addEvent(event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "watch: fsnotify error: %v\n", err)
			}
		}
	}()

	fmt.Printf("watching %s (Ctrl+C to stop)\n", dir)
	<-ctx.Done()
	wg.Wait()
	return nil
}

func rescanOne(scanner *sigtree.Scanner, path string) {
	result := scanOneFile(scanner, path)
	if result.Err != "" {
		fmt.Printf("%s: error: %s\n", result.Path, result.Err)
		return
	}
	fmt.Printf("%s (%s): %d match(es)\n", result.Path, result.Digest, len(result.Matches))
	for _, m := range result.Matches {
		fmt.Printf("  %s @ %d\n", m.Identifier, m.Offset)
	}
}

// pathDebouncer batches file-change events per path, collapsing a burst of
// writes to the same file into a single rescan callback.
type pathDebouncer struct {
	mu       sync.Mutex
	pending  map[string]*time.Timer
	debounce time.Duration
	onFlush  func(path string)
}

func newPathDebouncer(debounce time.Duration, onFlush func(path string)) *pathDebouncer {
	return &pathDebouncer{
		pending:  make(map[string]*time.Timer),
		debounce: debounce,
		onFlush:  onFlush,
	}
}

func (d *pathDebouncer) addEvent(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.pending[path]; ok {
		t.Stop()
	}
	d.pending[path] = time.AfterFunc(d.debounce, func() {
		d.mu.Lock()
		delete(d.pending, path)
		d.mu.Unlock()
		d.onFlush(path)
	})
}
