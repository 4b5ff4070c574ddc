package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// runOnce runs the host application once with CEF_ROOT exported.
func runOnce(cefRoot string, args []string) error {
	cmd := hostCommand(cefRoot, args)
	return cmd.Run()
}

// runWatch runs the host application and restarts it whenever a source
// file under dir changes.
func runWatch(cefRoot, dir string, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchTree(watcher, dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	restart := make(chan struct{}, 1)
	go watchLoop(watcher, restart)

	for {
		cmd := hostCommand(cefRoot, args)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start %s: %w", args[0], err)
		}

		done := make(chan error, 1)
		go func() { done <- cmd.Wait() }()

		select {
		case <-restart:
			_ = cmd.Process.Kill()
			<-done
		case err := <-done:
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s exited: %v\n", args[0], err)
			}
			<-restart
		}
		fmt.Println("Restarting...")
	}
}

func hostCommand(cefRoot string, args []string) *exec.Cmd {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(), "CEF_ROOT="+cefRoot)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// watchLoop debounces file events into restart requests. A burst of
// events (editors write several files) produces a single restart.
func watchLoop(watcher *fsnotify.Watcher, restart chan<- struct{}) {
	var debounce *time.Timer
	const debounceDelay = 300 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addWatchTree(watcher, event.Name)
					continue
				}
			}
			if !watchedFile(event.Name) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case restart <- struct{}{}:
				default:
				}
			})

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func watchedFile(name string) bool {
	switch filepath.Ext(name) {
	case ".go", ".mod", ".js", ".html", ".css":
		return true
	}
	return false
}

func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
