// Command wef-tool manages the CEF binary distribution that host
// applications embed.
//
//	wef-tool download [-version V] [-platform P] [-cef-root DIR] [-force]
//	wef-tool run [-cef-root DIR] [-watch] [-watch-dir DIR] <command> [args...]
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "download":
		err = cmdDownload(os.Args[2:])
	case "run":
		err = cmdRun(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: wef-tool download [-version V] [-platform P] [-cef-root DIR] [-force]")
	fmt.Fprintln(os.Stderr, "       wef-tool run [-cef-root DIR] [-watch] [-watch-dir DIR] <command> [args...]")
}

func cmdDownload(args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	version := fs.String("version", DefaultCEFVersion, "CEF version to download")
	platformName := fs.String("platform", string(PlatformAuto), "Target platform (auto, windows-x64, macos-x64, macos-arm64, linux-x64)")
	cefRoot := fs.String("cef-root", "", "Installation directory (default $CEF_ROOT or ~/.cef)")
	force := fs.Bool("force", false, "Download even if the installation directory exists")
	if err := fs.Parse(args); err != nil {
		return err
	}

	platform, err := parsePlatform(*platformName)
	if err != nil {
		return err
	}

	root := *cefRoot
	if root == "" {
		root, err = findCEFRoot()
		if err != nil {
			return err
		}
	}

	if err := downloadCEFWithUI(root, *version, platform, *force); err != nil {
		return err
	}
	fmt.Printf("Set environment variable CEF_ROOT=%s\n", root)
	return nil
}

func cmdRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cefRoot := fs.String("cef-root", "", "CEF installation directory (default $CEF_ROOT or ~/.cef)")
	watch := fs.Bool("watch", false, "Restart the command when source files change")
	watchDir := fs.String("watch-dir", ".", "Directory watched for changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmdArgs := fs.Args()
	if len(cmdArgs) == 0 {
		return fmt.Errorf("no command given, usage: wef-tool run [flags] <command> [args...]")
	}

	root := *cefRoot
	if root == "" {
		var err error
		root, err = findCEFRoot()
		if err != nil {
			return err
		}
	}
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("CEF root %s not found, run `wef-tool download` first", root)
	}

	if *watch {
		return runWatch(root, *watchDir, cmdArgs)
	}
	return runOnce(root, cmdArgs)
}
