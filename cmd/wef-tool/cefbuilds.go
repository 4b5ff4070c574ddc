package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultCEFVersion is the engine build the library is developed against.
const DefaultCEFVersion = "137.0.10+g7e14fe1+chromium-137.0.7151.69"

// Platform selects a CEF binary distribution from the cef-builds CDN.
type Platform string

const (
	PlatformAuto       Platform = "auto"
	PlatformWindowsX64 Platform = "windows-x64"
	PlatformMacOSX64   Platform = "macos-x64"
	PlatformMacOSArm64 Platform = "macos-arm64"
	PlatformLinuxX64   Platform = "linux-x64"
)

// arch returns the platform token used in cef-builds archive names, or ""
// when the platform has no prebuilt distribution.
func (p Platform) arch() string {
	switch p {
	case PlatformAuto:
		return detectPlatform().arch()
	case PlatformWindowsX64:
		return "windows64"
	case PlatformMacOSX64:
		return "macosx64"
	case PlatformMacOSArm64:
		return "macosarm64"
	case PlatformLinuxX64:
		return "linux64"
	}
	return ""
}

func detectPlatform() Platform {
	switch runtime.GOOS + "/" + runtime.GOARCH {
	case "windows/amd64":
		return PlatformWindowsX64
	case "darwin/amd64":
		return PlatformMacOSX64
	case "darwin/arm64":
		return PlatformMacOSArm64
	case "linux/amd64":
		return PlatformLinuxX64
	}
	return Platform("")
}

// DownloadURL returns the archive URL for this platform and version.
func (p Platform) DownloadURL(version string) (string, error) {
	arch := p.arch()
	if arch == "" {
		return "", fmt.Errorf("unsupported platform: %s", p)
	}
	return fmt.Sprintf("https://cef-builds.spotifycdn.com/cef_binary_%s_%s.tar.bz2",
		version, arch), nil
}

// RootDirName returns the top-level directory inside the archive, which
// extraction strips from entry paths.
func (p Platform) RootDirName(version string) (string, error) {
	arch := p.arch()
	if arch == "" {
		return "", fmt.Errorf("unsupported platform: %s", p)
	}
	return fmt.Sprintf("cef_binary_%s_%s", version, arch), nil
}

func parsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformAuto, PlatformWindowsX64, PlatformMacOSX64, PlatformMacOSArm64, PlatformLinuxX64:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown platform %q (auto, windows-x64, macos-x64, macos-arm64, linux-x64)", s)
}

// findCEFRoot returns the CEF installation directory: $CEF_ROOT if set,
// otherwise ~/.cef.
func findCEFRoot() (string, error) {
	if root := os.Getenv("CEF_ROOT"); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".cef"), nil
}
