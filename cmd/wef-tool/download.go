package main

import (
	"archive/tar"
	"compress/bzip2"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/zouxu09/wef/errors"
)

// DownloadCallback observes the phases of a CEF download. Methods are
// called from the goroutine running DownloadCEF.
type DownloadCallback interface {
	DownloadStart(total int64)
	DownloadProgress(downloaded int64)
	DownloadEnd()
	ExtractStart()
	ExtractFile(path string)
	ExtractEnd()
}

// DownloadCEF fetches the CEF binary distribution for the platform and
// version and extracts it into path, stripping the archive's versioned
// root directory. An existing path is left untouched unless force is set.
func DownloadCEF(path, version string, platform Platform, force bool, cb DownloadCallback) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	url, err := platform.DownloadURL(version)
	if err != nil {
		return err
	}
	rootDir, err := platform.RootDirName(version)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "cef-download-*")
	if err != nil {
		return fmt.Errorf("create temporary directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, "cef.tar.bz2")
	if err := downloadFile(url, archivePath, cb); err != nil {
		return errors.IO(errors.PhaseTool, fmt.Sprintf("download CEF from %s", url), err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	cb.ExtractStart()
	if err := extractArchive(archivePath, path, rootDir, cb); err != nil {
		return errors.IO(errors.PhaseTool, "extract CEF archive", err)
	}
	cb.ExtractEnd()

	return nil
}

func downloadFile(url, path string, cb DownloadCallback) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, err)
	}
	defer file.Close()

	cb.DownloadStart(resp.ContentLength)

	var downloaded int64
	buf := make([]byte, 64*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write to file %s: %w", path, werr)
			}
			downloaded += int64(n)
			cb.DownloadProgress(downloaded)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	cb.DownloadEnd()
	return nil
}

func extractArchive(archivePath, targetDir, rootDir string, cb DownloadCallback) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive file %s: %w", archivePath, err)
	}
	defer file.Close()

	reader := tar.NewReader(bzip2.NewReader(file))
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read entry from archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		target, ok := entryTarget(targetDir, rootDir, header.Name)
		if !ok {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directory for entry %s: %w", header.Name, err)
		}
		if err := writeEntry(target, reader, header.FileInfo().Mode()); err != nil {
			return fmt.Errorf("unpack entry %s to %s: %w", header.Name, target, err)
		}
		cb.ExtractFile(header.Name)
	}
}

// entryTarget maps an archive entry path onto the target directory with
// the versioned root stripped. Entries outside the root, and entries that
// would escape the target via path traversal, are skipped.
func entryTarget(targetDir, rootDir, name string) (string, bool) {
	name = filepath.ToSlash(name)
	rel, ok := strings.CutPrefix(name, rootDir+"/")
	if !ok || rel == "" {
		return "", false
	}
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", false
	}
	return filepath.Join(targetDir, rel), true
}

func writeEntry(path string, r io.Reader, mode os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
