package core

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// AssetDir is a directory of generated logos, one file per host.
// The directory is created on first write.
type AssetDir struct {
	Root    string
	MaxSize int64 // Total size of logo files to keep; zero or less disables pruning.
}

// Option configures the AssetDir.
type Option func(*AssetDir)

// WithMaxSize sets the maximum total size of logo files in bytes.
func WithMaxSize(size int64) Option {
	return func(d *AssetDir) {
		d.MaxSize = size
	}
}

// NewAssetDir creates a new AssetDir rooted at the specified directory.
func NewAssetDir(root string, opts ...Option) *AssetDir {
	d := &AssetDir{Root: root}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LogoPath returns the path at which the logo for host (optionally with a port) is stored.
func (d *AssetDir) LogoPath(host, ext string) string {
	return filepath.Join(d.Root, LogoFilename(host, ext))
}

// Find reads the named file from the directory.
// Returns nil, nil if it does not exist (not an error).
func (d *AssetDir) Find(name string) ([]byte, error) {
	path := filepath.Join(d.Root, name)
	exists, err := FileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return data, nil
}

// Write stores data under name, replacing any existing file, and returns its absolute path.
// Data is written to a temporary file first, so readers never observe a partial logo.
func (d *AssetDir) Write(name string, data []byte) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(d.Root, name))
	if err != nil {
		return "", err
	}

	tmpPath := absPath + ".tmp"
	f, err := CreateFile(tmpPath)
	if err != nil {
		return "", err
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, absPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return absPath, nil
}

// Delete removes the named file from the directory.
func (d *AssetDir) Delete(name string) error {
	return os.Remove(filepath.Join(d.Root, name))
}

// pruningFile represents a logo file for pruning purposes.
type pruningFile struct {
	path    string
	size    int64
	modTime time.Time
}

// Prune enforces the MaxSize limit by removing the oldest logos.
// Only files written by this tool (“*_logo.*”) are considered; anything else is left alone.
func (d *AssetDir) Prune() error {
	if d.MaxSize <= 0 {
		return nil
	}

	var files []pruningFile
	var totalSize int64

	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Skip whatever can’t be read, but don’t fail the whole prune.
			return nil
		}
		if entry.IsDir() {
			if path != d.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isLogoFilename(entry.Name()) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		totalSize += info.Size()
		files = append(files, pruningFile{
			path:    path,
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("error walking %s: %w", d.Root, err)
	}

	if totalSize <= d.MaxSize {
		slog.Debug("no need to prune",
			"root", d.Root,
			"size", humanize.Bytes(uint64(totalSize)),
			"limit", humanize.Bytes(uint64(d.MaxSize)),
		)
		return nil
	}

	// Oldest first.
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	for _, f := range files {
		if totalSize <= d.MaxSize {
			break
		}
		if err := os.Remove(f.path); err == nil {
			totalSize -= f.size
			slog.Info("pruned logo", "path", f.path, "size", humanize.Bytes(uint64(f.size)))
		}
	}

	return nil
}

func isLogoFilename(name string) bool {
	ext := filepath.Ext(name)
	return ext != "" && strings.HasSuffix(strings.TrimSuffix(name, ext), logoSuffix)
}
