// Copyright 2025 the rexname authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fsx holds the filesystem collaborators the rename pipeline talks
// to: a non-recursive directory listing, the rename primitive, and a
// mode/timestamp preserving copy. Everything else in the pipeline is pure
// computation over names.
package fsx

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/tozd/go/errors"
)

// 💾 Dir is a single directory the tool operates on
type Dir interface {
	// List returns the entry names in the directory, excluding "." and "..".
	// Order is the listing order used for index assignment.
	List(ctx context.Context) ([]string, error)
	// Rename renames a single entry. No multi-entry atomicity is promised.
	Rename(ctx context.Context, oldName, newName string) error
	// Copy duplicates an entry, preserving permissions and timestamps.
	Copy(ctx context.Context, oldName, newName string) error
	// Exists reports whether an entry with the given name is present.
	Exists(name string) bool
	// SameFile reports whether two names refer to the same underlying file.
	// On case-insensitive filesystems a name can "exist" while still being
	// the file we are renaming.
	SameFile(a, b string) bool
}

// 🗄️ osDir implements Dir against a real directory
type osDir struct {
	path string
}

// NewOSDir returns a Dir backed by the directory at path.
func NewOSDir(path string) Dir {
	return &osDir{path: filepath.Clean(path)}
}

func (d *osDir) abs(name string) string {
	return filepath.Join(d.path, name)
}

func (d *osDir) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, errors.Errorf("listing directory %s: %w", d.path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (d *osDir) Rename(ctx context.Context, oldName, newName string) error {
	if err := os.Rename(d.abs(oldName), d.abs(newName)); err != nil {
		return errors.Errorf("renaming %s to %s: %w", oldName, newName, err)
	}
	return nil
}

func (d *osDir) Copy(ctx context.Context, oldName, newName string) error {
	src := d.abs(oldName)
	dst := d.abs(newName)

	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stating source %s: %w", oldName, err)
	}

	// Creating the destination truncates it; refuse before destroying a
	// source that is the same file under another name.
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return errors.Errorf("copying %s to %s: same file", oldName, newName)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source %s: %w", oldName, err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating %s: %w", newName, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Errorf("copying %s to %s: %w", oldName, newName, err)
	}
	if err := dstFile.Close(); err != nil {
		return errors.Errorf("closing %s: %w", newName, err)
	}

	// Mirror permissions and timestamps onto the copy
	if err := os.Chmod(dst, info.Mode()); err != nil {
		return errors.Errorf("setting mode on %s: %w", newName, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("setting times on %s: %w", newName, err)
	}
	return nil
}

func (d *osDir) Exists(name string) bool {
	_, err := os.Lstat(d.abs(name))
	return err == nil
}

func (d *osDir) SameFile(a, b string) bool {
	ai, err := os.Stat(d.abs(a))
	if err != nil {
		return false
	}
	bi, err := os.Stat(d.abs(b))
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// 🧪 MemDir is an in-memory Dir for tests. Names are case-sensitive.
type MemDir struct {
	files map[string]string // name → content

	// FailRename injects an error for a given source name, to exercise the
	// executor's best-effort behavior.
	FailRename map[string]error
}

// NewMemDir creates a MemDir containing the given (empty) entries.
func NewMemDir(names ...string) *MemDir {
	d := &MemDir{files: make(map[string]string, len(names))}
	for _, name := range names {
		d.files[name] = ""
	}
	return d
}

func (d *MemDir) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(d.files))
	for name := range d.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (d *MemDir) Rename(ctx context.Context, oldName, newName string) error {
	if err := d.FailRename[oldName]; err != nil {
		return err
	}
	content, ok := d.files[oldName]
	if !ok {
		return errors.Errorf("renaming %s: no such file", oldName)
	}
	delete(d.files, oldName)
	d.files[newName] = content
	return nil
}

func (d *MemDir) Copy(ctx context.Context, oldName, newName string) error {
	content, ok := d.files[oldName]
	if !ok {
		return errors.Errorf("copying %s: no such file", oldName)
	}
	d.files[newName] = content
	return nil
}

func (d *MemDir) Exists(name string) bool {
	_, ok := d.files[name]
	return ok
}

func (d *MemDir) SameFile(a, b string) bool {
	if !d.Exists(a) || !d.Exists(b) {
		return false
	}
	return a == b
}

// Names returns the current entry names, sorted.
func (d *MemDir) Names() []string {
	names, _ := d.List(context.Background())
	return names
}
