package snapshot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Prefix names every snapshot directory. A leftover snapshot from an earlier
// run is an ordinary entry: it is captured and restored like any other.
const Prefix = ".launch-backup-"

// Snapshot is a full copy of a directory's top-level contents, kept in a
// hidden directory inside that same directory. It is released by exactly one
// of Restore or Discard.
type Snapshot struct {
	root    string
	dir     string
	entries []string
	done    bool
}

// Take copies every top-level entry of root into a new snapshot directory.
// On error nothing is left behind.
func Take(root string) (*Snapshot, error) {
	list, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	dir := filepath.Join(root, Prefix+uuid.NewString())
	if err := os.Mkdir(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	s := &Snapshot{root: root, dir: dir}
	for _, e := range list {
		if err := copyEntry(filepath.Join(root, e.Name()), filepath.Join(dir, e.Name())); err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("copying %s: %w", e.Name(), err)
		}
		s.entries = append(s.entries, e.Name())
	}
	return s, nil
}

// Dir returns the snapshot directory.
func (s *Snapshot) Dir() string { return s.dir }

// Entries returns the top-level names captured by the snapshot.
func (s *Snapshot) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Restore puts root back to the captured state: everything created since is
// removed and every captured entry is moved back into place.
func (s *Snapshot) Restore() error {
	if s.done {
		return errors.New("snapshot already released")
	}
	list, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.root, err)
	}
	for _, e := range list {
		if e.Name() == filepath.Base(s.dir) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	for _, name := range s.entries {
		if err := os.Rename(filepath.Join(s.dir, name), filepath.Join(s.root, name)); err != nil {
			return fmt.Errorf("restoring %s: %w", name, err)
		}
	}
	s.done = true
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing snapshot dir: %w", err)
	}
	return nil
}

// Discard deletes the snapshot without touching root. Calling it after the
// snapshot has been released is a no-op.
func (s *Snapshot) Discard() error {
	if s.done {
		return nil
	}
	s.done = true
	return os.RemoveAll(s.dir)
}

func copyEntry(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dst)
	case info.IsDir():
		return copyDir(src, dst, info.Mode().Perm())
	case info.Mode().IsRegular():
		return copyFile(src, dst, info.Mode().Perm())
	default:
		// sockets, fifos and devices are not project content
		return nil
	}
}

func copyDir(src, dst string, perm fs.FileMode) error {
	if err := os.Mkdir(dst, perm|0700); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := copyEntry(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return os.Chmod(dst, perm)
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, perm)
}
