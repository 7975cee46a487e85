// SPDX-License-Identifier: MPL-2.0

package stage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"lukechampine.com/blake3"
)

const (
	// ManifestFileName is the crate manifest; staging it is mandatory.
	ManifestFileName = "Cargo.toml"
	// LockfileName is copied when present so the staged crate builds with
	// pinned dependency versions.
	LockfileName = "Cargo.lock"
	// LicenseFileName is copied when present.
	LicenseFileName = "LICENSE"
	// sourceDirName is the crate subdirectory holding buildable sources.
	sourceDirName = "src"
)

// artifactDirNames are directory names that only ever hold derived build
// output. They are never staged, even when nested inside the source tree.
var artifactDirNames = map[string]struct{}{
	"target": {},
	".cargo": {},
}

var (
	// ErrMissingSource is returned when the crate source tree is absent or
	// lacks its source subdirectory.
	ErrMissingSource = errors.New("missing crate source")
	// ErrCopy is returned when a mandatory copy operation fails.
	ErrCopy = errors.New("copy failed")
)

type (
	// MissingSourceError reports the path the precondition check did not
	// find. It wraps ErrMissingSource for errors.Is() compatibility.
	MissingSourceError struct {
		Path string
	}

	// CopyError reports a failed mandatory copy operation. It wraps ErrCopy
	// for errors.Is() compatibility.
	CopyError struct {
		Src string
		Dst string
		Err error
	}

	// Stager produces and removes the staged crate copy inside the package
	// tree. All filesystem access goes through the injected afero.Fs, so the
	// same staging logic runs against the real OS filesystem in production
	// and an in-memory filesystem in tests.
	Stager struct {
		fs       afero.Fs
		logger   *log.Logger
		crateDir string
		dest     string
	}
)

// Error implements the error interface.
func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("crate source not found at %s", e.Path)
}

// Unwrap returns ErrMissingSource so callers can use errors.Is.
func (e *MissingSourceError) Unwrap() error { return ErrMissingSource }

// Error implements the error interface.
func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s to %s: %v", e.Src, e.Dst, e.Err)
}

// Unwrap returns the chain sentinel and cause for errors.Is.
func (e *CopyError) Unwrap() []error { return []error{ErrCopy, e.Err} }

// New creates a Stager copying from crateDir to dest over fs.
func New(fs afero.Fs, logger *log.Logger, crateDir, dest string) *Stager {
	return &Stager{fs: fs, logger: logger, crateDir: crateDir, dest: dest}
}

// CheckSource verifies the crate source tree contains its source
// subdirectory. It never touches the staging destination, so a failed check
// leaves the package tree exactly as it was.
func (s *Stager) CheckSource() error {
	srcDir := filepath.Join(s.crateDir, sourceDirName)
	ok, err := afero.DirExists(s.fs, srcDir)
	if err != nil {
		return fmt.Errorf("checking crate source: %w", err)
	}
	if !ok {
		return &MissingSourceError{Path: srcDir}
	}
	return nil
}

// Stage produces an exact copy of the crate's buildable subset at the
// staging destination. Any previous destination content is removed first, so
// no stale files from an earlier failed run survive. On a mandatory copy
// failure the partial staged content is left in place for inspection.
func (s *Stager) Stage() error {
	s.logger.Info("staging crate", "from", s.crateDir, "to", s.dest)

	if err := s.fs.RemoveAll(s.dest); err != nil {
		return &CopyError{Src: s.crateDir, Dst: s.dest, Err: err}
	}
	if err := s.fs.MkdirAll(s.dest, 0o755); err != nil {
		return &CopyError{Src: s.crateDir, Dst: s.dest, Err: err}
	}

	srcDir := filepath.Join(s.crateDir, sourceDirName)
	if err := s.copyTree(srcDir, filepath.Join(s.dest, sourceDirName)); err != nil {
		return err
	}

	manifestSrc := filepath.Join(s.crateDir, ManifestFileName)
	manifestDst := filepath.Join(s.dest, ManifestFileName)
	if err := s.copyFile(manifestSrc, manifestDst); err != nil {
		return err
	}
	if err := s.verifyCopy(manifestSrc, manifestDst); err != nil {
		return err
	}

	for _, name := range []string{LockfileName, LicenseFileName} {
		if err := s.copyOptional(name); err != nil {
			return err
		}
	}

	s.logger.Info("staging complete", "dest", s.dest)
	return nil
}

// Remove deletes the staging destination. Removing an already-absent
// destination is not an error.
func (s *Stager) Remove() error {
	s.logger.Info("removing staged copy", "dest", s.dest)
	if err := s.fs.RemoveAll(s.dest); err != nil {
		return fmt.Errorf("removing staged copy %s: %w", s.dest, err)
	}
	return nil
}

// Dest returns the staging destination path.
func (s *Stager) Dest() string { return s.dest }

// copyTree recursively copies src into dst, preserving relative structure
// and skipping artifact directories.
func (s *Stager) copyTree(src, dst string) error {
	return afero.Walk(s.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return &CopyError{Src: path, Dst: dst, Err: err}
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return &CopyError{Src: path, Dst: dst, Err: err}
		}
		if info.IsDir() {
			if _, skip := artifactDirNames[info.Name()]; skip && rel != "." {
				return filepath.SkipDir
			}
			if err := s.fs.MkdirAll(filepath.Join(dst, rel), info.Mode().Perm()); err != nil {
				return &CopyError{Src: path, Dst: filepath.Join(dst, rel), Err: err}
			}
			return nil
		}
		return s.copyFile(path, filepath.Join(dst, rel))
	})
}

// copyFile copies a single regular file, preserving its permission bits.
func (s *Stager) copyFile(src, dst string) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	return nil
}

// copyOptional copies a crate-root file when it exists. Absence is not an
// error; a failed copy of a present file is. A failed presence probe is
// reported but stays best-effort, like absence.
func (s *Stager) copyOptional(name string) error {
	src := filepath.Join(s.crateDir, name)
	ok, err := afero.Exists(s.fs, src)
	if err != nil {
		s.logger.Warn("could not probe optional file", "name", name, "err", err)
		return nil
	}
	if !ok {
		s.logger.Debug("optional file not staged", "name", name)
		return nil
	}
	return s.copyFile(src, filepath.Join(s.dest, name))
}

// verifyCopy confirms the destination file's bytes hash identically to the
// source's. A mismatch means the copy is unusable and staging must fail.
func (s *Stager) verifyCopy(src, dst string) error {
	srcSum, err := s.hashFile(src)
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	dstSum, err := s.hashFile(dst)
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	if srcSum != dstSum {
		return &CopyError{Src: src, Dst: dst, Err: fmt.Errorf("checksum mismatch: %s != %s", srcSum, dstSum)}
	}
	return nil
}

// hashFile returns the hex BLAKE3 digest of a file's contents.
func (s *Stager) hashFile(path string) (string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// isArtifactDir reports whether name is on the build-artifact denylist.
// Exposed for tests documenting the exclusion policy.
func isArtifactDir(name string) bool {
	_, ok := artifactDirNames[strings.TrimSpace(name)]
	return ok
}
