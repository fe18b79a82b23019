package repair

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/n2code/bookarmor/internal/walk"
)

// Store owns the per-book recovery data. Each book gets, inside the store's
// directory tree, a symbolic link carrying the book's name and pointing at
// its absolute location, plus the PAR2 artifacts generated from it. The
// link makes recovery verification resolvable from the store directory
// alone, independent of where the engine happens to run, and keeps a repair
// set usable as long as the link target stays valid.
type Store struct {
	root string //absolute path of the repair directory
	tool Runner
}

func NewStore(root string, tool Runner) *Store {
	return &Store{root: root, tool: tool}
}

// DirName returns the base name of the store directory, which the
// collection walker excludes from traversal.
func (s *Store) DirName() string {
	return filepath.Base(s.root)
}

// Protect generates recovery data for the book sized to tolerate the given
// percentage of damage, then proves the fresh repair set usable via Verify
// before reporting success. Failure is atomic: generation output that
// cannot verify itself is removed again, never left behind as a
// silently-broken repair set.
func (s *Store) Protect(ctx context.Context, book walk.Book, redundancyPercent int) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("creating repair set for %s: %w", book.Key(), err)
		}
	}()

	dir := filepath.Join(s.root, book.Collection)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := s.placeLink(dir, book); err != nil {
		return err
	}

	parityFile := book.Name + ".par2"
	generated, output, err := s.tool.Run(ctx, dir,
		"create", "-r"+strconv.Itoa(redundancyPercent), "-q", parityFile, book.Name)
	if err != nil {
		return err
	}
	if !generated {
		s.discardArtifacts(dir, book.Name)
		return fmt.Errorf("generation failed: %s", firstLine(output))
	}

	usable, err := s.Verify(ctx, book.Key())
	if err != nil {
		s.discardArtifacts(dir, book.Name)
		return err
	}
	if !usable {
		s.discardArtifacts(dir, book.Name)
		return errors.New("self-verification of fresh recovery data failed")
	}
	return nil
}

// Verify re-derives the recoverability of the book behind the given
// collection-qualified key by running the external recovery check with the
// store directory as execution context. A false result is an expected,
// reportable outcome: it covers damaged parity data as well as a broken
// link because the original file is gone.
func (s *Store) Verify(ctx context.Context, key string) (bool, error) {
	collection, name := walk.SplitKey(key)
	dir := filepath.Join(s.root, collection)
	parityFile := name + ".par2"

	if _, err := os.Lstat(filepath.Join(dir, parityFile)); errors.Is(err, fs.ErrNotExist) {
		return false, nil //no repair set means nothing verifiable
	}

	verified, _, err := s.tool.Run(ctx, dir, "verify", "-q", parityFile)
	if err != nil {
		return false, fmt.Errorf("verifying repair set for %s: %w", key, err)
	}
	return verified, nil
}

// placeLink establishes the reference from the store back to the book's
// absolute location, replacing a stale link from an earlier aborted attempt.
func (s *Store) placeLink(dir string, book walk.Book) error {
	linkPath := filepath.Join(dir, book.Name)
	if _, err := os.Lstat(linkPath); err == nil {
		if err := os.Remove(linkPath); err != nil {
			return err
		}
	}
	if err := os.Symlink(book.AbsPath, linkPath); err != nil {
		return fmt.Errorf("linking book into repair store: %w", err)
	}
	return nil
}

// discardArtifacts removes the link and any generated parity volumes of one
// book. Removal errors are irrelevant here: the caller is already failing
// and reports the original cause.
func (s *Store) discardArtifacts(dir string, name string) {
	os.Remove(filepath.Join(dir, name))
	parityVolumes, _ := filepath.Glob(filepath.Join(dir, name+"*.par2"))
	for _, volume := range parityVolumes {
		os.Remove(volume)
	}
}

func firstLine(output []byte) string {
	for i, b := range output {
		if b == '\n' {
			return string(output[:i])
		}
	}
	if len(output) == 0 {
		return "(no tool output)"
	}
	return string(output)
}
