package walk

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// Book is a single file inside a collection. It exists on disk before any
// armor run and is never created, moved, or deleted by this module.
type Book struct {
	Collection string //base name of the collection directory
	Name       string //base filename, unique only within its collection
	AbsPath    string //absolute, system-native path to the file
}

// Key returns the collection-qualified identity of the book as a semantic
// path (slash-separated regardless of OS). Ledger entries and repair sets
// are keyed by this value so that same-named books in different collections
// stay distinct.
func (b Book) Key() string {
	return path.Join(b.Collection, b.Name)
}

// SplitKey is the inverse of Book.Key.
func SplitKey(key string) (collection string, name string) {
	return path.Dir(key), path.Base(key)
}

// Walker enumerates the collections (immediate subdirectories) of a root
// directory and the books (regular files) within them. The traversal is
// read-only and never changes the working directory.
type Walker struct {
	root        string //absolute path of the collection root
	excludeName string //base name of the repair store directory, skipped at collection level
}

func NewWalker(root string, excludeName string) Walker {
	return Walker{root: root, excludeName: excludeName}
}

// Walk visits every book in directory-listing order, one collection at a
// time. A non-directory entry at root level is not a collection and a
// non-regular entry inside a collection is not a book; both are skipped
// silently. The sequence is lazy and non-restartable: a visit error stops
// the walk and is returned as-is.
func (w Walker) Walk(visit func(Book) error) error {
	rootEntries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("reading collection root %s: %w", w.root, err)
	}

	for _, collection := range rootEntries {
		if !collection.IsDir() {
			continue //loose top-level files are not books
		}
		if collection.Name() == w.excludeName {
			continue //the repair store is not a collection
		}

		collectionPath := filepath.Join(w.root, collection.Name())
		bookEntries, err := os.ReadDir(collectionPath)
		if err != nil {
			return fmt.Errorf("reading collection %s: %w", collection.Name(), err)
		}

		for _, entry := range bookEntries {
			if !entry.Type().IsRegular() {
				continue
			}
			book := Book{
				Collection: collection.Name(),
				Name:       entry.Name(),
				AbsPath:    filepath.Join(collectionPath, entry.Name()),
			}
			if err := visit(book); err != nil {
				return err
			}
		}
	}
	return nil
}
