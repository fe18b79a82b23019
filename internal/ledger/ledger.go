package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Entry is one immutable ledger record: a book identity and the content
// checksum it had when first cataloged.
type Entry struct {
	Checksum string
	Name     string //collection-qualified semantic path, e.g. "Fiction/a.epub"
}

// DuplicateGroup collects all ledger entries sharing one checksum.
type DuplicateGroup struct {
	Checksum string
	Names    []string //in ledger order
}

// Ledger is the append-only checksum store. The backing file follows the
// md5sum verification-line convention (`<checksum>  <name>`, one record per
// line) so the external checksum tool can consume it directly. There is no
// update and no delete: the ledger's value as a historical record depends
// on entries never being rewritten.
type Ledger struct {
	path    string
	entries []Entry
	index   map[string]string //name -> checksum of the first entry carrying that name
	file    *os.File          //held open for appending throughout a run
}

// Open loads all existing entries into memory and opens the file for
// appending. A missing file yields an empty ledger; it is created on the
// first append.
func Open(path string) (l *Ledger, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("opening ledger %s: %w", path, err)
		}
	}()

	l = &Ledger{path: path, index: make(map[string]string)}

	content, readErr := os.ReadFile(path)
	if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
		return nil, readErr
	}
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for line := 1; scanner.Scan(); line++ {
		if scanner.Text() == "" {
			continue
		}
		entry, parseErr := parseLine(scanner.Text())
		if parseErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, parseErr)
		}
		l.remember(entry)
	}

	l.file, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Contains reports whether an entry with exactly the given name exists.
// Lookup is by full key equality, never by substring containment: a book
// whose name is a textual substring of another's must not shadow it.
func (l *Ledger) Contains(name string) bool {
	_, found := l.index[name]
	return found
}

// LookUp returns the recorded checksum for the given name, matched exactly.
func (l *Ledger) LookUp(name string) (checksum string, found bool) {
	checksum, found = l.index[name]
	return
}

// Append writes one record in a single write call and mirrors it into the
// in-memory index. Appending is the only mutation the ledger supports.
func (l *Ledger) Append(name string, checksum string) error {
	entry := Entry{Checksum: checksum, Name: name}
	if _, err := l.file.WriteString(formatLine(entry)); err != nil {
		return fmt.Errorf("appending to ledger %s: %w", l.path, err)
	}
	l.remember(entry)
	return nil
}

// Entries returns all records in file order.
func (l *Ledger) Entries() []Entry {
	return l.entries
}

// Duplicates scans the complete ledger once and returns every checksum that
// occurs more than once, together with all names recorded for it. Groups
// appear in order of their first member; duplicates are reported, never
// removed.
func (l *Ledger) Duplicates() []DuplicateGroup {
	byChecksum := make(map[string][]string)
	var firstSeen []string
	for _, entry := range l.entries {
		if _, known := byChecksum[entry.Checksum]; !known {
			firstSeen = append(firstSeen, entry.Checksum)
		}
		byChecksum[entry.Checksum] = append(byChecksum[entry.Checksum], entry.Name)
	}

	var groups []DuplicateGroup
	for _, sum := range firstSeen {
		if names := byChecksum[sum]; len(names) > 1 {
			groups = append(groups, DuplicateGroup{Checksum: sum, Names: names})
		}
	}
	return groups
}

func (l *Ledger) Close() error {
	return l.file.Close()
}

func (l *Ledger) remember(entry Entry) {
	l.entries = append(l.entries, entry)
	if _, taken := l.index[entry.Name]; !taken {
		l.index[entry.Name] = entry.Checksum //first record wins, later ones are visible as duplicates
	}
}

const checksumNameSeparator = "  "

func formatLine(entry Entry) string {
	return entry.Checksum + checksumNameSeparator + entry.Name + "\n"
}

func parseLine(line string) (Entry, error) {
	checksum, name, found := strings.Cut(line, checksumNameSeparator)
	if !found || checksum == "" || name == "" {
		return Entry{}, fmt.Errorf("not a checksum line: %q", line)
	}
	//md5sum marks binary-mode records with a leading asterisk on the name
	name = strings.TrimPrefix(name, "*")
	return Entry{Checksum: checksum, Name: name}, nil
}
