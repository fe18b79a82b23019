package ledger

import (
	"fmt"
	"os"
	"time"
)

// Catalog is the enriched, time-stamped log of ledger append events. One
// tab-delimited line per catalog event, columns date / checksum / name,
// appended in 1:1 correspondence with ledger entries and in the same order.
// Like the ledger it is append-only.
type Catalog struct {
	path string
	file *os.File
}

func OpenCatalog(path string) (*Catalog, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening catalog log %s: %w", path, err)
	}
	return &Catalog{path: path, file: file}, nil
}

// Append records one catalog event dated to the given day.
func (c *Catalog) Append(day time.Time, checksum string, name string) error {
	line := fmt.Sprintf("%s\t%s\t%s\n", day.Format("2006-01-02"), checksum, name)
	if _, err := c.file.WriteString(line); err != nil {
		return fmt.Errorf("appending to catalog log %s: %w", c.path, err)
	}
	return nil
}

func (c *Catalog) Close() error {
	return c.file.Close()
}
