// Package importer normalizes provider-specific bank exports into parsed
// transactions. Providers are selected by an explicit discriminant carried on
// the importer configuration, never by sniffing the file format.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Config carries the settings of one configured importer instance.
type Config struct {
	ImporterID string
	AccountID  string // linked ledger account
	SymbolID   string // currency/asset identifier for imported amounts
}

// Importer converts a provider export into ParsedTransactions.
type Importer interface {
	GetTransactions(r io.Reader) ([]model.ParsedTransaction, error)
	Provider() string
}

// Registry holds importers keyed by provider discriminant.
type Registry struct {
	importers map[string]Importer
}

// FileInfo describes a candidate export file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{importers: make(map[string]Importer)}
}

// Register adds an importer. Panics on duplicate provider.
func (r *Registry) Register(imp Importer) {
	key := strings.ToLower(imp.Provider())
	if _, ok := r.importers[key]; ok {
		panic("duplicate importer provider: " + key)
	}
	r.importers[key] = imp
}

// Get returns the importer for a provider discriminant, or nil.
func (r *Registry) Get(provider string) Importer {
	return r.importers[strings.ToLower(provider)]
}

// DefaultRegistry returns a registry with all built-in providers configured
// for one importer instance.
func DefaultRegistry(cfg Config) *Registry {
	r := NewRegistry()
	r.Register(NewChaseCardImporter(cfg))
	r.Register(NewChaseAccountImporter(cfg))
	return r
}

// importDir is the subdirectory holding exports waiting to be imported.
const importDir = "import"

// processedDir is where committed exports are moved.
const processedDir = "import/processed"

// Scan returns CSV files in <ledgerRoot>/import/.
func Scan(ledgerRoot string) ([]FileInfo, error) {
	dir := filepath.Join(ledgerRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a committed export from import/ to import/processed/.
func MarkProcessed(ledgerRoot, fileName string) error {
	src := filepath.Join(ledgerRoot, importDir, fileName)
	dstDir := filepath.Join(ledgerRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
