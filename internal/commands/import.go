package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/auditlog"
	"github.com/ledgerline-dev/ledgerline/internal/commit"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/gitops"
	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/notify"
	"github.com/ledgerline-dev/ledgerline/internal/review"
)

// statusOrder fixes the report ordering for the per-status summary.
var statusOrder = []model.DraftStatus{
	model.StatusNeedsReview,
	model.StatusReadyToImport,
	model.StatusSkippedAlreadyImported,
	model.StatusSkippedTemporarily,
	model.StatusSkippedPermanently,
}

func newImportCommand() *cobra.Command {
	var dir string
	var doCommit bool
	var skipReviews bool

	cmd := &cobra.Command{
		Use:   "import <importer-id> [file]",
		Short: "Parse a bank export, reconcile it, and optionally commit",
		Long: "Parses a bank export through the configured importer, deduplicates\n" +
			"against previously imported transactions, and reports what would be\n" +
			"imported. With --commit, ready transactions are written to the ledger.\n" +
			"Without a file argument, every CSV in import/ is processed.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			var file string
			if len(args) > 1 {
				file = args[1]
			}
			return runImport(cmd, absDir, args[0], file, doCommit, skipReviews)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger root directory")
	cmd.Flags().BoolVar(&doCommit, "commit", false, "write ready transactions to the ledger")
	cmd.Flags().BoolVar(&skipReviews, "skip-reviews", false, "skip transactions pending review instead of blocking the commit")

	return cmd
}

func runImport(cmd *cobra.Command, dir, importerID, file string, doCommit, skipReviews bool) error {
	cfg, err := config.Load(cmd.Context(), filepath.Join(dir, config.FileName))
	if err != nil {
		return err
	}

	imp, ok := cfg.FindImporter(importerID)
	if !ok {
		return fmt.Errorf("importer %q not configured", importerID)
	}

	registry := importer.DefaultRegistry(importer.Config{
		ImporterID: imp.ID,
		AccountID:  imp.AccountID,
		SymbolID:   cfg.SymbolFor(imp),
	})
	provider := registry.Get(imp.Provider)
	if provider == nil {
		return fmt.Errorf("importer %q: unknown provider %q", imp.ID, imp.Provider)
	}

	store, err := ledger.Open(dir)
	if err != nil {
		return err
	}

	files, err := resolveFiles(dir, file)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmd.Println("No export files to import.")
		return nil
	}

	notifier := notify.NewLog(notify.NewLogger())
	for _, f := range files {
		if err := importFile(cmd, cfg, store, provider, imp, f, doCommit, skipReviews, notifier); err != nil {
			return fmt.Errorf("importing %s: %w", f.Name, err)
		}
	}
	return nil
}

// resolveFiles returns the single named file, or everything waiting in
// import/ when no file is given.
func resolveFiles(dir, file string) ([]importer.FileInfo, error) {
	if file == "" {
		return importer.Scan(dir)
	}

	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", file, err)
	}
	return []importer.FileInfo{{
		Name: filepath.Base(file),
		Path: file,
		Size: info.Size(),
	}}, nil
}

func importFile(cmd *cobra.Command, cfg *config.Config, store *ledger.Store,
	provider importer.Importer, imp config.Importer, file importer.FileInfo,
	doCommit, skipReviews bool, notifier notify.Notifier) error {

	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	parsed, err := provider.GetTransactions(f)
	f.Close()
	if err != nil {
		return err
	}

	session, err := review.NewSession(parsed, store, notifier)
	if err != nil {
		return err
	}
	if skipReviews {
		session.SkipAllPendingReview()
	}

	cmd.Printf("%s: %d transactions parsed\n", file.Name, len(parsed))
	printSummary(cmd, session.ByStatus())

	if !doCommit {
		printReviewDetails(cmd, session.ByStatus()[model.StatusNeedsReview])
		return nil
	}

	gen := id.NewGenerator()
	processor := commit.NewProcessor(store, imp.ID, time.Now, gen.NewID)

	drafts, result, err := processor.Commit(session.Drafts())
	if err != nil {
		if errors.Is(err, commit.ErrReviewPending) {
			printReviewDetails(cmd, session.ByStatus()[model.StatusNeedsReview])
			return fmt.Errorf("%d transactions need review; resolve them or rerun with --skip-reviews",
				len(session.ByStatus()[model.StatusNeedsReview]))
		}
		return err
	}
	session.Replace(drafts)

	skipped := len(drafts) - len(result.Records)
	hash := ""
	if cfg.Git.AutoCommit && gitops.IsRepo(store.Root()) {
		message := fmt.Sprintf("import: %s (%d imported, %d skipped)", imp.ID, len(result.Records), skipped)
		hash, err = gitops.CommitAll(store.Root(), message, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("committing ledger snapshot: %w", err)
		}
	}

	entry := auditlog.Entry{
		Timestamp:  time.Now(),
		ImporterID: imp.ID,
		FileName:   file.Name,
		Imported:   len(result.Records),
		Skipped:    skipped,
		CommitHash: hash,
	}
	if err := auditlog.Append(store.Root(), []auditlog.Entry{entry}); err != nil {
		return fmt.Errorf("recording import log: %w", err)
	}

	// Only files living in import/ get archived.
	if filepath.Dir(file.Path) == filepath.Join(store.Root(), "import") {
		if err := importer.MarkProcessed(store.Root(), file.Name); err != nil {
			return err
		}
	}

	cmd.Printf("Imported %d transactions from %s\n", len(result.Records), file.Name)
	return nil
}

func printSummary(cmd *cobra.Command, byStatus map[model.DraftStatus][]model.DraftTransaction) {
	for _, status := range statusOrder {
		if n := len(byStatus[status]); n > 0 {
			cmd.Printf("  %-25s %d\n", status, n)
		}
	}
}

func printReviewDetails(cmd *cobra.Command, pending []model.DraftTransaction) {
	for _, d := range pending {
		desc := "(no description)"
		if d.Description != nil && *d.Description != "" {
			desc = *d.Description
		}
		date := "(no date)"
		if d.Date != nil && *d.Date != "" {
			date = *d.Date
		}
		cmd.Printf("  review: %s  %s  %s\n", d.ProviderTransactionID, date, desc)
	}
}
