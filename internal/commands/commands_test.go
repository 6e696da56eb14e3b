package commands_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/auditlog"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "ledgerline-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "ledgerline")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/ledgerline")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runLedgerline(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// newLedger initializes a ledger and points its chase-card importer at the
// starter credit card account.
func newLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runLedgerline(t, "init", dir, "--name", "Test Ledger")
	require.NoError(t, err)

	path := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)
	cfg.Importers[0].AccountID = "acct-credit-card"
	require.NoError(t, config.Save(path, cfg))
	return dir
}

func writeExport(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "import", name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const cardExport = "Transaction Date,Post Date,Description,Category,Type,Amount,Memo\n" +
	"01/02/2025,01/03/2025,MERCHANT 1,Shopping,Sale,-21.45,\n" +
	"01/05/2025,01/06/2025,MERCHANT 2,Groceries,Sale,-50.00,\n"

const cardExportWithPayment = "Transaction Date,Post Date,Description,Category,Type,Amount,Memo\n" +
	"01/02/2025,01/03/2025,MERCHANT 1,Shopping,Sale,-21.45,\n" +
	"01/10/2025,01/10/2025,Payment Thank You - Web,,Payment,500.00,\n"

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerline(t, "init", dir, "--name", "Test Ledger")
	require.NoError(t, err)

	expectedDirs := []string{
		"accounts",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	_, err = os.Stat(filepath.Join(dir, ".git"))
	assert.NoError(t, err, "init should create a git repository")
}

func TestInit_NoGit(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerline(t, "init", dir, "--name", "Test Ledger", "--no-git")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	assert.True(t, os.IsNotExist(err))
}

func TestInit_ConfigAndChart(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerline(t, "init", dir, "--name", "My Ledger")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: My Ledger")
	assert.Contains(t, string(data), "default_symbol_id: USD")

	store, err := ledger.Open(dir)
	require.NoError(t, err)
	assert.True(t, store.Accounts().Exists("acct-credit-card"))
}

func TestInit_RequiresName(t *testing.T) {
	out, err := runLedgerline(t, "init", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "name")
}

func TestImporters_ListsConfigured(t *testing.T) {
	dir := newLedger(t)

	out, err := runLedgerline(t, "importers", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "chase-card")
	assert.Contains(t, out, "acct-credit-card")
	assert.Contains(t, out, "USD")
}

func TestImport_DryRunReportsStatuses(t *testing.T) {
	dir := newLedger(t)
	writeExport(t, dir, "activity.csv", cardExport)

	out, err := runLedgerline(t, "import", "chase-card", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 transactions parsed")
	assert.Contains(t, out, "ready-to-import")

	// Dry run writes nothing.
	store, err := ledger.Open(dir)
	require.NoError(t, err)
	txns, err := store.Transactions()
	require.NoError(t, err)
	assert.Empty(t, txns)

	_, err = os.Stat(filepath.Join(dir, "import", "activity.csv"))
	assert.NoError(t, err, "dry run should not archive the export")
}

func TestImport_CommitWritesLedger(t *testing.T) {
	dir := newLedger(t)
	writeExport(t, dir, "activity.csv", cardExport)

	out, err := runLedgerline(t, "import", "chase-card", "--commit", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 transactions")

	store, err := ledger.Open(dir)
	require.NoError(t, err)
	txns, err := store.Transactions()
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "MERCHANT 1", txns[0].Description)
	assert.Equal(t, "acct-credit-card", txns[0].From.AccountID)
	assert.Equal(t, "2025-01-02", txns[0].TransactionDate)

	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "chase-card", records[0].ImporterID)

	// Export moved to import/processed/.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "activity.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "import", "activity.csv"))
	assert.True(t, os.IsNotExist(err))

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Imported)
	assert.Equal(t, 0, entries[0].Skipped)
	assert.NotEmpty(t, entries[0].CommitHash, "auto-commit records the snapshot hash")
}

func TestImport_CommitBlockedByReview(t *testing.T) {
	dir := newLedger(t)
	writeExport(t, dir, "activity.csv", cardExportWithPayment)

	out, err := runLedgerline(t, "import", "chase-card", "--commit", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "need review")
	assert.Contains(t, out, "Payment Thank You - Web")

	store, err := ledger.Open(dir)
	require.NoError(t, err)
	txns, err := store.Transactions()
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestImport_CommitSkipReviews(t *testing.T) {
	dir := newLedger(t)
	writeExport(t, dir, "activity.csv", cardExportWithPayment)

	out, err := runLedgerline(t, "import", "chase-card", "--commit", "--skip-reviews", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 transactions")

	store, err := ledger.Open(dir)
	require.NoError(t, err)
	txns, err := store.Transactions()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "MERCHANT 1", txns[0].Description)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Imported)
	assert.Equal(t, 1, entries[0].Skipped)
}

func TestImport_SecondRunDeduplicates(t *testing.T) {
	dir := newLedger(t)
	writeExport(t, dir, "activity.csv", cardExport)
	_, err := runLedgerline(t, "import", "chase-card", "--commit", "--dir", dir)
	require.NoError(t, err)

	// Same export arrives again under a different name.
	writeExport(t, dir, "activity-again.csv", cardExport)
	out, err := runLedgerline(t, "import", "chase-card", "--commit", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "skipped-already-imported")
	assert.Contains(t, out, "Imported 0 transactions")

	store, err := ledger.Open(dir)
	require.NoError(t, err)
	txns, err := store.Transactions()
	require.NoError(t, err)
	assert.Len(t, txns, 2, "duplicates must not be written twice")
}

func TestImport_UnknownImporter(t *testing.T) {
	dir := newLedger(t)

	out, err := runLedgerline(t, "import", "nope", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "not configured")
}

func TestImport_ExplicitFileOutsideImportDir(t *testing.T) {
	dir := newLedger(t)
	path := filepath.Join(t.TempDir(), "download.csv")
	require.NoError(t, os.WriteFile(path, []byte(cardExport), 0o644))

	_, err := runLedgerline(t, "import", "chase-card", path, "--commit", "--dir", dir)
	require.NoError(t, err)

	store, err := ledger.Open(dir)
	require.NoError(t, err)
	txns, err := store.Transactions()
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	// Files outside import/ stay where they are.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
