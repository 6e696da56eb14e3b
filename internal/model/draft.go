package model

// DraftStatus is the review lifecycle state of a draft transaction.
type DraftStatus string

const (
	// StatusNeedsReview marks a draft that can't be imported until it is
	// manually reviewed.
	StatusNeedsReview DraftStatus = "needs-review"

	// StatusReadyToImport marks a draft the commit processor may write.
	StatusReadyToImport DraftStatus = "ready-to-import"

	// StatusSkippedAlreadyImported marks a draft whose source row was already
	// imported (or skipped permanently) in the past. Terminal for the session.
	StatusSkippedAlreadyImported DraftStatus = "skipped-already-imported"

	// StatusSkippedTemporarily marks a draft skipped for this run only; it
	// will come back on the next import of the same file.
	StatusSkippedTemporarily DraftStatus = "skipped-temporarily"

	// StatusSkippedPermanently marks a draft that will always be skipped.
	StatusSkippedPermanently DraftStatus = "skipped-permanently"
)

// DraftTransaction wraps a ParsedTransaction with its review status for the
// duration of a review session.
type DraftTransaction struct {
	ParsedTransaction
	Status DraftStatus
}
