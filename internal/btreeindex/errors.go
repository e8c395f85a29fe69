package btreeindex

import "errors"

var (
	// ErrBadOpcodes is returned by StartScan when the low and high
	// comparison operators are not one of the supported combinations.
	ErrBadOpcodes = errors.New("btreeindex: low operator must be GT or GTE, high operator must be LT or LTE")

	// ErrBadScanRange is returned by StartScan when lowVal is greater
	// than highVal under the index's key ordering.
	ErrBadScanRange = errors.New("btreeindex: low value is greater than high value")

	// ErrScanNotInitialized is returned by ScanNext or EndScan when no
	// scan is currently in progress.
	ErrScanNotInitialized = errors.New("btreeindex: no scan has been started")

	// ErrIndexScanCompleted is returned by ScanNext once every entry
	// satisfying the scan's range has been returned.
	ErrIndexScanCompleted = errors.New("btreeindex: scan has returned every qualifying entry")

	// ErrBadIndexInfo is returned by New when an existing index file's
	// meta page does not match the relation name, attribute offset, or
	// attribute type the caller asked to open.
	ErrBadIndexInfo = errors.New("btreeindex: existing index file does not match requested index parameters")

	// ErrCorruptMeta is returned when the meta page cannot be parsed.
	ErrCorruptMeta = errors.New("btreeindex: meta page is corrupt")
)
