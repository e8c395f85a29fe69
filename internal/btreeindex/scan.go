package btreeindex

import "fmt"

// StartScan begins a range scan over entries with key >= lowVal (or >
// if lowOp is GT) and key <= highVal (or < if highOp is LT). Only one
// scan may be active on an index at a time; starting a new one
// implicitly ends whatever scan was running before.
func (idx *BTreeIndex) StartScan(lowVal Key, lowOp Operator, highVal Key, highOp Operator) error {
	if (lowOp != GT && lowOp != GTE) || (highOp != LT && highOp != LTE) {
		return ErrBadOpcodes
	}
	if Less(highVal, lowVal) {
		return ErrBadScanRange
	}

	leafPageNum, _, err := idx.findLeaf(lowVal)
	if err != nil {
		return err
	}

	idx.lowVal, idx.lowOp = lowVal, lowOp
	idx.highVal, idx.highOp = highVal, highOp
	idx.scanLeaf = leafPageNum
	idx.scanPos = 0
	idx.scanExecuting = true

	return idx.skipToLowerBound()
}

// skipToLowerBound advances scanPos/scanLeaf past every entry that
// sorts before the scan's lower bound, so the first call to ScanNext
// returns the first qualifying entry rather than requiring the caller
// to discard non-matching ones itself.
func (idx *BTreeIndex) skipToLowerBound() error {
	for {
		p, err := idx.buf.PinPage(idx.file, idx.scanLeaf)
		if err != nil {
			return err
		}
		node := decodeLeaf(idx.attrType, p)
		if err := idx.buf.UnpinPage(idx.file, idx.scanLeaf, false); err != nil {
			return err
		}

		for idx.scanPos < len(node.Keys) {
			if idx.satisfiesLow(node.Keys[idx.scanPos]) {
				return nil
			}
			idx.scanPos++
		}

		if node.RightSibling == 0 {
			return nil // lower bound sorts past the end of the tree
		}
		idx.scanLeaf = node.RightSibling
		idx.scanPos = 0
	}
}

func (idx *BTreeIndex) satisfiesLow(k Key) bool {
	if idx.lowOp == GTE {
		return !Less(k, idx.lowVal)
	}
	return Less(idx.lowVal, k)
}

func (idx *BTreeIndex) satisfiesHigh(k Key) bool {
	if idx.highOp == LTE {
		return !Less(idx.highVal, k)
	}
	return Less(k, idx.highVal)
}

// ScanNext returns the key and RID of the next entry satisfying the
// active scan's range, in ascending key order. It returns
// ErrIndexScanCompleted once there are none left, and
// ErrScanNotInitialized if no scan has been started.
func (idx *BTreeIndex) ScanNext() (Key, RID, error) {
	if !idx.scanExecuting {
		return Key{}, RID{}, ErrScanNotInitialized
	}

	for {
		p, err := idx.buf.PinPage(idx.file, idx.scanLeaf)
		if err != nil {
			return Key{}, RID{}, err
		}
		node := decodeLeaf(idx.attrType, p)
		if err := idx.buf.UnpinPage(idx.file, idx.scanLeaf, false); err != nil {
			return Key{}, RID{}, err
		}

		if idx.scanPos >= len(node.Keys) {
			if node.RightSibling == 0 {
				idx.scanExecuting = false
				return Key{}, RID{}, ErrIndexScanCompleted
			}
			idx.scanLeaf = node.RightSibling
			idx.scanPos = 0
			continue
		}

		key := node.Keys[idx.scanPos]
		r := node.Rids[idx.scanPos]
		if !idx.satisfiesHigh(key) {
			idx.scanExecuting = false
			return Key{}, RID{}, ErrIndexScanCompleted
		}

		idx.scanPos++
		return key, r, nil
	}
}

// EndScan stops the active scan. It is an error to call EndScan
// without a scan in progress.
func (idx *BTreeIndex) EndScan() error {
	if !idx.scanExecuting {
		return ErrScanNotInitialized
	}
	idx.scanExecuting = false
	return nil
}

// String renders a key for diagnostics, using the scanning
// convention of the type it actually holds rather than requiring the
// caller to switch on Type themselves.
func (k Key) String() string {
	switch k.Type {
	case TypeInt:
		return fmt.Sprintf("%d", k.I)
	case TypeDouble:
		return fmt.Sprintf("%g", k.D)
	case TypeString:
		n := len(k.S)
		for n > 0 && k.S[n-1] == 0 {
			n--
		}
		return string(k.S[:n])
	default:
		return fmt.Sprintf("Key(%v)", k.Type)
	}
}
