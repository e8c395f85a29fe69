package bufmgr

import "errors"

var (
	ErrBufferFull    = errors.New("bufmgr: no unpinned frame available to evict")
	ErrPageNotPinned = errors.New("bufmgr: page is not resident in the buffer pool")
	ErrNotPinned     = errors.New("bufmgr: page has no outstanding pin to release")
)
