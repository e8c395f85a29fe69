// Package bufmgr implements the buffer manager collaborator: it
// mediates every page read and write the index performs, pinning
// pages in memory and deferring the actual write to disk until a
// dirty page is evicted or its file is flushed.
package bufmgr

import (
	"container/list"
	"fmt"
	"sync"

	"btreeidx/internal/logger"
	"btreeidx/internal/pagefile"
)

type key struct {
	file *pagefile.File
	page uint32
}

type frame struct {
	page     *pagefile.Page
	pinCount int
	dirty    bool
	lruElem  *list.Element // nil while pinned
}

// Manager is a fixed-capacity pool of page frames shared across
// however many index files are open at once, the same role BufMgr
// plays for every B+ tree index and the relation's heap file in the
// system this engine is a secondary index for.
type Manager struct {
	mu       sync.Mutex
	capacity int
	frames   map[key]*frame
	lru      *list.List // least-recently-unpinned at the back
	log      *logger.Logger
}

// DefaultCapacity is the frame count used when a caller has no
// particular memory budget in mind.
const DefaultCapacity = 100

// New creates a buffer manager holding up to capacity frames.
func New(capacity int, log *logger.Logger) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		capacity: capacity,
		frames:   make(map[key]*frame, capacity),
		lru:      list.New(),
		log:      log,
	}
}

// AllocatePage asks file for a new page and pins it for write so the
// caller can initialize it before anyone else can observe it.
func (m *Manager) AllocatePage(file *pagefile.File) (*pagefile.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.evictIfFull(); err != nil {
		return nil, err
	}

	pageNum, err := file.AllocatePage()
	if err != nil {
		return nil, err
	}

	p := &pagefile.Page{ID: pageNum}
	k := key{file: file, page: pageNum}
	m.frames[k] = &frame{page: p, pinCount: 1}
	return p, nil
}

// PinPage returns the page for (file, pageNum), reading it from disk
// on first access. The page is pinned and must be released with a
// matching UnpinPage.
func (m *Manager) PinPage(file *pagefile.File, pageNum uint32) (*pagefile.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{file: file, page: pageNum}
	if fr, ok := m.frames[k]; ok {
		if fr.lruElem != nil {
			m.lru.Remove(fr.lruElem)
			fr.lruElem = nil
		}
		fr.pinCount++
		return fr.page, nil
	}

	if err := m.evictIfFull(); err != nil {
		return nil, err
	}

	p, err := file.ReadPage(pageNum)
	if err != nil {
		return nil, err
	}
	m.frames[k] = &frame{page: p, pinCount: 1}
	return p, nil
}

// UnpinPage releases one pin on (file, pageNum). dirty marks the page
// as modified since it was pinned; dirty is sticky across multiple
// pins until the page is actually flushed.
func (m *Manager) UnpinPage(file *pagefile.File, pageNum uint32, dirty bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{file: file, page: pageNum}
	fr, ok := m.frames[k]
	if !ok {
		return fmt.Errorf("bufmgr: unpin page %d: %w", pageNum, ErrPageNotPinned)
	}
	if dirty {
		fr.dirty = true
	}
	if fr.pinCount == 0 {
		return fmt.Errorf("bufmgr: unpin page %d: %w", pageNum, ErrNotPinned)
	}
	fr.pinCount--
	if fr.pinCount == 0 {
		fr.lruElem = m.lru.PushFront(k)
	}
	return nil
}

// evictIfFull drops the least-recently-unpinned frame to make room
// for a new one. Pages with an outstanding pin are never evicted.
func (m *Manager) evictIfFull() error {
	if len(m.frames) < m.capacity {
		return nil
	}
	elem := m.lru.Back()
	if elem == nil {
		return ErrBufferFull
	}
	k := elem.Value.(key)
	m.lru.Remove(elem)
	fr := m.frames[k]
	if fr.dirty {
		if err := k.file.WritePage(k.page, fr.page); err != nil {
			return fmt.Errorf("bufmgr: evict page %d: %w", k.page, err)
		}
	}
	delete(m.frames, k)
	return nil
}

// FlushFile writes every dirty page belonging to file to disk,
// without unpinning anything.
func (m *Manager) FlushFile(file *pagefile.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, fr := range m.frames {
		if k.file != file || !fr.dirty {
			continue
		}
		if err := file.WritePage(k.page, fr.page); err != nil {
			return fmt.Errorf("bufmgr: flush page %d: %w", k.page, err)
		}
		fr.dirty = false
	}
	return nil
}

// ForgetFile drops every frame belonging to file without flushing,
// for use after the file itself has been closed.
func (m *Manager) ForgetFile(file *pagefile.File) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, fr := range m.frames {
		if k.file != file {
			continue
		}
		if fr.lruElem != nil {
			m.lru.Remove(fr.lruElem)
		}
		delete(m.frames, k)
	}
}
