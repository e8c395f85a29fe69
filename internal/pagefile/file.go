package pagefile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"btreeidx/internal/logger"
)

// sig identifies a file as a page-structured index file so a stray
// non-index file opened by mistake is rejected instead of silently
// misread.
var sig = []byte{'B', 'T', 'R', 'E', 'E', 'I', 'D', 'X'}

// File is the paged-file collaborator: a flat file treated as an
// ordered sequence of fixed-size pages numbered from 1. It knows
// nothing about node layout or keys - it only allocates, reads and
// writes whole pages.
type File struct {
	f        *os.File
	path     string
	numPages uint32
	log      *logger.Logger
}

// Open opens an existing index file, or creates one (writing the
// signature header) if it does not exist yet. The returned bool is
// true when the file already existed.
func Open(path string, log *logger.Logger) (file *File, existed bool, err error) {
	f, openErr := os.OpenFile(path, os.O_RDWR, 0o666)
	if os.IsNotExist(openErr) {
		f, err = create(path)
		if err != nil {
			return nil, false, err
		}
		return &File{f: f, path: path, numPages: 0, log: log}, false, nil
	}
	if openErr != nil {
		return nil, false, fmt.Errorf("pagefile: open %s: %w", path, openErr)
	}

	if err := checkSignature(f); err != nil {
		f.Close()
		return nil, false, err
	}

	info, statErr := f.Stat()
	if statErr != nil {
		f.Close()
		return nil, false, fmt.Errorf("pagefile: stat %s: %w", path, statErr)
	}

	body := info.Size() - int64(len(sig))
	if body < 0 || body%PageSize != 0 {
		f.Close()
		return nil, false, fmt.Errorf("pagefile: %s: %w", path, ErrCorruptFile)
	}

	return &File{
		f:        f,
		path:     path,
		numPages: uint32(body / PageSize),
		log:      log,
	}, true, nil
}

func create(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("pagefile: create %s: %w", path, err)
	}
	if _, err := f.Write(sig); err != nil {
		f.Close()
		return nil, fmt.Errorf("pagefile: write signature %s: %w", path, err)
	}
	return f, nil
}

func checkSignature(f *os.File) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("pagefile: seek: %w", err)
	}
	h := make([]byte, len(sig))
	if _, err := io.ReadFull(f, h); err != nil {
		return fmt.Errorf("pagefile: read signature: %w", err)
	}
	if !bytes.Equal(h, sig) {
		return ErrInvalidFileSig
	}
	return nil
}

func (file *File) offset(pageNum uint32) int64 {
	return int64(len(sig)) + int64(pageNum-1)*PageSize
}

// AllocatePage extends the file by one page and returns its number.
// Numbers are handed out sequentially starting at 1; there is no free
// list, since the index never frees a page once allocated (no
// deletion path).
func (file *File) AllocatePage() (uint32, error) {
	file.numPages++
	pageNum := file.numPages

	var blank [PageSize]byte
	if _, err := file.f.WriteAt(blank[:], file.offset(pageNum)); err != nil {
		return 0, fmt.Errorf("pagefile: allocate page %d: %w", pageNum, err)
	}
	if file.log != nil {
		file.log.Debugf("pagefile: allocated page %d", pageNum)
	}
	return pageNum, nil
}

// ReadPage reads a page by number. pageNum must be in [1, NumPages()].
func (file *File) ReadPage(pageNum uint32) (*Page, error) {
	if pageNum == InvalidPageNum || pageNum > file.numPages {
		return nil, fmt.Errorf("pagefile: read page %d: %w", pageNum, ErrInvalidPointer)
	}
	p := &Page{ID: pageNum}
	if _, err := file.f.ReadAt(p.Data[:], file.offset(pageNum)); err != nil {
		return nil, fmt.Errorf("pagefile: read page %d: %w", pageNum, err)
	}
	return p, nil
}

// WritePage overwrites a page by number.
func (file *File) WritePage(pageNum uint32, p *Page) error {
	if pageNum == InvalidPageNum || pageNum > file.numPages {
		return fmt.Errorf("pagefile: write page %d: %w", pageNum, ErrInvalidPointer)
	}
	n, err := file.f.WriteAt(p.Data[:], file.offset(pageNum))
	if err != nil {
		return fmt.Errorf("pagefile: write page %d: %w", pageNum, err)
	}
	if n != PageSize {
		return fmt.Errorf("pagefile: write page %d: %w", pageNum, ErrWriteSizeMismatch)
	}
	return nil
}

// NumPages reports how many data pages exist in the file.
func (file *File) NumPages() uint32 {
	return file.numPages
}

// Path returns the filename this File was opened against.
func (file *File) Path() string {
	return file.path
}

// Close closes the underlying OS file. Any buffered dirty pages must
// be flushed through the buffer manager before calling Close.
func (file *File) Close() error {
	return file.f.Close()
}
