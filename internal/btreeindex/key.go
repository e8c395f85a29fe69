package btreeindex

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Datatype is the runtime tag for the three key variants this index
// supports. Node fan-out and comparison semantics both depend on it.
type Datatype int32

const (
	TypeInt Datatype = iota
	TypeDouble
	TypeString
)

func (t Datatype) String() string {
	switch t {
	case TypeInt:
		return "INTEGER"
	case TypeDouble:
		return "DOUBLE"
	case TypeString:
		return "STRING"
	default:
		return fmt.Sprintf("Datatype(%d)", int32(t))
	}
}

// StringKeySize is the fixed width of a STRING key, NUL-padded.
const StringKeySize = 10

// Key is a tagged union over the three key variants. Only the field
// matching Type is meaningful; this is the single generic
// representation the dispatch shim at the package boundary produces,
// rather than three parallel node/key class hierarchies.
type Key struct {
	Type Datatype
	I    int32
	D    float64
	S    [StringKeySize]byte
}

// IntKey builds an INTEGER key. v must not be the sentinel value -1;
// callers inserting user keys are responsible for this (spec data
// model §3: the sentinel is reserved).
func IntKey(v int32) Key { return Key{Type: TypeInt, I: v} }

// DoubleKey builds a DOUBLE key.
func DoubleKey(v float64) Key { return Key{Type: TypeDouble, D: v} }

// StringKey builds a STRING key, NUL-padding or truncating s to
// StringKeySize bytes exactly as the source this engine is modeled on
// does (original_source's padStr: copy up to StringKeySize bytes,
// zero-fill the remainder).
func StringKey(s string) Key {
	return Key{Type: TypeString, S: padString(s)}
}

func padString(s string) [StringKeySize]byte {
	var out [StringKeySize]byte
	n := len(s)
	if n > StringKeySize {
		n = StringKeySize
	}
	copy(out[:n], s[:n])
	return out
}

// Sentinel returns the reserved "unoccupied slot" value for t.
func Sentinel(t Datatype) Key {
	switch t {
	case TypeInt:
		return Key{Type: TypeInt, I: -1}
	case TypeDouble:
		return Key{Type: TypeDouble, D: -1}
	case TypeString:
		return Key{Type: TypeString} // all-NUL, the zero value
	default:
		panic(fmt.Sprintf("btreeindex: unknown datatype %v", t))
	}
}

// IsSentinel reports whether k is the reserved sentinel for its type.
func IsSentinel(k Key) bool {
	return Equal(k, Sentinel(k.Type))
}

// Compare orders two keys of the same type. The caller never compares
// across types - a node only ever holds keys of its index's attrType.
func Compare(a, b Key) int {
	switch a.Type {
	case TypeInt:
		switch {
		case a.I < b.I:
			return -1
		case a.I > b.I:
			return 1
		default:
			return 0
		}
	case TypeDouble:
		switch {
		case a.D < b.D:
			return -1
		case a.D > b.D:
			return 1
		default:
			return 0
		}
	case TypeString:
		for i := 0; i < StringKeySize; i++ {
			if a.S[i] != b.S[i] {
				if a.S[i] < b.S[i] {
					return -1
				}
				return 1
			}
		}
		return 0
	default:
		panic(fmt.Sprintf("btreeindex: unknown datatype %v", a.Type))
	}
}

// Equal reports whether a and b compare equal.
func Equal(a, b Key) bool { return Compare(a, b) == 0 }

// Less reports whether a orders strictly before b.
func Less(a, b Key) bool { return Compare(a, b) < 0 }

// byteWidth is the serialized size of one key of this type, used by
// the fan-out arithmetic in layout.go and by on-page (de)serialization.
func (t Datatype) byteWidth() int {
	switch t {
	case TypeInt:
		return 4
	case TypeDouble:
		return 8
	case TypeString:
		return StringKeySize
	default:
		panic(fmt.Sprintf("btreeindex: unknown datatype %v", t))
	}
}

// FromAttrBytes reads a key of type t out of rec at the given byte
// offset, using native endianness - the index file is not portable
// across machines of differing endianness (spec.md §4.1).
func FromAttrBytes(t Datatype, rec []byte, offset int32) (Key, error) {
	off := int(offset)
	switch t {
	case TypeInt:
		if off+4 > len(rec) {
			return Key{}, fmt.Errorf("btreeindex: record too short for INTEGER attribute at offset %d", off)
		}
		return IntKey(int32(binary.NativeEndian.Uint32(rec[off : off+4]))), nil
	case TypeDouble:
		if off+8 > len(rec) {
			return Key{}, fmt.Errorf("btreeindex: record too short for DOUBLE attribute at offset %d", off)
		}
		bits := binary.NativeEndian.Uint64(rec[off : off+8])
		return DoubleKey(math.Float64frombits(bits)), nil
	case TypeString:
		if off+StringKeySize > len(rec) {
			return Key{}, fmt.Errorf("btreeindex: record too short for STRING attribute at offset %d", off)
		}
		var s [StringKeySize]byte
		copy(s[:], rec[off:off+StringKeySize])
		return Key{Type: TypeString, S: s}, nil
	default:
		return Key{}, fmt.Errorf("btreeindex: unknown datatype %v", t)
	}
}

// encodeKey writes k's key bytes (no type tag - the node already knows
// its own type) into dst, which must be k.Type.byteWidth() bytes long.
func encodeKey(k Key, dst []byte) {
	switch k.Type {
	case TypeInt:
		binary.NativeEndian.PutUint32(dst, uint32(k.I))
	case TypeDouble:
		binary.NativeEndian.PutUint64(dst, math.Float64bits(k.D))
	case TypeString:
		copy(dst, k.S[:])
	default:
		panic(fmt.Sprintf("btreeindex: unknown datatype %v", k.Type))
	}
}

// decodeKey is the inverse of encodeKey.
func decodeKey(t Datatype, src []byte) Key {
	switch t {
	case TypeInt:
		return IntKey(int32(binary.NativeEndian.Uint32(src)))
	case TypeDouble:
		return DoubleKey(math.Float64frombits(binary.NativeEndian.Uint64(src)))
	case TypeString:
		var s [StringKeySize]byte
		copy(s[:], src)
		return Key{Type: TypeString, S: s}
	default:
		panic(fmt.Sprintf("btreeindex: unknown datatype %v", t))
	}
}
