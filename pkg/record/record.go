// Package record defines the Record type, its attribute-byte encoding, and
// the six-state sync classification used by pkg/syncengine.
package record

// Attrs is a record's attribute flags. Category and Archive share the low
// nibble of the wire attribute byte: Archive is meaningful only when
// Delete or Busy is set, Category otherwise (spec.md §3). The serializer
// masks accordingly, so an encode/decode round trip zeroes whichever of
// the two does not apply.
type Attrs struct {
	Delete   bool
	Dirty    bool
	Busy     bool
	Secret   bool
	Category byte // 0..15, meaningful only when !Delete && !Busy
	Archive  bool // meaningful only when Delete || Busy
}

const (
	bitDelete  = 1 << 7
	bitDirty   = 1 << 6
	bitBusy    = 1 << 5
	bitSecret  = 1 << 4
	bitArchive = 1 << 3 // within the low nibble, when Delete||Busy applies
)

// Encode serializes a to its single wire byte.
func (a Attrs) Encode() byte {
	var b byte
	if a.Delete {
		b |= bitDelete
	}
	if a.Dirty {
		b |= bitDirty
	}
	if a.Busy {
		b |= bitBusy
	}
	if a.Secret {
		b |= bitSecret
	}
	if a.Delete || a.Busy {
		if a.Archive {
			b |= bitArchive
		}
	} else {
		b |= a.Category & 0x0F
	}
	return b
}

// Decode parses a wire attribute byte.
func Decode(b byte) Attrs {
	a := Attrs{
		Delete: b&bitDelete != 0,
		Dirty:  b&bitDirty != 0,
		Busy:   b&bitBusy != 0,
		Secret: b&bitSecret != 0,
	}
	if a.Delete || a.Busy {
		a.Archive = b&bitArchive != 0
	} else {
		a.Category = b & 0x0F
	}
	return a
}

// ClearForDeviceWrite strips every attribute bit except Secret, as
// required before every device-side write (spec.md §4.7).
func (a Attrs) ClearForDeviceWrite() Attrs {
	return Attrs{Secret: a.Secret}
}

// Record is one database record: a 24-bit unique id, its attribute flags,
// and its opaque payload.
type Record struct {
	UniqueID uint32 // low 24 bits significant
	Attrs    Attrs
	Data     []byte
}

// State is a record's sync classification (spec.md §3).
type State int

const (
	NotFound State = iota
	ArchivedChanged
	ArchivedUnchanged
	Deleted
	Changed
	Unchanged
)

func (s State) String() string {
	switch s {
	case NotFound:
		return "NOT_FOUND"
	case ArchivedChanged:
		return "ARCHIVED_CHANGED"
	case ArchivedUnchanged:
		return "ARCHIVED_UNCHANGED"
	case Deleted:
		return "DELETED"
	case Changed:
		return "CHANGED"
	case Unchanged:
		return "UNCHANGED"
	default:
		return "UNKNOWN"
	}
}

// Classify determines r's sync state from its attribute flags. In
// fast-sync mode (slow=false) the Dirty bit is trusted directly; in
// slow-sync mode the caller must instead compare bytes against the
// paired record and call ClassifySlow.
func Classify(r *Record) State {
	switch {
	case r == nil:
		return NotFound
	case (r.Attrs.Delete || r.Attrs.Busy) && r.Attrs.Archive:
		if r.Attrs.Dirty {
			return ArchivedChanged
		}
		return ArchivedUnchanged
	case r.Attrs.Delete || r.Attrs.Busy:
		return Deleted
	case r.Attrs.Dirty:
		return Changed
	default:
		return Unchanged
	}
}

// ClassifySlow determines r's state under slow sync, where Dirty is not
// trusted: CHANGED vs UNCHANGED is decided by comparing (Category, Data)
// against peer. Delete/archive states still come from the attribute
// flags, since a slow sync still trusts those explicitly-set bits.
func ClassifySlow(r, peer *Record) State {
	if r == nil {
		return NotFound
	}
	if r.Attrs.Delete || r.Attrs.Busy {
		if r.Attrs.Archive {
			if r.Attrs.Dirty {
				return ArchivedChanged
			}
			return ArchivedUnchanged
		}
		return Deleted
	}
	if peer == nil {
		// No peer to byte-compare against: fall back to trusting Dirty,
		// same as fast sync. The caller still sees the other side as
		// NOT_FOUND — slow sync never synthesizes a DELETED from absence.
		if r.Attrs.Dirty {
			return Changed
		}
		return Unchanged
	}
	if r.Attrs.Category == peer.Attrs.Category && bytesEqual(r.Data, peer.Data) {
		return Unchanged
	}
	return Changed
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
