package syncengine

import "github.com/palmsync/hotsync/pkg/record"

// action is one step of a transition-table cell's plan, applied in order
// against the two DbSync collaborators and the archive accumulator.
type action interface {
	apply(id uint32, device, desktop DbSync, archive *Archive) error
}

// addOnDevice writes rec to the device, preserving its id (overwriting
// any existing record there).
type addOnDevice struct{ rec *record.Record }

func (a addOnDevice) apply(_ uint32, device, _ DbSync, _ *Archive) error {
	r := cleanForDeviceWrite(a.rec)
	_, err := device.Write(r)
	return err
}

// addOnDeviceNewID writes rec to the device with its id cleared so the
// device allocates a fresh, non-colliding one.
type addOnDeviceNewID struct{ rec *record.Record }

func (a addOnDeviceNewID) apply(_ uint32, device, _ DbSync, _ *Archive) error {
	r := cleanForDeviceWrite(a.rec)
	r.UniqueID = 0
	_, err := device.Write(r)
	return err
}

// addOnDesktop writes rec to the desktop, preserving its id.
type addOnDesktop struct{ rec *record.Record }

func (a addOnDesktop) apply(_ uint32, _, desktop DbSync, _ *Archive) error {
	r := cleanForWrite(a.rec)
	_, err := desktop.Write(r)
	return err
}

// delOnDevice removes id from the device.
type delOnDevice struct{ id uint32 }

func (a delOnDevice) apply(_ uint32, device, _ DbSync, _ *Archive) error {
	return device.Delete(a.id)
}

// delOnDesktop removes id from the desktop.
type delOnDesktop struct{ id uint32 }

func (a delOnDesktop) apply(_ uint32, _, desktop DbSync, _ *Archive) error {
	return desktop.Delete(a.id)
}

// archiveRecord appends rec to the accumulator as-is; the source side is
// left to a paired del_on_* action (or, if it stays, will still carry its
// archive+dirty bits until it is next written or deleted elsewhere).
type archiveRecord struct{ rec *record.Record }

func (a archiveRecord) apply(_ uint32, _, _ DbSync, archive *Archive) error {
	archive.append(a.rec)
	return nil
}

// cleanForWrite returns a shallow copy of rec with its attribute byte
// reduced to the invariant every desktop write must satisfy: dirty,
// delete, busy, and archive are all cleared; category and secret survive.
func cleanForWrite(rec *record.Record) *record.Record {
	cp := *rec
	cp.Attrs = record.Attrs{Secret: rec.Attrs.Secret, Category: rec.Attrs.Category}
	return &cp
}

// cleanForDeviceWrite returns a shallow copy of rec with every attribute
// bit but secret cleared, per spec.md §4.7: "before every device-write,
// the engine must clear all attribute bits except secret."
func cleanForDeviceWrite(rec *record.Record) *record.Record {
	cp := *rec
	cp.Attrs = rec.Attrs.ClearForDeviceWrite()
	return &cp
}
