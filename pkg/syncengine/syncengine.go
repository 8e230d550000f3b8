// Package syncengine implements the fast-sync and slow-sync two-way
// database reconciliation algorithms: the 6x6 state-transition table over
// device and desktop record peers, plus the archive accumulator.
package syncengine

import (
	"fmt"

	"github.com/palmsync/hotsync/pkg/record"
	"github.com/sirupsen/logrus"
)

// DbSync is the collaborator interface for one side (device or desktop)
// of a database being synced (spec.md §4.7).
type DbSync interface {
	ReadModified() ([]*record.Record, error)
	ReadAll() ([]*record.Record, error)
	Read(id uint32) (*record.Record, error)
	Write(r *record.Record) (uint32, error)
	Delete(id uint32) error
	Cleanup() error
}

// Archive accumulates records the user marked for archival during a
// sync. The sync engine owns and appends to it; the caller flushes it to
// storage once the sync succeeds.
type Archive struct {
	Records []*record.Record
}

func (a *Archive) append(r *record.Record) {
	a.Records = append(a.Records, r)
}

// ErrInvalidStateTransition is returned per-record (not fatal to the
// whole sync) when the device/desktop state pair violates the
// transition table's invariants (an "impossible" cell).
type ErrInvalidStateTransition struct {
	RecordID         uint32
	DeviceState      record.State
	DesktopState     record.State
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("syncengine: invalid state transition for record %d: device=%s desktop=%s",
		e.RecordID, e.DeviceState, e.DesktopState)
}

// Result summarizes one database's sync run.
type Result struct {
	Archive      *Archive
	FailureCount int
	Failures     []error
}

// Run executes a fast sync (slow=false) or slow sync (slow=true) between
// device and desktop, per spec.md §4.7.
func Run(device, desktop DbSync, slow bool, log *logrus.Entry) (*Result, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "syncengine").WithField("slow", slow)

	var deviceRecords, desktopRecords []*record.Record
	var err error
	if slow {
		deviceRecords, err = device.ReadAll()
	} else {
		deviceRecords, err = device.ReadModified()
	}
	if err != nil {
		return nil, fmt.Errorf("reading device records: %w", err)
	}
	if slow {
		desktopRecords, err = desktop.ReadAll()
	} else {
		desktopRecords, err = desktop.ReadModified()
	}
	if err != nil {
		return nil, fmt.Errorf("reading desktop records: %w", err)
	}

	result := &Result{Archive: &Archive{}}
	handled := make(map[uint32]bool, len(deviceRecords)+len(desktopRecords))

	process := func(id uint32, d, p *record.Record) {
		acts, err := plan(d, p, slow)
		if err != nil {
			result.FailureCount++
			result.Failures = append(result.Failures, err)
			log.WithError(err).WithField("record_id", id).Warn("sync action planning failed")
			return
		}
		for _, act := range acts {
			if err := act.apply(id, device, desktop, result.Archive); err != nil {
				result.FailureCount++
				result.Failures = append(result.Failures, err)
				log.WithError(err).WithField("record_id", id).Warn("sync action application failed")
			}
		}
	}

	for _, d := range deviceRecords {
		p, err := desktop.Read(d.UniqueID)
		if err != nil {
			return nil, fmt.Errorf("fetching desktop peer for record %d: %w", d.UniqueID, err)
		}
		process(d.UniqueID, d, p)
		handled[d.UniqueID] = true
	}
	for _, p := range desktopRecords {
		if handled[p.UniqueID] {
			continue
		}
		var d *record.Record
		if p.UniqueID != 0 {
			var err error
			d, err = device.Read(p.UniqueID)
			if err != nil {
				return nil, fmt.Errorf("fetching device peer for record %d: %w", p.UniqueID, err)
			}
		}
		process(p.UniqueID, d, p)
	}

	if err := device.Cleanup(); err != nil {
		return result, fmt.Errorf("device cleanup: %w", err)
	}
	if err := desktop.Cleanup(); err != nil {
		return result, fmt.Errorf("desktop cleanup: %w", err)
	}
	return result, nil
}

// classify resolves one side's state, honoring slow sync's byte-compare
// rule (spec.md §3).
func classify(r, peer *record.Record, slow bool) record.State {
	if !slow {
		return record.Classify(r)
	}
	return record.ClassifySlow(r, peer)
}

// sameData reports whether device and desktop data bytes are equal,
// which several transition-table cells branch on.
func sameData(d, p *record.Record) bool {
	if d == nil || p == nil {
		return false
	}
	if len(d.Data) != len(p.Data) {
		return false
	}
	for i := range d.Data {
		if d.Data[i] != p.Data[i] {
			return false
		}
	}
	return true
}
