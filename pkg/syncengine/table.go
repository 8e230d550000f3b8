package syncengine

import "github.com/palmsync/hotsync/pkg/record"

// plan resolves one record pair (d from the device, p from the desktop,
// either may be nil) into the ordered list of actions spec.md §4.7's 6x6
// transition table calls for. "impossible" cells return
// ErrInvalidStateTransition instead of an action list.
func plan(d, p *record.Record, slow bool) ([]action, error) {
	ds := classify(d, p, slow)
	ps := classify(p, d, slow)
	same := sameData(d, p)

	invalid := func() ([]action, error) {
		var id uint32
		if d != nil {
			id = d.UniqueID
		} else if p != nil {
			id = p.UniqueID
		}
		return nil, &ErrInvalidStateTransition{RecordID: id, DeviceState: ds, DesktopState: ps}
	}

	switch ds {
	case record.NotFound:
		switch ps {
		case record.NotFound, record.Deleted:
			return nil, nil
		case record.ArchivedChanged:
			return []action{archiveRecord{p}}, nil
		case record.ArchivedUnchanged:
			return invalid()
		case record.Changed:
			return []action{addOnDevice{p}}, nil
		case record.Unchanged:
			return invalid()
		}

	case record.ArchivedChanged:
		switch ps {
		case record.NotFound, record.Deleted:
			return []action{archiveRecord{d}}, nil
		case record.ArchivedChanged, record.ArchivedUnchanged:
			if same {
				return []action{archiveRecord{d}}, nil
			}
			return []action{archiveRecord{d}, archiveRecord{p}}, nil
		case record.Changed:
			if same {
				return []action{archiveRecord{d}, delOnDesktop{idOf(p)}}, nil
			}
			return []action{addOnDeviceNewID{d}, addOnDevice{p}, addOnDesktop{d}}, nil
		case record.Unchanged:
			return []action{archiveRecord{d}, delOnDesktop{idOf(p)}}, nil
		}

	case record.ArchivedUnchanged:
		switch ps {
		case record.NotFound:
			return invalid()
		case record.ArchivedChanged:
			if same {
				return []action{archiveRecord{d}}, nil
			}
			return []action{archiveRecord{d}, archiveRecord{p}}, nil
		case record.ArchivedUnchanged, record.Deleted:
			return []action{archiveRecord{d}}, nil
		case record.Changed:
			return []action{addOnDevice{p}}, nil
		case record.Unchanged:
			return []action{archiveRecord{d}, delOnDesktop{idOf(p)}}, nil
		}

	case record.Deleted:
		switch ps {
		case record.NotFound, record.Deleted:
			return nil, nil
		case record.ArchivedChanged, record.ArchivedUnchanged:
			return []action{archiveRecord{p}}, nil
		case record.Changed:
			return []action{addOnDevice{p}}, nil
		case record.Unchanged:
			return []action{delOnDesktop{idOf(p)}}, nil
		}

	case record.Changed:
		switch ps {
		case record.NotFound:
			return []action{addOnDesktop{d}}, nil
		case record.ArchivedChanged:
			if same {
				return []action{archiveRecord{p}, delOnDevice{idOf(d)}}, nil
			}
			return []action{addOnDeviceNewID{p}, addOnDesktop{p}, addOnDesktop{d}}, nil
		case record.ArchivedUnchanged, record.Deleted, record.Unchanged:
			return []action{addOnDesktop{d}}, nil
		case record.Changed:
			if same {
				return nil, nil
			}
			return []action{addOnDeviceNewID{p}, addOnDesktop{p}, addOnDesktop{d}}, nil
		}

	case record.Unchanged:
		switch ps {
		case record.NotFound:
			return invalid()
		case record.ArchivedChanged, record.ArchivedUnchanged:
			return []action{archiveRecord{p}, delOnDevice{idOf(d)}}, nil
		case record.Deleted:
			return []action{delOnDevice{idOf(d)}}, nil
		case record.Changed:
			return []action{addOnDevice{p}}, nil
		case record.Unchanged:
			return nil, nil
		}
	}
	return invalid()
}

func idOf(r *record.Record) uint32 {
	if r == nil {
		return 0
	}
	return r.UniqueID
}
