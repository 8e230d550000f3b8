package dlp

import "fmt"

// ErrCode is the closed DLP response error-code enumeration (spec.md §4.6).
type ErrCode uint16

const (
	ErrNone                   ErrCode = 0
	ErrSystem                 ErrCode = 1
	ErrIllegalReq             ErrCode = 2
	ErrMemory                 ErrCode = 3
	ErrParam                  ErrCode = 4
	ErrNotFound               ErrCode = 5
	ErrNoneOpen               ErrCode = 6
	ErrDatabaseOpen           ErrCode = 7
	ErrTooManyOpenDatabases   ErrCode = 8
	ErrAlreadyExists          ErrCode = 9
	ErrCantOpen               ErrCode = 10
	ErrRecordDeleted          ErrCode = 11
	ErrRecordBusy             ErrCode = 12
	ErrNotSupported           ErrCode = 13
	ErrUnused1                ErrCode = 14
	ErrReadOnly               ErrCode = 15
	ErrNotEnoughSpace         ErrCode = 16
	ErrLimitExceeded          ErrCode = 17
	ErrCancelSync             ErrCode = 18
	ErrBadWrapper             ErrCode = 19
	ErrArgMissing             ErrCode = 20
	ErrArgSize                ErrCode = 21
)

var errCodeDescriptions = map[ErrCode]string{
	ErrNone:                 "no error",
	ErrSystem:               "system error",
	ErrIllegalReq:           "illegal request on this connection",
	ErrMemory:               "insufficient memory",
	ErrParam:                "invalid parameter",
	ErrNotFound:             "not found",
	ErrNoneOpen:             "no database open",
	ErrDatabaseOpen:         "database already open",
	ErrTooManyOpenDatabases: "too many open databases",
	ErrAlreadyExists:        "already exists",
	ErrCantOpen:             "cannot open database",
	ErrRecordDeleted:        "record already deleted",
	ErrRecordBusy:           "record busy",
	ErrNotSupported:         "not supported",
	ErrUnused1:              "reserved",
	ErrReadOnly:             "database is read-only",
	ErrNotEnoughSpace:       "not enough space",
	ErrLimitExceeded:        "limit exceeded",
	ErrCancelSync:           "sync cancelled",
	ErrBadWrapper:           "malformed DLP wrapper",
	ErrArgMissing:           "required argument missing",
	ErrArgSize:              "argument size out of range",
}

func (e ErrCode) Error() string {
	if d, ok := errCodeDescriptions[e]; ok {
		return d
	}
	return fmt.Sprintf("dlp: unknown error code %d", uint16(e))
}

// Description is an alias of Error kept for call sites that want to
// distinguish "the error code" from "the protocol error surfaced to Go
// code", mirroring how the wire enum and the Go error value are the same
// type.
func (e ErrCode) Description() string { return e.Error() }

// FramingErr and engine-level errors (spec.md §7) live alongside ErrCode
// but are not part of its closed wire enumeration.
type FramingErr string

const (
	ErrMalformedFrame     FramingErr = "MALFORMED_FRAME"
	ErrOutOfOrderFragment FramingErr = "OUT_OF_ORDER_FRAGMENT"
	ErrRetryExhausted     FramingErr = "RETRY_EXHAUSTED"
	ErrInvalidStateTrans  FramingErr = "INVALID_STATE_TRANSITION"
	ErrRecordIOMismatch   FramingErr = "RECORD_IO_MISMATCH"
	ErrProtocolMismatch   FramingErr = "PROTOCOL_MISMATCH"
	ErrArgShapeMismatch   FramingErr = "ARG_SHAPE_MISMATCH"
)

func (e FramingErr) Error() string { return string(e) }
