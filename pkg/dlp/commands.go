package dlp

import (
	"encoding/binary"
	"time"
)

// This file hand-wraps a representative slice of the catalog (system,
// database lifecycle, record I/O, resource I/O, VFS, conduit boundary and
// sync control commands) with typed Go functions; the system control,
// expansion card and NetSync rows have no wrapper. Every other row is reachable
// generically via Raw. Each wrapper builds its Request from typed fields
// and parses its Response back into a typed struct, using the same
// Arg/EncodeArgs/DecodeArgs primitives Raw uses underneath.

// UserInfo is the parsed response to ReadUserInfo.
type UserInfo struct {
	UserID       uint32
	ViewerID     uint32
	LastSyncPCID uint32
	SuccSyncDate time.Time
	LastSyncDate time.Time
	UserName     string
	Password     []byte
}

func ReadUserInfoRequest() *Request {
	return &Request{FuncID: byte(FuncReadUserInfo)}
}

func ParseUserInfo(resp *Response) (*UserInfo, error) {
	if len(resp.Args) < 1 {
		return nil, ErrArgShapeMismatch
	}
	fixed := resp.Args[0].Data
	if len(fixed) < 30 {
		return nil, ErrArgShapeMismatch
	}
	info := &UserInfo{
		UserID:       binary.BigEndian.Uint32(fixed[0:4]),
		ViewerID:     binary.BigEndian.Uint32(fixed[4:8]),
		LastSyncPCID: binary.BigEndian.Uint32(fixed[8:12]),
	}
	var err error
	if info.SuccSyncDate, err = DecodeDateTime(fixed[12:20]); err != nil {
		return nil, err
	}
	if info.LastSyncDate, err = DecodeDateTime(fixed[20:28]); err != nil {
		return nil, err
	}
	nameLen := int(fixed[28])
	passLen := int(fixed[29])
	if len(resp.Args) > 1 {
		body := resp.Args[1].Data
		if len(body) >= nameLen {
			info.UserName = string(body[:nameLen])
			body = body[nameLen:]
		}
		if len(body) >= passLen {
			info.Password = body[:passLen]
		}
	}
	return info, nil
}

// SysInfo is the parsed response to ReadSysInfo.
type SysInfo struct {
	ROMVersion    uint32
	Locale        uint32
	ProductID     string
	DLPMajor      byte
	DLPMinor      byte
	CompatMajor   byte
	CompatMinor   byte
	MaxRecordSize uint32
}

// ReadSysInfoRequest advertises the host's own DLP version so the device
// can pick a compatible response shape.
func ReadSysInfoRequest(hostDLPMajor, hostDLPMinor byte) *Request {
	return &Request{FuncID: byte(FuncReadSysInfo), Args: []Arg{{ID: 0x20, Data: []byte{hostDLPMajor, hostDLPMinor}}}}
}

func ParseSysInfo(resp *Response) (*SysInfo, error) {
	if len(resp.Args) < 1 || len(resp.Args[0].Data) < 9 {
		return nil, ErrArgShapeMismatch
	}
	fixed := resp.Args[0].Data
	info := &SysInfo{
		ROMVersion: binary.BigEndian.Uint32(fixed[0:4]),
		Locale:     binary.BigEndian.Uint32(fixed[4:8]),
	}
	idLen := int(fixed[8])
	if len(fixed) >= 9+idLen {
		info.ProductID = string(fixed[9 : 9+idLen])
	}
	if len(resp.Args) > 1 {
		ext := resp.Args[1].Data
		if len(ext) >= 8 {
			info.DLPMajor = ext[0]
			info.DLPMinor = ext[1]
			info.CompatMajor = ext[2]
			info.CompatMinor = ext[3]
			info.MaxRecordSize = binary.BigEndian.Uint32(ext[4:8])
		}
	}
	return info, nil
}

// OpenDBRequest builds an OpenDB request for the named database on cardNo
// with the given open mode bits.
func OpenDBRequest(cardNo byte, mode byte, name string) *Request {
	data := append([]byte{cardNo, mode}, []byte(name)...)
	data = append(data, 0) // NUL-terminated name on the wire
	return &Request{FuncID: byte(FuncOpenDB), Args: []Arg{{ID: 0x20, Data: data}}}
}

// ParseOpenDBResponse extracts the allocated database handle.
func ParseOpenDBResponse(resp *Response) (byte, error) {
	if len(resp.Args) < 1 || len(resp.Args[0].Data) < 1 {
		return 0, ErrArgShapeMismatch
	}
	return resp.Args[0].Data[0], nil
}

func CloseDBRequest(handle byte) *Request {
	return &Request{FuncID: byte(FuncCloseDB), Args: []Arg{{ID: 0x20, Data: []byte{handle}}}}
}

// ReadRecordByIDRequest reads up to maxLen bytes of record recordID from
// db handle at the given offset (0, 0xFFFF means "entire record").
func ReadRecordByIDRequest(handle byte, recordID uint32, offset, maxLen uint16) *Request {
	data := make([]byte, 9)
	data[0] = handle
	binary.BigEndian.PutUint32(data[1:5], recordID)
	binary.BigEndian.PutUint16(data[5:7], offset)
	binary.BigEndian.PutUint16(data[7:9], maxLen)
	req := &Request{FuncID: byte(FuncReadRecord)}
	req.Args = []Arg{{ID: 0x20, Data: data}}
	return req
}

// ReadRecordResult is the parsed response to ReadRecordByIDRequest.
type ReadRecordResult struct {
	RecordID uint32
	Index    uint16
	Attrs    byte
	Category byte
	Data     []byte
}

func ParseReadRecordResponse(resp *Response) (*ReadRecordResult, error) {
	if len(resp.Args) < 1 || len(resp.Args[0].Data) < 10 {
		return nil, ErrArgShapeMismatch
	}
	fixed := resp.Args[0].Data
	out := &ReadRecordResult{
		RecordID: binary.BigEndian.Uint32(fixed[0:4]),
		Index:    binary.BigEndian.Uint16(fixed[4:6]),
		// fixed[6:8] is the record size; Data carries the bytes themselves.
		Attrs:    fixed[8],
		Category: fixed[9],
	}
	if len(resp.Args) > 1 {
		out.Data = resp.Args[1].Data
	}
	return out, nil
}

// WriteRecordRequest writes data to recordID (0 ⇒ device allocates a fresh
// id) on handle with the given attribute byte and category.
func WriteRecordRequest(handle byte, recordID uint32, attrs byte, category byte, data []byte) *Request {
	header := make([]byte, 8)
	header[0] = handle
	header[1] = 0 // reserved/flags
	binary.BigEndian.PutUint32(header[2:6], recordID)
	header[6] = attrs
	header[7] = category
	body := append(header, data...)
	return &Request{FuncID: byte(FuncWriteRecordMulti), Args: []Arg{{ID: 0x20, Data: body}}}
}

func ParseWriteRecordResponse(resp *Response) (uint32, error) {
	if len(resp.Args) < 1 || len(resp.Args[0].Data) < 4 {
		return 0, ErrArgShapeMismatch
	}
	return binary.BigEndian.Uint32(resp.Args[0].Data[0:4]), nil
}

// ReadResourceByIndexRequest reads resource index within db handle.
func ReadResourceByIndexRequest(handle byte, index uint16, offset, maxLen uint16) *Request {
	data := make([]byte, 8)
	data[0] = handle
	data[1] = 0
	binary.BigEndian.PutUint16(data[2:4], index)
	binary.BigEndian.PutUint16(data[4:6], offset)
	binary.BigEndian.PutUint16(data[6:8], maxLen)
	return &Request{FuncID: byte(FuncReadResourceByIndex), Args: []Arg{{ID: 0x20, Data: data}}}
}

// ResourceResult is the parsed response to ReadResourceByIndexRequest.
type ResourceResult struct {
	Type  string
	ID    uint16
	Index uint16
	Data  []byte
}

func ParseReadResourceResponse(resp *Response) (*ResourceResult, error) {
	if len(resp.Args) < 1 || len(resp.Args[0].Data) < 8 {
		return nil, ErrArgShapeMismatch
	}
	fixed := resp.Args[0].Data
	out := &ResourceResult{
		Type:  string(fixed[0:4]),
		ID:    binary.BigEndian.Uint16(fixed[4:6]),
		Index: binary.BigEndian.Uint16(fixed[6:8]),
	}
	if len(resp.Args) > 1 {
		out.Data = resp.Args[1].Data
	}
	return out, nil
}

// VFSFileReadRequest reads up to numBytes from an already-open VFS file
// reference.
func VFSFileReadRequest(fileRef uint32, numBytes uint32) *Request {
	data := make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], fileRef)
	binary.BigEndian.PutUint32(data[4:8], numBytes)
	return &Request{FuncID: byte(FuncVFSFileRead), Args: []Arg{{ID: 0x20, Data: data}}}
}

func ParseVFSFileReadResponse(resp *Response) ([]byte, error) {
	if len(resp.Args) < 2 {
		return nil, ErrArgShapeMismatch
	}
	return resp.Args[1].Data, nil
}

// EndOfSyncRequest issues the final session-teardown command with a
// status code (0 = normal termination).
func EndOfSyncRequest(status uint16) *Request {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, status)
	return &Request{FuncID: byte(FuncEndOfSync), Args: []Arg{{ID: 0x20, Data: data}}}
}

// OpenConduitRequest marks the conduit boundary for the database about to
// be synced; it carries no arguments.
func OpenConduitRequest() *Request {
	return &Request{FuncID: byte(FuncOpenConduit)}
}
