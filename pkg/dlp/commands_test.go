package dlp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDBRoundTrip(t *testing.T) {
	req := OpenDBRequest(0, 0x80, "MemoDB")
	assert.Equal(t, byte(FuncOpenDB), req.FuncID)

	resp := &Response{FuncID: byte(FuncOpenDB), Args: []Arg{{ID: 0x20, Data: []byte{7}}}}
	handle, err := ParseOpenDBResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, byte(7), handle)
}

func TestReadRecordRoundTrip(t *testing.T) {
	req := ReadRecordByIDRequest(7, 42, 0, 0xFFFF)
	assert.Equal(t, byte(FuncReadRecord), req.FuncID)

	resp := &Response{FuncID: byte(FuncReadRecord), Args: []Arg{
		{ID: 0x20, Data: []byte{0, 0, 0, 42, 0, 1, 0, 7, 0x00, 0x03}},
		{ID: 0x21, Data: []byte("payload")},
	}}
	out, err := ParseReadRecordResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), out.RecordID)
	assert.Equal(t, byte(3), out.Category)
	assert.Equal(t, []byte("payload"), out.Data)
}

func TestRawReachesUnwrappedCommand(t *testing.T) {
	req := Raw(FuncReadFeature, Arg{ID: 0x20, Data: []byte{1, 2, 3, 4}})
	assert.Equal(t, byte(FuncReadFeature), req.FuncID)
	assert.Len(t, req.Args, 1)
}

// TestCatalogEveryRowHasCompleteSchema walks allFuncIDs rather than
// Catalog's own keys: a map with a missing entry looks exactly like a
// complete one from the inside, so only a canonical outside list can
// catch a dropped row.
func TestCatalogEveryRowHasCompleteSchema(t *testing.T) {
	require.NotEmpty(t, allFuncIDs)
	for _, id := range allFuncIDs {
		cmd, ok := Catalog[id]
		require.Truef(t, ok, "FuncID 0x%02x has no Catalog entry", byte(id))
		assert.Equalf(t, id, cmd.ID, "row %s: ID field doesn't match its map key", cmd.Name)
		assert.NotEmptyf(t, cmd.Name, "row 0x%02x missing a name", byte(id))
		assert.NotEmptyf(t, cmd.Category, "row %s missing a category", cmd.Name)
		assert.NotEmptyf(t, cmd.PossibleErrors, "row %s declares no possible error codes", cmd.Name)
		assertErrCodesAreClosed(t, cmd.Name, cmd.PossibleErrors)
		assertSchemaRoundTrips(t, cmd.Name, "request", cmd.RequestSchema)
		assertSchemaRoundTrips(t, cmd.Name, "response", cmd.ResponseSchema)
	}
	assert.Lenf(t, Catalog, len(allFuncIDs), "Catalog has stray rows not reachable from allFuncIDs")
}

// assertErrCodesAreClosed confirms every code a row declares is one of
// the closed ErrCode enumeration's known values, not a stray literal.
func assertErrCodesAreClosed(t *testing.T, name string, codes []ErrCode) {
	t.Helper()
	for _, c := range codes {
		_, known := errCodeDescriptions[c]
		assert.Truef(t, known, "row %s declares unknown error code %d", name, c)
	}
}

// assertSchemaRoundTrips builds one synthetic Arg per schema entry,
// encodes them, decodes them back, and checks every id and body survive
// — the "every row round-trips its declared schema" guarantee.
func assertSchemaRoundTrips(t *testing.T, cmdName, side string, schema []ArgSchemaEntry) {
	t.Helper()
	if len(schema) == 0 {
		return
	}
	args := make([]Arg, len(schema))
	for i, entry := range schema {
		args[i] = Arg{ID: entry.ArgID, Data: bytes.Repeat([]byte{byte(i + 1)}, len(entry.Fields)+1)}
	}
	encoded := EncodeArgs(args)
	decoded, err := DecodeArgs(encoded, len(args))
	require.NoErrorf(t, err, "%s %s schema failed to round-trip", cmdName, side)
	require.Lenf(t, decoded, len(args), "%s %s schema round-trip lost arguments", cmdName, side)
	for i, entry := range schema {
		assert.Equalf(t, entry.ArgID, decoded[i].ID, "%s %s arg %d id mismatch", cmdName, side, i)
		assert.Equalf(t, args[i].Data, decoded[i].Data, "%s %s arg %d data mismatch", cmdName, side, i)
	}
}

func TestValidateArgcRejectsMissingRequired(t *testing.T) {
	schema := []ArgSchemaEntry{{ArgID: 0x20}, {ArgID: 0x21, Optional: true}}
	assert.NoError(t, ValidateArgc(schema, 1))
	assert.ErrorIs(t, ValidateArgc(schema, 0), ErrArgShapeMismatch)
}
