package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrByteMasksCategoryWhenDeletedAndArchived(t *testing.T) {
	a := Attrs{Delete: true, Archive: true, Category: 9}
	b := a.Encode()
	out := Decode(b)

	assert.True(t, out.Delete)
	assert.True(t, out.Archive)
	assert.Equal(t, byte(0), out.Category, "category must mask to 0 when delete+archive apply")
}

func TestAttrByteKeepsCategoryWhenNotDeletedOrBusy(t *testing.T) {
	a := Attrs{Category: 5, Dirty: true}
	out := Decode(a.Encode())
	assert.Equal(t, byte(5), out.Category)
	assert.False(t, out.Archive)
	assert.True(t, out.Dirty)
}

func TestClearForDeviceWriteKeepsOnlySecret(t *testing.T) {
	a := Attrs{Delete: true, Dirty: true, Busy: true, Secret: true, Category: 3}
	cleared := a.ClearForDeviceWrite()
	assert.Equal(t, Attrs{Secret: true}, cleared)
}

func TestClassifyStates(t *testing.T) {
	assert.Equal(t, NotFound, Classify(nil))
	assert.Equal(t, Unchanged, Classify(&Record{Attrs: Attrs{}}))
	assert.Equal(t, Changed, Classify(&Record{Attrs: Attrs{Dirty: true}}))
	assert.Equal(t, Deleted, Classify(&Record{Attrs: Attrs{Delete: true}}))
	assert.Equal(t, ArchivedChanged, Classify(&Record{Attrs: Attrs{Delete: true, Archive: true, Dirty: true}}))
	assert.Equal(t, ArchivedUnchanged, Classify(&Record{Attrs: Attrs{Delete: true, Archive: true}}))
}

func TestClassifySlowComparesBytes(t *testing.T) {
	device := &Record{Attrs: Attrs{Dirty: false, Category: 1}, Data: []byte("A")}
	desktop := &Record{Attrs: Attrs{Dirty: false, Category: 1}, Data: []byte("B")}
	assert.Equal(t, Changed, ClassifySlow(device, desktop))

	same := &Record{Attrs: Attrs{Category: 1}, Data: []byte("A")}
	assert.Equal(t, Unchanged, ClassifySlow(device, same))
}
