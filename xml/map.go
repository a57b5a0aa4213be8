package xml

// mapEntryWrapper is the default entry wrapper tag name for an XML Map
// type.
const mapEntryWrapper = "entry"

// Map represents an XML map: a sequence of entries each wrapped in a
// common tag (by default "entry", or — when flattened — the map's own
// containing tag repeated per entry).
type Map struct {
	w       writer
	scratch *[]byte

	entryName    string
	entryOpenFn  func()
	entryCloseFn func()
}

// newMap returns a Map whose entries are wrapped in the default "entry"
// tag.
func newMap(w writer, scratch *[]byte) *Map {
	return &Map{w: w, scratch: scratch, entryName: mapEntryWrapper}
}

// newFlattenedMap returns a Map whose entries reuse openFn/closeFn — the
// map's own element — for each entry, instead of a separate wrapping tag.
func newFlattenedMap(w writer, scratch *[]byte, openFn, closeFn func()) *Map {
	return &Map{w: w, scratch: scratch, entryOpenFn: openFn, entryCloseFn: closeFn}
}

// Entry opens the map's next entry and returns an Object for encoding its
// key/value members, plus the close function the caller must invoke once
// finished.
func (m *Map) Entry() (*Object, func()) {
	if m.entryOpenFn != nil || m.entryCloseFn != nil {
		if m.entryOpenFn != nil {
			m.entryOpenFn()
		}
		return newObject(m.w, m.scratch), m.entryCloseFn
	}
	name := m.entryName
	writeElement(m.w, name)
	return newObject(m.w, m.scratch), func() { writeCloseTag(m.w, name) }
}
