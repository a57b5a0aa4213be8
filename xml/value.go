package xml

import (
	"encoding/base64"
	"math/big"
	"strconv"
)

// Value represents an XML value, and is used to encode scalar types,
// nested elements, and collection wrappers (arrays and maps).
//
// A Value does not write anything until one of its methods is called: the
// element's open tag is written lazily by whichever method actually has
// content to write, and the matching close tag is written immediately
// after for scalar methods, or returned as an explicit close function for
// methods that acquire a container the caller will write more into.
type Value struct {
	w       writer
	scratch *[]byte

	openTagFn  func()
	closeTagFn func()
}

// newValue returns a new Value writing through w, using scratch as a
// reusable formatting buffer. openFn/closeFn may be nil for a root value
// that is not wrapped by an element.
func newValue(w writer, scratch *[]byte, openFn, closeFn func()) Value {
	return Value{w: w, scratch: scratch, openTagFn: openFn, closeTagFn: closeFn}
}

func (xv Value) open() {
	if xv.openTagFn != nil {
		xv.openTagFn()
	}
}

func (xv Value) close() {
	if xv.closeTagFn != nil {
		xv.closeTagFn()
	}
}

// String encodes s as the element's text content.
func (xv Value) String(s string) {
	xv.open()
	escapeString(xv.w, s)
	xv.close()
}

// Write writes p directly as the element's text content, escaping it only
// if escape is true.
func (xv Value) Write(p []byte, escape bool) {
	xv.open()
	if escape {
		escapeString(xv.w, string(p))
	} else {
		xv.w.Write(p)
	}
	xv.close()
}

// Byte encodes v as the element's text content.
func (xv Value) Byte(v int8) { xv.Long(int64(v)) }

// Short encodes v as the element's text content.
func (xv Value) Short(v int16) { xv.Long(int64(v)) }

// Integer encodes v as the element's text content.
func (xv Value) Integer(v int32) { xv.Long(int64(v)) }

// Long encodes v as the element's text content.
func (xv Value) Long(v int64) {
	xv.open()
	*xv.scratch = strconv.AppendInt((*xv.scratch)[:0], v, 10)
	xv.w.Write(*xv.scratch)
	xv.close()
}

// Float encodes v as the element's text content.
func (xv Value) Float(v float32) {
	xv.open()
	*xv.scratch = strconv.AppendFloat((*xv.scratch)[:0], float64(v), 'g', -1, 32)
	xv.w.Write(*xv.scratch)
	xv.close()
}

// Double encodes v as the element's text content.
func (xv Value) Double(v float64) {
	xv.open()
	*xv.scratch = strconv.AppendFloat((*xv.scratch)[:0], v, 'g', -1, 64)
	xv.w.Write(*xv.scratch)
	xv.close()
}

// Boolean encodes v as the element's text content.
func (xv Value) Boolean(v bool) {
	xv.open()
	*xv.scratch = strconv.AppendBool((*xv.scratch)[:0], v)
	xv.w.Write(*xv.scratch)
	xv.close()
}

// BigInteger encodes v as the element's text content.
func (xv Value) BigInteger(v *big.Int) {
	xv.open()
	xv.w.WriteString(v.String())
	xv.close()
}

// BigDecimal encodes v as the element's text content, using a plain
// integer form when v fits exactly in an int64.
func (xv Value) BigDecimal(v *big.Float) {
	xv.open()
	if i, accuracy := v.Int64(); accuracy == big.Exact {
		xv.w.WriteString(strconv.FormatInt(i, 10))
	} else {
		xv.w.WriteString(v.Text('e', -1))
	}
	xv.close()
}

// Base64EncodeBytes encodes v as base64 text content. A nil v writes
// nothing, not even an empty element.
func (xv Value) Base64EncodeBytes(v []byte) {
	if v == nil {
		return
	}
	xv.open()
	xv.w.WriteString(base64.StdEncoding.EncodeToString(v))
	xv.close()
}

// Null writes an empty element: the open tag immediately followed by the
// close tag, with no content.
func (xv Value) Null() {
	xv.open()
	xv.close()
}

// RootElement returns an Object for the root element. It is used only by
// the Encoder's embedded Value, which carries no open/close tag of its
// own — the root's member elements write directly into the document.
func (xv Value) RootElement() *Object {
	return newObject(xv.w, xv.scratch)
}

// NestedElement opens the value's element and returns an Object for
// encoding its members, plus the close function the caller must invoke
// once finished (typically via defer).
func (xv Value) NestedElement() (*Object, func()) {
	xv.open()
	return newObject(xv.w, xv.scratch), xv.closeTagFn
}

// Array opens the value's element and returns an Array wrapping its
// members in the default "member" tag, plus the close function for the
// wrapping element.
func (xv Value) Array() (*Array, func()) {
	xv.open()
	return newArray(xv.w, xv.scratch), xv.closeTagFn
}

// ArrayWithCustomName is like Array, but wraps members in name instead of
// the default "member" tag.
func (xv Value) ArrayWithCustomName(name string) (*Array, func()) {
	xv.open()
	return newArrayWithCustomName(xv.w, xv.scratch, name), xv.closeTagFn
}

// FlattenedArray returns an Array whose members reuse this value's own
// tag for each element, with no separate wrapping element.
func (xv Value) FlattenedArray() *Array {
	return newFlattenedArray(xv.w, xv.scratch, xv.openTagFn, xv.closeTagFn)
}

// Map opens the value's element and returns a Map wrapping its entries in
// the default "entry" tag, plus the close function for the wrapping
// element.
func (xv Value) Map() (*Map, func()) {
	xv.open()
	return newMap(xv.w, xv.scratch), xv.closeTagFn
}

// FlattenedMap returns a Map whose entries reuse this value's own tag for
// each entry, with no separate wrapping element.
func (xv Value) FlattenedMap() *Map {
	return newFlattenedMap(xv.w, xv.scratch, xv.openTagFn, xv.closeTagFn)
}
