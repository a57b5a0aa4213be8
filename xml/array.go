package xml

// arrayMemberWrapper is the default member wrapper tag name for an XML
// Array type.
const arrayMemberWrapper = "member"

// Array represents an XML list: a sequence of members each wrapped in a
// common tag (by default "member", or a custom name, or — when
// flattened — the array's own containing tag repeated per member).
type Array struct {
	w       writer
	scratch *[]byte

	memberName    string
	memberOpenFn  func()
	memberCloseFn func()
}

// newArray returns an Array whose members are wrapped in the default
// "member" tag.
func newArray(w writer, scratch *[]byte) *Array {
	return newArrayWithCustomName(w, scratch, arrayMemberWrapper)
}

// newArrayWithCustomName returns an Array whose members are wrapped in
// name instead of the default "member" tag.
func newArrayWithCustomName(w writer, scratch *[]byte, name string) *Array {
	return &Array{w: w, scratch: scratch, memberName: name}
}

// newFlattenedArray returns an Array whose members reuse openFn/closeFn —
// the array's own element — for each member, instead of a separate
// wrapping tag.
func newFlattenedArray(w writer, scratch *[]byte, openFn, closeFn func()) *Array {
	return &Array{w: w, scratch: scratch, memberOpenFn: openFn, memberCloseFn: closeFn}
}

// Add returns a Value for the array's next member. Nothing is written
// until the returned Value is used.
func (a *Array) Add() Value {
	if a.memberOpenFn != nil || a.memberCloseFn != nil {
		return newValue(a.w, a.scratch, a.memberOpenFn, a.memberCloseFn)
	}
	name := a.memberName
	return newValue(a.w, a.scratch,
		func() { writeElement(a.w, name) },
		func() { writeCloseTag(a.w, name) },
	)
}
