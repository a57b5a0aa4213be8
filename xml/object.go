package xml

// TagMetadata carries the optional namespace declaration and attribute
// that Object.Key can attach to the element it opens.
type TagMetadata struct {
	NamespacePrefix string
	NamespaceURI    string

	AttributeName  string
	AttributeValue string
}

// Object represents the members of an XML element: a set of child
// elements addressed by name.
type Object struct {
	w       writer
	scratch *[]byte
}

// newObject returns an Object writing members through w.
func newObject(w writer, scratch *[]byte) *Object {
	return &Object{w: w, scratch: scratch}
}

// Key returns a Value for the child element named name. Nothing is
// written until the returned Value is used — the open tag, including any
// namespace declaration or attribute from opts, is written lazily at that
// point.
func (o *Object) Key(name string, opts ...func(*TagMetadata)) Value {
	openFn := func() {
		writeOpenTag(o.w, name)
		for _, fn := range opts {
			if fn == nil {
				continue
			}
			var md TagMetadata
			fn(&md)

			if len(md.NamespacePrefix) != 0 && len(md.NamespaceURI) != 0 {
				o.w.WriteString(" xmlns")
				o.w.WriteRune(colon)
				o.w.WriteString(md.NamespacePrefix)
				o.w.WriteRune(equals)
				o.w.WriteRune(quote)
				o.w.WriteString(md.NamespaceURI)
				o.w.WriteRune(quote)
			}

			if len(md.AttributeValue) != 0 {
				attrName := md.AttributeName
				if len(attrName) == 0 {
					attrName = "attr"
				}
				o.w.WriteRune(' ')
				o.w.WriteString(attrName)
				o.w.WriteRune(equals)
				o.w.WriteRune(quote)
				escapeString(o.w, md.AttributeValue)
				o.w.WriteRune(quote)
			}
		}
		o.w.WriteRune(rightAngleBracket)
	}
	closeFn := func() {
		writeCloseTag(o.w, name)
	}
	return newValue(o.w, o.scratch, openFn, closeFn)
}
