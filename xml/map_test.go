package xml

import (
	"bytes"
	"testing"
)

func TestWrappedMap(t *testing.T) {
	buffer := bytes.NewBuffer(nil)
	scratch := make([]byte, 64)

	m := newMap(buffer, &scratch)

	for _, kv := range [][2]string{
		{"example-key1", "example1"},
		{"example-key2", "example2"},
		{"example-key3", "example3"},
	} {
		e, closeFn := m.Entry()
		e.Key("key").String(kv[0])
		e.Key("value").String(kv[1])
		closeFn()
	}

	ex := []byte(`<entry><key>example-key1</key><value>example1</value></entry><entry><key>example-key2</key><value>example2</value></entry><entry><key>example-key3</key><value>example3</value></entry>`)
	if a := buffer.Bytes(); !bytes.Equal(ex, a) {
		t.Errorf("expected %+q, but got %+q", ex, a)
	}
}

func TestFlattenedMapWithCustomName(t *testing.T) {
	buffer := bytes.NewBuffer(nil)
	scratch := make([]byte, 64)

	m := newFlattenedMap(buffer, &scratch,
		func() { buffer.WriteString("<flatMap>") },
		func() { buffer.WriteString("</flatMap>") },
	)

	for _, kv := range [][2]string{
		{"example-key1", "example1"},
		{"example-key2", "example2"},
		{"example-key3", "example3"},
	} {
		e, closeFn := m.Entry()
		e.Key("key").String(kv[0])
		e.Key("value").String(kv[1])
		closeFn()
	}

	ex := []byte(`<flatMap><key>example-key1</key><value>example1</value></flatMap><flatMap><key>example-key2</key><value>example2</value></flatMap><flatMap><key>example-key3</key><value>example3</value></flatMap>`)
	if a := buffer.Bytes(); !bytes.Equal(ex, a) {
		t.Errorf("expected %+q, but got %+q", ex, a)
	}
}
