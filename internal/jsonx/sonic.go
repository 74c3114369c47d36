// Package jsonx wraps Sonic for JSON serialization across the engine's
// transport and analytics surfaces.
package jsonx

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// Marshal returns the JSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// Unmarshal parses JSON-encoded data into v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// MarshalToString is like Marshal but returns a string, avoiding the
// []byte conversion allocation.
func MarshalToString(v interface{}) (string, error) {
	return sonic.MarshalString(v)
}

// UnmarshalFromString parses a JSON string into v.
func UnmarshalFromString(data string, v interface{}) error {
	return sonic.UnmarshalString(data, v)
}

// Write encodes v and writes it to w through a pooled buffer.
func Write(w io.Writer, v interface{}) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	buf.Set(data)
	_, err = w.Write(buf.Bytes())
	return err
}

// Decode reads all of r and parses it into v.
func Decode(r io.Reader, v interface{}) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, r); err != nil {
		return err
	}
	return sonic.Unmarshal(buf.Bytes(), v)
}
