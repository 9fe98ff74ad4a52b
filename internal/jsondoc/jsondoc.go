// Package jsondoc reads JSON documents strictly: duplicate object keys and
// unknown struct fields are errors.
package jsondoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DuplicateKeyError reports an object key that appears twice. Path is the
// JSON Pointer of the duplicated member.
type DuplicateKeyError struct {
	Key  string
	Path string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate JSON key %q at %s", e.Key, e.Path)
}

// Decode reads one JSON document from r into out.
func Decode(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := checkDuplicates(data); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

type frame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

func checkDuplicates(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []frame
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
			if d, ok := tok.(json.Delim); ok && d == '}' {
				stack = stack[:n-1]
				valueDone(stack)
				continue
			}
			key, _ := tok.(string)
			top := &stack[n-1]
			if _, dup := top.keys[key]; dup {
				return &DuplicateKeyError{Key: key, Path: pointer(stack)}
			}
			top.keys[key] = struct{}{}
			top.key = key
			top.expectingKey = false
			continue
		}

		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				valueStart(stack)
				stack = append(stack, frame{
					object:       d == '{',
					keys:         map[string]struct{}{},
					expectingKey: d == '{',
					index:        -1,
				})
				continue
			case ']':
				stack = stack[:len(stack)-1]
				valueDone(stack)
				continue
			}
		}
		valueStart(stack)
		valueDone(stack)
	}
}

func valueStart(stack []frame) {
	if n := len(stack); n > 0 && !stack[n-1].object {
		stack[n-1].index++
	}
}

func valueDone(stack []frame) {
	if n := len(stack); n > 0 && stack[n-1].object {
		stack[n-1].expectingKey = true
	}
}

// pointer renders the current position, including the key of the innermost
// object, as a JSON Pointer.
func pointer(stack []frame) string {
	var b strings.Builder
	for _, f := range stack {
		b.WriteByte('/')
		if f.object {
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(f.key, "~", "~0"), "/", "~1"))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	return b.String()
}
