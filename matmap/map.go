// Package matmap exports texture bindings of scene materials into a json
// map and rebuilds engine materials from such map.
package matmap

import (
	"bytes"
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

var ErrMissingOutputPath = errors.New("output path is not provided")

type Channel struct {
	Name string
	// nil when channel has no texture
	Path *string
}

type Entry struct {
	Object   string
	Channels []Channel
}

// Get returns texture path of channel
func (e *Entry) Get(channel string) (path string, bound bool, present bool) {
	for _, c := range e.Channels {
		if c.Name == channel {
			if c.Path == nil {
				return "", false, true
			}
			return *c.Path, true, true
		}
	}
	return "", false, false
}

func (e *Entry) Set(channel string, path *string) {
	for i := range e.Channels {
		if e.Channels[i].Name == channel {
			e.Channels[i].Path = path
			return
		}
	}
	e.Channels = append(e.Channels, Channel{Name: channel, Path: path})
}

// MaterialMap is object name to channel texture paths, keeps insertion order
type MaterialMap struct {
	Entries []*Entry
}

func New() *MaterialMap {
	return &MaterialMap{Entries: make([]*Entry, 0)}
}

func (m *MaterialMap) Get(object string) *Entry {
	for _, e := range m.Entries {
		if e.Object == object {
			return e
		}
	}
	return nil
}

// Add returns entry of object, creating it when missing
func (m *MaterialMap) Add(object string) *Entry {
	if e := m.Get(object); e != nil {
		return e
	}
	e := &Entry{Object: object, Channels: make([]Channel, 0)}
	m.Entries = append(m.Entries, e)
	return e
}

func (m *MaterialMap) Objects() []string {
	result := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		result[i] = e.Object
	}
	return result
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates value with newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

func (m *MaterialMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.Entries {
		if i != 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, e.Object); err != nil {
			return nil, err
		}
		buf.WriteString(":{")
		for j, c := range e.Channels {
			if j != 0 {
				buf.WriteByte(',')
			}
			if err := writeString(&buf, c.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if c.Path == nil {
				buf.WriteString("null")
			} else if err := writeString(&buf, *c.Path); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func expectDelim(dec *json.Decoder, d json.Delim) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if got, ok := t.(json.Delim); !ok || got != d {
		return errors.Errorf("Expected '%v', got %v", d, t)
	}
	return nil
}

func expectKey(dec *json.Decoder) (string, error) {
	t, err := dec.Token()
	if err != nil {
		return "", err
	}
	return t.(string), nil
}

func (m *MaterialMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return errors.Wrapf(err, "Material map must be json object")
	}
	m.Entries = make([]*Entry, 0)

	for dec.More() {
		object, err := expectKey(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return errors.Wrapf(err, "Channels of %q", object)
		}
		e := m.Add(object)
		for dec.More() {
			channel, err := expectKey(dec)
			if err != nil {
				return err
			}
			t, err := dec.Token()
			if err != nil {
				return err
			}
			switch v := t.(type) {
			case nil:
				e.Set(channel, nil)
			case string:
				e.Set(channel, &v)
			default:
				return errors.Errorf("Channel %q of %q must be string or null, got %v", channel, object, t)
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

// Encode returns json with 4 space indentation
func (m *MaterialMap) Encode() ([]byte, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "    "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func Decode(data []byte) (*MaterialMap, error) {
	m := New()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, errors.Wrapf(err, "Cannot parse material map")
	}
	return m, nil
}

// Save overwrites file at path
func (m *MaterialMap) Save(path string) error {
	if path == "" {
		return ErrMissingOutputPath
	}
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, data, 0666); err != nil {
		return errors.Wrapf(err, "Cannot save material map")
	}
	return nil
}

func Load(path string) (*MaterialMap, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read material map")
	}
	return Decode(data)
}
