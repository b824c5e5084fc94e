package sink

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Document is the serialised form of a layout shared by the JSON and
// msgpack sinks.
type Document struct {
	Title  string          `json:"title,omitempty"`
	Room   floor.Dimension `json:"room"`
	Counts Counts          `json:"counts"`
	Slots  []floor.Slot    `json:"slots"`
	Tables []floor.Entity  `json:"tables"`
	Chairs []floor.Entity  `json:"chairs"`
	Desk   *floor.Entity   `json:"desk,omitempty"`
}

// Counts summarises a layout.
type Counts struct {
	Slots         int  `json:"slots"`
	Tables        int  `json:"tables"`
	Chairs        int  `json:"chairs"`
	DroppedChairs int  `json:"dropped_chairs"`
	Desk          bool `json:"desk"`
}

// NewDocument builds the document for res.
func NewDocument(res floor.Result, title string) Document {
	return Document{
		Title: title,
		Room:  res.Room,
		Counts: Counts{
			Slots:         len(res.Slots),
			Tables:        len(res.Tables),
			Chairs:        len(res.Chairs),
			DroppedChairs: res.DroppedChairs(),
			Desk:          res.Desk != nil,
		},
		Slots:  orEmpty(res.Slots),
		Tables: orEmpty(res.Tables),
		Chairs: orEmpty(res.Chairs),
		Desk:   res.Desk,
	}
}

// Result converts the document back into a layout.
func (d Document) Result() floor.Result {
	return floor.Result{
		Room:   d.Room,
		Slots:  d.Slots,
		Tables: d.Tables,
		Chairs: d.Chairs,
		Desk:   d.Desk,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// RenderJSON writes the layout document as JSON, indented unless
// [WithCompact] is given.
func RenderJSON(res floor.Result, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)
	doc := NewDocument(res, c.title)

	var (
		data []byte
		err  error
	)
	if c.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return append(data, '\n'), nil
}

// RenderMsgpack writes the layout document as msgpack. Field names match the
// JSON document.
func RenderMsgpack(res floor.Result, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(NewDocument(res, c.title)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode msgpack")
	}
	return buf.Bytes(), nil
}

// DecodeMsgpack reads a document written by [RenderMsgpack].
func DecodeMsgpack(data []byte) (Document, error) {
	var doc Document
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode msgpack")
	}
	return doc, nil
}

// DecodeJSON reads a document written by [RenderJSON].
func DecodeJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return doc, nil
}
