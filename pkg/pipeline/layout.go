package pipeline

import (
	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Resolve validates the parameters and returns the centimetre request with
// its content hash.
func Resolve(opts Options) (floor.Request, string, error) {
	req, err := opts.Params.Request()
	if err != nil {
		return floor.Request{}, "", err
	}
	hash, err := opts.Params.Hash()
	if err != nil {
		return floor.Request{}, "", err
	}
	return req, hash, nil
}

// GenerateLayout computes the layout for req without caching.
func GenerateLayout(req floor.Request, opts Options) (floor.Result, error) {
	return floor.Compute(req, opts.ComputeOptions()...)
}

// marshalLayout encodes a layout for the cache.
func marshalLayout(res floor.Result) ([]byte, error) {
	return sink.RenderMsgpack(res, sink.WithTitle(""))
}

// unmarshalLayout decodes a cached layout.
func unmarshalLayout(data []byte) (floor.Result, error) {
	doc, err := sink.DecodeMsgpack(data)
	if err != nil {
		return floor.Result{}, err
	}
	if doc.Room.Width <= 0 || doc.Room.Height <= 0 {
		return floor.Result{}, errors.New(errors.ErrCodeInvalidInput, "cached layout has no room")
	}
	return doc.Result(), nil
}
