package pipeline

import (
	"context"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// RenderFromLayout renders res in every format of opts without caching.
func RenderFromLayout(ctx context.Context, res floor.Result, opts Options) (map[string][]byte, error) {
	sinkOpts := opts.SinkOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		f, err := sink.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := sink.Render(ctx, f, res, sinkOpts...)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", name)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}
