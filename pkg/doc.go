// Package pkg provides the libraries behind cafeplan, a net cafe floor planner.
//
// # Overview
//
// cafeplan fills a rectangular room with table-and-chair units. Units are
// packed in rows separated by aisles, starting in the bottom-right corner and
// working left, while an optional reception desk keeps the top-left corner
// free. The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (size parsing, packing, placement, rendering)
//  2. [params] - Parameter files in TOML, YAML or JSON
//  3. [pipeline] - Orchestration (resolve → layout → render) with caching
//  4. [cache] and [design] - Infrastructure (layout cache, stored designs)
//  5. [errors] and [observability] - Error codes and event hooks
//
// # Architecture
//
// The typical data flow:
//
//	Parameter file ("700x500" cm, ...)
//	         ↓
//	    [params] package (decode, normalise to centimetres)
//	         ↓
//	    [core/floor] package (slots → tables and chairs, row reversal)
//	         ↓
//	    [core/render/sink] package (SVG, PNG, PDF, JSON, msgpack, XLSX, text)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/cafeplan/pkg/core/floor"
//	    "github.com/matzehuels/cafeplan/pkg/core/render/sink"
//	    "github.com/matzehuels/cafeplan/pkg/params"
//	)
//
//	// 1. Load parameters (missing settings keep their defaults)
//	p, _ := params.Load("cafe.toml")
//	req, _ := p.Request()
//
//	// 2. Compute the layout, turning the second row around
//	res, _ := floor.Compute(req, floor.WithReversedRows(1))
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(res, sink.WithTitle("Ground floor"))
//
// # Main Packages
//
// [core/size] - Parses "WxH" and scalar size strings with cm or m units.
//
// [core/floor] - The layout engine. Pack produces slots, Place puts a table
// and chair into each slot according to its orientation, and ReverseRow
// turns a row by 180 degrees about the room centre. Compute runs all three
// and can pack rows concurrently.
//
// [core/render/sink] - Output formats. Every sink takes a floor.Result.
//
// [pipeline] - The cached pipeline shared by the CLI and the HTTP API.
// Layouts are cached by parameter hash, artifacts by layout key and style.
//
// [cache] - File, Redis and null caches plus the key scheme.
//
// [design] - Rendered designs with an expiry, stored in memory, on disk,
// in Redis or in MongoDB.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/core/floor/...         # Layout engine only
//	go test -run Example ./pkg/...       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/core
// [params]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/params
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/cache
// [design]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/design
// [errors]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/observability
// [core/size]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/core/size
// [core/floor]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/core/floor
// [core/render/sink]: https://pkg.go.dev/github.com/matzehuels/cafeplan/pkg/core/render/sink
package pkg
