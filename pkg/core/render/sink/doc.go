// Package sink turns a computed [floor.Result] into output files.
//
// # Overview
//
// A "sink" serialises a layout for people or programs. This package provides:
//
//   - SVG: vector floor plan with labelled furniture ([RenderSVG])
//   - PNG: raster floor plan drawn with fogleman/gg ([RenderPNG])
//   - PDF: print-ready plan converted from SVG (requires rsvg-convert)
//   - JSON and msgpack: the layout document for other programs
//   - XLSX: a furniture schedule workbook
//   - Text: an ASCII sketch for terminals ([RenderText])
//
// # Drawing
//
// Drawn formats share one canvas: the room border in black, the desk in blue
// on light blue, tables in green on light green and chairs in orange on
// yellow, each with a centred label. The room origin is the bottom-left
// corner, so y is flipped when drawing. [WithScale] sets pixels per
// centimetre and [WithMargin] the blank border around the room.
//
//	svg := sink.RenderSVG(res, sink.WithTitle("Ground floor"))
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//
// # Dispatch
//
// [Render] picks a sink by [Format]. [ParseFormat] accepts the names in
// [Formats] plus the aliases "text", "excel" and "mpk".
//
//	data, err := sink.Render(sink.FormatXLSX, res)
//
// PDF export requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [floor.Result]: github.com/matzehuels/cafeplan/pkg/core/floor.Result
package sink
