package sink

import (
	"context"
	"strings"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatPDF     Format = "pdf"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatXLSX    Format = "xlsx"
	FormatText    Format = "txt"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatMsgpack, FormatXLSX, FormatText}

var aliases = map[string]Format{
	"text":  FormatText,
	"excel": FormatXLSX,
	"mpk":   FormatMsgpack,
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	if f, ok := aliases[name]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (valid: %s)", s, FormatNames())
}

// ParseFormats resolves a comma-separated list, dropping duplicates.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no formats given")
	}
	return out, nil
}

// FormatNames returns the supported formats as a comma-separated list.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string { return string(f) }

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatMsgpack:
		return "application/msgpack"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatText:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// Render produces res in format f.
func Render(ctx context.Context, f Format, res floor.Result, opts ...Option) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(res, opts...), nil
	case FormatPNG:
		return RenderPNG(res, opts...)
	case FormatPDF:
		return RenderPDF(ctx, res, opts...)
	case FormatJSON:
		return RenderJSON(res, opts...)
	case FormatMsgpack:
		return RenderMsgpack(res, opts...)
	case FormatXLSX:
		return RenderXLSX(res, opts...)
	case FormatText:
		return RenderText(res, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", string(f))
}
