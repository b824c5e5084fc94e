package params

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// FileFormat is the encoding of a parameter file.
type FileFormat string

// Supported file formats.
const (
	TOML FileFormat = "toml"
	YAML FileFormat = "yaml"
	JSON FileFormat = "json"
)

// FormatFromPath picks the file format from the extension of path.
func FormatFromPath(path string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported parameter file %q (use .toml, .yaml or .json)", path)
}

// Load reads a parameter file on top of [Default] and validates the result.
// An empty path returns the defaults.
func Load(path string) (Parameters, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Parameters{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parameters{}, errors.Wrap(errors.ErrCodeNotFound, err, "parameter file %s", path)
		}
		return Parameters{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads parameters in the given format on top of [Default]. Settings
// missing from the input keep their default values.
func Decode(r io.Reader, format FileFormat) (Parameters, error) {
	p := Default()
	if err := p.Merge(r, format); err != nil {
		return Parameters{}, err
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Merge overlays the settings found in r onto p without validating them.
func (p *Parameters) Merge(r io.Reader, format FileFormat) error {
	var err error
	switch format {
	case TOML:
		_, err = toml.NewDecoder(r).Decode(p)
	case YAML:
		err = yaml.NewDecoder(r).Decode(p)
		if err == io.EOF {
			err = nil
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(p)
		if err == io.EOF {
			err = nil
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown parameter format %q", string(format))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s parameters", format)
	}
	return nil
}

// Encode writes p in the given format.
func (p Parameters) Encode(w io.Writer, format FileFormat) error {
	var err error
	switch format {
	case TOML:
		err = toml.NewEncoder(w).Encode(p)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(p); err == nil {
			err = enc.Close()
		}
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(p)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown parameter format %q", string(format))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s parameters", format)
	}
	return nil
}

// Marshal returns p encoded in the given format.
func (p Parameters) Marshal(format FileFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes p to path, choosing the format from the extension.
func (p Parameters) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := p.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
