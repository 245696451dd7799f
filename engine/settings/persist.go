package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for settings files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// FormatFor picks the encoding from the file extension (.yaml, .yml or .toml).
//
// Parameters:
//   - path: the settings file path
//
// Returns:
//   - Format: the encoding
//   - error: ErrUnsupportedFormat for any other extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode reads settings from r. Fields absent from the input keep their defaults and the
// result is normalized.
//
// Parameters:
//   - r: the encoded settings
//   - format: the encoding of r
//
// Returns:
//   - Settings: the decoded settings
//   - error: error if r is malformed
func Decode(r io.Reader, format Format) (Settings, error) {
	s := Default()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&s)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&s)
	default:
		return Settings{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("decode %s settings: %w", format, err)
	}
	return Normalize(s), nil
}

// Encode writes s to w.
//
// Parameters:
//   - w: the destination
//   - s: the settings to write
//   - format: the encoding to use
//
// Returns:
//   - error: error if encoding fails
func Encode(w io.Writer, s Settings, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml settings: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("encode toml settings: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Load reads the settings file at path.
//
// Parameters:
//   - path: a .yaml, .yml or .toml file
//
// Returns:
//   - Settings: the loaded settings
//   - error: error if the file is missing, unsupported or malformed
func Load(path string) (Settings, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	return Decode(bytes.NewReader(data), format)
}

// Save writes s to path, replacing the file atomically.
//
// Parameters:
//   - path: a .yaml, .yml or .toml file
//   - s: the settings to write
//
// Returns:
//   - error: error if the file cannot be written
func Save(path string, s Settings) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, s, format); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
