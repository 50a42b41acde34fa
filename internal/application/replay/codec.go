package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the on-disk encoding
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// FormatFor picks the encoding from a file name. ".mpk" is msgpack,
// anything else is JSON.
func FormatFor(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".mpk") {
		return FormatMsgpack
	}
	return FormatJSON
}

// Ext returns the file extension for the format
func (f Format) Ext() string {
	if f == FormatMsgpack {
		return ".mpk"
	}
	return ".json"
}

// Encode writes replay data in the given format
func Encode(w io.Writer, data ReplayData, format Format) error {
	if format == FormatMsgpack {
		if err := msgpack.NewEncoder(w).Encode(&data); err != nil {
			return fmt.Errorf("failed to encode replay: %w", err)
		}
		return nil
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Decode reads replay data in the given format
func Decode(r io.Reader, format Format) (*ReplayData, error) {
	var data ReplayData
	var err error
	if format == FormatMsgpack {
		err = msgpack.NewDecoder(r).Decode(&data)
	} else {
		err = json.NewDecoder(r).Decode(&data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file, FormatFor(filename))
}
