package utils

import (
	"io"

	gojson "github.com/goccy/go-json" //nolint:depguard
)

type JSONEncoder = gojson.Encoder

var encodeOptions = []gojson.EncodeOptionFunc{gojson.DisableHTMLEscape(), gojson.DisableNormalizeUTF8()}

func MarshalJSON(val any) ([]byte, error) {
	return gojson.MarshalWithOption(val, encodeOptions...)
}

func MarshalJSONIndent(val any, indent string) ([]byte, error) {
	return gojson.MarshalIndentWithOption(val, "", indent, encodeOptions...)
}

func UnmarshalJSON(data []byte, val any) error {
	return gojson.UnmarshalWithOption(data, val)
}

// NewJSONEncoder streams values to writer with the same options as MarshalJSON
func NewJSONEncoder(writer io.Writer) *JSONEncoder {
	encoder := gojson.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	return encoder
}
