package serializer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/encoding/charmap"
)

// blobFormat tags which convention produced a stored context blob.
type blobFormat uint8

const (
	formatEmpty blobFormat = iota
	// formatBase64 is base64 over MessagePack, used for every new write.
	formatBase64
	// formatLegacy is raw MessagePack stored one byte per character.
	formatLegacy
)

func (f blobFormat) String() string {
	switch f {
	case formatEmpty:
		return "empty"
	case formatBase64:
		return "base64"
	case formatLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("blobFormat(%d)", uint8(f))
	}
}

var blobEncoding = base64.StdEncoding.Strict()

// EncodeContext serializes an extra context map into delimiter-free text.
// An empty map encodes to the empty string.
//
// Decoding yields canonical types: integers come back as int64 (uint64 when
// above math.MaxInt64), floats as float64, slices as []any, maps as
// map[string]any, and unregistered structs as map[string]any. Registered
// context types come back as their pointer type. A decoded map equals the
// original only when it already holds canonical types.
func EncodeContext(ctx map[string]any) (string, error) {
	if len(ctx) == 0 {
		return "", nil
	}
	packed, err := marshalContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayloadEncode, err)
	}
	return blobEncoding.EncodeToString(packed), nil
}

// DecodeContext reverses EncodeContext. Text that is not valid base64 is read
// as a legacy blob: raw MessagePack stored as single-byte characters.
func DecodeContext(text string) (map[string]any, error) {
	ctx, _, err := decodeContext(text)
	return ctx, err
}

func decodeContext(text string) (map[string]any, blobFormat, error) {
	if text == "" {
		return map[string]any{}, formatEmpty, nil
	}
	raw, err := latin1Bytes(text)
	if err != nil {
		return nil, formatLegacy, fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}

	format, packed := classifyBlob(raw)
	ctx, err := unmarshalContext(packed)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %s blob: %v", ErrPayloadDecode, format, err)
	}
	return ctx, format, nil
}

// classifyBlob picks the decode strategy for raw and returns the MessagePack
// bytes that strategy yields.
func classifyBlob(raw []byte) (blobFormat, []byte) {
	if packed, ok := decodeBase64Blob(raw); ok {
		return formatBase64, packed
	}
	return formatLegacy, decodeLegacyBlob(raw)
}

func decodeBase64Blob(raw []byte) ([]byte, bool) {
	packed := make([]byte, blobEncoding.DecodedLen(len(raw)))
	n, err := blobEncoding.Decode(packed, raw)
	if err != nil {
		return nil, false
	}
	return packed[:n], true
}

func decodeLegacyBlob(raw []byte) []byte {
	return raw
}

// latin1Bytes maps every character of text to the byte of the same code point.
func latin1Bytes(text string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
}

func marshalContext(ctx map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalContext(packed []byte) (map[string]any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(packed))
	dec.UseLooseInterfaceDecoding(true)

	var ctx map[string]any
	if err := dec.Decode(&ctx); err != nil {
		return nil, err
	}
	if ctx == nil {
		return nil, fmt.Errorf("payload is not a map")
	}
	return canonicalMap(ctx), nil
}

// canonicalMap narrows unsigned integers that fit into int64 so values decode
// to the same types regardless of how compactly they were packed.
func canonicalMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = canonicalValue(v)
	}
	return m
}

func canonicalValue(v any) any {
	switch val := v.(type) {
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val)
		}
		return val
	case map[string]any:
		return canonicalMap(val)
	case []any:
		for i := range val {
			val[i] = canonicalValue(val[i])
		}
		return val
	default:
		return v
	}
}
