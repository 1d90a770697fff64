package serializer

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// latin1Text is the inverse of latin1Bytes; it is how legacy blobs were written.
func latin1Text(raw []byte) (string, error) {
	return charmap.ISO8859_1.NewDecoder().String(string(raw))
}

func legacyText(t *testing.T, ctx map[string]any) string {
	t.Helper()
	packed, err := marshalContext(ctx)
	require.NoError(t, err)
	text, err := latin1Text(packed)
	require.NoError(t, err)
	return text
}

func TestClassifyBlob(t *testing.T) {
	ctx := map[string]any{"foo": "bar"}

	current, err := EncodeContext(ctx)
	require.NoError(t, err)
	format, packed := classifyBlob([]byte(current))
	require.Equal(t, formatBase64, format)
	want, err := marshalContext(ctx)
	require.NoError(t, err)
	require.Equal(t, want, packed)

	raw, err := latin1Bytes(legacyText(t, ctx))
	require.NoError(t, err)
	format, packed = classifyBlob(raw)
	require.Equal(t, formatLegacy, format)
	require.Equal(t, want, packed)
}

func TestDecodeBase64Blob(t *testing.T) {
	packed, ok := decodeBase64Blob([]byte("AQID"))
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, packed)

	for _, in := range []string{"AQI", "AQ=D", "!!!!", "AQJ="} {
		_, ok := decodeBase64Blob([]byte(in))
		require.False(t, ok, in)
	}
}

func TestDecodeLegacyBlob(t *testing.T) {
	raw := []byte{0x81, 0xa1, 'a', 0x01}
	require.Equal(t, raw, decodeLegacyBlob(raw))

	ctx, err := unmarshalContext(decodeLegacyBlob(raw))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": int64(1)}, ctx)
}

func TestDecodeContext_LegacyCompatibility(t *testing.T) {
	cases := []map[string]any{
		{"foo": "bar"},
		{"🙂": "🙃"},
		{"ref": &activity.Ref{Kind: "comment", ID: 77}},
		{"a,b": "c,d", "n": int64(300), "f": 0.25},
	}
	for _, ctx := range cases {
		got, format, err := decodeContext(legacyText(t, ctx))
		require.NoError(t, err)
		require.Equal(t, formatLegacy, format)
		require.Equal(t, ctx, got)
	}
}

func TestLatin1RoundTrip(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}
	text, err := latin1Text(raw)
	require.NoError(t, err)
	back, err := latin1Bytes(text)
	require.NoError(t, err)
	require.Equal(t, raw, back)

	_, err = latin1Bytes("🙂")
	require.Error(t, err)
}

func TestUnmarshalContext_RejectsNonMaps(t *testing.T) {
	for _, packed := range [][]byte{{0xc0}, {0x01}, {0x91, 0x01}, {}} {
		_, err := unmarshalContext(packed)
		require.Error(t, err)
	}
}

func TestRecordContextDecode(t *testing.T) {
	before := testutil.ToFloat64(contextDecodeCounter.WithLabelValues("legacy"))
	_, format, err := decodeContext(legacyText(t, map[string]any{"x": "y"}))
	require.NoError(t, err)
	recordContextDecode(format)
	recordContextDecode(formatEmpty)
	require.Equal(t, before+1, testutil.ToFloat64(contextDecodeCounter.WithLabelValues("legacy")))
}
