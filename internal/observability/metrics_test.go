package observability

import (
	"testing"

	"github.com/danmuck/nbtarray/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCodecMetricsRecordsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCodecMetrics()
	require.NoError(t, m.Register(reg))
	require.Error(t, m.Register(reg))

	codec := protocol.NewCodec(protocol.WithRecorder(m))
	data, err := codec.Marshal(protocol.IntArray([]int32{1, 2, 3}))
	require.NoError(t, err)
	_, _, err = codec.Unmarshal(data, protocol.KindIntArray)
	require.NoError(t, err)
	_, _, err = codec.Unmarshal(data[:6], protocol.KindIntArray)
	require.ErrorIs(t, err, protocol.ErrTruncated)

	kind := protocol.KindIntArray.String()
	require.Equal(t, 1.0, testutil.ToFloat64(m.arrays.WithLabelValues("encode", kind, "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.arrays.WithLabelValues("decode", kind, "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.arrays.WithLabelValues("decode", kind, "truncated")))
	require.Equal(t, 16.0, testutil.ToFloat64(m.bytes.WithLabelValues("encode", kind)))
	require.Equal(t, 20.0, testutil.ToFloat64(m.bytes.WithLabelValues("decode", kind)))

	samples, err := Snapshot(reg)
	require.NoError(t, err)
	found := false
	for _, s := range samples {
		if s.Name == "nbtarray_codec_arrays_total" && s.Labels["result"] == "truncated" {
			found = true
			require.Equal(t, 1.0, s.Value)
		}
	}
	require.True(t, found)
}
