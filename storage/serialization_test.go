package storage

import (
	"testing"
	"time"

	"github.com/poiesic/wellwise/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("fever")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}

	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestSymptomRecordRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.SymptomRecord
	}{
		{
			name: "full record",
			record: &core.SymptomRecord{
				Id:         core.IDFromContent("chest_pain"),
				Name:       "chest_pain",
				Diseases:   []string{"Heart attack", "GERD"},
				Vector:     []float32{0.6, -0.8, 0, 1e-7},
				InsertedAt: now.Add(-time.Hour),
				UpdatedAt:  now,
			},
		},
		{
			name: "no vector or diseases",
			record: &core.SymptomRecord{
				Id:   core.IDFromContent("rash"),
				Name: "rash",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalSymptomRecord(MarshalSymptomRecord(tt.record))
			require.NoError(t, err)
			assert.Equal(t, tt.record, decoded)
		})
	}
}

func TestFAQRecordRoundTrip(t *testing.T) {
	record := &core.FAQRecord{
		Id:         core.IDFromContent("What is a fever?"),
		Question:   "What is a fever?",
		Answer:     "A body temperature above 38°C.",
		Vector:     []float32{1, 0},
		InsertedAt: time.UnixMicro(1700000000000000).UTC(),
		UpdatedAt:  time.UnixMicro(1700000000000001).UTC(),
	}

	decoded, err := UnmarshalFAQRecord(MarshalFAQRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestIndexStampRoundTrip(t *testing.T) {
	stamp := &core.IndexStamp{
		Corpus:    "symptoms",
		Model:     "all-minilm",
		Digest:    "abc123",
		Count:     131,
		UpdatedAt: time.UnixMicro(1700000000000000).UTC(),
	}

	decoded, err := UnmarshalIndexStamp(MarshalIndexStamp(stamp))
	require.NoError(t, err)
	assert.Equal(t, stamp, decoded)
}

func TestUnmarshal_Corrupt(t *testing.T) {
	good := MarshalSymptomRecord(&core.SymptomRecord{
		Id:       1,
		Name:     "fever",
		Diseases: []string{"Flu"},
		Vector:   []float32{0.5, 0.5},
	})

	t.Run("empty", func(t *testing.T) {
		_, err := UnmarshalSymptomRecord(nil)
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := UnmarshalSymptomRecord(good[:len(good)-3])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := UnmarshalSymptomRecord(append(append([]byte{}, good...), 0))
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("unknown version", func(t *testing.T) {
		bad := append([]byte{}, good...)
		bad[0] = 99
		_, err := UnmarshalSymptomRecord(bad)
		assert.ErrorIs(t, err, ErrUnknownVersion)
	})
}
