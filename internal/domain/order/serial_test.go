package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/dcare/internal/domain/department"
)

type stubSequence struct {
	last uint
	err  error
}

func (s stubSequence) LastID(context.Context) (uint, error) { return s.last, s.err }

type stubPrefixes map[uint]string

func (s stubPrefixes) ShortenByID(_ context.Context, id uint) (string, error) {
	shorten, ok := s[id]
	if !ok {
		return "", department.ErrNotFound
	}
	return shorten, nil
}

func TestFormatSerial(t *testing.T) {
	at := time.Date(2024, 3, 7, 14, 59, 0, 0, time.UTC)

	tests := []struct {
		name   string
		prefix string
		seq    uint
		width  int
		want   string
	}{
		{"补齐", "AB", 12, 3, "AB0403071400120"},
		{"不补齐", "AB", 12, 0, "AB403071400120"},
		{"截断", "ABCD", 1, 3, "ABC403071400010"},
		{"刚好", "ABC", 1, 3, "ABC403071400010"},
		{"序号超过4位", "AB", 12345, 3, "AB04030714123450"},
		{"中文代码补齐", "台", 12, 3, "台00403071400120"},
		{"中文代码截断", "A台北市", 12, 3, "A台北403071400120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSerial(tt.prefix, at, tt.seq, tt.width))
		})
	}
}

func TestFormatSerial_ValidUTF8(t *testing.T) {
	at := time.Date(2024, 3, 7, 14, 0, 0, 0, time.UTC)

	for _, prefix := range []string{"A台", "台中", "門市代碼"} {
		sn := FormatSerial(prefix, at, 1, 2)
		assert.True(t, utf8.ValidString(sn), sn)
		assert.Equal(t, 2, utf8.RuneCountInString(strings.TrimSuffix(sn, "403071400010")), sn)
	}
}

func TestFormatSerial_UsesUTC(t *testing.T) {
	taipei := time.FixedZone("CST", 8*3600)
	at := time.Date(2024, 1, 1, 2, 0, 0, 0, taipei) // 2023-12-31 18:00 UTC

	assert.Equal(t, "AB0312311800010", FormatSerial("AB", at, 1, 3))
}

func TestSerialGenerator_Generate(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 3, 7, 14, 30, 0, 0, time.UTC) }
	ctx := context.Background()
	bm := uint(1)
	missing := uint(9)

	gen := NewSerialGenerator(stubSequence{last: 41}, stubPrefixes{bm: "BM"}, 3, "NN").WithClock(clock)

	sn, err := gen.Generate(ctx, &bm)
	require.NoError(t, err)
	assert.Equal(t, "BM0403071400420", sn)

	// 门市为空或不存在时使用默认前缀
	sn, err = gen.Generate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "NN0403071400420", sn)

	sn, err = gen.Generate(ctx, &missing)
	require.NoError(t, err)
	assert.Equal(t, "NN0403071400420", sn)
}

func TestSerialGenerator_SequenceError(t *testing.T) {
	gen := NewSerialGenerator(stubSequence{err: errors.New("db down")}, stubPrefixes{}, 3, "NN")

	_, err := gen.Generate(context.Background(), nil)
	assert.Error(t, err)
}
