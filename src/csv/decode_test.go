package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func TestDecodeBuffer_EmptyBuffer(t *testing.T) {
	assert.Equal(t, "", DecodeBuffer(nil))
	assert.Equal(t, "", DecodeBuffer([]byte{}))
}

func TestDecodeBuffer_PlainASCII(t *testing.T) {
	assert.Equal(t, "a,b,c\n1,2,3\n", DecodeBuffer([]byte("a,b,c\n1,2,3\n")))
}

func TestDecodeBuffer_ValidUTF8Japanese(t *testing.T) {
	input := "成立日,売買\n2025/1/6,買\n"
	assert.Equal(t, input, DecodeBuffer([]byte(input)))
}

func TestDecodeBuffer_ShiftJIS(t *testing.T) {
	// 日本語 in Shift_JIS; invalid as UTF-8, so the heuristic must flip over.
	buf := []byte{0x93, 0xFA, 0x96, 0x7B, 0x8C, 0xEA}
	assert.Equal(t, "日本語", DecodeBuffer(buf))
}

func TestDecodeBuffer_ShiftJISWholeCsv(t *testing.T) {
	utf8Csv := "成立日,銘柄,売買\n2025/1/6,日経225mini,買\n"
	sjisCsv, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(utf8Csv))
	require.NoError(t, err)

	assert.Equal(t, utf8Csv, DecodeBuffer(sjisCsv))
}
