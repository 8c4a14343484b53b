package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_SimpleRows(t *testing.T) {
	rows := Parse("a,b,c\n1,2,3\n")
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, rows)
}

func TestParse_QuotedFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "embedded comma",
			input: "h1,h2\n\"1,234\",x\n",
			want:  [][]string{{"h1", "h2"}, {"1,234", "x"}},
		},
		{
			name:  "escaped quote",
			input: "h\n\"say \"\"hi\"\"\"\n",
			want:  [][]string{{"h"}, {`say "hi"`}},
		},
		{
			name:  "embedded newline",
			input: "h1,h2\n\"line1\nline2\",y\n",
			want:  [][]string{{"h1", "h2"}, {"line1\nline2", "y"}},
		},
		{
			name:  "embedded carriage return",
			input: "h\n\"a\rb\"\n",
			want:  [][]string{{"h"}, {"a\rb"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParse_RecordSeparators(t *testing.T) {
	want := [][]string{{"a", "b"}, {"c", "d"}}
	assert.Equal(t, want, Parse("a,b\nc,d"), "LF")
	assert.Equal(t, want, Parse("a,b\r\nc,d"), "CRLF")
	assert.Equal(t, want, Parse("a,b\rc,d"), "bare CR")
}

func TestParse_BlankRowsDropped(t *testing.T) {
	rows := Parse("a,b\n\n , \nc,d\n\n")
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, rows)
}

func TestParse_NoTrailingNewline(t *testing.T) {
	rows := Parse("a,b\nc,d")
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, rows)
}

func TestParse_TrailingEmptyField(t *testing.T) {
	rows := Parse("a,b,\n")
	assert.Equal(t, [][]string{{"a", "b", ""}}, rows)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n"))
}
