package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	assert.Error(t, err)
}

func TestGetKeyValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Unix newlines, stop on empty line",
			input:    "status=1\nordering=-amount\n\n",
			expected: []string{"status=1", "ordering=-amount"},
		},
		{
			name:     "Windows CRLF, stop on empty line",
			input:    "status=1\r\ncategory=2\r\n\r\n",
			expected: []string{"status=1", "category=2"},
		},
		{
			name:     "Immediate blank line gives empty slice",
			input:    "\n",
			expected: []string{},
		},
		{
			name:     "EOF without trailing blank line",
			input:    "status=1\ncategory=2",
			expected: []string{"status=1", "category=2"},
		},
		{
			name:     "Spaces are preserved",
			input:    " status = 1 \n\n",
			expected: []string{" status = 1 "},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetKeyValues(rdr(tc.input), "Filters", &out)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		args   []string
		want   int64
		wantOK bool
	}{
		{args: []string{"42"}, want: 42, wantOK: true},
		{args: nil},
		{args: []string{"1", "2"}},
		{args: []string{"0"}},
		{args: []string{"-3"}},
		{args: []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, ok := parseID(tt.args)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt64_RepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	got, err := getInt64(rdr("x\n-1\n7\n"), "Id", &out, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), *got)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a positive number"))
}

func TestGetInt64_Optional(t *testing.T) {
	var out bytes.Buffer
	got, err := getInt64(rdr("\n"), "Id", &out, true)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = getInt64(rdr(""), "Id", &out, false)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetAmount(t *testing.T) {
	var out bytes.Buffer
	got, err := getAmount(rdr("0\nabc\n12.50\n"), "Amount", &out, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("12.5").Equal(*got))

	got, err = getAmount(rdr("\n"), "Amount", &out, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}
