package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Comma-separated with spaces",
			input:    "コウ, ク\n",
			expected: []string{"コウ", "ク"},
		},
		{
			name:     "Single item",
			input:    "やま\n",
			expected: []string{"やま"},
		},
		{
			name:     "Empty line gives empty slice",
			input:    "\n",
			expected: []string{},
		},
		{
			name:     "Empty items are dropped",
			input:    "a,,b,\n",
			expected: []string{"a", "b"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetList(rdr(tc.input), "Readings", &out)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer

	got, err := GetOptionalText(rdr("something\n"), "Description", &out)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "something", *got)

	got, err = GetOptionalText(rdr("\n"), "Description", &out)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetYesNo(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"whatever\n", false},
		{"\n", false},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		got, err := GetYesNo(rdr(tc.input), "Vocab group?", &out)
		require.NoError(t, err)
		require.Equal(t, tc.expected, got, "input %q", tc.input)
	}
}
