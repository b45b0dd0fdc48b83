package coreconf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WritesHeaderAndLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Encode(&buf, "foo", []Entry{
		CoreEntry{Core: CorePiccolo},
		FeatureEntry{Feature: FeatureTandemVerify, Enabled: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "# autocore configuration foo\ncore=>Piccolo\ntv=>on\n", buf.String())
}

func TestEncode_RejectsDelimiterInValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Encode(&buf, "foo", []Entry{TopFileEntry{Path: "a=>b"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Empty(t, buf.String(), "nothing is written when a value is rejected")
}

func TestDecode_Valid(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# comment",
		"",
		"core=>Flute",
		"  arch => rv64  ",
		"ext=>imafdc",
		"priv=>msu",
		"fabric=>32",
		"near_mem=>TCM",
		"tv=>on",
		"db=>off",
		"mem_zero=>on",
		"mult=>serial",
		"shift=>barrel",
		"target=>bsim",
		"top_file=>src/Top.bsv",
		"bsc_path=>a:b:+",
	}, "\n")

	entries, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 14)

	assert.Equal(t, CoreEntry{Core: CoreFlute}, entries[0])
	assert.Equal(t, "rv64", entries[1].Value())
	assert.Equal(t, FeatureEntry{Feature: FeatureDebugModule, Enabled: false}, entries[7])
	assert.Equal(t, BSCPathEntry{Paths: []string{"a", "b", "+"}}, entries[13])
}

func TestDecode_CRLF(t *testing.T) {
	t.Parallel()

	entries, err := Decode(strings.NewReader("core=>Piccolo\r\npriv=>m\r\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "m", entries[1].Value())
}

func TestDecode_MalformedLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{name: "no delimiter", input: "core Piccolo", wantLine: 1},
		{name: "single char delimiter", input: "core=Piccolo", wantLine: 1},
		{name: "two delimiters", input: "core=>Piccolo\ntop_file=>a=>b", wantLine: 2},
		{name: "empty key", input: "=>Piccolo", wantLine: 1},
		{name: "duplicate key", input: "core=>Piccolo\n\ncore=>Flute", wantLine: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedLine)

			var le *LineError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.wantLine, le.Line)
		})
	}
}

func TestDecode_LongLines(t *testing.T) {
	t.Parallel()

	segment := strings.Repeat("a", 1000)
	long := strings.TrimSuffix(strings.Repeat(segment+":", 100), ":")

	entries, err := Decode(strings.NewReader("core=>Piccolo\nbsc_path=>" + long + "\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, entries[1].(BSCPathEntry).Paths, 100)

	tooLong := "core=>Piccolo\nbsc_path=>" + strings.Repeat("b", maxLineSize) + "\n"
	_, err = Decode(strings.NewReader(tooLong))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedLine)

	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Line)
}

func TestDecode_UnrecognizedKeyAnyPosition(t *testing.T) {
	t.Parallel()

	valid := []string{"core=>Piccolo", "arch=>rv32", "ext=>imac", "priv=>mu"}
	for pos := 0; pos <= len(valid); pos++ {
		lines := append([]string{}, valid[:pos]...)
		lines = append(lines, "cache_size=>16")
		lines = append(lines, valid[pos:]...)

		_, err := Decode(strings.NewReader(strings.Join(lines, "\n")))
		require.Error(t, err, "position %d", pos)
		assert.ErrorIs(t, err, ErrUnrecognizedKey, "position %d", pos)

		var ke *KeyError
		require.ErrorAs(t, err, &ke)
		assert.Equal(t, "cache_size", ke.Key)
	}
}

func TestDecode_FailsFastOnFirstError(t *testing.T) {
	t.Parallel()

	// The unknown key comes first; the later malformed line is never reached.
	_, err := Decode(strings.NewReader("bogus=>1\nnot a line"))
	assert.ErrorIs(t, err, ErrUnrecognizedKey)
	assert.NotErrorIs(t, err, ErrMalformedLine)
}

func TestParseEntry_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     string
		value   string
		wantErr error
	}{
		{key: "core", value: "CoreC", wantErr: ErrInvalidValue},
		{key: "core", value: "piccolo", wantErr: ErrInvalidValue},
		{key: "arch", value: "rv32imac", wantErr: ErrInvalidValue},
		{key: "arch", value: "rv128", wantErr: ErrInvalidValue},
		{key: "ext", value: "", wantErr: ErrInvalidValue},
		{key: "ext", value: "imacv", wantErr: ErrInvalidValue},
		{key: "ext", value: "imacz", wantErr: ErrInvalidValue},
		{key: "ext", value: "gc", wantErr: ErrInvalidValue},
		{key: "ext", value: "mac", wantErr: ErrMissingMandatoryExtension},
		{key: "ext", value: "imd", wantErr: ErrUnsatisfiedDependency},
		{key: "priv", value: "", wantErr: ErrInvalidValue},
		{key: "priv", value: "mh", wantErr: ErrInvalidValue},
		{key: "fabric", value: "16", wantErr: ErrInvalidValue},
		{key: "near_mem", value: "SRAM", wantErr: ErrInvalidValue},
		{key: "tv", value: "true", wantErr: ErrInvalidValue},
		{key: "db", value: "1", wantErr: ErrInvalidValue},
		{key: "mem_zero", value: "ON", wantErr: ErrInvalidValue},
		{key: "mult", value: "booth", wantErr: ErrInvalidValue},
		{key: "shift", value: "funnel", wantErr: ErrInvalidValue},
		{key: "target", value: "fpga", wantErr: ErrInvalidValue},
		{key: "top_file", value: "", wantErr: ErrInvalidValue},
		{key: "top_file", value: " src/Top.bsv", wantErr: ErrInvalidValue},
		{key: "top_file", value: "src/Top.bsv\t", wantErr: ErrInvalidValue},
		{key: "bsc_path", value: "lib: src", wantErr: ErrInvalidValue},
		{key: "bsc_path", value: "a::b", wantErr: ErrInvalidValue},
		{key: "bsc_path", value: "", wantErr: ErrInvalidValue},
		{key: "unknown", value: "x", wantErr: ErrUnrecognizedKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"_"+tt.value, func(t *testing.T) {
			t.Parallel()

			_, err := ParseEntry(tt.key, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_UnknownExtensionIsInvalidValue(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("core=>Piccolo\next=>imacz\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.NotErrorIs(t, err, ErrInvalidArchitecture)

	var ve *ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "ext", ve.Key)
	assert.Equal(t, "imacz", ve.Value)
	assert.Contains(t, err.Error(), `unknown extension "z"`)
}

func TestValueError_Message(t *testing.T) {
	t.Parallel()

	_, err := ParseEntry("fabric", "16")
	require.Error(t, err)
	assert.Equal(t, `invalid value "16" for key "fabric": must be one of 32, 64`, err.Error())
}

func TestSplitLine(t *testing.T) {
	t.Parallel()

	k, v, err := SplitLine("core=>Piccolo")
	require.NoError(t, err)
	assert.Equal(t, "core", k)
	assert.Equal(t, "Piccolo", v)

	k, v, err = SplitLine("top_file=>")
	require.NoError(t, err)
	assert.Equal(t, "top_file", k)
	assert.Empty(t, v)
}
