package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/autocore/internal/coreconf"
)

func strPtr(s string) *string { return &s }

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		n, b, f  *string
		wantMode Mode
		wantName string
		wantErr  error
	}{
		{name: "new", n: strPtr("foo"), wantMode: New, wantName: "foo"},
		{name: "build", b: strPtr("bar"), wantMode: Build, wantName: "bar"},
		{name: "fast", f: strPtr("baz"), wantMode: Fast, wantName: "baz"},
		{name: "none", wantErr: coreconf.ErrMissingRequiredField},
		{name: "new and build", n: strPtr("a"), b: strPtr("a"), wantErr: coreconf.ErrConflictingMode},
		{name: "all three", n: strPtr("a"), b: strPtr("b"), f: strPtr("c"), wantErr: coreconf.ErrConflictingMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, name, err := Select(tt.n, tt.b, tt.f)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, m)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestMode_WritesInvokes(t *testing.T) {
	t.Parallel()

	assert.True(t, New.Writes())
	assert.False(t, New.Invokes())
	assert.False(t, Build.Writes())
	assert.True(t, Build.Invokes())
	assert.True(t, Fast.Writes())
	assert.True(t, Fast.Invokes())
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        Request
		wantTarget coreconf.Target
		wantErr    error
	}{
		{
			name: "build plain",
			req:  Request{Mode: Build, Name: "foo"},
		},
		{
			name:       "build with force target and dry run",
			req:        Request{Mode: Build, Name: "foo", DryRun: true, ForceTarget: strPtr("verilog")},
			wantTarget: coreconf.TargetVerilog,
		},
		{
			name:    "build with construction flag",
			req:     Request{Mode: Build, Name: "foo", Input: coreconf.Input{Fabric: strPtr("32")}},
			wantErr: coreconf.ErrConflictingMode,
		},
		{
			name:    "build with false bool flag",
			req:     Request{Mode: Build, Name: "foo", Input: coreconf.Input{TandemVerify: new(bool)}},
			wantErr: coreconf.ErrConflictingMode,
		},
		{
			name:    "new with dry run",
			req:     Request{Mode: New, Name: "foo", DryRun: true},
			wantErr: coreconf.ErrConflictingMode,
		},
		{
			name:    "new with force target",
			req:     Request{Mode: New, Name: "foo", ForceTarget: strPtr("bsim")},
			wantErr: coreconf.ErrConflictingMode,
		},
		{
			name:       "fast accepts everything",
			req:        Request{Mode: Fast, Name: "foo", DryRun: true, ForceTarget: strPtr("all"), Input: coreconf.Input{Core: strPtr("Flute")}},
			wantTarget: coreconf.TargetAll,
		},
		{
			name:    "unknown force target",
			req:     Request{Mode: Build, Name: "foo", ForceTarget: strPtr("fpga")},
			wantErr: coreconf.ErrInvalidValue,
		},
		{
			name:    "bad name",
			req:     Request{Mode: Build, Name: "../foo"},
			wantErr: coreconf.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target, err := tt.req.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}
