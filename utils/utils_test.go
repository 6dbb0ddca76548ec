package utils

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Path   string `json:"path" validate:"required"`
	Format string `json:"format" validate:"oneof=csv json"`
}

func (s *sampleConfig) Validate() error {
	return Validate(s)
}

func TestUnmarshalFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c/config.json", []byte(`{"path":"/in.csv","format":"json"}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/c/config.yaml", []byte("path: /in.csv\nformat: csv\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/c/invalid.yml", []byte("format: xml\n"), 0o644))

	tests := []struct {
		name      string
		file      string
		validate  bool
		expected  sampleConfig
		expectErr bool
	}{
		{name: "json", file: "/c/config.json", validate: true, expected: sampleConfig{Path: "/in.csv", Format: "json"}},
		{name: "yaml", file: "/c/config.yaml", validate: true, expected: sampleConfig{Path: "/in.csv", Format: "csv"}},
		{name: "invalid without validation", file: "/c/invalid.yml", expected: sampleConfig{Format: "xml"}},
		{name: "invalid with validation", file: "/c/invalid.yml", validate: true, expectErr: true},
		{name: "missing file", file: "/c/none.json", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got sampleConfig
			err := UnmarshalFile(fs, tc.file, &got, tc.validate)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestValidate_TranslatesErrors(t *testing.T) {
	err := Validate(&sampleConfig{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is a required field")
	assert.Contains(t, err.Error(), "format must be one of [csv json]")
}

func TestValidate_NamesFieldsByConfigKey(t *testing.T) {
	type s3Like struct {
		Bucket    string `json:"s3_bucket,omitempty" validate:"required"`
		SecretKey string `json:"-" validate:"required"`
		Region    string `validate:"required"`
	}

	err := Validate(&s3Like{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3_bucket is a required field", "tag options are dropped")
	assert.Contains(t, err.Error(), "SecretKey is a required field", "json \"-\" falls back to the field name")
	assert.Contains(t, err.Error(), "Region is a required field", "untagged fields use the field name")
}

func TestErrExecSequential(t *testing.T) {
	calls := 0
	step := func(err error) func() error {
		return func() error {
			calls++
			return err
		}
	}

	err := ErrExecSequential(step(nil), step(errors.New("first")), step(errors.New("second")))
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Equal(t, 3, calls)

	calls = 0
	err = ErrExecSequential(step(Critical(errors.New("stop"))), step(errors.New("never")))
	require.Error(t, err)
	assert.Equal(t, 1, calls, "critical errors stop execution")

	assert.NoError(t, ErrExecSequential(step(nil)))
}

func TestErrExecFormat(t *testing.T) {
	err := ErrExecFormat("wrapped: %s", func() error { return errors.New("inner") })()
	assert.EqualError(t, err, "wrapped: inner")
	assert.NoError(t, ErrExecFormat("wrapped: %s", func() error { return nil })())
	assert.Nil(t, Critical(nil))
}

func TestIsValidSubcommand(t *testing.T) {
	commands := []*cobra.Command{{Use: "filter", Aliases: []string{"run"}}, {Use: "check"}}

	assert.True(t, IsValidSubcommand(commands, "filter"))
	assert.True(t, IsValidSubcommand(commands, "run"))
	assert.False(t, IsValidSubcommand(commands, "sync"))
}

func TestTernary(t *testing.T) {
	assert.Equal(t, "a", Ternary(true, "a", "b").(string))
	assert.Equal(t, "b", Ternary(false, "a", "b").(string))
}
