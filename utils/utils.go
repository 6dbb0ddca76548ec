package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// IsValidSubcommand reports whether name is one of the registered commands.
func IsValidSubcommand(available []*cobra.Command, name string) bool {
	for _, cmd := range available {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return false
}

// UnmarshalFile reads a JSON or YAML file into dest. YAML is picked by the
// .yaml/.yml extension. With validate set, dest's Validate method runs when
// it has one.
func UnmarshalFile(fs afero.Fs, file string, dest any, validate bool) error {
	if _, err := fs.Stat(file); err != nil {
		return fmt.Errorf("file not found: %s", err)
	}

	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return fmt.Errorf("could not read file[%s]: %s", file, err)
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return fmt.Errorf("failed to convert yaml file[%s]: %s", file, err)
		}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal file[%s]: %s", file, err)
	}

	if validate {
		if v, ok := dest.(interface{ Validate() error }); ok {
			return v.Validate()
		}
	}

	return nil
}

// ExecutableDir is the directory holding the running binary, with symlinks
// resolved. It falls back to the working directory.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			return filepath.Dir(resolved)
		}
		return filepath.Dir(exe)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
