package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-cardio/internal/sink"
)

// configKeys maps every key "config set" accepts to the parser for its value.
var configKeys = map[string]func(string) (any, error){
	keyOutputDir: nonEmpty,
	keyRunName:   nonEmpty,
	keyGenes:     func(v string) (any, error) { return v, nil }, // empty restores the bundled list
	keyFormat: func(v string) (any, error) {
		f, err := sink.ParseFormat(v)
		return string(f), err
	},
	keyVerbose: func(v string) (any, error) { return strconv.ParseBool(v) },
}

func nonEmpty(v string) (any, error) {
	if strings.TrimSpace(v) == "" {
		return nil, errors.New("value must not be empty")
	}
	return v, nil
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for k := range configKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the settings in ~/" + configName + ".yaml",
		Long: `Print the effective settings, or read and write single keys of the
config file. Accepted keys: ` + strings.Join(configKeyNames(), ", ") + `.
Flags and VIBE_CARDIO_* variables override the file.`,
		Example: `  vibe-cardio config
  vibe-cardio config set output_dir /data/cardio
  vibe-cardio config set format duckdb
  vibe-cardio config get genes`,
		Args: exactArgs(0, "config takes no arguments; use 'config get' or 'config set'"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Validate and store a setting",
		Args:  exactArgs(2, "config set requires a key and a value"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a setting",
		Args:  exactArgs(1, "config get requires a key"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getConfig(cmd, args[0])
		},
	})

	return cmd
}

// configPath returns the location of the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configName+".yaml"), nil
}

func showConfig(cmd *cobra.Command) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	effective := make(map[string]any, len(configKeys))
	for _, k := range configKeyNames() {
		effective[k] = viper.Get(k)
	}
	out, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, out)
	return nil
}

// setConfig writes only the changed key back to the file, leaving other
// entries and unbound flag defaults out of it.
func setConfig(cmd *cobra.Command, key, raw string) error {
	parse, ok := configKeys[key]
	if !ok {
		return &usageError{fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(configKeyNames(), ", "))}
	}
	value, err := parse(raw)
	if err != nil {
		return &usageError{fmt.Errorf("invalid value for %s: %w", key, err)}
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	stored, err := readConfigFile(path)
	if err != nil {
		return err
	}
	stored[key] = value

	out, err := yaml.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	viper.Set(key, value)

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s\n", key, value, path)
	return nil
}

func readConfigFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	stored := map[string]any{}
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if stored == nil {
		stored = map[string]any{}
	}
	return stored, nil
}

func getConfig(cmd *cobra.Command, key string) error {
	if _, ok := configKeys[key]; !ok {
		return &usageError{fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(configKeyNames(), ", "))}
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.Get(key))
	return nil
}
