// Package config resolves the volume's runtime configuration — backing
// file path, a forced-reformat flag, and hex-dump width — from
// command-line flags and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options is the resolved runtime configuration for one simfatctl run.
type Options struct {
	// Path is the host file backing the volume.
	Path string
	// Format forces a reformat of an existing volume before the REPL starts.
	Format bool
	// BytesPerRow controls the rblock hex-dump width.
	BytesPerRow int
}

// Load parses args (normally os.Args[1:]) and environment variables
// prefixed SIMFAT_ into an Options value. A flag named --bytes-per-row
// is reachable as SIMFAT_BYTES_PER_ROW, dashes mapped to underscores.
func Load(args []string) (Options, error) {
	fs := pflag.NewFlagSet("simfatctl", pflag.ContinueOnError)
	fs.String("disk", "disk.fs", "path to the backing image file")
	fs.Bool("format", false, "reformat the volume before starting")
	fs.Int("bytes-per-row", 16, "bytes per row for the rblock hex dump")

	if err := fs.Parse(args); err != nil {
		return Options{}, fmt.Errorf("config: parsing flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("simfat")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Options{}, fmt.Errorf("config: binding flags: %w", err)
	}

	return Options{
		Path:        v.GetString("disk"),
		Format:      v.GetBool("format"),
		BytesPerRow: v.GetInt("bytes-per-row"),
	}, nil
}
