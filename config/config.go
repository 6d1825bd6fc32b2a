/*
 * MIT License
 *
 * Copyright (c) 2026 The fileopt Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package config resolves the external settings surface through Viper:
// flags take precedence over environment variables, which take precedence
// over a config file, which takes precedence over the package defaults.
// The result is validated before the orchestrator ever sees it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/fsnotify/fsnotify"
	validatorpkg "github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sabouaram/fileopt/logger"
	"github.com/sabouaram/fileopt/model"
)

// Settings is the external settings surface: everything an operator can
// override through a flag, an environment variable or a config file.
type Settings struct {
	PreserveMetadata        bool     `mapstructure:"preserve_metadata" yaml:"preserve_metadata"`
	Recursive               bool     `mapstructure:"recursive" yaml:"recursive"`
	DryRun                  bool     `mapstructure:"dry_run" yaml:"dry_run"`
	NumThreads              uint     `mapstructure:"num_threads" yaml:"num_threads" validate:"min=0"`
	IncludePatterns         []string `mapstructure:"include_patterns" yaml:"include_patterns,omitempty"`
	ExcludePatterns         []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns,omitempty"`
	UnencodableTargetFormat string   `mapstructure:"unencodable_target_format" yaml:"unencodable_target_format,omitempty"`
	VerifyChecksums         bool     `mapstructure:"verify_checksums" yaml:"verify_checksums"`
	EncodeMode              string   `mapstructure:"encode_mode" yaml:"encode_mode" validate:"omitempty,oneof=pipe parallel"`

	// ReportCSV, when non-empty, is the path a CSV report is written to
	// after a run, so fileopt is scriptable without parsing console output.
	ReportCSV string `mapstructure:"report_csv" yaml:"report_csv,omitempty"`

	// ReportBin, when non-empty, is the path a MessagePack-encoded
	// report.Envelope is written to after a run, for tooling that prefers
	// a typed binary payload over CSV.
	ReportBin string `mapstructure:"report_bin" yaml:"report_bin,omitempty"`

	// ConfigFile, when set, is the path Viper reads on top of defaults.
	// Not validated: absence is legal, it simply means defaults+env+flags.
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// defaults mirrors the zero-config behavior: no patterns, single-threaded
// off (0 meaning "let the pool size itself": half the logical CPU count,
// minimum 1), pipe encoding.
func defaults() Settings {
	return Settings{
		PreserveMetadata: true,
		Recursive:        true,
		NumThreads:       0,
		EncodeMode:       "pipe",
	}
}

// BindFlags registers every setting as a persistent flag on cmd and binds
// it into v, so that flag > env > file > default precedence falls out of
// Viper's own resolution order once Load reads v back.
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	d := defaults()

	cmd.PersistentFlags().Bool("preserve-metadata", d.PreserveMetadata, "forward tag/metadata preservation to codecs that support it")
	cmd.PersistentFlags().Bool("recursive", d.Recursive, "walk directories recursively")
	cmd.PersistentFlags().Bool("dry-run", d.DryRun, "never replace originals; report only")
	cmd.PersistentFlags().Uint("num-threads", d.NumThreads, "worker pool size (0 = half the logical CPUs, minimum 1)")
	cmd.PersistentFlags().StringSlice("include", nil, "regex an input path must match at least one of, if any are given")
	cmd.PersistentFlags().StringSlice("exclude", nil, "regex that drops a matching input path")
	cmd.PersistentFlags().String("unencodable-target-format", "", "fallback container format for non-writable containers (e.g. zip)")
	cmd.PersistentFlags().Bool("verify-checksums", false, "forward checksum verification to codecs")
	cmd.PersistentFlags().String("encode-mode", d.EncodeMode, "pipe or parallel leaf codec composition")
	cmd.PersistentFlags().String("report-csv", "", "write a CSV report to this path after the run")
	cmd.PersistentFlags().String("report-bin", "", "write a MessagePack report to this path after the run")
	cmd.PersistentFlags().String("config", "", "config file path (YAML, TOML or JSON)")

	for flag, key := range map[string]string{
		"preserve-metadata":         "preserve_metadata",
		"recursive":                 "recursive",
		"dry-run":                   "dry_run",
		"num-threads":               "num_threads",
		"include":                   "include_patterns",
		"exclude":                   "exclude_patterns",
		"unencodable-target-format": "unencodable_target_format",
		"verify-checksums":          "verify_checksums",
		"encode-mode":               "encode_mode",
		"report-csv":                "report_csv",
		"report-bin":                "report_bin",
	} {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	return nil
}

// Load resolves Settings from v: defaults, then an optional config file
// (if configFile is non-empty), then environment variables prefixed
// FILEOPT_, then whatever flags BindFlags already bound. It validates the
// result before returning.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	d := defaults()
	v.SetDefault("preserve_metadata", d.PreserveMetadata)
	v.SetDefault("recursive", d.Recursive)
	v.SetDefault("num_threads", d.NumThreads)
	v.SetDefault("encode_mode", d.EncodeMode)

	v.SetEnvPrefix("fileopt")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	s.ConfigFile = configFile

	if err := validatorpkg.New().Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	if s.UnencodableTargetFormat != "" {
		if _, ok := model.ParseFormatName(s.UnencodableTargetFormat); !ok {
			return nil, fmt.Errorf("invalid settings: unencodable_target_format %q is not a recognized container format", s.UnencodableTargetFormat)
		}
	}

	return &s, nil
}

// Format resolves UnencodableTargetFormat to a model.ContainerFormat,
// returning model.Unknown if it was left empty.
func (s *Settings) Format() model.ContainerFormat {
	f, _ := model.ParseFormatName(s.UnencodableTargetFormat)
	return f
}

// EncodeModeValue resolves the EncodeMode string to its model enum.
func (s *Settings) EncodeModeValue() model.EncodeMode {
	if strings.EqualFold(s.EncodeMode, "parallel") {
		return model.Parallel
	}
	return model.Pipe
}

// Watch logs a config file change so an operator notices it, but never
// feeds it back into a running pipeline. Callers start a new invocation to
// pick it up.
func Watch(v *viper.Viper, log logger.Logger) {
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Warning("config file changed on disk; restart fileopt to apply it", logger.Fields{"file": e.Name})
	})
	v.WatchConfig()
}

// WriteDefaultYAML renders the package defaults as a YAML template an
// operator can copy and edit, via gopkg.in/yaml.v3 (the codec Viper itself
// uses under the hood for YAML files, used here directly rather than
// through Viper since there is no existing *viper.Viper to marshal back
// out of).
func WriteDefaultYAML(w io.Writer) error {
	d := defaults()
	return yaml.NewEncoder(w).Encode(&d)
}
