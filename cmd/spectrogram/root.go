package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-spectrogram/spectrogram"
)

const envPrefix = "SPECTROGRAM"

var errUsage = errors.New("usage")

// options is everything a run needs, decoded from viper.
type options struct {
	spectrogram.Config `mapstructure:",squash"`

	Precision int    `mapstructure:"precision"`
	Summary   string `mapstructure:"summary"`
	InMemory  bool   `mapstructure:"in_memory"`
	LogLevel  string `mapstructure:"log_level"`

	Input  string `mapstructure:"-"`
	Output string `mapstructure:"-"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	var configFile string

	cmd := &cobra.Command{
		Use:   "spectrogram <window_size_ms> <window_kind> <transform_size> <frame_interval_ms> <input_path> <output_path>",
		Short: "Render a WAV file as a text spectrogram",
		Long: `Splits a mono 16-bit PCM WAV file into overlapping windows, applies a
rectangular, hamming or hanning taper and writes the dB magnitude of bins
0..N/2 of an N-point DFT as one line per frame.

The direct DFT costs O(N*L) per frame. Use --backend fft or --backend realfft
for large transforms; their output agrees with the direct form to within
1e-6 dB but is not bit-identical.`,
		Args: cobra.ExactArgs(6),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v, args)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "YAML config file")
	f.String("backend", "direct", "transform backend (direct, fft, realfft)")
	f.Int("workers", 1, "concurrent transforms per batch")
	f.Int("precision", spectrogram.DefaultPrecision, "decimals per value")
	f.Bool("strict-window", false, "fail on an unknown window kind instead of falling back to rectangular")
	f.String("summary", "", "write a YAML summary of the output axes to this path")
	f.Bool("in-memory", false, "load the whole payload instead of re-reading frames from disk")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.Int("max-window-size", spectrogram.DefaultMaxWindowSize, "largest accepted window in samples")
	f.Int("max-transform-size", spectrogram.DefaultMaxTransformSize, "largest accepted transform size")

	return cmd
}

// initConfig layers defaults, the optional config file, the environment
// and the command line into v.
func initConfig(cmd *cobra.Command, v *viper.Viper, configFile string) error {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", configFile, err)
		}
	}

	return bindFlags(cmd, v)
}

// bindFlags binds every flag except --config under its snake_case key.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}
		if err := v.BindPFlag(configKey(f.Name), f); err != nil {
			errs = append(errs, err)
		}
	})

	return errors.Join(errs...)
}

func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func setDefaults(v *viper.Viper) {
	d := spectrogram.DefaultConfig()

	v.SetDefault("window", d.Window)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("strict_window", d.StrictWindow)
	v.SetDefault("max_window_size", d.MaxWindowSize)
	v.SetDefault("max_transform_size", d.MaxTransformSize)

	v.SetDefault("precision", spectrogram.DefaultPrecision)
	v.SetDefault("summary", "")
	v.SetDefault("in_memory", false)
	v.SetDefault("log_level", "info")
}

// loadOptions applies the positional arguments on top of v and decodes the
// result.
func loadOptions(v *viper.Viper, args []string) (options, error) {
	ints := []struct {
		key string
		arg string
	}{
		{"window_size_ms", args[0]},
		{"transform_size", args[2]},
		{"frame_interval_ms", args[3]},
	}
	for _, it := range ints {
		n, err := strconv.Atoi(it.arg)
		if err != nil {
			return options{}, fmt.Errorf("%w: %s must be an integer, got %q", errUsage, it.key, it.arg)
		}
		v.Set(it.key, n)
	}
	v.Set("window", args[1])

	var opts options
	if err := v.Unmarshal(&opts); err != nil {
		return options{}, fmt.Errorf("decode config: %w", err)
	}
	opts.Input = args[4]
	opts.Output = args[5]

	return opts, nil
}
