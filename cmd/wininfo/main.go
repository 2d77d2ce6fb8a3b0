// Command wininfo prints spectral properties of the analysis windows the
// spectrogram supports.
//
// Usage:
//
//	wininfo [flags] [window-name ...]
//
// Without arguments it prints info for every window type.
//
// Examples:
//
//	wininfo hann
//	wininfo --size 256 hamming rect
//	wininfo --all --periodic
//	wininfo --list
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("wininfo", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	size := fs.Int("size", 1024, "window length in samples")
	all := fs.Bool("all", false, "show all window types")
	list := fs.Bool("list", false, "list available window names")
	periodic := fs.Bool("periodic", false, "use periodic (FFT) form instead of symmetric")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: wininfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(stderr, "Prints spectral properties of the spectrogram window functions.\n")
		fmt.Fprintf(stderr, "Without arguments or with --all, prints info for all windows.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if *list {
		for _, t := range window.Types {
			fmt.Fprintln(stdout, t)
		}
		return 0
	}

	types := window.Types
	if names := fs.Args(); len(names) > 0 && !*all {
		types = nil
		for _, name := range names {
			t, err := window.Parse(name)
			if err != nil {
				fmt.Fprintf(stderr, "warning: %v (use --list to see available)\n", err)
				continue
			}
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		fmt.Fprintf(stderr, "error: no matching window types\n")
		return 1
	}

	var opts []window.Option
	if *periodic {
		opts = append(opts, window.WithPeriodic())
	}

	if err := printAnalysis(stdout, types, *size, opts); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

func printAnalysis(w io.Writer, types []window.Type, size int, opts []window.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\t1st Min [bins]\tScallop [dB]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t----------\t-------------\t-------------\t--------------\t-----------\n")

	for _, t := range types {
		a, err := window.Analyze(t, size, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\n",
			t,
			size,
			a.CoherentGain,
			a.ENBW,
			a.Bandwidth3dB,
			a.HighestSidelobedB,
			a.FirstMinimumBins,
			a.ScallopLossdB,
		)
	}

	return tw.Flush()
}
