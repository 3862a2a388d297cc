package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

func reportCmd(opts *options) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "report [kind]",
		Short: "Print an aggregate report, or list the report kinds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printKinds(cmd.OutOrStdout(), store.AggregateKinds())
				return nil
			}

			tag, err := language.Parse(lang)
			if err != nil {
				return fmt.Errorf("invalid language %q: %w", lang, err)
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			// Reports go to stdout; keep the log out of the way.
			closeLog, err := setupLogger(cfg.LogPath, "error")
			if err != nil {
				return err
			}
			defer closeLog()

			database, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			pairs, err := store.Aggregate(cmd.Context(), database, store.ReportKind(args[0]))
			if err != nil {
				return err
			}

			printPairs(cmd.OutOrStdout(), message.NewPrinter(tag), pairs)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "en", "language used to format numbers")
	return cmd
}

func printKinds(w io.Writer, kinds []store.ReportInfo) {
	for _, k := range kinds {
		fmt.Fprintf(w, "%-32s %s\n", k.Kind, k.Description)
	}
}

// printPairs writes one line per pair. Whole metrics print without
// decimals, fractional ones with two.
func printPairs(w io.Writer, p *message.Printer, pairs []model.Pair) {
	if len(pairs) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}

	width := 0
	for _, pair := range pairs {
		width = max(width, len([]rune(pair.Label)))
	}

	for _, pair := range pairs {
		label := pair.Label + strings.Repeat(" ", width-len([]rune(pair.Label)))
		if pair.Metric == math.Trunc(pair.Metric) {
			p.Fprintf(w, "%s  %d\n", label, int64(pair.Metric))
		} else {
			p.Fprintf(w, "%s  %.2f\n", label, pair.Metric)
		}
	}
}
