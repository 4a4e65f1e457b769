package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scheckbl/scheckbl-cli/internal/output"
	"github.com/scheckbl/scheckbl-cli/internal/similarity"
)

var (
	flagSimThreshold float64
	flagSimAlgorithm string
	flagSimJSON      bool
	flagSimOutput    string
	flagSimStdout    bool
)

var similarCmd = &cobra.Command{
	Use:   "similar <type_name> <category> <phrase>",
	Short: "Find entries similar to a phrase",
	Long: `Rank blocklist entries by similarity to a phrase.

Scores are normalized to [0,1] using the configured metric (default:
normalized Levenshtein similarity). Entries below the threshold are dropped;
ties keep dataset order.

Without -o/--output the ranking is written to an auto-named file. Use
--stdout to print to the terminal. The two flags are mutually exclusive.

Examples:
  scheckbl similar phrases vulgarisms "idio" --stdout
  scheckbl similar phrases vulgarisms "idio" -t 0.7 --json`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, category, phrase := args[0], args[1], args[2]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		threshold := cfg.Similar.Threshold
		if cmd.Flags().Changed("threshold") {
			threshold = flagSimThreshold
		}

		algoName := cfg.Similar.Algorithm
		if cmd.Flags().Changed("algorithm") {
			algoName = flagSimAlgorithm
		}
		algo, err := similarity.ParseAlgorithm(algoName)
		if err != nil {
			return err
		}

		ds, err := openStore(cfg).Load(typeName, category)
		if err != nil {
			return err
		}

		matches, err := similarity.Rank(ds, phrase, threshold, algo)
		if err != nil {
			return err
		}

		format := formatFor(cfg)
		if flagSimJSON {
			format = output.FormatJSON
		}
		out := output.New(format)

		target, err := output.ResolveTarget(flagSimOutput, flagSimStdout,
			output.AutoFilename(similarExt(format), typeName, category, "similar"))
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			if format != output.FormatText {
				return out.Write([]similarity.Match{})
			}
			out.Warn(fmt.Sprintf("No similar entries found for threshold %g", threshold))
			return nil
		}

		// Terminal text output gets the colorized table; everything else is
		// the plain serialized form.
		if target.ToStdout && format == output.FormatText {
			fmt.Println(output.Heading(fmt.Sprintf("Similar entries (threshold: %g):", threshold)))
			fmt.Println(strings.Repeat("-", 60))
			for _, m := range matches {
				score := fmt.Sprintf("%.2f%%", m.Score*100)
				fmt.Printf("%-50s %s\n", m.Entry, output.ScoreLabel(score, m.Score))
			}
			return nil
		}

		content, err := similarContent(format, matches)
		if err != nil {
			return err
		}
		return out.Emit(content, target)
	},
}

func similarExt(format output.Format) string {
	if format == output.FormatText {
		return "txt"
	}
	return string(format)
}

func similarContent(format output.Format, matches []similarity.Match) (string, error) {
	if format == output.FormatText {
		lines := make([]string, 0, len(matches))
		for _, m := range matches {
			lines = append(lines, fmt.Sprintf("%s\t%.4f", m.Entry, m.Score))
		}
		return strings.Join(lines, "\n") + "\n", nil
	}
	return output.MarshalFor(format, matches)
}

func init() {
	similarCmd.Flags().Float64VarP(&flagSimThreshold, "threshold", "t", similarity.DefaultThreshold, "minimum similarity (0.0-1.0)")
	similarCmd.Flags().StringVar(&flagSimAlgorithm, "algorithm", "", "similarity metric: levenshtein, jaro-winkler, cosine")
	similarCmd.Flags().BoolVarP(&flagSimJSON, "json", "j", false, "output JSON instead of text")
	similarCmd.Flags().StringVarP(&flagSimOutput, "output", "o", "", "write to custom file")
	similarCmd.Flags().BoolVar(&flagSimStdout, "stdout", false, "print to the terminal instead of a file")

	rootCmd.AddCommand(similarCmd)
}
