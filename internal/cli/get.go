package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scheckbl/scheckbl-cli/internal/dataset"
	"github.com/scheckbl/scheckbl-cli/internal/output"
)

var (
	flagGetFilename string
	flagGetRegex    string
	flagGetOutput   string
	flagGetStdout   bool
)

var getCmd = &cobra.Command{
	Use:   "get <type_name> <category>",
	Short: "Retrieve a full blocklist",
	Long: `Retrieve all entries from a blocklist and write them to a file.

Without -o/--output the list is written to an auto-named file in the current
directory (<type>_<category>_get_<date>.txt). Use --stdout to print to the
terminal instead. The two flags are mutually exclusive.

Examples:
  scheckbl get phrases vulgarisms
  scheckbl get phrases vulgarisms --stdout
  scheckbl get urls nsfw -r '\.example$' -o nsfw.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, category := args[0], args[1]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := openStore(cfg)

		var ds dataset.Dataset
		if flagGetFilename != "" {
			ds, err = store.LoadFile(typeName, category, flagGetFilename)
		} else {
			ds, err = store.Load(typeName, category)
		}
		if err != nil {
			return err
		}

		entries := ds.Entries
		if flagGetRegex != "" {
			re, err := regexp.Compile(flagGetRegex)
			if err != nil {
				return fmt.Errorf("invalid regex %q: %w", flagGetRegex, err)
			}
			var filtered []string
			for _, e := range entries {
				if re.MatchString(e) {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}

		format := formatFor(cfg)
		ext := "txt"
		var content string
		if format == output.FormatText {
			content = strings.Join(entries, "\n") + "\n"
		} else {
			ext = string(format)
			content, err = output.MarshalFor(format, map[string]any{
				"type":     typeName,
				"category": category,
				"entries":  entries,
			})
			if err != nil {
				return err
			}
		}

		target, err := output.ResolveTarget(flagGetOutput, flagGetStdout,
			output.AutoFilename(ext, typeName, category, "get"))
		if err != nil {
			return err
		}

		return output.New(format).Emit(content, target)
	},
}

func init() {
	getCmd.Flags().StringVarP(&flagGetFilename, "filename", "f", "", "specific dataset file within the category")
	getCmd.Flags().StringVarP(&flagGetRegex, "regex", "r", "", "filter entries by regex")
	getCmd.Flags().StringVarP(&flagGetOutput, "output", "o", "", "write to custom file")
	getCmd.Flags().BoolVar(&flagGetStdout, "stdout", false, "print to the terminal instead of a file")

	rootCmd.AddCommand(getCmd)
}
