package cli

import (
	"fmt"
	"io"

	"github.com/mvp-joe/testforge/internal/classify"
	"github.com/mvp-joe/testforge/internal/pipeline"
	"github.com/spf13/cobra"
)

var scanUnitsFlag bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Show extracted methods and file classification without generating",
	Long: `Scan discovers Java files, extracts method units and classifies each file
exactly as generate would, but never contacts the model or writes reports.

Classifications:
  none         no methods detected
  skip         large data holder, would be written to the skip log
  single-pass  small data holder, one test class for the whole file
  per-unit     one test per non-trivial method

Examples:
  # Scan the current directory
  testforge scan

  # List every method with its line range
  testforge scan ./src --units
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanUnitsFlag, "units", "u", false, "List each extracted method")
}

func runScan(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args)
	if err != nil {
		return err
	}

	files, err := p.files.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}

	out := cmd.OutOrStdout()
	classifier := classify.NewClassifier(p.cfg.Thresholds())
	kinds := map[classify.Kind]int{}
	units, partial := 0, 0

	for _, path := range files {
		fs, err := pipeline.ScanFile(path, p.cfg.ScanOptions(), classifier)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", p.relative(path), err)
			continue
		}
		kinds[fs.Classification.Kind]++
		units += len(fs.Result.Units)
		partial += len(fs.PartialUnits())
		printFileScan(out, p.relative(path), fs, scanUnitsFlag)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s files, %s methods\n", formatNumber(len(files)), formatNumber(units))
	for _, k := range []classify.Kind{classify.KindPerUnit, classify.KindSinglePass, classify.KindSkip, classify.KindNone} {
		fmt.Fprintf(out, "  %-12s %s\n", k.String()+":", formatNumber(kinds[k]))
	}
	if partial > 0 {
		fmt.Fprintf(out, "  unclosed methods: %s\n", formatNumber(partial))
	}
	return nil
}

func printFileScan(w io.Writer, rel string, fs *pipeline.FileScan, listUnits bool) {
	fc := fs.Classification
	if fc.Kind == classify.KindNone {
		fmt.Fprintf(w, "%-50s %-12s\n", rel, fc.Kind)
		return
	}
	fmt.Fprintf(w, "%-50s %-12s %d methods, %d trivial (%.0f%%)\n",
		rel, fc.Kind, fc.Total, fc.Trivial, fc.Ratio*100)

	if !listUnits {
		return
	}
	for i, u := range fs.Result.Units {
		var marks string
		if fs.Trivial[i] {
			marks += " trivial"
		}
		if u.Partial {
			marks += " unclosed"
		}
		fmt.Fprintf(w, "    #%-3d %-30s lines %d-%d%s\n", u.Ordinal, u.Name, u.Start+1, u.End+1, marks)
	}
}
