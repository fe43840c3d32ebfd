package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/testforge/internal/storage"
	"github.com/spf13/cobra"
)

var historyLimitFlag int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [dir]",
	Short: "List recent generate runs from the ledger",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "l", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dbPath := p.path(p.cfg.Storage.Path)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No runs recorded for this project")
		return nil
	}

	ledger, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer ledger.Close()

	runs, err := ledger.Runs(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded for this project")
		return nil
	}

	stored, err := ledger.CountGenerations()
	if err != nil {
		return err
	}

	for _, r := range runs {
		status := "interrupted"
		if r.FinishedAt != nil {
			status = fmt.Sprintf("%.1fs", r.FinishedAt.Sub(r.StartedAt).Seconds())
		}
		fmt.Fprintf(out, "%s  %s  %-20s %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.ID[:8], r.Model, status)
		fmt.Fprintf(out, "    files %d: skipped %d, no methods %d, failed %d; tests %d (%d from cache)\n",
			r.Stats.FilesTotal, r.Stats.FilesSkipped, r.Stats.FilesNoUnits, r.Stats.FilesFailed,
			r.Stats.UnitsGenerated, r.Stats.CacheHits)
	}
	fmt.Fprintf(out, "\n%s stored answers\n", formatNumber(stored))
	return nil
}
