package cli

import (
	"fmt"
	"io"

	"github.com/mvp-joe/testforge/internal/audit"
	"github.com/spf13/cobra"
)

var auditStrictFlag bool

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit [dir]",
	Short: "Compare extracted methods with a full Java parse",
	Long: `Audit parses every Java file with the tree-sitter Java grammar and compares
its method and constructor declarations with the methods the line-based
extractor found.

Reported per file:
  missed      declarations with a body that no method unit covers
  mismatched  methods whose last line differs from the declaration's
  extra       extracted methods with no declaration behind them
  nested      methods absorbed by an enclosing method (informational)

Examples:
  # Audit the current directory
  testforge audit

  # Fail when any file disagrees (for CI)
  testforge audit --strict
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().BoolVar(&auditStrictFlag, "strict", false, "Exit with an error if any file disagrees")
}

func runAudit(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args)
	if err != nil {
		return err
	}

	files, err := p.files.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}

	out := cmd.OutOrStdout()
	var matched, missed, mismatched, extra, dirty int

	for _, path := range files {
		r, err := audit.AuditFile(path, p.cfg.ScanOptions())
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", p.relative(path), err)
			dirty++
			continue
		}
		matched += len(r.Matched)
		missed += len(r.Missed)
		mismatched += len(r.Mismatched)
		extra += len(r.Extra)

		if !r.Clean() {
			dirty++
			printAuditReport(out, p.relative(path), r)
		} else if verbose {
			fmt.Fprintf(out, "✓ %s (%d methods)\n", p.relative(path), len(r.Matched))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s files audited, %s disagree\n", formatNumber(len(files)), formatNumber(dirty))
	fmt.Fprintf(out, "  matched:    %s\n", formatNumber(matched))
	fmt.Fprintf(out, "  missed:     %s\n", formatNumber(missed))
	fmt.Fprintf(out, "  mismatched: %s\n", formatNumber(mismatched))
	fmt.Fprintf(out, "  extra:      %s\n", formatNumber(extra))

	if auditStrictFlag && dirty > 0 {
		return fmt.Errorf("audit found %d file(s) where extraction disagrees with the parser", dirty)
	}
	return nil
}

func printAuditReport(w io.Writer, rel string, r *audit.Report) {
	fmt.Fprintf(w, "%s\n", rel)
	if r.SyntaxErrors {
		fmt.Fprintln(w, "  parser reported syntax errors")
	}
	for _, s := range r.Missed {
		fmt.Fprintf(w, "  missed      %s %s (line %d)\n", s.Kind, s.Name, s.NameLine+1)
	}
	for _, m := range r.Mismatched {
		fmt.Fprintf(w, "  mismatched  %s ends at line %d, declaration ends at line %d\n",
			m.Unit.Name, m.Unit.End+1, m.Span.End+1)
	}
	for _, u := range r.Extra {
		fmt.Fprintf(w, "  extra       %s (line %d)\n", u.Name, u.Start+1)
	}
	for _, s := range r.Nested {
		fmt.Fprintf(w, "  nested      %s (line %d)\n", s.Name, s.NameLine+1)
	}
}
