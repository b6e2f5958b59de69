package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	eligConfig "legalcheck/internal/eligibility/config"
	eligHandler "legalcheck/internal/eligibility/handler"
	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/models"
	eligService "legalcheck/internal/eligibility/service"
	"legalcheck/internal/platform/logger"
	pstrings "legalcheck/pkg/platform/strings"
)

type rootOptions struct {
	rulesFile string
	verbose   bool
}

type evaluateOptions struct {
	snapshot string
	asOf     string
	rules    []string
	json     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "legalcheck",
		Short: "Evaluate residence and naturalisation rules offline",
		Long: `legalcheck runs the AufenthG and StAG rule sets against a YAML snapshot.

Examples:
  legalcheck laws
  legalcheck rules StAG
  legalcheck evaluate StAG --snapshot applicant.yaml --as-of 2026-01-01
  legalcheck evaluate AufenthG --snapshot applicant.yaml --rule "AufenthG:§11:EntryBan" --json`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.rulesFile, "rules", os.Getenv("RULESET_FILE"), "Rule-set YAML (default: embedded rule sets)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log evaluation details to stderr")

	root.AddCommand(newLawsCmd(opts), newRulesCmd(opts), newEvaluateCmd(opts))
	return root
}

func (o *rootOptions) service(stderr io.Writer) (*eligService.Service, error) {
	cat := laws.Default()
	// An empty path falls back to the embedded rule sets.
	ruleSets, err := eligConfig.Load(o.rulesFile, cat)
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return eligService.New(nil, ruleSets, cat, eligService.WithLogger(logger.NewWithWriter(stderr, level)))
}

func newLawsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "laws",
		Short: "List the configured laws",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := root.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tVERSION")
			for _, l := range svc.Laws() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.Title, l.Version)
			}
			return tw.Flush()
		},
	}
}

func newRulesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <law>",
		Short: "List a law's rules in evaluation order; * marks blocking rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := root.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rules, err := svc.Rules(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, " \tRULE\tTITLE")
			for _, r := range rules {
				mark := " "
				if r.Blocking {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", mark, r.RuleID, r.Title)
			}
			return tw.Flush()
		},
	}
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate <law>",
		Short: "Evaluate a YAML snapshot against one law",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := root.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(opts.snapshot)
			if err != nil {
				return err
			}
			if opts.asOf != "" {
				d, err := models.ParseDate(opts.asOf)
				if err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
				snap.AsOf = d.Time()
			}

			var ruleIDs []string
			for _, r := range opts.rules {
				ruleIDs = append(ruleIDs, pstrings.SplitList(r)...)
			}
			report, err := svc.EvaluateSnapshot(cmd.Context(), args[0], snap, pstrings.Dedupe(ruleIDs)...)
			if err != nil {
				return err
			}
			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(eligHandler.NewEvaluationResponse(report))
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&opts.snapshot, "snapshot", "s", "", "Snapshot fixture (YAML)")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "Evaluation date YYYY-MM-DD (overrides the fixture)")
	cmd.Flags().StringArrayVarP(&opts.rules, "rule", "r", nil, "Evaluate only these rule ids (repeatable or comma separated)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the API response JSON")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

// loadSnapshot decodes a fixture; fields it omits keep their defaults.
func loadSnapshot(path string) (*models.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snap := &models.Snapshot{}
	if err := yaml.Unmarshal(raw, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

func printReport(w io.Writer, r eligService.Report) error {
	fmt.Fprintf(w, "%s as of %s: %s", r.LawID, r.AsOf.Format(time.DateOnly), r.State)
	if r.BlockedBy != nil {
		fmt.Fprintf(w, " by %s", r.BlockedBy.ID())
	}
	fmt.Fprintln(w)

	for _, res := range r.Results {
		status := "FAIL"
		if res.Satisfied {
			status = "PASS"
		}
		fmt.Fprintf(w, "  [%s] %s  %s\n", status, res.RuleID, res.Title)
		for _, reason := range res.Reasons {
			fmt.Fprintf(w, "         - %s\n", reason)
		}
	}
	if r.Satisfied() {
		fmt.Fprintln(w, "result: all requirements met")
	} else {
		fmt.Fprintln(w, "result: requirements not met")
	}
	return nil
}
