package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"egokit/internal/imprint"
)

var (
	imprintOut   string
	imprintStore string
)

var imprintCmd = &cobra.Command{
	Use:   "imprint <session.jsonl>...",
	Short: "Mine session logs for recurring corrections and draft policy rules",
	Long: `imprint scans assistant session logs for repeated human corrections
and style remarks, and emits draft rules in the charter schema for
review. Nothing is applied automatically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImprint,
}

func init() {
	imprintCmd.Flags().StringVarP(&imprintOut, "out", "o", "", "write suggestions to this file instead of stdout")
	imprintCmd.Flags().StringVar(&imprintStore, "store", "", "sqlite database tracking suggestions across runs")
}

func runImprint(cmd *cobra.Command, args []string) error {
	var events []imprint.Event
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}
		evs, err := imprint.ParseSession(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		events = append(events, evs...)
	}
	logger.Debug("parsed sessions", zap.Int("files", len(args)), zap.Int("events", len(events)))

	findings := imprint.Detect(events)
	suggestions := imprint.Suggest(findings)
	if len(suggestions) == 0 {
		fmt.Println("no recurring patterns found")
		return nil
	}

	if imprintStore != "" {
		store, err := imprint.OpenStore(imprintStore)
		if err != nil {
			return err
		}
		defer store.Close()
		for _, s := range suggestions {
			if err := store.Record(s); err != nil {
				return err
			}
		}
	}

	out, err := imprint.MarshalSuggestions(suggestions)
	if err != nil {
		return err
	}
	if imprintOut == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(imprintOut, out, 0o644); err != nil {
		return fmt.Errorf("write suggestions: %w", err)
	}
	fmt.Printf("wrote %d suggestions to %s\n", len(suggestions), imprintOut)
	return nil
}
