package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"egokit/internal/compile"
	"egokit/internal/policy"
	"egokit/internal/watch"
)

var (
	watchRegistry string
	watchRepo     string
	watchScopes   []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile whenever the registry changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchRegistry, "registry", ".egokit/registry", "policy registry directory")
	watchCmd.Flags().StringVar(&watchRepo, "repo", ".", "target repository root")
	watchCmd.Flags().StringArrayVar(&watchScopes, "scope", nil, "scope chain entry, repeatable")
}

func runWatch(cmd *cobra.Command, args []string) error {
	chain, err := policy.ParseChain(watchScopes)
	if err != nil {
		return err
	}
	recompile := func() {
		res, err := compile.Run(compile.Options{
			RegistryDir: watchRegistry,
			RepoDir:     watchRepo,
			Chain:       chain,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("compilation failed, artifacts untouched", zap.Error(err))
			return
		}
		for _, o := range res.Outcomes {
			fmt.Println(outcomeLine(o))
		}
	}

	// One full pass up front so the artifacts match the registry
	// before the first edit.
	recompile()

	w, err := watch.New(watchRegistry, logger, recompile)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	fmt.Println("watching", watchRegistry, "(ctrl-c to stop)")
	<-sig
	return nil
}
