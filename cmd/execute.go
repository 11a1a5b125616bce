package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bpineau/dirpush/config"
	"github.com/bpineau/dirpush/pkg/log"
	"github.com/bpineau/dirpush/pkg/remote"
	"github.com/bpineau/dirpush/pkg/run"
)

const appName = "dirpush"

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   appName + " [local-dir] [git-url]",
		Short: "Publish a local directory to a remote git repository",
		Long: "Publish a local directory to a remote git repository.\n\n" +
			"The directory is made a git repository if needed, its remote is configured,\n" +
			"then its whole content is pushed as a single commit on top of the remote branch.",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		PreRun:       bindConf,
		RunE:         runE,
	}
)

func runE(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		localDir = args[0]
	}
	if len(args) > 1 {
		gitURL = args[1]
	}

	logger, err := log.New(logLevel, logServer, logOutput)
	if err != nil {
		return err
	}

	conf := &config.DpConfig{
		DryRun:     dryRun,
		Logger:     logger,
		LocalDir:   localDir,
		Remote:     remote.Remote{Name: remoteName, URL: gitURL, Branch: branch},
		PushBranch: pushBranch,
		Author:     author,
		Email:      email,
		Timeout:    time.Duration(timeout) * time.Second,
		Interval:   time.Duration(interval) * time.Second,
		HealthPort: healthP,
	}

	err = conf.Init()
	if err != nil {
		return fmt.Errorf("Failed to initialize the configuration: %v", err)
	}

	return run.Run(context.Background(), conf)
}

// Execute adds all child commands to the root command and sets their flags.
func Execute() error {
	return RootCmd.Execute()
}
