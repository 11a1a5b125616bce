package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	dryRun     bool
	logLevel   string
	logOutput  string
	logServer  string
	localDir   string
	gitURL     string
	remoteName string
	branch     string
	pushBranch string
	author     string
	email      string
	timeout    int
	interval   int
	healthP    int
)

func bindPFlag(key string, cmd string) {
	if err := viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(cmd)); err != nil {
		log.Fatal("Failed to bind cli argument:", err)
	}
}

func init() {
	cobra.OnInitialize(loadConfigFile)
	RootCmd.AddCommand(versionCmd)

	defaultCfg := "/etc/" + appName + "/" + appName + ".yaml"
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultCfg, "Configuration file")

	RootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "Dry-run mode: don't run any git command")
	bindPFlag("dry-run", "dry-run")

	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "info", "Log level")
	bindPFlag("log-level", "log-level")

	RootCmd.PersistentFlags().StringVarP(&logOutput, "log-output", "o", "stdout", "Log output (stdout, stderr, syslog or file)")
	bindPFlag("log-output", "log-output")

	RootCmd.PersistentFlags().StringVarP(&logServer, "log-server", "r", "", "Log server (if using syslog), or log file path (if using file)")
	bindPFlag("log-server", "log-server")

	RootCmd.PersistentFlags().StringVarP(&localDir, "local-dir", "e", ".", "Directory to publish")
	bindPFlag("local-dir", "local-dir")

	RootCmd.PersistentFlags().StringVarP(&gitURL, "git-url", "g", "", "Git repository URL")
	bindPFlag("git-url", "git-url")

	RootCmd.PersistentFlags().StringVarP(&remoteName, "remote-name", "n", "origin", "Git remote name")
	bindPFlag("remote-name", "remote-name")

	RootCmd.PersistentFlags().StringVarP(&branch, "branch", "b", "master", "Remote branch to publish on top of")
	bindPFlag("branch", "branch")

	RootCmd.PersistentFlags().StringVar(&pushBranch, "push-branch", "master", "Local branch pushed to the remote")
	bindPFlag("push-branch", "push-branch")

	RootCmd.PersistentFlags().StringVar(&author, "author", "", "Commit author name (defaults to git configuration)")
	bindPFlag("author", "author")

	RootCmd.PersistentFlags().StringVar(&email, "email", "", "Commit author email (defaults to git configuration)")
	bindPFlag("email", "email")

	RootCmd.PersistentFlags().IntVarP(&timeout, "timeout", "t", 600, "Max duration of a git command in seconds (0 to disable)")
	bindPFlag("timeout", "timeout")

	RootCmd.PersistentFlags().IntVarP(&interval, "interval", "i", 0, "Republish changes every interval seconds (0 to publish once and exit)")
	bindPFlag("interval", "interval")

	RootCmd.PersistentFlags().IntVarP(&healthP, "healthcheck-port", "p", 0, "Port for answering healthchecks on /health url, when using an interval")
	bindPFlag("healthcheck-port", "healthcheck-port")
}

// for whatever the reason, viper don't auto bind values from config file so we have to tell him
func bindConf(cmd *cobra.Command, args []string) {
	dryRun = viper.GetBool("dry-run")
	logLevel = viper.GetString("log-level")
	logOutput = viper.GetString("log-output")
	logServer = viper.GetString("log-server")
	localDir = viper.GetString("local-dir")
	gitURL = viper.GetString("git-url")
	remoteName = viper.GetString("remote-name")
	branch = viper.GetString("branch")
	pushBranch = viper.GetString("push-branch")
	author = viper.GetString("author")
	email = viper.GetString("email")
	timeout = viper.GetInt("timeout")
	interval = viper.GetInt("interval")
	healthP = viper.GetInt("healthcheck-port")
}
