package cmd

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"
)

// most of cli binding code is executed through the magical init() mecanism
func TestRootCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "dirpush-cmd")
	if err != nil {
		t.Fatal("failed to create a temp dir for tests")
	}
	defer os.RemoveAll(dir)

	RootCmd.SetOutput(new(bytes.Buffer))

	RootCmd.SetArgs([]string{
		"--config",
		"/dev/null",
		"--dry-run",
		"--log-output",
		"test",
		"--local-dir",
		dir,
	})
	if err := Execute(); err == nil {
		t.Error("Execute() should fail without a git url")
	}

	RootCmd.SetArgs([]string{
		"--config",
		"/dev/null",
		"--dry-run",
		"--log-level",
		"warning",
		"--log-output",
		"test",
		"--remote-name",
		"upstream",
		"--branch",
		"main",
		"--timeout",
		"10",
		dir,
		"https://example.test/repo.git",
	})
	if err := Execute(); err != nil {
		t.Errorf("Failed to execute the main command: %+v", err)
	}

	if localDir != dir || gitURL != "https://example.test/repo.git" {
		t.Errorf("positional arguments should set the directory and url (%s, %s)", localDir, gitURL)
	}

	RootCmd.SetArgs([]string{
		"--dry-run",
		"--log-output",
		"test",
		"--config",
	})
	if err := Execute(); err == nil {
		t.Error("Execute() should fail with missing flags arguments")
	}

	RootCmd.SetArgs([]string{"--log-output", "test", "a", "b", "c"})
	if err := Execute(); err == nil {
		t.Error("Execute() should fail with too many arguments")
	}
}

func TestVersion(t *testing.T) {
	out := new(bytes.Buffer)
	RootCmd.SetOutput(out)
	RootCmd.SetArgs([]string{"version"})
	if err := RootCmd.Execute(); err != nil {
		t.Errorf("version subcommand shouldn't fail: %+v", err)
	}

	if !strings.Contains(out.String(), appName+" version "+version) {
		t.Errorf("unexpected version output: %s", out.String())
	}
}
