//go:build !windows
// +build !windows

package log

import (
	"fmt"
	"io"
	"io/ioutil"
	"log/syslog"
	"os"

	"github.com/sirupsen/logrus"
	ls "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/sirupsen/logrus/hooks/test"
)

func getOutput(logTarget string, logOutput string) (io.Writer, logrus.Hook, error) {
	var output io.Writer
	var hook logrus.Hook
	var err error

	switch logOutput {
	case outputStdout:
		output = os.Stdout
	case outputStderr:
		output = os.Stderr
	case outputTest:
		output = ioutil.Discard
		_, hook = test.NewNullLogger()
	case outputSyslog:
		output = ioutil.Discard
		if logTarget == "" {
			return nil, nil, fmt.Errorf("syslog output needs a log server (ie. 127.0.0.1:514)")
		}
		hook, err = ls.NewSyslogHook("udp", logTarget, syslog.LOG_INFO, "dirpush")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to hook syslog output: %v", err)
		}
	case outputFile:
		output, err = fileOutput(logTarget)
		if err != nil {
			return nil, nil, err
		}
	default:
		output = os.Stdout
	}

	return output, hook, nil
}
