// Package log initialize and configure a logrus logger.
package log

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	outputStdout = "stdout"
	outputStderr = "stderr"
	outputTest   = "test"
	outputSyslog = "syslog"
	outputFile   = "file"
)

// New initialize logrus and return a new logger. logTarget is the syslog
// server address for the syslog output, or the file path for the file output.
func New(logLevel string, logTarget string, logOutput string) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	output, hook, err := getOutput(logTarget, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to setup %s log output: %v", logOutput, err)
	}

	formatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}

	log := &logrus.Logger{
		Out:       output,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}

	if hook != nil {
		log.Hooks.Add(hook)
	}

	return log, nil
}
