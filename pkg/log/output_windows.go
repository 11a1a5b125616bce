//go:build windows
// +build windows

package log

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
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
		return nil, nil, fmt.Errorf("Syslog output isn't supported on Windows")
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
