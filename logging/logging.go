package logging

import (
	"io"
	"os"
	"path"

	"github.com/fernandosanchezjr/gocpuminer/utils"
	"github.com/sirupsen/logrus"
)

const LogPath = "logs"

var logFile *os.File

func getLogFile(name string) *os.File {
	logFolder := utils.GetSubFolder(LogPath)
	f, err := os.OpenFile(path.Join(logFolder, name+".out"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logrus.Fatal("Error opening log file:", err)
		return nil
	} else {
		return f
	}
}

func exitHandler() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// SetupLogger logs to logs/<name>.out in the home folder, and to stdout when console is set.
func SetupLogger(name string, console bool) {
	logrus.RegisterExitHandler(exitHandler)
	logrus.SetLevel(logrus.DebugLevel)
	logFile = getLogFile(name)
	SetConsole(console)
}

// SetConsole turns the stdout copy of the log on or off. The log file is always written.
func SetConsole(console bool) {
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: console})
	if logFile == nil {
		return
	}
	if console {
		logrus.SetOutput(io.MultiWriter(logFile, os.Stdout))
	} else {
		logrus.SetOutput(logFile)
	}
}
