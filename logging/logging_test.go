package logging

import (
	"os"
	"path"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetConsole(t *testing.T) {
	f, err := os.Create(path.Join(t.TempDir(), "test.out"))
	if err != nil {
		t.Fatal(err)
	}
	logFile = f
	defer func() {
		logFile = nil
		_ = f.Close()
		logrus.SetOutput(os.Stderr)
	}()
	SetConsole(false)
	if logrus.StandardLogger().Out != f {
		t.Fatal("file only output not set")
	}
	logrus.Info("file only")
	SetConsole(true)
	if logrus.StandardLogger().Out == f {
		t.Fatal("console output not restored")
	}
	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("log file not written")
	}
}
