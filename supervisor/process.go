package supervisor

import (
	"os"
	"os/exec"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	RestartDelay = 5 * time.Second
	StopTimeout  = 5 * time.Second
)

type CommandFunc func(args ...string) *exec.Cmd

// SelfCommand runs the current executable.
func SelfCommand(args ...string) *exec.Cmd {
	executable, err := os.Executable()
	if err != nil {
		executable = os.Args[0]
	}
	cmd := exec.Command(executable, args...)
	cmd.Stderr = os.Stderr
	return cmd
}

// workerProcess keeps one worker process running, restarting it after RestartDelay when it exits.
type workerProcess struct {
	index        int
	command      CommandFunc
	args         []string
	restartDelay time.Duration
	onExit       func(pid int)
	quit         chan struct{}
	wg           sync.WaitGroup
	mtx          sync.Mutex
	pid          int
	starts       int
}

func newWorkerProcess(index int, command CommandFunc, args []string, restartDelay time.Duration,
	onExit func(pid int)) *workerProcess {
	return &workerProcess{
		index:        index,
		command:      command,
		args:         args,
		restartDelay: restartDelay,
		onExit:       onExit,
		quit:         make(chan struct{}),
	}
}

func (wp *workerProcess) Start() {
	wp.wg.Add(1)
	go wp.loop()
}

func (wp *workerProcess) Stop() {
	close(wp.quit)
	wp.wg.Wait()
}

func (wp *workerProcess) Pid() int {
	wp.mtx.Lock()
	defer wp.mtx.Unlock()
	return wp.pid
}

func (wp *workerProcess) Starts() int {
	wp.mtx.Lock()
	defer wp.mtx.Unlock()
	return wp.starts
}

func (wp *workerProcess) loop() {
	defer wp.wg.Done()
	for {
		if stopped := wp.run(); stopped {
			return
		}
		log.WithFields(log.Fields{
			"worker": wp.index,
			"delay":  wp.restartDelay,
		}).Warn("Restarting worker")
		select {
		case <-wp.quit:
			return
		case <-time.After(wp.restartDelay):
		}
	}
}

// run returns true when the process ended because of Stop.
func (wp *workerProcess) run() bool {
	cmd := wp.command(wp.args...)
	if err := cmd.Start(); err != nil {
		log.WithError(err).WithField("worker", wp.index).Error("Could not start worker")
		return false
	}
	pid := cmd.Process.Pid
	wp.mtx.Lock()
	wp.pid = pid
	wp.starts++
	wp.mtx.Unlock()
	log.WithFields(log.Fields{
		"worker": wp.index,
		"pid":    pid,
	}).Info("Worker started")
	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()
	defer func() {
		if wp.onExit != nil {
			wp.onExit(pid)
		}
	}()
	select {
	case err := <-exited:
		log.WithError(err).WithFields(log.Fields{
			"worker": wp.index,
			"pid":    pid,
		}).Warn("Worker exited")
		return false
	case <-wp.quit:
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-exited:
		case <-time.After(StopTimeout):
			_ = cmd.Process.Kill()
			<-exited
		}
		return true
	}
}
