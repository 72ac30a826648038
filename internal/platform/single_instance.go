package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateCommand = "activate"

// InstanceGuard holds the single-instance lock. A second launch connects to
// the guard and asks the running instance to bring its timer window forward.
type InstanceGuard struct {
	listener net.Listener
	logger   *zap.Logger

	mu         sync.Mutex
	onActivate func()
	done       chan struct{}
}

// AcquireSingleInstance binds a localhost port derived from appName. When the
// port is taken the running instance is told to activate and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string, logger *zap.Logger) (*InstanceGuard, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := notifyRunning(address); notifyErr != nil {
			logger.Warn("notify running instance", zap.Error(notifyErr))
		}
		return nil, ErrAlreadyRunning
	}

	guard := &InstanceGuard{listener: listener, logger: logger, done: make(chan struct{})}
	go guard.serve()
	return guard, nil
}

// OnActivate sets the handler run when another launch is attempted.
func (guard *InstanceGuard) OnActivate(fn func()) {
	guard.mu.Lock()
	guard.onActivate = fn
	guard.mu.Unlock()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

func (guard *InstanceGuard) serve() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		guard.handle(conn)
	}
}

func (guard *InstanceGuard) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		guard.logger.Debug("instance handshake failed", zap.Error(err))
		return
	}
	if strings.TrimSpace(line) != activateCommand {
		return
	}

	guard.mu.Lock()
	fn := guard.onActivate
	guard.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func notifyRunning(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return fmt.Errorf("dial instance: %w", err)
	}
	defer conn.Close()
	_, err = fmt.Fprintln(conn, activateCommand)
	return err
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
