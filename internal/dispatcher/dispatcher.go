// Package dispatcher implements the proxy's concurrent request pipeline: an
// accept task that receives client datagrams, a per-request task per
// datagram that resolves cache-or-upstream, a janitor task that periodically
// ages the cache, and a shutdown task that coordinates graceful termination.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blazskufca/dnsproxy/internal/cache"
	"github.com/blazskufca/dnsproxy/internal/upstream"
	"github.com/blazskufca/dnsproxy/internal/wire"
)

// State is the dispatcher's process-wide lifecycle state.
type State int32

const (
	Starting State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Defaults for the two timing knobs the dispatcher depends on; both are
// exposed as flags in internal/config for deployment tuning.
const (
	DefaultAcceptTimeout   = 200 * time.Millisecond
	DefaultJanitorInterval = 60 * time.Second
)

// MinJanitorInterval is the smallest interval the janitor task will actually
// age the cache by. Cache.Age takes a whole-second delta; an interval below
// one second would round down to zero seconds every tick and silently stop
// aging, so any configured interval below this floor is clamped up to it.
const MinJanitorInterval = time.Second

// DefaultWorkerPoolSize bounds how many per-request tasks may run
// concurrently. It is the accept task's only form of backpressure: once the
// pool is full, the accept task blocks posting new work, and incoming
// datagrams queue in the kernel's receive buffer instead of spawning
// unbounded goroutines.
const DefaultWorkerPoolSize = 256

// Dispatcher owns the listen socket and coordinates the accept, per-request,
// janitor, and shutdown tasks against it.
type Dispatcher struct {
	conn     *net.UDPConn
	upstream *upstream.Client
	cache    *cache.Cache
	logger   *slog.Logger

	acceptTimeout   time.Duration
	janitorInterval time.Duration
	workerPoolSize  int

	state atomic.Int32

	writeMu sync.Mutex // serializes sends on the shared listen socket

	janitorWake *wakeCond
}

// Option customizes a Dispatcher constructed by New.
type Option func(*Dispatcher)

// WithAcceptTimeout overrides the accept task's receive timeout.
func WithAcceptTimeout(d time.Duration) Option {
	return func(p *Dispatcher) { p.acceptTimeout = d }
}

// WithJanitorInterval overrides how often the janitor task ages the cache.
// Values below MinJanitorInterval are clamped up to it.
func WithJanitorInterval(d time.Duration) Option {
	return func(p *Dispatcher) { p.janitorInterval = d }
}

// WithWorkerPoolSize overrides the maximum number of concurrently running
// per-request tasks.
func WithWorkerPoolSize(n int) Option {
	return func(p *Dispatcher) { p.workerPoolSize = n }
}

// New builds a Dispatcher around an already-bound listen socket, an upstream
// client, and a cache. conn, client, and c must all be non-nil.
func New(conn *net.UDPConn, client *upstream.Client, c *cache.Cache, logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := &Dispatcher{
		conn:            conn,
		upstream:        client,
		cache:           c,
		logger:          logger,
		acceptTimeout:   DefaultAcceptTimeout,
		janitorInterval: DefaultJanitorInterval,
		workerPoolSize:  DefaultWorkerPoolSize,
		janitorWake:     newWakeCond(),
	}
	d.state.Store(int32(Starting))

	for _, opt := range opts {
		opt(d)
	}

	if d.janitorInterval < MinJanitorInterval {
		d.logger.Warn("janitor interval below minimum, clamping",
			slog.Duration("requested", d.janitorInterval), slog.Duration("floor", MinJanitorInterval))
		d.janitorInterval = MinJanitorInterval
	}
	if d.workerPoolSize <= 0 {
		d.workerPoolSize = DefaultWorkerPoolSize
	}

	return d
}

// State reports the dispatcher's current lifecycle state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Run starts the accept, janitor, and shutdown tasks and blocks until all
// three, and every in-flight per-request task they spawned, have finished.
// ctx's cancellation is the external shutdown signal; Run returns the first
// error any supervised task reports, or nil on a clean shutdown.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.state.Store(int32(Running))
	d.logger.Info("dispatcher running", slog.Any("listen", d.conn.LocalAddr()))

	var g errgroup.Group
	var workers errgroup.Group
	workers.SetLimit(d.workerPoolSize)

	g.Go(func() error { return d.acceptTask(ctx, &workers) })
	g.Go(func() error { return d.janitorTask() })
	g.Go(func() error { return d.shutdownTask(ctx) })

	err := g.Wait()
	workers.Wait()

	d.state.Store(int32(Stopped))
	d.logger.Info("dispatcher stopped")
	return err
}

// acceptTask loops while the dispatcher is running, receiving one datagram
// at a time with a short read deadline so shutdown is observed promptly. A
// receive timeout is not an error; it simply loops back around. Any other
// receive error is logged and the loop continues, except the listen socket
// having been closed, which is the expected outcome of shutdown and quietly
// ends the task.
//
// Each datagram's handling is posted into workers, a bounded errgroup.Group:
// once workerPoolSize tasks are in flight, posting new work blocks the
// accept loop until a slot frees, rather than spawning an unbounded number
// of goroutines under a traffic burst.
func (d *Dispatcher) acceptTask(ctx context.Context, workers *errgroup.Group) error {
	buf := make([]byte, upstream.MaxDatagramSize)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := d.conn.SetReadDeadline(time.Now().Add(d.acceptTimeout)); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: set read deadline: %w", err)
		}

		n, addr, err := d.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				d.logger.Debug("accept: stopping", slog.Any("reason", ErrSocketClosed))
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			d.logger.Error("accept: receive failed", slog.Any("error", err))
			continue
		}

		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		clientAddr := *addr

		workers.Go(func() error {
			d.handleRequest(datagram, &clientAddr)
			return nil
		})
	}
}

// handleRequest resolves a single client datagram by cache lookup or
// upstream forwarding and replies to the client. Any codec or network
// failure is logged and the request is silently dropped - DNS clients are
// expected to retry, so no synthesized error reply is sent.
func (d *Dispatcher) handleRequest(datagram []byte, addr *net.UDPAddr) {
	msg, err := wire.Decode(datagram)
	if err != nil {
		d.logger.Error("request decode failed", slog.Any("from", addr), slog.Any("error", err))
		return
	}

	if len(msg.Questions) == 0 {
		d.logger.Debug("request dropped", slog.Any("from", addr), slog.Any("reason", wire.ErrNoQuestion))
		return
	}

	question := msg.Questions[0]
	clientID := msg.Header.MessageID()

	if cached, ok := d.cache.Get(question.Name); ok {
		cached.Header.SetMessageID(clientID)
		reply, err := wire.Encode(cached)
		if err != nil {
			d.logger.Error("cache hit encode failed", slog.Any("error", err))
			return
		}
		d.send(reply, addr)
		d.logger.Debug("cache hit", slog.String("question", wire.Stringify(question.Name)), slog.Any("from", addr))
		return
	}

	reply, err := d.upstream.Exchange(datagram)
	if err != nil {
		d.logger.Error("upstream exchange failed",
			slog.String("question", wire.Stringify(question.Name)), slog.Any("error", err))
		return
	}
	d.send(reply, addr)

	decoded, err := wire.Decode(reply)
	if err != nil {
		d.logger.Error("upstream reply decode failed", slog.Any("error", err))
		return
	}
	d.cache.Add(question.Name, decoded)
	d.logger.Debug("cache miss populated", slog.String("question", wire.Stringify(question.Name)))
}

// send writes data to addr on the shared listen socket. Writes are
// serialized with writeMu: concurrent sends on one UDP socket up to a single
// datagram are safe on the platforms this proxy targets, but the dispatcher
// does not rely on that guarantee.
func (d *Dispatcher) send(data []byte, addr *net.UDPAddr) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if _, err := d.conn.WriteToUDP(data, addr); err != nil {
		d.logger.Error("send failed", slog.Any("to", addr), slog.Any("error", err))
	}
}

// janitorTask ages the cache every janitorInterval, waking early and
// permanently once the shutdown task signals it. janitorInterval is always
// at least MinJanitorInterval (enforced in New), so rounding it to whole
// seconds never truncates to a zero delta - Cache.Age(0) would otherwise
// silently stop aging forever.
func (d *Dispatcher) janitorTask() error {
	delta := uint32(d.janitorInterval.Round(time.Second) / time.Second)
	for {
		if woken := d.janitorWake.wait(d.janitorInterval); woken {
			d.logger.Debug("janitor: woke for shutdown")
			return nil
		}
		d.cache.Age(delta)
	}
}

// shutdownTask waits for ctx to be canceled (the external shutdown signal),
// then transitions to Stopping, closes the listen socket so the accept task
// unblocks, and wakes the janitor so it exits promptly too.
func (d *Dispatcher) shutdownTask(ctx context.Context) error {
	<-ctx.Done()

	d.state.Store(int32(Stopping))
	d.logger.Info("shutdown signal received, stopping")

	if err := d.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		d.logger.Error("close listen socket", slog.Any("error", err))
	}
	d.janitorWake.signal()

	return nil
}
