package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"quantcost/internal/domain"
	"quantcost/internal/event"
	"quantcost/internal/infra"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second

	// DefaultDepth caps the levels kept per side of a snapshot.
	DefaultDepth = 50

	resultBuffer = 64
)

// Ingestor owns one logical connection to the order-book feed. Decoding
// happens off the read loop, one goroutine per message, so a slow parse
// never blocks the socket; a resequencer applies decoded snapshots to
// the engine inbox strictly in receipt order. There is no implicit
// reconnect: a dropped connection closes Done() and the caller decides.
type Ingestor struct {
	inbox chan<- event.Event
	depth int

	conn      *websocket.Conn
	mu        sync.RWMutex
	connected bool

	done chan struct{}
	wg   sync.WaitGroup
}

var _ domain.StreamWorker = (*Ingestor)(nil)

// decoded is one message after background decode, tagged with the
// sequence assigned at receipt time.
type decoded struct {
	seq  uint64
	snap domain.OrderbookSnapshot
	err  *domain.FeedError
}

// New creates an ingestor publishing to the given inbox. depth <= 0
// selects DefaultDepth.
func New(inbox chan<- event.Event, depth int) *Ingestor {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Ingestor{inbox: inbox, depth: depth}
}

// Connect dials the feed endpoint and starts the read pipeline.
func (i *Ingestor) Connect(ctx context.Context, url string) error {
	i.mu.Lock()
	if i.connected {
		i.mu.Unlock()
		return fmt.Errorf("connect: already connected")
	}
	i.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, http.Header{})
	if err != nil {
		return domain.NewNetworkError("dial", err)
	}

	i.mu.Lock()
	i.conn = conn
	i.connected = true
	i.done = make(chan struct{})
	i.mu.Unlock()

	results := make(chan decoded, resultBuffer)

	i.wg.Add(2)
	go i.readLoop(ctx, conn, results)
	go i.resequence(results)

	slog.Info("feed connected", slog.String("url", url))
	infra.GlobalMetrics.SetConnected(true)
	return nil
}

// Done returns a channel closed when the current connection's pipeline
// has fully drained. Reconnection is the caller's explicit decision.
func (i *Ingestor) Done() <-chan struct{} {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.done
}

// IsConnected reports whether the socket is currently open.
func (i *Ingestor) IsConnected() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.connected
}

// Disconnect closes the connection and waits for the pipeline to drain.
func (i *Ingestor) Disconnect() {
	i.closeConnection()
	i.wg.Wait()
}

// readLoop assigns each raw message its receipt-order sequence and hands
// it to a background decode goroutine. The sequence is the ordering
// token: decodes may finish in any order, the resequencer puts them back.
func (i *Ingestor) readLoop(ctx context.Context, conn *websocket.Conn, results chan<- decoded) {
	defer i.wg.Done()

	var decodeWG sync.WaitGroup
	var seq uint64

	for {
		select {
		case <-ctx.Done():
			i.closeConnection()
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			i.closeConnection()
			if ctx.Err() == nil {
				i.raiseError(domain.NewNetworkError("read", err))
			}
			break
		}

		seq++
		infra.GlobalMetrics.RecordMessageReceived()

		decodeWG.Add(1)
		go func(seq uint64, payload []byte) {
			defer decodeWG.Done()
			snap, ferr := parseSnapshot(payload, i.depth)
			results <- decoded{seq: seq, snap: snap, err: ferr}
		}(seq, msg)
	}

	// Let in-flight decodes land before the resequencer shuts down.
	decodeWG.Wait()
	close(results)
}

// resequence applies decode results to the engine inbox strictly in
// receipt order, buffering the ones that finished early.
func (i *Ingestor) resequence(results <-chan decoded) {
	defer i.wg.Done()

	pending := make(map[uint64]decoded)
	next := uint64(1)

	for d := range results {
		pending[d.seq] = d
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			i.deliver(ready)
			next++
		}
	}

	i.mu.Lock()
	done := i.done
	i.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (i *Ingestor) deliver(d decoded) {
	if d.err != nil {
		infra.GlobalMetrics.RecordDecodeError()
		i.raiseError(d.err)
		return
	}

	ev := event.AcquireBookUpdateEvent()
	ev.Seq = d.seq
	ev.Ts = time.Now().UnixMilli()
	ev.Snapshot = d.snap

	select {
	case i.inbox <- ev:
	default: // inbox full: drop the whole message, order stays intact
		event.ReleaseBookUpdateEvent(ev)
		infra.GlobalMetrics.RecordMessageDropped()
	}
}

func (i *Ingestor) raiseError(err error) {
	ev := &event.FeedErrorEvent{
		BaseEvent: event.BaseEvent{Ts: time.Now().UnixMilli()},
		Err:       err,
	}
	select {
	case i.inbox <- ev:
	default:
		infra.GlobalMetrics.RecordMessageDropped()
	}
}

func (i *Ingestor) closeConnection() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.conn != nil {
		i.conn.Close()
		i.conn = nil
	}
	if i.connected {
		i.connected = false
		infra.GlobalMetrics.SetConnected(false)
	}
}
