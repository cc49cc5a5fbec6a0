package network

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/job"
)

// TCPNetworkLayer is a demo NetworkLayer: plain TCP, 4-byte big-endian
// length-prefixed frames, no TLS and no OPC UA Secure Conversation framing.
// Every frame becomes a KindBinaryMessage job
// carrying the frame's channel id; connection close becomes a
// KindDetachConnection job.
type TCPNetworkLayer struct {
	addr         string
	discoveryUrl string

	logger   zerolog.Logger
	listener net.Listener

	jobs chan job.Job

	mu            sync.Mutex
	conns         map[uint32]net.Conn
	nextChannelId uint32

	wg      sync.WaitGroup
	closing chan struct{}
}

// NewTCPNetworkLayer returns a layer that will listen on addr once Start is
// called, advertising discoveryUrl as its endpoint.
func NewTCPNetworkLayer(addr, discoveryUrl string) *TCPNetworkLayer {
	return &TCPNetworkLayer{
		addr:         addr,
		discoveryUrl: discoveryUrl,
		jobs:         make(chan job.Job, 256),
		conns:        map[uint32]net.Conn{},
		closing:      make(chan struct{}),
	}
}

func (l *TCPNetworkLayer) DiscoveryUrl() string { return l.discoveryUrl }

// Start opens the listener and begins accepting connections in the
// background; each accepted connection gets its own read goroutine.
func (l *TCPNetworkLayer) Start(logger zerolog.Logger) error {
	l.logger = logger.With().Str("network_layer", "tcp").Str("addr", l.addr).Logger()

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("network: listen %s: %w", l.addr, err)
	}
	l.listener = ln
	l.logger.Info().Msg("network layer listening")

	l.wg.Add(1)
	go l.acceptLoop()
	return nil
}

func (l *TCPNetworkLayer) acceptLoop() {
	defer l.wg.Done()
	for {
		conn, err := l.listener.Accept()
		if err != nil {
			select {
			case <-l.closing:
				return
			default:
				l.logger.Warn().Err(err).Msg("accept failed")
				return
			}
		}
		id := atomic.AddUint32(&l.nextChannelId, 1)
		l.mu.Lock()
		l.conns[id] = conn
		l.mu.Unlock()

		l.wg.Add(1)
		go l.readLoop(id, conn)
	}
}

func (l *TCPNetworkLayer) readLoop(channelId uint32, conn net.Conn) {
	defer l.wg.Done()
	defer l.detach(channelId, conn)

	var lenBuf [4]byte
	for {
		if _, err := io.ReadFull(conn, lenBuf[:]); err != nil {
			return
		}
		size := binary.BigEndian.Uint32(lenBuf[:])
		if size > 16*1024*1024 {
			l.logger.Warn().Uint32("channel_id", channelId).Uint32("size", size).Msg("frame too large, dropping connection")
			return
		}
		data := make([]byte, size)
		if _, err := io.ReadFull(conn, data); err != nil {
			return
		}
		select {
		case l.jobs <- job.Job{Kind: job.KindBinaryMessage, ChannelId: channelId, Data: data}:
		case <-l.closing:
			return
		}
	}
}

func (l *TCPNetworkLayer) detach(channelId uint32, conn net.Conn) {
	l.mu.Lock()
	delete(l.conns, channelId)
	l.mu.Unlock()
	_ = conn.Close()
	select {
	case l.jobs <- job.Job{Kind: job.KindDetachConnection, ChannelId: channelId}:
	case <-l.closing:
	}
}

// GetJobs implements NetworkLayer.
func (l *TCPNetworkLayer) GetJobs(out []job.Job, timeoutMicros int64) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}

	n := 0
	deadline := time.After(time.Duration(timeoutMicros) * time.Microsecond)
	for n < len(out) {
		if n == 0 && timeoutMicros > 0 {
			select {
			case j := <-l.jobs:
				out[n] = j
				n++
			case <-deadline:
				return n, nil
			}
			continue
		}
		select {
		case j := <-l.jobs:
			out[n] = j
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

// Stop closes the listener and every open connection, writing a
// KindDetachConnection job into out for each.
func (l *TCPNetworkLayer) Stop(out []job.Job) (int, error) {
	close(l.closing)
	if l.listener != nil {
		_ = l.listener.Close()
	}

	l.mu.Lock()
	conns := make(map[uint32]net.Conn, len(l.conns))
	for id, c := range l.conns {
		conns[id] = c
	}
	l.mu.Unlock()

	n := 0
	for id, c := range conns {
		_ = c.Close()
		if n < len(out) {
			out[n] = job.Job{Kind: job.KindDetachConnection, ChannelId: id}
			n++
		}
	}
	return n, nil
}

// DeleteMembers waits for every background goroutine to exit and drains
// whatever jobs never made it into a GetJobs call.
func (l *TCPNetworkLayer) DeleteMembers() {
	l.wg.Wait()
	for {
		select {
		case <-l.jobs:
		default:
			return
		}
	}
}
