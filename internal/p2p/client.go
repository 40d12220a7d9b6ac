package p2p

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

// Client performs version/verack handshakes against bitcoin nodes.
type Client struct {
	dialer      net.Dialer
	logger      *zap.Logger
	magic       uint32
	userAgent   string
	startHeight int32
}

// NewClient returns a client speaking the given network's wire magic.
func NewClient(network model.Network, userAgent string, startHeight int32, logger *zap.Logger) (*Client, error) {
	magic, err := MagicFor(network)
	if err != nil {
		return nil, err
	}
	return &Client{
		logger:      logger,
		magic:       magic,
		userAgent:   userAgent,
		startHeight: startHeight,
	}, nil
}

// HandshakeResult describes the peer that completed the exchange. Peer is nil
// when the node acknowledged without sending its own version first.
type HandshakeResult struct {
	Peer    *VersionMessage
	Elapsed time.Duration
}

// Handshake dials addr, sends a version message and drives the exchange until
// the peer's verack arrives. The context deadline bounds the whole exchange.
func (c *Client) Handshake(ctx context.Context, addr string) (*HandshakeResult, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}
	return c.handshake(conn)
}

func (c *Client) handshake(conn net.Conn) (*HandshakeResult, error) {
	started := time.Now()

	local := NewVersionMessage(remoteTCPAddr(conn), c.userAgent, c.startHeight)
	if err := c.send(conn, CmdVersion, local.Encode()); err != nil {
		return nil, err
	}
	c.logger.Debug("sent version message", zap.String("peer", conn.RemoteAddr().String()))

	result := &HandshakeResult{}
	for {
		env, err := ReadEnvelope(conn, c.magic)
		if err != nil {
			return nil, err
		}
		switch env.Command {
		case CmdVersion:
			peer, err := DecodeVersion(env.Payload)
			if err != nil {
				return nil, fmt.Errorf("decode peer version: %w", err)
			}
			result.Peer = peer
			if err := c.send(conn, CmdVerAck, nil); err != nil {
				return nil, err
			}
			c.logger.Debug("received peer version",
				zap.Uint32("protocol", peer.Protocol),
				zap.String("user_agent", peer.UserAgent),
				zap.Int32("start_height", peer.StartHeight))
		case CmdVerAck:
			result.Elapsed = time.Since(started)
			return result, nil
		default:
			c.logger.Debug("ignoring message before verack", zap.String("command", env.Command))
		}
	}
}

func (c *Client) send(conn net.Conn, command string, payload []byte) error {
	frame, err := (&Envelope{Magic: c.magic, Command: command, Payload: payload}).Encode()
	if err != nil {
		return err
	}
	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("send %s: %w", command, err)
	}
	return nil
}

func remoteTCPAddr(conn net.Conn) *net.TCPAddr {
	if tcp, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		return tcp
	}
	return nil
}
