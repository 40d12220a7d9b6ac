package p2p

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"github.com/decred/dcrd/crypto/rand"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
)

// ProtocolVersion is the newest protocol revision before BIP324 transport.
const ProtocolVersion = 70015

// serviceNodeNetwork advertises a node able to serve the full chain.
const serviceNodeNetwork = 1

// netAddrSize is a version-message address block: services, IPv6 address,
// big-endian port.
const netAddrSize = 8 + 16 + 2

// VersionMessage is a version handshake payload. Receiver and sender address
// blocks are written on encode and skipped on decode; the probe has no use
// for them.
type VersionMessage struct {
	Protocol    uint32
	Services    uint64
	Timestamp   int64
	Nonce       uint64
	UserAgent   string
	StartHeight int32
	Relay       bool

	RecvIP   net.IP
	RecvPort uint16
}

// NewVersionMessage builds a payload addressed at remote. A nil remote leaves
// the receiver block zeroed, which peers tolerate.
func NewVersionMessage(remote *net.TCPAddr, userAgent string, startHeight int32) *VersionMessage {
	m := &VersionMessage{
		Protocol:    ProtocolVersion,
		Services:    serviceNodeNetwork,
		Timestamp:   time.Now().Unix(),
		Nonce:       rand.Uint64(),
		UserAgent:   userAgent,
		StartHeight: startHeight,
		Relay:       true,
	}
	if remote != nil {
		m.RecvIP = remote.IP
		m.RecvPort = uint16(remote.Port)
	}
	return m
}

// Encode serializes the message in wire order: protocol, services, timestamp,
// receiver, sender, nonce, compact-size user agent, start height, relay flag.
func (m *VersionMessage) Encode() []byte {
	buf := make([]byte, 0, 4+8+8+2*netAddrSize+8+9+len(m.UserAgent)+4+1)
	buf = binary.LittleEndian.AppendUint32(buf, m.Protocol)
	buf = binary.LittleEndian.AppendUint64(buf, m.Services)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.Timestamp))
	buf = appendNetAddr(buf, m.Services, m.RecvIP, m.RecvPort)
	buf = appendNetAddr(buf, 0, nil, 0)
	buf = binary.LittleEndian.AppendUint64(buf, m.Nonce)
	buf = rawtx.AppendCompactSize(buf, uint64(len(m.UserAgent)))
	buf = append(buf, m.UserAgent...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.StartHeight))
	if m.Relay {
		buf = append(buf, 0x01)
	} else {
		buf = append(buf, 0x00)
	}
	return buf
}

// appendNetAddr writes one address block. IPv4 addresses go out in their
// IPv4-mapped IPv6 form.
func appendNetAddr(dst []byte, services uint64, ip net.IP, port uint16) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, services)
	var addr [16]byte
	if ip16 := ip.To16(); ip16 != nil {
		copy(addr[:], ip16)
	}
	dst = append(dst, addr[:]...)
	return binary.BigEndian.AppendUint16(dst, port)
}

// DecodeVersion parses a peer's version payload. The relay flag is optional
// on the wire; everything through start height is required.
func DecodeVersion(payload []byte) (*VersionMessage, error) {
	c := rawtx.NewCursor(payload)

	fixed, err := c.Take(4 + 8 + 8)
	if err != nil {
		return nil, fmt.Errorf("version payload too short: %w", err)
	}
	m := &VersionMessage{
		Protocol:  binary.LittleEndian.Uint32(fixed[0:4]),
		Services:  binary.LittleEndian.Uint64(fixed[4:12]),
		Timestamp: int64(binary.LittleEndian.Uint64(fixed[12:20])),
	}

	if err := c.Skip(2 * netAddrSize); err != nil {
		return nil, fmt.Errorf("version payload missing address blocks: %w", err)
	}

	nonce, err := c.Take(8)
	if err != nil {
		return nil, fmt.Errorf("version payload missing nonce: %w", err)
	}
	m.Nonce = binary.LittleEndian.Uint64(nonce)

	uaLen, err := rawtx.DecodeCompactSize(c)
	if err != nil {
		return nil, fmt.Errorf("version payload user agent length: %w", err)
	}
	if uaLen.Value > uint64(c.Remaining()) {
		return nil, fmt.Errorf("user agent announces %d bytes, %d remain", uaLen.Value, c.Remaining())
	}
	ua, err := c.Take(int(uaLen.Value))
	if err != nil {
		return nil, fmt.Errorf("version payload user agent: %w", err)
	}
	m.UserAgent = string(ua)

	height, err := c.Take(4)
	if err != nil {
		return nil, fmt.Errorf("version payload missing start height: %w", err)
	}
	m.StartHeight = int32(binary.LittleEndian.Uint32(height))

	if c.Remaining() > 0 {
		relay, err := c.Take(1)
		if err != nil {
			return nil, err
		}
		m.Relay = relay[0] != 0x00
	}
	return m, nil
}
