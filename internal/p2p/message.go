// Package p2p implements the slice of the bitcoin wire protocol the
// handshake probe needs: message framing plus the version/verack exchange.
package p2p

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

// Wire magic per network, little-endian on the wire.
const (
	MagicMainnet  uint32 = 0xD9B4BEF9
	MagicTestnet3 uint32 = 0x0709110B
	MagicSignet   uint32 = 0x40CF030A
	MagicRegtest  uint32 = 0xDAB5BFFA
)

// Commands exchanged during the handshake.
const (
	CmdVersion = "version"
	CmdVerAck  = "verack"
)

const (
	headerSize   = 24
	commandSize  = 12
	checksumSize = 4

	// maxPayloadSize bounds how much a single message may announce before
	// the reader allocates for it.
	maxPayloadSize = 4 * 1024 * 1024
)

// MagicFor maps a network to its wire magic.
func MagicFor(network model.Network) (uint32, error) {
	switch network {
	case model.Mainnet:
		return MagicMainnet, nil
	case model.Testnet3:
		return MagicTestnet3, nil
	case model.Signet:
		return MagicSignet, nil
	case model.Regtest:
		return MagicRegtest, nil
	default:
		return 0, fmt.Errorf("no wire magic for network %q", network)
	}
}

// Envelope is one framed wire message: magic, a NUL-padded command and a
// checksummed payload.
type Envelope struct {
	Magic   uint32
	Command string
	Payload []byte
}

// Encode serializes the envelope into the 24-byte header followed by the
// payload.
func (e *Envelope) Encode() ([]byte, error) {
	if len(e.Command) > commandSize {
		return nil, fmt.Errorf("command %q longer than %d bytes", e.Command, commandSize)
	}
	var command [commandSize]byte
	copy(command[:], e.Command)

	buf := make([]byte, 0, headerSize+len(e.Payload))
	buf = binary.LittleEndian.AppendUint32(buf, e.Magic)
	buf = append(buf, command[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.Payload)))
	buf = append(buf, checksum(e.Payload)...)
	buf = append(buf, e.Payload...)
	return buf, nil
}

// ReadEnvelope reads one complete message from r, verifying magic, announced
// length and checksum.
func ReadEnvelope(r io.Reader, magic uint32) (*Envelope, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read message header: %w", err)
	}
	got := binary.LittleEndian.Uint32(header[0:4])
	if got != magic {
		return nil, fmt.Errorf("unexpected network magic 0x%08x, want 0x%08x", got, magic)
	}
	command := string(bytes.TrimRight(header[4:16], "\x00"))
	length := binary.LittleEndian.Uint32(header[16:20])
	if length > maxPayloadSize {
		return nil, fmt.Errorf("%q announces %d byte payload, limit is %d", command, length, maxPayloadSize)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read %q payload: %w", command, err)
	}
	if !bytes.Equal(checksum(payload), header[20:24]) {
		return nil, fmt.Errorf("%q payload checksum mismatch", command)
	}
	return &Envelope{Magic: got, Command: command, Payload: payload}, nil
}

// checksum is the first four bytes of the payload's double SHA-256.
func checksum(payload []byte) []byte {
	sum := chainhash.DoubleHashB(payload)
	return sum[:checksumSize]
}
