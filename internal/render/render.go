// Package render formats decoded transactions for terminals and JSON APIs.
// It is a pure presentation layer: values pass through exactly as decoded,
// with fixed-width fields shown as their little-endian wire bytes in hex.
package render

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
	"github.com/goodnatureofminers/txsplit7000-backend/pkg/safe"
)

// Document is the JSON form of a decoded transaction. Component fields keep
// the exact bytes seen on the wire; identifiers use the conventional
// reversed display order.
type Document struct {
	TxID   string `json:"txid"`
	WTxID  string `json:"wtxid,omitempty"`
	Size   int    `json:"size"`
	VSize  int    `json:"vsize"`
	Weight int    `json:"weight"`

	Version     string       `json:"version"`
	Marker      string       `json:"marker,omitempty"`
	Flag        string       `json:"flag,omitempty"`
	InputCount  string       `json:"inputcount"`
	Inputs      []InputDoc   `json:"inputs"`
	OutputCount string       `json:"outputcount"`
	Outputs     []OutputDoc  `json:"outputs"`
	Witness     []WitnessDoc `json:"witness,omitempty"`
	Locktime    string       `json:"locktime"`
}

// InputDoc is one decoded input.
type InputDoc struct {
	TxID          string `json:"txid"`
	Vout          string `json:"vout"`
	ScriptSigSize string `json:"scriptsigsize"`
	ScriptSig     string `json:"scriptsig"`
	Sequence      string `json:"sequence"`
}

// OutputDoc is one decoded output.
type OutputDoc struct {
	Amount           string `json:"amount"`
	ScriptPubKeySize string `json:"scriptpubkeysize"`
	ScriptPubKey     string `json:"scriptpubkey"`
}

// WitnessDoc is the witness stack of one input.
type WitnessDoc struct {
	StackItems string           `json:"stackitems"`
	Items      []WitnessItemDoc `json:"items"`
}

// WitnessItemDoc is one witness stack element.
type WitnessItemDoc struct {
	Size string `json:"size"`
	Item string `json:"item"`
}

// NewDocument maps a decoded transaction onto its JSON document.
func NewDocument(tx *rawtx.Transaction) Document {
	doc := Document{
		TxID:        tx.TxID().String(),
		Size:        tx.SerializeSize(),
		VSize:       tx.VSize(),
		Weight:      tx.Weight(),
		Version:     le32(uint32(tx.Version)),
		InputCount:  hex.EncodeToString(tx.InputCount.Bytes()),
		Inputs:      make([]InputDoc, 0, len(tx.Inputs)),
		OutputCount: hex.EncodeToString(tx.OutputCount.Bytes()),
		Outputs:     make([]OutputDoc, 0, len(tx.Outputs)),
		Locktime:    le32(tx.LockTime),
	}

	if tx.SegWit {
		doc.WTxID = tx.WTxID().String()
		doc.Marker = "00"
		doc.Flag = hex.EncodeToString([]byte{tx.Flag})
	}

	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		doc.Inputs = append(doc.Inputs, InputDoc{
			TxID:          in.PrevTxID.String(),
			Vout:          le32(in.PrevVout),
			ScriptSigSize: hex.EncodeToString(in.ScriptSigLen.Bytes()),
			ScriptSig:     hex.EncodeToString(in.ScriptSig),
			Sequence:      le32(in.Sequence),
		})
	}

	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		doc.Outputs = append(doc.Outputs, OutputDoc{
			Amount:           le64(out.Value),
			ScriptPubKeySize: hex.EncodeToString(out.PkScriptLen.Bytes()),
			ScriptPubKey:     hex.EncodeToString(out.PkScript),
		})
	}

	for i := range tx.Witness {
		ws := &tx.Witness[i]
		wd := WitnessDoc{
			StackItems: hex.EncodeToString(ws.Count.Bytes()),
			Items:      make([]WitnessItemDoc, 0, len(ws.Items)),
		}
		for j := range ws.Items {
			item := &ws.Items[j]
			wd.Items = append(wd.Items, WitnessItemDoc{
				Size: hex.EncodeToString(item.Size.Bytes()),
				Item: hex.EncodeToString(item.Data),
			})
		}
		doc.Witness = append(doc.Witness, wd)
	}

	return doc
}

// Text renders the decoded transaction for a terminal.
func Text(tx *rawtx.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "TXID: %s\n", tx.TxID())
	if tx.SegWit {
		fmt.Fprintf(&b, "WTXID: %s\n", tx.WTxID())
	}
	fmt.Fprintf(&b, "Version: %d\n", tx.Version)
	fmt.Fprintf(&b, "Lock Time: %d\n", tx.LockTime)
	fmt.Fprintf(&b, "Size: %d bytes\n", tx.SerializeSize())
	fmt.Fprintf(&b, "Virtual Size: %d vbytes\n", tx.VSize())
	fmt.Fprintf(&b, "Weight: %d WU\n", tx.Weight())
	b.WriteString("\n")

	fmt.Fprintf(&b, "INPUTS (%d):\n", len(tx.Inputs))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		fmt.Fprintf(&b, "  Input %d:\n", i)
		fmt.Fprintf(&b, "    Previous Output: %s:%d\n", in.PrevTxID.String(), in.PrevVout)
		fmt.Fprintf(&b, "    Script Sig: %s\n", hex.EncodeToString(in.ScriptSig))
		fmt.Fprintf(&b, "    Sequence: 0x%08x\n", in.Sequence)
		if i < len(tx.Witness) && len(tx.Witness[i].Items) > 0 {
			items := tx.Witness[i].Items
			fmt.Fprintf(&b, "    Witness (%d items):\n", len(items))
			for j := range items {
				fmt.Fprintf(&b, "      %d: %s\n", j, hex.EncodeToString(items[j].Data))
			}
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "OUTPUTS (%d):\n", len(tx.Outputs))
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		fmt.Fprintf(&b, "  Output %d:\n", i)
		fmt.Fprintf(&b, "    Value: %s\n", FormatValue(out.Value))
		fmt.Fprintf(&b, "    Script PubKey: %s\n", hex.EncodeToString(out.PkScript))
	}

	return b.String()
}

// HeaderDoc is the JSON form of a decoded block header. Hashes use the
// conventional reversed display order; the remaining fields keep their
// little-endian wire bytes.
type HeaderDoc struct {
	BlockHash  string `json:"blockhash"`
	Version    string `json:"version"`
	PrevBlock  string `json:"prevblock"`
	MerkleRoot string `json:"merkleroot"`
	Timestamp  string `json:"timestamp"`
	Bits       string `json:"bits"`
	Nonce      string `json:"nonce"`
}

// NewHeaderDocument maps a decoded block header onto its JSON document.
func NewHeaderDocument(h *rawtx.BlockHeader) HeaderDoc {
	return HeaderDoc{
		BlockHash:  h.BlockHash().String(),
		Version:    le32(uint32(h.Version)),
		PrevBlock:  h.PrevBlock.String(),
		MerkleRoot: h.MerkleRoot.String(),
		Timestamp:  le32(h.Timestamp),
		Bits:       le32(h.Bits),
		Nonce:      le32(h.Nonce),
	}
}

// HeaderText renders a block header with its recomputed hash.
func HeaderText(label string, h *rawtx.BlockHeader) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", label)
	fmt.Fprintf(&b, "Version: %d\n", h.Version)
	fmt.Fprintf(&b, "Previous Block: %s\n", h.PrevBlock.String())
	fmt.Fprintf(&b, "Merkle Root: %s\n", h.MerkleRoot.String())
	fmt.Fprintf(&b, "Timestamp: %d\n", h.Timestamp)
	fmt.Fprintf(&b, "Bits: 0x%08x\n", h.Bits)
	fmt.Fprintf(&b, "Nonce: %d\n", h.Nonce)
	fmt.Fprintf(&b, "Block Hash: %s\n", h.BlockHash().String())
	return b.String()
}

// FormatValue shows an output value in satoshis with the BTC equivalent.
// Values beyond the satoshi range btcutil can express stay plain.
func FormatValue(v uint64) string {
	sats, err := safe.Int64(v)
	if err != nil {
		return fmt.Sprintf("%d satoshis", v)
	}
	return fmt.Sprintf("%d satoshis (%v BTC)", v, btcutil.Amount(sats).ToBTC())
}

func le32(v uint32) string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return hex.EncodeToString(b[:])
}

func le64(v uint64) string {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
