// Package rawtx decodes serialized Bitcoin transactions and blocks into
// field-addressable values and re-encodes them byte for byte. It validates
// wire-format well-formedness only; script and consensus semantics are out
// of scope.
package rawtx

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Transaction is one wire transaction decoded in a single pass. Values are
// not modified after decode; all length prefixes keep the compact size
// encoding seen on the wire.
type Transaction struct {
	Version     int32
	SegWit      bool
	Flag        byte
	InputCount  CompactSize
	Inputs      []Input
	OutputCount CompactSize
	Outputs     []Output
	// Witness is nil for legacy transactions. When SegWit is set it holds
	// exactly one stack per input, in input order.
	Witness  []WitnessStack
	LockTime uint32
}

// Input references a previous output and carries its signature script.
type Input struct {
	// PrevTxID is kept in wire byte order; chainhash renders the
	// conventional reversed hex form.
	PrevTxID     chainhash.Hash
	PrevVout     uint32
	ScriptSigLen CompactSize
	// ScriptSig is empty, never nil, for inputs with a zero-length script.
	ScriptSig []byte
	Sequence  uint32
}

// Output pairs an amount in satoshis with its locking script.
type Output struct {
	Value       uint64
	PkScriptLen CompactSize
	PkScript    []byte
}

// WitnessStack is the ordered witness data for a single input. A stack with
// zero items is present but empty.
type WitnessStack struct {
	Count CompactSize
	Items []WitnessItem
}

// WitnessItem is one opaque length-prefixed witness element.
type WitnessItem struct {
	Size CompactSize
	Data []byte
}

// HasWitness reports whether the transaction was serialized with the
// marker and flag framing.
func (tx *Transaction) HasWitness() bool {
	return tx.SegWit
}

// SerializeSize reports the full wire size in bytes, including marker, flag
// and witness data when present.
func (tx *Transaction) SerializeSize() int {
	n := tx.BaseSize()
	if tx.SegWit {
		n += markerFlagSize
		for i := range tx.Witness {
			n += tx.Witness[i].wireSize()
		}
	}
	return n
}

// BaseSize reports the wire size without marker, flag and witness data.
func (tx *Transaction) BaseSize() int {
	n := versionSize + lockTimeSize
	n += tx.InputCount.wireWidth()
	for i := range tx.Inputs {
		n += tx.Inputs[i].wireSize()
	}
	n += tx.OutputCount.wireWidth()
	for i := range tx.Outputs {
		n += tx.Outputs[i].wireSize()
	}
	return n
}

func (in *Input) wireSize() int {
	return chainhash.HashSize + prevVoutSize + in.ScriptSigLen.wireWidth() + len(in.ScriptSig) + sequenceSize
}

func (out *Output) wireSize() int {
	return valueSize + out.PkScriptLen.wireWidth() + len(out.PkScript)
}

func (ws *WitnessStack) wireSize() int {
	n := ws.Count.wireWidth()
	for i := range ws.Items {
		n += ws.Items[i].Size.wireWidth() + len(ws.Items[i].Data)
	}
	return n
}
