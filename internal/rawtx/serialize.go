package rawtx

import "encoding/binary"

// Serialize re-encodes the transaction with the exact framing seen at decode
// time. For a decoded transaction the result is byte-identical to the input
// buffer, including non-minimal compact size prefixes.
func (tx *Transaction) Serialize() []byte {
	buf := make([]byte, 0, tx.SerializeSize())
	buf = binary.LittleEndian.AppendUint32(buf, uint32(tx.Version))
	if tx.SegWit {
		buf = append(buf, witnessMarker, tx.Flag)
	}
	buf = tx.appendBase(buf)
	if tx.SegWit {
		for i := range tx.Witness {
			buf = tx.Witness[i].append(buf)
		}
	}
	return binary.LittleEndian.AppendUint32(buf, tx.LockTime)
}

// SerializeNoWitness re-encodes the transaction in the legacy format with no
// marker, flag or witness data. Transaction ids are computed over this form.
func (tx *Transaction) SerializeNoWitness() []byte {
	buf := make([]byte, 0, tx.BaseSize())
	buf = binary.LittleEndian.AppendUint32(buf, uint32(tx.Version))
	buf = tx.appendBase(buf)
	return binary.LittleEndian.AppendUint32(buf, tx.LockTime)
}

func (tx *Transaction) appendBase(buf []byte) []byte {
	buf = tx.InputCount.append(buf)
	for i := range tx.Inputs {
		buf = tx.Inputs[i].append(buf)
	}
	buf = tx.OutputCount.append(buf)
	for i := range tx.Outputs {
		buf = tx.Outputs[i].append(buf)
	}
	return buf
}

func (in *Input) append(buf []byte) []byte {
	buf = append(buf, in.PrevTxID[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, in.PrevVout)
	buf = in.ScriptSigLen.append(buf)
	buf = append(buf, in.ScriptSig...)
	return binary.LittleEndian.AppendUint32(buf, in.Sequence)
}

func (out *Output) append(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, out.Value)
	buf = out.PkScriptLen.append(buf)
	return append(buf, out.PkScript...)
}

func (ws *WitnessStack) append(buf []byte) []byte {
	buf = ws.Count.append(buf)
	for i := range ws.Items {
		buf = ws.Items[i].Size.append(buf)
		buf = append(buf, ws.Items[i].Data...)
	}
	return buf
}
