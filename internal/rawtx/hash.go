package rawtx

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// witnessScaleFactor relates base size to weight units.
const witnessScaleFactor = 4

// TxID returns the double-SHA256 of the legacy serialization. For a witness
// transaction this deliberately excludes marker, flag and witness data.
func (tx *Transaction) TxID() chainhash.Hash {
	return chainhash.DoubleHashH(tx.SerializeNoWitness())
}

// WTxID returns the double-SHA256 of the full serialization. For a legacy
// transaction it equals TxID.
func (tx *Transaction) WTxID() chainhash.Hash {
	return chainhash.DoubleHashH(tx.Serialize())
}

// Weight reports the transaction weight in weight units: three times the
// base size plus the total size.
func (tx *Transaction) Weight() int {
	return tx.BaseSize()*(witnessScaleFactor-1) + tx.SerializeSize()
}

// VSize reports the virtual size in vbytes, the weight divided by four and
// rounded up.
func (tx *Transaction) VSize() int {
	return (tx.Weight() + witnessScaleFactor - 1) / witnessScaleFactor
}
