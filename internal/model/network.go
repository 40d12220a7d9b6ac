package model

// Network identifies the Bitcoin network decoded artifacts belong to.
type Network string

const (
	Mainnet  Network = "mainnet"
	Testnet3 Network = "testnet3"
	Signet   Network = "signet"
	Regtest  Network = "regtest"
)
