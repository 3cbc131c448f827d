package transaction

import (
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/ringct/borromean"
	"git.gammaspectra.live/P2Pool/confidential/proof"
)

// Config parameters shared by provers and verifiers. Both sides must use the same Generators and RangeProver
type Config struct {
	// Generators Pedersen generators for tokens and range proofs. Blinding must be the base point, ring signatures
	// sign the blinding difference as a key pair over it
	Generators *crypto.PedersenGenerators
	RangeProver proof.RangeProver
	// Routines number of goroutines used for per-output work, <= 0 picks one per CPU
	Routines int
}

func DefaultConfig() *Config {
	gens := crypto.DefaultGenerators()
	return &Config{
		Generators:  gens,
		RangeProver: borromean.NewProver(gens),
	}
}
