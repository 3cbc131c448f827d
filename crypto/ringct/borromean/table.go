package borromean

import (
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
)

// valueGeneratorPow2 Value generator multiplied by 2**i for i in 0 ..< Elements
func valueGeneratorPow2(generators *crypto.PedersenGenerators) (table [Elements]*curve25519.Point) {
	table[0] = new(curve25519.Point).Set(generators.Value.P())
	for i := range table[1:] {
		table[i+1] = new(curve25519.Point).Add(table[i], table[i])
	}
	return table
}
