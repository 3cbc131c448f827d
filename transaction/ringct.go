package transaction

import (
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/account"
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/crypto/ringct/mlsag"
	"git.gammaspectra.live/P2Pool/confidential/token"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"git.gammaspectra.live/P2Pool/confidential/utils"
	"lukechampine.com/uint128"
)

var ErrNoInputs = fmt.Errorf("ring transfer needs at least one input and one output: %w", types.ErrPrecondition)
var ErrNoDecoys = fmt.Errorf("ring transfer needs at least one decoy set: %w", types.ErrPrecondition)
var ErrDecoyShape = fmt.Errorf("every decoy set must have as many members as the real inputs: %w", types.ErrPrecondition)
var ErrUnbalanced = fmt.Errorf("input and output amounts differ: %w", types.ErrPrecondition)

// RingCT ring-signed transfer of several inputs owned by Owner to several recipients, hidden among decoy input sets
type RingCT struct {
	Owner   *account.Account
	Inputs  []ConfidentialTransaction
	Outputs []Recipient
	Decoys  [][]ConfidentialTransaction
}

func (r *RingCT) checkShape() error {
	if r.Owner == nil {
		return ErrNoOwner
	}
	if len(r.Inputs) == 0 || len(r.Outputs) == 0 {
		return ErrNoInputs
	}
	for i := range r.Outputs {
		if r.Outputs[i].Account == nil {
			return ErrInvalidRecipient
		}
	}
	if len(r.Decoys) == 0 {
		return ErrNoDecoys
	}
	for _, decoy := range r.Decoys {
		if len(decoy) != len(r.Inputs) {
			return ErrDecoyShape
		}
	}
	return nil
}

// sumCommitments Σ C over txs
func sumCommitments(dst *curve25519.ConstantTimePublicKey, txs []ConfidentialTransaction) *curve25519.ConstantTimePublicKey {
	points := make([]*curve25519.ConstantTimePublicKey, len(txs))
	for i := range txs {
		points[i] = &txs[i].Token.Commitment
	}
	return dst.Sum(points...)
}

// Transfer opens every input, builds the outputs and signs them with an MLSAG whose last key of every ring member
// is Σ inputs - Σ outputs of that member. Only for the real inputs is that key a commitment to zero, with the
// blinding difference as its private key.
func (r *RingCT) Transfer(cfg *Config, randomReader io.Reader) (*RingSignature, error) {
	if err := r.checkShape(); err != nil {
		return nil, err
	}

	keys := make([]crypto.KeyPair[curve25519.ConstantTimeOperations], 0, len(r.Inputs)+1)
	secrets := make([]*token.TokenSecret, len(r.Inputs))
	var inputSum, outputSum uint128.Uint128
	for i := range r.Inputs {
		k, secret, err := r.Inputs[i].open(cfg, r.Owner)
		if err != nil {
			return nil, err
		}
		keys = append(keys, *crypto.NewKeyPairFromPrivate[curve25519.ConstantTimeOperations](k))
		secrets[i] = secret
		inputSum = inputSum.Add64(secret.Balance)
	}
	for _, o := range r.Outputs {
		outputSum = outputSum.Add64(o.Amount)
	}
	if !inputSum.Equals(outputSum) {
		return nil, ErrUnbalanced
	}

	utils.Debugf("RingCT", "spending %d inputs to %d outputs in a ring of %d", len(r.Inputs), len(r.Outputs), len(r.Decoys)+1)

	outputs, outputSecrets, err := newOutputs(cfg, r.Outputs, randomReader)
	if err != nil {
		return nil, err
	}

	// z = Σ input blindings - Σ output blindings
	var z curve25519.Scalar
	for _, s := range secrets {
		z.Add(&z, &s.Blinding)
	}
	for _, s := range outputSecrets {
		z.Subtract(&z, &s.Blinding)
	}
	keys = append(keys, *crypto.NewKeyPairFromPrivate[curve25519.ConstantTimeOperations](&z))

	var outputCommitments curve25519.ConstantTimePublicKey
	sumCommitments(&outputCommitments, outputs)

	positions := make([]mlsag.RingPosition[curve25519.ConstantTimeOperations], 0, len(r.Decoys)+1)
	for _, decoy := range r.Decoys {
		publicKeys := make([]curve25519.ConstantTimePublicKey, len(decoy)+1)
		for i := range decoy {
			publicKeys[i].Set(&decoy[i].OneTimeAccount.PublicKey)
		}
		sumCommitments(&publicKeys[len(decoy)], decoy)
		publicKeys[len(decoy)].Subtract(&publicKeys[len(decoy)], &outputCommitments)

		position, err := mlsag.NewDecoy(publicKeys, randomReader)
		if err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}

	signer, err := mlsag.NewSigner(keys, randomReader)
	if err != nil {
		return nil, err
	}
	positions = append(positions, signer)

	signature, err := mlsag.Sign(outputsMessage(outputs), positions)
	if err != nil {
		return nil, err
	}

	inputs := make([][]ConfidentialTransaction, 0, len(r.Decoys)+1)
	inputs = append(inputs, r.Decoys...)
	inputs = append(inputs, r.Inputs)

	return &RingSignature{
		Signature: *signature,
		Outputs:   outputs,
		Inputs:    inputs,
	}, nil
}
