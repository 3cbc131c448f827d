package transaction

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/proof"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"git.gammaspectra.live/P2Pool/confidential/utils"
)

// SignTxOutputs change output followed by the payment
const SignTxOutputs = 2

var ErrInvalidOutputs = fmt.Errorf("transfer must have exactly %d outputs: %w", SignTxOutputs, types.ErrParse)

// SignTx a completed single-spend transfer
type SignTx struct {
	Input     ConfidentialTransaction   `json:"input"`
	Outputs   []ConfidentialTransaction `json:"outputs"`
	Signature crypto.OneTimeSignature   `json:"signature"`
	SumProof  proof.SumProof            `json:"sum_proof"`
}

// Verify checks the one-time signature over the outputs, their nonnegative proofs and the sum proof, in that order
func (s *SignTx) Verify(cfg *Config) (bool, error) {
	if len(s.Outputs) != SignTxOutputs {
		return false, ErrInvalidOutputs
	}

	if !s.Signature.Verify(&s.Input.OneTimeAccount.PublicKey, outputsMessage(s.Outputs)) {
		utils.Debugf("Transfer", "one-time signature rejected")
		return false, nil
	}

	if !verifyOutputs(cfg, s.Outputs) {
		utils.Debugf("Transfer", "nonnegative proof rejected")
		return false, nil
	}

	if !s.SumProof.Verify(cfg.Generators, &s.Input.Token.Commitment, &s.Outputs[0].Token.Commitment, &s.Outputs[1].Token.Commitment) {
		utils.Debugf("Transfer", "sum proof rejected")
		return false, nil
	}

	return true, nil
}
