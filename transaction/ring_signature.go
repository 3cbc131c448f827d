package transaction

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/crypto/ringct/mlsag"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"git.gammaspectra.live/P2Pool/confidential/utils"
)

var ErrInvalidRingShape = fmt.Errorf("ring signature inputs do not match its ring: %w", types.ErrParse)

// RingSignature a completed ring transfer
type RingSignature struct {
	Signature mlsag.Signature[curve25519.ConstantTimeOperations] `json:"signature"`
	Outputs   []ConfidentialTransaction                          `json:"outputs"`
	// Inputs one input set per ring member, in ring order. One of them is the real spend
	Inputs [][]ConfidentialTransaction `json:"inputs"`
}

func (s *RingSignature) checkShape() error {
	if len(s.Outputs) == 0 || len(s.Inputs) != s.Signature.RingSize() || len(s.Signature.Responses) != len(s.Inputs) {
		return ErrInvalidRingShape
	}
	for i := range s.Inputs {
		if len(s.Inputs[i])+1 != s.Signature.KeySize() || len(s.Signature.PublicKeys[i]) != s.Signature.KeySize() {
			return ErrInvalidRingShape
		}
	}
	return nil
}

// Verify checks the ring is made of the listed inputs, the MLSAG over the outputs, every output nonnegative proof
// and, for every ring member, Σ inputs == Σ outputs + last public key of the member
func (s *RingSignature) Verify(cfg *Config) (bool, error) {
	if err := s.checkShape(); err != nil {
		return false, err
	}

	for i := range s.Inputs {
		for j := range s.Inputs[i] {
			if s.Inputs[i][j].OneTimeAccount.PublicKey.Equal(&s.Signature.PublicKeys[i][j]) != 1 {
				utils.Debugf("RingCT", "ring member %d key %d is not its listed input", i, j)
				return false, nil
			}
		}
	}

	if err := s.Signature.Verify(outputsMessage(s.Outputs)); err != nil {
		utils.Debugf("RingCT", "ring signature rejected: %s", err)
		return false, nil
	}

	if !verifyOutputs(cfg, s.Outputs) {
		utils.Debugf("RingCT", "nonnegative proof rejected")
		return false, nil
	}

	var outputCommitments, inputCommitments, expected curve25519.ConstantTimePublicKey
	sumCommitments(&outputCommitments, s.Outputs)
	for i := range s.Inputs {
		sumCommitments(&inputCommitments, s.Inputs[i])
		expected.Add(&outputCommitments, &s.Signature.PublicKeys[i][s.Signature.KeySize()-1])
		if inputCommitments.Equal(&expected) != 1 {
			utils.Debugf("RingCT", "ring member %d does not balance", i)
			return false, nil
		}
	}

	return true, nil
}

// KeyImages key images of the spent inputs. The image of the balance key is not included
func (s *RingSignature) KeyImages() []curve25519.PublicKeyBytes {
	images := s.Signature.KeyImageBytes()
	if len(images) == 0 {
		return nil
	}
	return images[:len(images)-1]
}
