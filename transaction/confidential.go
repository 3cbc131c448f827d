package transaction

import (
	"errors"
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/account"
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/proof"
	"git.gammaspectra.live/P2Pool/confidential/token"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"git.gammaspectra.live/P2Pool/confidential/utils"
)

// ConfidentialTransactionSize length of the signed form, see ConfidentialTransaction.Bytes
const ConfidentialTransactionSize = curve25519.PublicKeySize * 3

var ErrInsufficientBalance = fmt.Errorf("insufficient balance: %w", types.ErrPrecondition)
var ErrTokenMismatch = fmt.Errorf("decrypted secret does not open token: %w", types.ErrDecryption)
var ErrNoOwner = fmt.Errorf("spending needs the owner account: %w", types.ErrPrecondition)
var ErrInvalidRecipient = fmt.Errorf("recipient has no account: %w", types.ErrPrecondition)

// ConfidentialTransaction spendable output
type ConfidentialTransaction struct {
	OneTimeAccount      account.OneTimeAccount           `json:"one_time_account"`
	BlindPoint          curve25519.ConstantTimePublicKey `json:"blind_point"`
	Token               token.Token                      `json:"token"`
	NonnegativeProof    proof.NonnegativeProof           `json:"nonnegative_proof"`
	EncryptoTokenSecret token.EncryptoTokenSecret        `json:"encrypto_token_secret"`
}

// Recipient receiver of an output and its amount
type Recipient struct {
	Account *account.Account
	Amount  uint64
}

// newOutput derives a one-time account for publicKey and commits, encrypts and range proves amount
func newOutput(cfg *Config, publicKey *curve25519.ConstantTimePublicKey, amount uint64, randomReader io.Reader) (*ConfidentialTransaction, *token.TokenSecret, error) {
	oneTime, blind, key, err := account.DeriveOneTimeAccount(publicKey, randomReader)
	if err != nil {
		return nil, nil, err
	}

	t, secret, err := token.Mint(cfg.Generators, amount, randomReader)
	if err != nil {
		return nil, nil, err
	}

	encrypted, err := secret.Encrypt(key, randomReader)
	if err != nil {
		return nil, nil, err
	}

	nonnegative, err := proof.NewNonnegativeProof(cfg.RangeProver, secret, randomReader)
	if err != nil {
		return nil, nil, err
	}

	return &ConfidentialTransaction{
		OneTimeAccount:      *oneTime,
		BlindPoint:          blind.PublicKey,
		Token:               *t,
		NonnegativeProof:    *nonnegative,
		EncryptoTokenSecret: *encrypted,
	}, secret, nil
}

// newOutputs builds every output in parallel. Nothing is returned unless all succeed
func newOutputs(cfg *Config, recipients []Recipient, randomReader io.Reader) ([]ConfidentialTransaction, []*token.TokenSecret, error) {
	for i := range recipients {
		if recipients[i].Account == nil {
			return nil, nil, ErrInvalidRecipient
		}
	}

	outputs := make([]ConfidentialTransaction, len(recipients))
	secrets := make([]*token.TokenSecret, len(recipients))

	lockedReader := crypto.NewLockedReader(randomReader)

	err := utils.SplitWork(cfg.Routines, uint64(len(recipients)), func(workIndex uint64, routineIndex int) error {
		output, secret, err := newOutput(cfg, recipients[workIndex].Account.PublicKey(), recipients[workIndex].Amount, lockedReader)
		if err != nil {
			return err
		}
		outputs[workIndex] = *output
		secrets[workIndex] = secret
		return nil
	}, nil)
	if err != nil {
		return nil, nil, err
	}
	return outputs, secrets, nil
}

var errNonnegativeRejected = errors.New("nonnegative proof rejected")

// verifyOutputs checks every nonnegative proof in parallel
func verifyOutputs(cfg *Config, outputs []ConfidentialTransaction) bool {
	return utils.SplitWork(cfg.Routines, uint64(len(outputs)), func(workIndex uint64, routineIndex int) error {
		if !outputs[workIndex].NonnegativeProof.Verify(cfg.RangeProver, &outputs[workIndex].Token) {
			return errNonnegativeRejected
		}
		return nil
	}, nil) == nil
}

// Mint creates a spendable output of balance owned by to
func Mint(cfg *Config, to *account.Account, balance uint64, randomReader io.Reader) (*ConfidentialTransaction, error) {
	if to == nil {
		return nil, ErrInvalidRecipient
	}
	tx, _, err := newOutput(cfg, to.PublicKey(), balance, randomReader)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Bytes one-time account ‖ blinding point ‖ commitment. This is the form that gets signed
func (tx *ConfidentialTransaction) Bytes() []byte {
	return tx.AppendBytes(make([]byte, 0, ConfidentialTransactionSize))
}

func (tx *ConfidentialTransaction) AppendBytes(buf []byte) []byte {
	buf = append(buf, tx.OneTimeAccount.PublicKey.Slice()...)
	buf = append(buf, tx.BlindPoint.Slice()...)
	buf = append(buf, tx.Token.Commitment.Slice()...)
	return buf
}

func outputsMessage(outputs []ConfidentialTransaction) []byte {
	msg := make([]byte, 0, len(outputs)*ConfidentialTransactionSize)
	for i := range outputs {
		msg = outputs[i].AppendBytes(msg)
	}
	return msg
}

// DecryptTokenSecret decrypts the secret with the one-time private key k
func (tx *ConfidentialTransaction) DecryptTokenSecret(k *curve25519.Scalar) (*token.TokenSecret, error) {
	return tx.EncryptoTokenSecret.Decrypt(account.SymmetricKeyFromPrivate(k, &tx.BlindPoint))
}

// Open recovers the one-time private key of owner and decrypts the secret with it
func (tx *ConfidentialTransaction) Open(owner *account.Account) (*curve25519.Scalar, *token.TokenSecret, error) {
	k, err := tx.OneTimeAccount.Recover(owner, &tx.BlindPoint)
	if err != nil {
		return nil, nil, err
	}
	secret, err := tx.DecryptTokenSecret(k)
	if err != nil {
		return nil, nil, err
	}
	return k, secret, nil
}

// open as Open, also checking the secret against the published token
func (tx *ConfidentialTransaction) open(cfg *Config, owner *account.Account) (*curve25519.Scalar, *token.TokenSecret, error) {
	if owner == nil {
		return nil, nil, ErrNoOwner
	}
	k, secret, err := tx.Open(owner)
	if err != nil {
		return nil, nil, err
	}
	if !secret.Opens(cfg.Generators, &tx.Token) {
		return nil, nil, ErrTokenMismatch
	}
	return k, secret, nil
}

// Transfer spends tx, sending amount to `to` and the remainder back to `from`
func (tx *ConfidentialTransaction) Transfer(cfg *Config, from, to *account.Account, amount uint64, randomReader io.Reader) (*SignTx, error) {
	k, secret, err := tx.open(cfg, from)
	if err != nil {
		return nil, err
	}

	if secret.Balance < amount {
		return nil, ErrInsufficientBalance
	}
	if to == nil {
		return nil, ErrInvalidRecipient
	}

	if utils.IsLogLevelDebug() {
		utils.Debugf("Transfer", "spending %s, %d to %s", tx.OneTimeAccount.PublicKey.String(), amount, to.Address())
	}

	outputs, secrets, err := newOutputs(cfg, []Recipient{
		{Account: from, Amount: secret.Balance - amount},
		{Account: to, Amount: amount},
	}, randomReader)
	if err != nil {
		return nil, err
	}

	signature, err := crypto.CreateOneTimeSignature(k, outputsMessage(outputs), randomReader)
	if err != nil {
		return nil, err
	}

	sumProof, err := proof.NewSumProof(cfg.Generators, secret, secrets[0], secrets[1], randomReader)
	if err != nil {
		return nil, err
	}

	return &SignTx{
		Input:     *tx,
		Outputs:   outputs,
		Signature: signature,
		SumProof:  *sumProof,
	}, nil
}
