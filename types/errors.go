package types

import "errors"

// Error kinds. Every error returned by the engine wraps exactly one of these, match with errors.Is
var (
	// ErrParse malformed bytes that do not decode to a scalar, point or structure
	ErrParse = errors.New("parse error")
	// ErrAuthorization caller is not the owner of a one-time account
	ErrAuthorization = errors.New("authorization error")
	// ErrDecryption cipher rejected a ciphertext or the plaintext is not a valid field
	ErrDecryption = errors.New("decryption error")
	// ErrVerification a proof or signature did not verify
	ErrVerification = errors.New("verification failed")
	// ErrPrecondition caller supplied inputs of the wrong shape or amounts
	ErrPrecondition = errors.New("precondition violated")
)

// ErrorKind returns which of the error kinds err wraps, or nil
func ErrorKind(err error) error {
	for _, kind := range [...]error{ErrParse, ErrAuthorization, ErrDecryption, ErrVerification, ErrPrecondition} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
