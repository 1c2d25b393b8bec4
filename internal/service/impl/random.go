package impl

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// newVerificationCode returns a uniformly random six-digit code.
func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func randomHex(nbytes int) (string, error) {
	buf := make([]byte, nbytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func newSessionID() (string, error) { return randomHex(16) }
