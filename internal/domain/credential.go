package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const minPasswordLen = 6

// Credential stores the salted hash of an account password. The plaintext is
// never kept; the digest is sha256(salt || plaintext).
type Credential struct {
	SaltHex   string
	DigestHex string
}

// HashPassword hashes plain with the given salt. A nil salt means a fresh
// 16-byte crypto-random one, so two hashes of the same plaintext differ.
func HashPassword(plain string, salt []byte) (saltHex, digestHex string, err error) {
	if salt == nil {
		salt = make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return "", "", err
		}
	}
	sum := sha256.Sum256(append(append([]byte{}, salt...), []byte(plain)...))
	return hex.EncodeToString(salt), hex.EncodeToString(sum[:]), nil
}

func NewCredential(plain string) (Credential, error) {
	var c Credential
	if err := c.Set(plain); err != nil {
		return Credential{}, err
	}
	return c, nil
}

// Set regenerates salt and digest together; a rejected password leaves the
// stored credential untouched.
func (c *Credential) Set(plain string) error {
	if len(plain) < minPasswordLen {
		return newValidationError("password", "must be at least 6 characters")
	}
	saltHex, digestHex, err := HashPassword(plain, nil)
	if err != nil {
		return err
	}
	c.SaltHex, c.DigestHex = saltHex, digestHex
	return nil
}

// Verify recomputes the digest with the stored salt and compares in constant
// time.
func (c *Credential) Verify(plain string) bool {
	salt, err := hex.DecodeString(c.SaltHex)
	if err != nil {
		return false
	}
	_, digestHex, err := HashPassword(plain, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digestHex), []byte(c.DigestHex)) == 1
}
