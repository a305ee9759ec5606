package internal

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// VaultID names one server-held credential entry. The cookie carries only
// this identifier when vault mode is enabled.
type VaultID [16]byte

func NewVaultID() (VaultID, error) {
	var id VaultID
	_, err := rand.Read(id[:])
	return id, err
}

func (v VaultID) Bytes() []byte {
	return v[:]
}

func (v VaultID) String() string {
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(v[:])
}

func ParseVaultID(raw string) (VaultID, error) {
	var id VaultID

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return id, err
	}
	if len(decoded) != len(id) {
		return id, errors.New("invalid vault id size")
	}

	copy(id[:], decoded)
	return id, nil
}
