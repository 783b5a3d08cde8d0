package testutil

import (
	"sidekick/internal/encryption"
	"sidekick/internal/sidekick"
)

// NewTestEncryptor creates a deterministic encryptor unlocked by the empty
// passphrase.
func NewTestEncryptor() sidekick.Encryptor {
	return encryption.NewTestEncryptor()
}
