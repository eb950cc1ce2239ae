package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
	"github.com/ochairo/rsasxlsx/internal/external-adapters/gpg"
)

// gpgSignatureVerifier wraps the external GPG adapter to implement the domain gateway interface
type gpgSignatureVerifier struct {
	verifier      *gpg.Verifier
	keyring       string
	keyringLoaded bool
}

// NewGPGSignatureVerifier creates a verifier trusting the keys at keyring (a file path or KEYS URL)
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGSignatureVerifier(keyring string) *gpgSignatureVerifier {
	return &gpgSignatureVerifier{
		verifier: gpg.NewVerifier(),
		keyring:  keyring,
	}
}

// VerifyArchive checks archivePath against the detached signature at signaturePath
func (g *gpgSignatureVerifier) VerifyArchive(ctx context.Context, archivePath, signaturePath string) error {
	if !g.keyringLoaded {
		if err := g.verifier.ImportKeys(ctx, g.keyring); err != nil {
			return fmt.Errorf("%w: failed to import keyring %s: %w", entities.ErrSignatureVerification, g.keyring, err)
		}
		g.keyringLoaded = true
	}

	if err := g.verifier.VerifySignatureFromFile(archivePath, signaturePath); err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrSignatureVerification, archivePath, err)
	}
	return nil
}
