// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const armoredSignaturePrefix = "-----BEGIN PGP SIGNATURE---"

// Verifier implements GPG signature verification using ProtonMail's go-crypto
// This is in external-adapters to isolate the external dependency
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeys imports keys from a local keyring file or, for http(s) locations, a published KEYS file
func (v *Verifier) ImportKeys(ctx context.Context, location string) error {
	if strings.HasPrefix(location, "https://") || strings.HasPrefix(location, "http://") {
		return v.ImportKeysFromURL(ctx, location)
	}
	return v.ImportKeyFromFile(location)
}

// ImportKeysFromURL imports all GPG keys from a KEYS file URL
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, keysURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download KEYS file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("KEYS file download failed with status %d", resp.StatusCode)
	}

	// Limit KEYS file size to 10MB
	entities, err := openpgp.ReadArmoredKeyRing(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return fmt.Errorf("failed to parse KEYS file: %w", err)
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in KEYS file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// ImportKeyFromFile imports a GPG key from a file, armored or binary
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifySignatureFromFile verifies a detached signature from a local file
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeys first")
	}

	//nolint:gosec // G304: sigPath is user-provided for GPG verification
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is user-provided for GPG verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	peekBuf := make([]byte, len(armoredSignaturePrefix))
	n, _ := io.ReadFull(sigFile, peekBuf)
	isArmored := n == len(peekBuf) && string(peekBuf) == armoredSignaturePrefix

	if _, seekErr := sigFile.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset signature file: %w", seekErr)
	}

	var verifyErr error
	if isArmored {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, dataFile, sigFile, nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, dataFile, sigFile, nil)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}
