package gpg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// newSigningEntity generates a throwaway ed25519 key pair
func newSigningEntity(t *testing.T) *openpgp.Entity {
	t.Helper()

	entity, err := openpgp.NewEntity("rsasxlsx test", "", "scanner@example.com", &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
	})
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return entity
}

func armoredPublicKey(t *testing.T, entity *openpgp.Entity) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeSignedFile writes data and its detached signature, armored or binary
func writeSignedFile(t *testing.T, dir string, entity *openpgp.Entity, data []byte, armored bool) (string, string) {
	t.Helper()

	dataPath := filepath.Join(dir, "report.zip")
	if err := os.WriteFile(dataPath, data, 0600); err != nil {
		t.Fatal(err)
	}

	var sig bytes.Buffer
	var err error
	if armored {
		err = openpgp.ArmoredDetachSign(&sig, entity, bytes.NewReader(data), nil)
	} else {
		err = openpgp.DetachSign(&sig, entity, bytes.NewReader(data), nil)
	}
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	sigPath := dataPath + ".asc"
	if err := os.WriteFile(sigPath, sig.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	return dataPath, sigPath
}

func TestVerifier_VerifySignatureFromFile(t *testing.T) {
	for _, armored := range []bool{true, false} {
		name := "binary"
		if armored {
			name = "armored"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			entity := newSigningEntity(t)

			keyPath := filepath.Join(dir, "scanner.asc")
			if err := os.WriteFile(keyPath, armoredPublicKey(t, entity), 0600); err != nil {
				t.Fatal(err)
			}
			dataPath, sigPath := writeSignedFile(t, dir, entity, []byte("PK\x03\x04 report"), armored)

			v := NewVerifier()
			if err := v.ImportKeyFromFile(keyPath); err != nil {
				t.Fatalf("ImportKeyFromFile() error = %v", err)
			}
			if err := v.VerifySignatureFromFile(dataPath, sigPath); err != nil {
				t.Errorf("VerifySignatureFromFile() error = %v", err)
			}
		})
	}
}

func TestVerifier_VerifySignatureFromFile_Tampered(t *testing.T) {
	dir := t.TempDir()
	entity := newSigningEntity(t)

	keyPath := filepath.Join(dir, "scanner.asc")
	if err := os.WriteFile(keyPath, armoredPublicKey(t, entity), 0600); err != nil {
		t.Fatal(err)
	}
	dataPath, sigPath := writeSignedFile(t, dir, entity, []byte("original"), true)
	if err := os.WriteFile(dataPath, []byte("tampered"), 0600); err != nil {
		t.Fatal(err)
	}

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}

	err := v.VerifySignatureFromFile(dataPath, sigPath)
	if err == nil {
		t.Fatal("Expected verification failure for tampered file, got nil")
	}
	if !strings.Contains(err.Error(), "signature verification failed") {
		t.Errorf("Expected 'signature verification failed' error, got: %v", err)
	}
}

func TestVerifier_VerifySignatureFromFile_UnknownSigner(t *testing.T) {
	dir := t.TempDir()
	trusted := newSigningEntity(t)
	stranger := newSigningEntity(t)

	keyPath := filepath.Join(dir, "scanner.asc")
	if err := os.WriteFile(keyPath, armoredPublicKey(t, trusted), 0600); err != nil {
		t.Fatal(err)
	}
	dataPath, sigPath := writeSignedFile(t, dir, stranger, []byte("report"), true)

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatal(err)
	}
	if err := v.VerifySignatureFromFile(dataPath, sigPath); err == nil {
		t.Fatal("Expected error for signature by a key outside the keyring")
	}
}

func TestVerifier_VerifySignatureFromFile_NoKeys(t *testing.T) {
	v := NewVerifier()

	err := v.VerifySignatureFromFile("report.zip", "report.zip.asc")
	if err == nil || !strings.Contains(err.Error(), "no GPG keys imported") {
		t.Errorf("Expected 'no GPG keys imported' error, got: %v", err)
	}
}

// Test importing key from nonexistent file
func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")

	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}

	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

// Test importing key from file with no keys
func TestVerifier_ImportKeyFromFile_EmptyFile(t *testing.T) {
	v := NewVerifier()
	keyPath := filepath.Join(t.TempDir(), "empty.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := v.ImportKeyFromFile(keyPath); err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}
}

func TestVerifier_ImportKeys_FromURL(t *testing.T) {
	entity := newSigningEntity(t)
	keys := armoredPublicKey(t, entity)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(keys)
	}))
	defer server.Close()

	v := NewVerifier()
	if err := v.ImportKeys(context.Background(), server.URL+"/KEYS"); err != nil {
		t.Fatalf("ImportKeys() error = %v", err)
	}

	dataPath, sigPath := writeSignedFile(t, t.TempDir(), entity, []byte("report"), true)
	if err := v.VerifySignatureFromFile(dataPath, sigPath); err != nil {
		t.Errorf("VerifySignatureFromFile() with URL-imported key error = %v", err)
	}
}

func TestVerifier_ImportKeys_URLStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := NewVerifier().ImportKeys(context.Background(), server.URL+"/KEYS")
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Errorf("Expected status error, got: %v", err)
	}
}
