package keygen

import (
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	t.Parallel()

	keyPair, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !strings.Contains(string(keyPair.PrivateKey), "RSA PRIVATE KEY") {
		t.Error("private key is not PEM-encoded PKCS#1")
	}
	if !strings.HasPrefix(string(keyPair.PublicKey), "ssh-rsa ") {
		t.Error("public key is not in authorized_keys format")
	}

	// The private key must parse back as a usable SSH signer.
	if _, err := ssh.ParsePrivateKey(keyPair.PrivateKey); err != nil {
		t.Errorf("generated private key does not parse: %v", err)
	}
}

func TestGenerateRSAKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()

	if _, err := GenerateRSAKeyPair(4); err == nil {
		t.Error("expected error for unusable bit size, got nil")
	}
}
