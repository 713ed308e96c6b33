package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"

	"github.com/msdeploy/msdeploy/internal/util/keygen"
)

const keyBits = 4096

// KeyStore provides the deployer's SSH key pair.
type KeyStore interface {
	// LoadOrGenerate returns the existing key pair, generating and
	// persisting a new one if none exists yet.
	LoadOrGenerate() (*keygen.KeyPair, error)
}

// FileKeyStore keeps the key pair on disk under the deployer state
// directory. The private key never leaves the operator's machine.
type FileKeyStore struct {
	dir string
}

// NewFileKeyStore creates a FileKeyStore rooted at dir.
func NewFileKeyStore(dir string) *FileKeyStore {
	return &FileKeyStore{dir: dir}
}

// PrivateKeyPath returns the path of the persisted private key.
func (s *FileKeyStore) PrivateKeyPath() string {
	return filepath.Join(s.dir, "id_rsa")
}

// LoadOrGenerate returns the persisted key pair, generating one on first
// use.
func (s *FileKeyStore) LoadOrGenerate() (*keygen.KeyPair, error) {
	privateKey, err := os.ReadFile(s.PrivateKeyPath())
	if err == nil {
		return keyPairFromPrivate(privateKey)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	keyPair, err := keygen.GenerateRSAKeyPair(keyBits)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir %s: %w", s.dir, err)
	}
	if err := os.WriteFile(s.PrivateKeyPath(), keyPair.PrivateKey, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(s.PrivateKeyPath()+".pub", keyPair.PublicKey, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write public key: %w", err)
	}

	return keyPair, nil
}

// keyPairFromPrivate derives the authorized_keys form from a PEM private
// key, so the public half never has to be read from disk.
func keyPairFromPrivate(privateKey []byte) (*keygen.KeyPair, error) {
	signer, err := ssh.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse persisted SSH key: %w", err)
	}
	return &keygen.KeyPair{
		PrivateKey: privateKey,
		PublicKey:  ssh.MarshalAuthorizedKey(signer.PublicKey()),
	}, nil
}
