package gpg

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

var (
	entitiesMu sync.Mutex
	entities   = map[string]*openpgp.Entity{}
)

// testEntity returns an RSA key pair for email, generated once per test binary.
func testEntity(t *testing.T, name, email string) *openpgp.Entity {
	t.Helper()
	return cachedEntity(t, "rsa", name, email, &packet.Config{RSABits: 1024})
}

// testEdDSAEntity returns an Ed25519 key with a Curve25519 encryption
// subkey, the default key type of current GnuPG releases.
func testEdDSAEntity(t *testing.T, name, email string) *openpgp.Entity {
	t.Helper()
	return cachedEntity(t, "eddsa", name, email, &packet.Config{Algorithm: packet.PubKeyAlgoEdDSA})
}

func cachedEntity(t *testing.T, kind, name, email string, config *packet.Config) *openpgp.Entity {
	t.Helper()
	entitiesMu.Lock()
	defer entitiesMu.Unlock()

	key := kind + ":" + email
	if e, ok := entities[key]; ok {
		return e
	}
	e, err := openpgp.NewEntity(name, "test", email, config)
	if err != nil {
		t.Fatalf("Failed to generate %s key for %s: %v", kind, email, err)
	}
	entities[key] = e
	return e
}

// writeKeyrings writes public and secret keyrings for the given entities.
func writeKeyrings(t *testing.T, dir string, armored bool, list ...*openpgp.Entity) (string, string) {
	t.Helper()
	pubPath := filepath.Join(dir, "pubring.gpg")
	secPath := filepath.Join(dir, "secring.gpg")

	var pub, sec bytes.Buffer
	for _, e := range list {
		if err := e.Serialize(&pub); err != nil {
			t.Fatalf("Failed to serialize public key: %v", err)
		}
		if err := e.SerializePrivate(&sec, nil); err != nil {
			t.Fatalf("Failed to serialize private key: %v", err)
		}
	}

	writeKeyring(t, pubPath, armored, openpgp.PublicKeyType, pub.Bytes())
	writeKeyring(t, secPath, armored, openpgp.PrivateKeyType, sec.Bytes())
	return pubPath, secPath
}

func writeKeyring(t *testing.T, path string, armored bool, blockType string, raw []byte) {
	t.Helper()
	if !armored {
		if err := os.WriteFile(path, raw, 0600); err != nil {
			t.Fatalf("Failed to write keyring %s: %v", path, err)
		}
		return
	}

	var buf bytes.Buffer
	aw, err := armor.Encode(&buf, blockType, nil)
	if err != nil {
		t.Fatalf("Failed to start armor: %v", err)
	}
	if _, err := aw.Write(raw); err != nil {
		t.Fatalf("Failed to write armored keys: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("Failed to close armor: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write keyring %s: %v", path, err)
	}
}
