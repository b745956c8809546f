package gpg

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const armorPrefix = "-----BEGIN PGP"

// readKeyring loads a binary or ASCII-armored keyring file.
func readKeyring(path string) (openpgp.EntityList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyring %s: %w", path, err)
	}

	var keyring openpgp.EntityList
	if isArmored(data) {
		keyring, err = openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	} else {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing keyring %s: %w", path, err)
	}
	return keyring, nil
}

func isArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte(armorPrefix))
}

// matchRecipient returns all non-revoked entities matching recipient, in keyring order.
func matchRecipient(keyring openpgp.EntityList, recipient string) []*openpgp.Entity {
	needle := strings.ToLower(strings.TrimSpace(recipient))
	if needle == "" {
		return nil
	}

	var matches []*openpgp.Entity
	for _, entity := range keyring {
		if len(entity.Revocations) > 0 {
			continue
		}
		if entityMatches(entity, needle) {
			matches = append(matches, entity)
		}
	}
	return matches
}

func entityMatches(entity *openpgp.Entity, needle string) bool {
	for name, identity := range entity.Identities {
		if identity.UserId != nil && strings.ToLower(identity.UserId.Email) == needle {
			return true
		}
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}

	hexNeedle := strings.TrimPrefix(strings.ReplaceAll(needle, " ", ""), "0x")
	if len(hexNeedle) >= 8 {
		if strings.HasSuffix(fingerprint(entity), hexNeedle) {
			return true
		}
	}
	return false
}

// KeyInfo describes a resolved recipient key.
type KeyInfo struct {
	KeyID       string
	Fingerprint string
	Identities  []string
}

func describe(entity *openpgp.Entity) KeyInfo {
	info := KeyInfo{
		KeyID:       fmt.Sprintf("%016X", entity.PrimaryKey.KeyId),
		Fingerprint: strings.ToUpper(fingerprint(entity)),
	}
	for name := range entity.Identities {
		info.Identities = append(info.Identities, name)
	}
	return info
}

func fingerprint(entity *openpgp.Entity) string {
	return fmt.Sprintf("%x", entity.PrimaryKey.Fingerprint)
}
