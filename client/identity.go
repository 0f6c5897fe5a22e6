package client

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultNames are offered as display name until the user picks one.
var DefaultNames = []string{"Ford", "Arthur", "Zaphod", "Trillian", "Slartibartfast", "Humma Kavula", "Deep Thought"}

// Identity is remembered on the user's machine. The sender id is generated once and
// never changes, the display name can be changed at any time.
type Identity struct {
	SenderID    string `yaml:"sender_id"`
	DisplayName string `yaml:"display_name"`
}

// LoadIdentity reads the identity stored at path. A missing file creates a new identity
// with a random sender id and one of DefaultNames, and stores it.
func LoadIdentity(path string) (Identity, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		identity := Identity{
			SenderID:    uuid.NewString(),
			DisplayName: DefaultNames[rand.IntN(len(DefaultNames))],
		}
		return identity, identity.Save(path)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("read identity: %w", err)
	}
	var identity Identity
	if err := yaml.Unmarshal(data, &identity); err != nil {
		return Identity{}, fmt.Errorf("parse identity %s: %w", path, err)
	}
	if identity.SenderID == "" {
		identity.SenderID = uuid.NewString()
		return identity, identity.Save(path)
	}
	return identity, nil
}

// WithDisplayName returns the identity renamed. Blank names are refused.
func (i Identity) WithDisplayName(name string) (Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return i, fmt.Errorf("display name cannot be empty")
	}
	i.DisplayName = name
	return i, nil
}

func (i Identity) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}
	data, err := yaml.Marshal(i)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
