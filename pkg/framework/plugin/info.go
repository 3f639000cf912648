// Package plugin describes the identity of a plugin as a host sees it.
package plugin

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmptyID is returned by ValidateUID for an Info without an ID.
var ErrEmptyID = errors.New("plugin ID is empty")

// Info contains plugin metadata
type Info struct {
	ID       string // Reverse-DNS identifier (e.g., "com.amplife.gain")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")

	Inputs     int // audio input channels
	Outputs    int // audio output channels
	Parameters int
}

// UID returns the class ID of the plugin: a name-based (SHA-1) UUID of the
// ID in the DNS namespace. The same ID always yields the same UID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(i.ID))
}

// UniqueID returns the 32-bit identifier hosts of the older protocol use to
// tell plugins apart, taken from the first four bytes of UID.
func (i Info) UniqueID() int32 {
	uid := i.UID()
	return int32(binary.BigEndian.Uint32(uid[:4]))
}

// ValidateUID checks that a stable UID can be derived.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	if uuid.UUID(i.UID()).Version() != 5 {
		return fmt.Errorf("UID for %q is not name-based", i.ID)
	}
	return nil
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s) by %s, %d in/%d out, UID %s",
		i.Name, i.Version, i.ID, i.Vendor, i.Inputs, i.Outputs, uuid.UUID(i.UID()))
}
