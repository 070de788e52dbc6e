package branding

import (
	"errors"
	"fmt"
	"sync"

	"github.com/modforge/launchmeta/internal/config/version"
)

// Branding identifies the embedding application on outbound requests.
type Branding struct {
	// HeaderValue is sent as the User-Agent header on every fetch.
	HeaderValue string
	// VersionToken is the placeholder replaced with the game version when
	// loader manifests are templated for a specific release.
	VersionToken string
}

// ErrAlreadySet is returned by Set when branding was configured before.
var ErrAlreadySet = errors.New("branding already set")

var (
	mu      sync.RWMutex
	current *Branding
)

// New builds a Branding for the given application name and contact address.
func New(name, contact string) Branding {
	return Branding{
		HeaderValue:  fmt.Sprintf("%s/%s/%s <%s>", name, version.Toolname, version.Version, contact),
		VersionToken: fmt.Sprintf("${%s.gameVersion}", name),
	}
}

// Default is the branding used when the embedding application sets none.
func Default() Branding {
	return New("unbranded", "unbranded")
}

// Set installs the process-wide branding. The first successful call wins;
// every later call reports ErrAlreadySet and leaves the value untouched.
func Set(b Branding) error {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return ErrAlreadySet
	}
	current = &b
	return nil
}

// Current returns the configured branding, or the default when unset.
func Current() Branding {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return Default()
	}
	return *current
}

// UserAgent returns the identification header value for outbound requests.
func UserAgent() string {
	return Current().HeaderValue
}

// reset is a test hook; callers outside tests must never clear branding.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
}
