package httpc

import (
	"crypto/tls"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Httpc builds the resty client every request goes through.
type Httpc struct {
	TlsConfig *tls.Config
}

// New returns a resty.Client configured according to the receiver's TLS settings.
// No timeout is set; the transport default applies.
func (h *Httpc) New() *resty.Client {
	c := resty.New()
	if h == nil || h.TlsConfig == nil {
		return c
	}
	c.SetTLSClientConfig(h.TlsConfig)
	return c
}

// ParseTLSVersion converts "1.2", "12", "tls1.2" or "tls12" style strings to
// the crypto/tls constant. It returns 0 for anything it does not recognise.
func ParseTLSVersion(version string) uint16 {
	switch strings.TrimSpace(strings.ToLower(version)) {
	case "1.0", "10", "tls1.0", "tls10":
		return tls.VersionTLS10
	case "1.1", "11", "tls1.1", "tls11":
		return tls.VersionTLS11
	case "1.2", "12", "tls1.2", "tls12":
		return tls.VersionTLS12
	case "1.3", "13", "tls1.3", "tls13":
		return tls.VersionTLS13
	default:
		return 0
	}
}

// TLSConfig returns nil when nothing is configured so resty keeps its defaults.
func TLSConfig(insecure bool, minVersion, maxVersion string) *tls.Config {
	minV := ParseTLSVersion(minVersion)
	maxV := ParseTLSVersion(maxVersion)
	if !insecure && minV == 0 && maxV == 0 {
		return nil
	}
	// #nosec G402 -- versions and verification are chosen explicitly by the user's config
	cfg := &tls.Config{MinVersion: minV, MaxVersion: maxV}
	if insecure {
		cfg.InsecureSkipVerify = true
	}
	return cfg
}
