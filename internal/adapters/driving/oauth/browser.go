package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net"
	"os/exec"
	"runtime"
)

// OpenBrowser hands target, a URL or a file path, to the OS default handler.
func OpenBrowser(target string) error {
	name, args := "xdg-open", []string{target}
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", target}
	case "linux", "freebsd", "openbsd", "netbsd":
	default:
		return fmt.Errorf("open %s: unsupported platform %s", target, runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}

// FindAvailablePort returns the first port in [lo, hi] that can be bound.
func FindAvailablePort(lo, hi int) (int, error) {
	for port := lo; port <= hi; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port, nil
	}
	return 0, fmt.Errorf("no available port in range %d-%d", lo, hi)
}

// GenerateState returns 32 URL-safe random characters.
func GenerateState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
