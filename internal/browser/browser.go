package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher starts an external program without waiting for it.
type Launcher func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener opens article links in the system browser.
type Opener struct {
	goos   string
	launch Launcher
}

func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, launch: startCommand}
}

// NewOpenerWith is NewOpener with an explicit platform and launcher.
func NewOpenerWith(goos string, launch Launcher) *Opener {
	return &Opener{goos: goos, launch: launch}
}

// Validate reports whether rawURL may be handed to the browser.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	return nil
}

func (o *Opener) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}

	switch o.goos {
	case "darwin":
		return o.launch("open", rawURL)
	case "windows":
		// rundll32 avoids cmd's shell interpretation of the URL
		return o.launch("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return o.launch("xdg-open", rawURL)
	}
}

// Open opens rawURL with the default Opener.
func Open(rawURL string) error {
	return NewOpener().Open(rawURL)
}
