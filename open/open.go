// Package open hands URLs to the system's default handler, e.g. a thumbnail
// to the browser.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vidmeta/vidmeta/constant"
)

// URL opens an http(s) link without waiting for the handler to exit.
func URL(link string) error {
	return URLWith(link, "")
}

// URLWith opens link with app. An empty app means the default handler.
func URLWith(link, app string) error {
	if err := validate(link); err != nil {
		return err
	}

	cmd, ok := command(runtime.GOOS, link, app)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func validate(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", link)
	}

	return nil
}

func command(goos, input, app string) (*exec.Cmd, bool) {
	if app == "" {
		switch goos {
		case constant.Windows:
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
		case constant.Darwin:
			return exec.Command("open", input), true
		case constant.Linux:
			return exec.Command("xdg-open", input), true
		case constant.Android:
			return exec.Command("termux-open", input), true
		default:
			return nil, false
		}
	}

	switch goos {
	case constant.Windows:
		// start treats & as a command separator
		escaped := strings.ReplaceAll(input, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), true
	case constant.Darwin:
		return exec.Command("open", "-a", app, input), true
	case constant.Linux:
		return exec.Command(app, input), true
	case constant.Android:
		return exec.Command("termux-open", "--choose", input), true
	default:
		return nil, false
	}
}
