// Package player drives an external mpv process as a playback engine.
package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/track"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// ErrDRMUnsupported is returned for protected media; mpv has no Widevine CDM.
var ErrDRMUnsupported = errors.New("mpv cannot play DRM protected media")

var errNoVideoTracks = errors.New("mpv reports no video tracks yet")

// MPV is an engine that probes the manifest for renditions and plays it in
// mpv, switching mpv's video track to the rendition the selector picks.
type MPV struct {
	*engine.Probe

	binary     string
	title      string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}

	mu      sync.Mutex // guards IPC writes
	started bool

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMPV returns an engine using the mpv binary from PATH.
func NewMPV(client *http.Client, initial track.Constraint, title string) *MPV {
	m := &MPV{
		Probe:  engine.NewProbe(client, initial),
		binary: "mpv",
		title:  sanitizeTitle(title),
		exited: make(chan struct{}),
		stop:   make(chan struct{}),
	}

	m.Selector().OnChange(func(track.Constraint) {
		if err := m.applySelection(); err != nil {
			log.Warnf("failed to switch video track: %s", err)
		}
	})
	m.OnStateChange(func(s engine.State) {
		if s != engine.StateReady {
			return
		}

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.applyWhenLoaded()
		}()
	})

	return m
}

// Prepare probes the manifest and launches mpv on it.
func (m *MPV) Prepare(ctx context.Context, item engine.MediaItem) error {
	if item.DRM.IsPresent() {
		return ErrDRMUnsupported
	}

	target, err := sanitizeMediaTarget(item.URI)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.started {
		if _, err := m.sendCommand([]any{"loadfile", target, "replace"}); err != nil {
			return err
		}
	} else if err := m.start(target); err != nil {
		return err
	}

	return m.Probe.Prepare(ctx, item)
}

func (m *MPV) args(target string) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", m.title),
		fmt.Sprintf("--user-agent=%s", constant.UserAgent),
		"--force-window=yes",
		"--idle=yes",
		target,
	}
}

func (m *MPV) start(target string) error {
	if m.socketPath == "" {
		random := make([]byte, 4)
		if _, err := rand.Read(random); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.App, random))
	}

	m.cmd = exec.Command(m.binary, m.args(target)...)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func(cmd *exec.Cmd, exited chan struct{}) {
		_ = cmd.Wait()
		close(exited)
	}(m.cmd, m.exited)

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.started = true
	return nil
}

// Wait is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// applyWhenLoaded retries the selection until mpv has demuxed the stream
// and exposes its video tracks.
func (m *MPV) applyWhenLoaded() {
	var err error
	for i := 0; i < socketWaitRetries; i++ {
		if err = m.applySelection(); err == nil {
			return
		}

		select {
		case <-m.stop:
			return
		case <-time.After(socketWaitDelay):
		}
	}

	log.Warnf("failed to switch video track: %s", err)
}

// applySelection switches mpv to the video track matching the rendition the
// selector picks.
func (m *MPV) applySelection() error {
	if m.socketPath == "" {
		return nil
	}

	renditions, ok := m.Renditions()
	if !ok {
		return nil
	}

	r, ok := m.Selector().Select(renditions, 0)
	if !ok {
		return nil
	}

	tracks, err := m.videoTracks()
	if err != nil {
		return err
	}

	id, ok := matchTrack(tracks, r)
	if !ok {
		return errNoVideoTracks
	}

	if err := m.Set("vid", id); err != nil {
		return fmt.Errorf("select %s: %w", r.Label(), err)
	}

	log.Infof("mpv switched to %s (track %d)", r.Label(), id)
	return nil
}

// Set writes an mpv property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand([]any{"set_property", property, value})
	return err
}

// Release quits mpv and stops probing.
func (m *MPV) Release() {
	m.stopOnce.Do(func() { close(m.stop) })
	m.Probe.Release()
	m.wg.Wait()

	if m.socketPath == "" {
		return
	}

	if m.started {
		_, _ = m.sendCommand([]any{"quit"})

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}
	}

	_ = os.Remove(m.socketPath)
	m.started = false
}

// sanitizeMediaTarget keeps flag-like or non-http targets away from mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-'")
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l, nil
	default:
		return "", fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
	}
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
