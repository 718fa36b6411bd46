package tray

import (
	"errors"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestProbe(t *testing.T) {
	x11 := env(map[string]string{"DISPLAY": ":0"})
	wayland := env(map[string]string{"WAYLAND_DISPLAY": "wayland-0"})
	bare := env(nil)

	tray := "systray"
	if !systrayBuilt {
		tray = ""
	}

	tests := []struct {
		name          string
		headless      bool
		allowHeadless bool
		getenv        func(string) string
		goos          string
		want          string
	}{
		{name: "forced headless", headless: true, getenv: x11, goos: "linux", want: "headless"},
		{name: "x11", getenv: x11, goos: "linux", want: tray},
		{name: "wayland", getenv: wayland, goos: "linux", want: tray},
		{name: "macos", getenv: bare, goos: "darwin", want: tray},
		{name: "no display allowed", allowHeadless: true, getenv: bare, goos: "linux", want: "headless"},
		{name: "no display", getenv: bare, goos: "linux", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, err := probe(tt.headless, tt.allowHeadless, tt.getenv, tt.goos)
			if tt.want == "" {
				if tt.allowHeadless {
					return
				}
				if !errors.Is(err, ErrNoHost) {
					t.Errorf("probe() error = %v, want ErrNoHost", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("probe() error = %v", err)
			}
			if host.Name() != tt.want {
				t.Errorf("probe() host = %s, want %s", host.Name(), tt.want)
			}
		})
	}
}

func TestHeadlessHost(t *testing.T) {
	h := NewHeadlessHost()
	if err := h.SetMenu(Menu{}); !errors.Is(err, ErrMenuUnsupported) {
		t.Errorf("SetMenu() error = %v, want ErrMenuUnsupported", err)
	}

	var ready, exited bool
	done := make(chan struct{})
	go func() {
		h.Run(func() { ready = true }, func() { exited = true })
		close(done)
	}()

	h.Quit()
	h.Quit()
	<-done

	if !ready || !exited {
		t.Errorf("ready = %v, exited = %v", ready, exited)
	}
}
