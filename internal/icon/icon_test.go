package icon

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"github.com/mail-sync/mail-tray/internal/models"
)

func TestChooseKind(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	recent := 15 * time.Minute
	fresh := now.Unix() - 60
	old := now.Unix() - 3600

	tests := []struct {
		name     string
		status   models.RunStatus
		expected Kind
	}{
		{name: "ok and fresh", status: models.RunStatus{Status: "ok", LastSuccess: fresh}, expected: KindNormal},
		{name: "ok exactly at threshold", status: models.RunStatus{Status: "ok", LastSuccess: now.Unix() - 900}, expected: KindNormal},
		{name: "ok but old", status: models.RunStatus{Status: "ok", LastSuccess: old}, expected: KindStale},
		{name: "ok never succeeded", status: models.RunStatus{Status: "ok"}, expected: KindStale},
		{name: "running and old", status: models.RunStatus{Status: "running", LastSuccess: old}, expected: KindNormal},
		{name: "running never succeeded", status: models.RunStatus{Status: "running"}, expected: KindNormal},
		{name: "missing credential", status: models.RunStatus{Status: "missing-credential", LastSuccess: fresh}, expected: KindMissingCredential},
		{name: "legacy smartcard", status: models.RunStatus{Status: "missing-smartcard"}, expected: KindMissingCredential},
		{name: "failed", status: models.RunStatus{Status: "failed", LastSuccess: fresh}, expected: KindFailed},
		{name: "unknown", status: models.RunStatus{Status: "unknown"}, expected: KindFailed},
		{name: "corrupt", status: models.RunStatus{Status: "corrupt", LastSuccess: fresh}, expected: KindFailed},
		{name: "empty status", status: models.RunStatus{}, expected: KindFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseKind(tt.status, recent, now); got != tt.expected {
				t.Errorf("ChooseKind(%+v) = %s, want %s", tt.status, got, tt.expected)
			}
		})
	}
}

func TestChooseKindIsTotal(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	valid := map[Kind]bool{KindNormal: true, KindMissingCredential: true, KindFailed: true, KindStale: true}

	for _, status := range []string{"", "ok", "running", "missing-credential", "failed", "corrupt", "unknown", "weird"} {
		for _, last := range []int64{0, now.Unix(), now.Unix() - 10_000, now.Unix() + 500} {
			st := models.RunStatus{Status: status, LastSuccess: last}
			kind := ChooseKind(st, time.Hour, now)
			if !valid[kind] {
				t.Errorf("ChooseKind(%+v) = %q, not a known kind", st, kind)
			}
			if status == "running" && kind != KindNormal {
				t.Errorf("running status mapped to %s", kind)
			}
		}
	}
}

func TestChooseOverlay(t *testing.T) {
	unread := models.InboxCounts{"a/inbox": {Unread: 2, Total: 5}}
	read := models.InboxCounts{"a/inbox": {Unread: 0, Total: 5}}

	tests := []struct {
		name     string
		status   string
		counts   models.InboxCounts
		expected Overlay
	}{
		{name: "running beats unread", status: "running", counts: unread, expected: OverlaySpinner},
		{name: "running with nothing unread", status: "running", counts: nil, expected: OverlaySpinner},
		{name: "unread", status: "ok", counts: unread, expected: OverlayUnread},
		{name: "unread while failed", status: "failed", counts: unread, expected: OverlayUnread},
		{name: "all read", status: "ok", counts: read, expected: OverlayNone},
		{name: "no inboxes", status: "ok", counts: models.InboxCounts{}, expected: OverlayNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChooseOverlay(models.RunStatus{Status: tt.status}, tt.counts)
			if got != tt.expected {
				t.Errorf("ChooseOverlay() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func allSpecs() []Spec {
	var specs []Spec
	for _, k := range []Kind{KindNormal, KindMissingCredential, KindFailed, KindStale} {
		for _, o := range []Overlay{OverlayNone, OverlayUnread, OverlaySpinner} {
			specs = append(specs, Spec{Kind: k, Overlay: o})
		}
	}
	return specs
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, spec := range allSpecs() {
		first, err := EncodePNG(Render(spec))
		if err != nil {
			t.Fatalf("EncodePNG(%v) error = %v", spec, err)
		}
		second, err := EncodePNG(Render(spec))
		if err != nil {
			t.Fatalf("EncodePNG(%v) error = %v", spec, err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("Render(%v) not byte-identical across calls", spec)
		}

		cached, err := Bytes(spec, FormatPNG)
		if err != nil {
			t.Fatalf("Bytes(%v) error = %v", spec, err)
		}
		if !bytes.Equal(first, cached) {
			t.Errorf("Bytes(%v) differs from a fresh render", spec)
		}
	}
}

func TestRenderDistinguishesSpecs(t *testing.T) {
	seen := make(map[string]Spec)
	for _, spec := range allSpecs() {
		data, err := Bytes(spec, FormatPNG)
		if err != nil {
			t.Fatal(err)
		}
		if prev, dup := seen[string(data)]; dup {
			t.Errorf("%v renders identically to %v", spec, prev)
		}
		seen[string(data)] = spec
	}
}

func TestRenderPixels(t *testing.T) {
	img := Render(Spec{Kind: KindNormal, Overlay: OverlayNone})

	if b := img.Bounds(); b.Dx() != Size || b.Dy() != Size {
		t.Fatalf("bounds = %v, want %dx%d", b, Size, Size)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha = %d, want transparent", a)
	}
	body := color.RGBAModel.Convert(img.At(20, 48)).(color.RGBA)
	if body != rgb(67, 160, 71) {
		t.Errorf("envelope body = %v, want normal green", body)
	}

	badged := Render(Spec{Kind: KindNormal, Overlay: OverlayUnread})
	dot := color.RGBAModel.Convert(badged.At(53, 53)).(color.RGBA)
	if dot != badgeFill {
		t.Errorf("badge center = %v, want %v", dot, badgeFill)
	}
}

func TestEncodeICO(t *testing.T) {
	data, err := Bytes(Spec{Kind: KindStale, Overlay: OverlayNone}, FormatICO)
	if err != nil {
		t.Fatalf("Bytes(ICO) error = %v", err)
	}
	// ICONDIR header: reserved 0, type 1.
	if len(data) < 6 || data[0] != 0 || data[1] != 0 || data[2] != 1 || data[3] != 0 {
		t.Errorf("ICO header = % x", data[:min(6, len(data))])
	}
}
