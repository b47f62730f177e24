package engine

import (
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
title: test game
width: 800
height: 600
pixels_per_meter: 40
gravity:
  x: 0
  y: -9.81
debug: true
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "test game" {
		t.Errorf("title = %q", cfg.Title)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.PixelsPerMeter != 40 {
		t.Errorf("pixels_per_meter = %g, want 40", cfg.PixelsPerMeter)
	}
	if cfg.Gravity.Y != -9.81 {
		t.Errorf("gravity.y = %g, want -9.81", cfg.Gravity.Y)
	}
	if !cfg.Debug {
		t.Error("debug flag not parsed")
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`title: minimal`))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	if cfg.Width != want.Width || cfg.Height != want.Height {
		t.Errorf("size = %dx%d, want defaults %dx%d", cfg.Width, cfg.Height, want.Width, want.Height)
	}
	if cfg.PixelsPerMeter != want.PixelsPerMeter {
		t.Errorf("pixels_per_meter = %g, want default %g", cfg.PixelsPerMeter, want.PixelsPerMeter)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative width", "width: -1", "window size"},
		{"zero zoom", "pixels_per_meter: 0", "pixels_per_meter"},
		{"malformed yaml", "width: [", "unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
