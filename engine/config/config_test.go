package config

import "testing"

func TestParse(t *testing.T) {
	data := []byte(`
[window]
title = "Sprite Demo"
width = 800
height = 600
min_width = 320

[engine]
tick_rate = 120.0
render_frame_limit = 144.0
profiling = true
log_level = "debug"

[renderer]
vsync = true
clear_color = [0.1, 0.2, 0.3]
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Window.Title != "Sprite Demo" {
		t.Errorf("title = %q, want %q", cfg.Window.Title, "Sprite Demo")
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Engine.TickRate != 120 {
		t.Errorf("tick rate = %v, want 120", cfg.Engine.TickRate)
	}
	if !cfg.Engine.Profiling {
		t.Error("profiling not parsed")
	}
	if cfg.Engine.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Engine.LogLevel)
	}
	if !cfg.Renderer.VSync {
		t.Error("vsync not parsed")
	}
	if cfg.Renderer.ClearColor != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("clear color = %v", cfg.Renderer.ClearColor)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Engine.TickRate != 0 || cfg.Window.Title != "" {
		t.Errorf("empty config should be zero-valued: %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("window = [not toml")); err == nil {
		t.Error("expected parse error")
	}
}

func TestWindowOptionsOmitZero(t *testing.T) {
	cfg := &Config{}
	if opts := cfg.WindowOptions(); len(opts) != 0 {
		t.Errorf("zero config produced %d window options, want 0", len(opts))
	}

	cfg.Window.Title = "t"
	cfg.Window.Width = 100
	if opts := cfg.WindowOptions(); len(opts) != 2 {
		t.Errorf("got %d window options, want 2", len(opts))
	}
}

func TestContextOptionsOmitZero(t *testing.T) {
	cfg := &Config{}
	if opts := cfg.ContextOptions(); len(opts) != 0 {
		t.Errorf("zero config produced %d context options, want 0", len(opts))
	}

	cfg.Renderer.VSync = true
	cfg.Renderer.ForceSoftware = true
	if opts := cfg.ContextOptions(); len(opts) != 2 {
		t.Errorf("got %d context options, want 2", len(opts))
	}
}

func TestRendererOptionsOmitZero(t *testing.T) {
	cfg := &Config{}
	if opts := cfg.RendererOptions(); len(opts) != 0 {
		t.Errorf("zero config produced %d renderer options, want 0", len(opts))
	}

	cfg.Renderer.ClearColor = [3]float32{0.1, 0.2, 0.3}
	if opts := cfg.RendererOptions(); len(opts) != 1 {
		t.Errorf("got %d renderer options, want 1", len(opts))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}
