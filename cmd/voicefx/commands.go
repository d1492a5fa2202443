package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/audio/capture"
	"github.com/cwbudde/algo-voicefx/audio/monitor"
	"github.com/cwbudde/algo-voicefx/audio/render"
	"github.com/cwbudde/algo-voicefx/audio/wavfile"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/route"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
	"github.com/cwbudde/algo-voicefx/internal/cli"
	"github.com/cwbudde/algo-voicefx/internal/playback"
	"github.com/cwbudde/algo-voicefx/internal/tui"
)

// EffectFlags select an effect.
type EffectFlags struct {
	Effect    string `short:"e" help:"Effect id (see 'voicefx list')." default:"delay" env:"VOICEFX_EFFECT"`
	Intensity int    `short:"i" help:"Effect intensity, 0 to 100." default:"50" env:"VOICEFX_INTENSITY"`
	Seed      int64  `help:"Seed of synthesized impulse responses." default:"1" env:"VOICEFX_SEED"`
	Quantum   int    `help:"Processing block size in samples; must not exceed the shortest feedback delay (0.1 s)." default:"128" env:"VOICEFX_QUANTUM"`
}

func (f EffectFlags) id() voicefx.ID { return voicefx.ID(f.Effect) }

func (f EffectFlags) intensity() voicefx.Intensity { return voicefx.Intensity(f.Intensity) }

func (f EffectFlags) warnUnknown(log logrus.FieldLogger) {
	if !f.id().Known() {
		log.WithField("effect", f.Effect).Warn("unknown effect, audio passes through unchanged")
	}
}

// ListCmd prints the catalog.
type ListCmd struct {
	JSON bool `help:"Print as JSON."`
}

// Run implements the list command.
func (c *ListCmd) Run(_ *Globals) error {
	effects := route.ListEffects()
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(effects)
	}
	cli.PrintEffects(os.Stdout, effects)
	return nil
}

// RenderCmd renders a recording offline.
type RenderCmd struct {
	EffectFlags

	Input  string `arg:"" help:"Recorded WAV file." type:"existingfile"`
	Output string `short:"o" help:"Output file (default voice-effect-<id>-<unixms>.wav)." type:"path" placeholder:"path"`
}

// Run implements the render command.
func (c *RenderCmd) Run(g *Globals) error {
	c.warnUnknown(g.log)

	recording, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}

	r, err := render.New(
		render.WithLogger(g.log),
		render.WithSeed(c.Seed),
		render.WithQuantum(c.Quantum),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	exp := r.Export(recording, c.id(), c.intensity())

	out := c.Output
	if out == "" {
		out = exp.Filename
	}
	if err := os.WriteFile(out, exp.Data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	cli.PrintKeyValue(os.Stdout, "Output", out)
	cli.PrintKeyValue(os.Stdout, "Processed", exp.Processed)
	if exp.Processed {
		cli.PrintKeyValue(os.Stdout, "Peak", fmt.Sprintf("%.3f", exp.Stats.Peak))
		cli.PrintKeyValue(os.Stdout, "Clipped samples", exp.Stats.Clipped)
	}
	cli.PrintKeyValue(os.Stdout, "Elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// GraphCmd prints an effect topology.
type GraphCmd struct {
	EffectFlags

	SampleRate float64 `help:"Sample rate in Hz." default:"44100" env:"VOICEFX_SAMPLE_RATE"`
}

// Run implements the graph command.
func (c *GraphCmd) Run(_ *Globals) error {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(c.SampleRate),
		core.WithBlockSize(c.Quantum),
	)

	fx, err := voicefx.Build(cfg, c.id(), c.intensity(), voicefx.WithSeed(c.Seed))
	if err != nil {
		return err
	}
	defer fx.Close()

	out := struct {
		Effect    voicefx.ID        `json:"effect"`
		Intensity voicefx.Intensity `json:"intensity"`
		Mix       voicefx.Mix       `json:"mix"`
		Graph     any               `json:"graph"`
	}{fx.ID(), fx.Intensity(), fx.Mix(), fx.Describe()}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PreviewCmd monitors a looped recording through the interactive TUI.
type PreviewCmd struct {
	EffectFlags

	Input     string `arg:"" help:"WAV file standing in for the microphone." type:"existingfile"`
	OutputDir string `help:"Directory for exported takes." default:"." type:"path" env:"VOICEFX_OUTPUT_DIR"`
}

// Run implements the preview command.
func (c *PreviewCmd) Run(g *Globals) error {
	dev, err := capture.OpenFile(c.Input, true)
	if err != nil {
		return err
	}

	mon, err := monitor.New(dev, dev.SampleRate(),
		monitor.WithLogger(g.log),
		monitor.WithSeed(c.Seed),
		monitor.WithQuantum(c.Quantum),
	)
	if err != nil {
		return err
	}
	defer mon.Close()

	player, err := playback.NewPlayer(int(dev.SampleRate()), mon)
	if err != nil {
		return err
	}
	defer player.Stop()
	player.Play()

	r, err := render.New(render.WithLogger(g.log), render.WithSeed(c.Seed), render.WithQuantum(c.Quantum))
	if err != nil {
		return err
	}

	export := func(take *buffer.Signal, id voicefx.ID, intensity voicefx.Intensity) (string, error) {
		recording, err := wavfile.Encode(take)
		if err != nil {
			return "", err
		}
		exp := r.Export(recording, id, intensity)
		path := filepath.Join(c.OutputDir, exp.Filename)
		if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
			return "", err
		}
		return path, nil
	}

	// The TUI owns the terminal; keep log output off it.
	logOut, err := openLog(previewLogPath)
	if err != nil {
		g.log.WithError(err).Warn("cannot open log file, discarding logs")
		g.log.SetOutput(io.Discard)
	} else {
		g.log.SetOutput(logOut)
		defer func() {
			g.log.SetOutput(os.Stderr)
			logOut.Close()
		}()
	}

	model := tui.NewModel(mon, export, c.id(), c.intensity())
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// previewLogPath receives log output while the TUI owns the terminal.
const previewLogPath = "voicefx.log"

func openLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
