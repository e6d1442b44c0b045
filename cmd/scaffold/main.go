package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/scaffold/internal/config"
	"git.home.luguber.info/inful/scaffold/internal/generator"
	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
	"git.home.luguber.info/inful/scaffold/internal/version"
	"git.home.luguber.info/inful/scaffold/internal/writer"

	// Built-in plugins register themselves at init time.
	_ "git.home.luguber.info/inful/scaffold/internal/plugin/builtins/babel"
	_ "git.home.luguber.info/inful/scaffold/internal/plugin/builtins/base"
	_ "git.home.luguber.info/inful/scaffold/internal/plugin/builtins/eslint"
)

var CLI struct {
	Preset  string `short:"p" help:"Preset file path" default:"scaffold.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Generate struct {
		Output        string `short:"o" help:"Target project directory" default:"."`
		ExtractAll    bool   `help:"Extract every extractable manifest field to a config file"`
		CheckExisting bool   `help:"Prefer config filenames already present in the tree"`
		Git           bool   `help:"Initialize a git repository and commit the result" default:"true" negatable:""`
		Message       string `short:"m" help:"Commit message for the initial commit" default:"init scaffold"`
	} `cmd:"" help:"Generate a project from the configured preset"`

	Init struct {
		Force bool `help:"Overwrite existing preset file"`
	} `cmd:"" help:"Initialize a new preset file"`

	Plugins struct{} `cmd:"" help:"List registered plugins"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch kctx.Command() {
	case "generate":
		if err := runGenerate(ctx); err != nil {
			slog.Error("Generation failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := runInit(CLI.Preset, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
	case "plugins":
		runPlugins()
	case "version":
		fmt.Printf("scaffold %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
	}
}

func runGenerate(ctx context.Context) error {
	preset, err := config.Load(CLI.Preset)
	if err != nil {
		return err
	}

	registry := plugin.DefaultRegistry()
	plugins, err := preset.Resolve(registry)
	if err != nil {
		return err
	}

	pkg, invoking, err := loadManifest(CLI.Generate.Output, preset.Name)
	if err != nil {
		return err
	}

	slog.Info("Starting generation",
		"project", preset.Name,
		"output", CLI.Generate.Output,
		"plugins", len(plugins),
		"invoking", invoking)

	g := generator.New(CLI.Generate.Output, generator.Options{
		Manifest: pkg,
		Plugins:  plugins,
		Invoking: invoking,
		Registry: registry,
	})
	if err := g.Generate(ctx, CLI.Generate.ExtractAll, CLI.Generate.CheckExisting); err != nil {
		return err
	}

	if CLI.Generate.Git {
		if err := writer.BootstrapGit(ctx, CLI.Generate.Output, CLI.Generate.Message); err != nil {
			return err
		}
	}

	slog.Info("Project generated", "output", CLI.Generate.Output)
	return nil
}

// loadManifest reads the existing manifest when the target already is a
// project (a re-invocation), otherwise starts a fresh one named after the
// preset.
func loadManifest(dir, name string) (*manifest.Manifest, bool, error) {
	path := filepath.Join(dir, generator.ManifestFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		pkg := manifest.New()
		pkg.Set("name", name)
		pkg.Set("version", "0.1.0")
		return pkg, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read manifest: %w", err)
	}
	pkg, err := manifest.FromJSON(data)
	if err != nil {
		return nil, false, err
	}
	return pkg, true, nil
}

func runInit(path string, force bool) error {
	slog.Info("Initializing preset", "path", path, "force", force)
	return config.Init(path, force)
}

func runPlugins() {
	for _, p := range plugin.DefaultRegistry().List() {
		fmt.Printf("%s (%s)\n", p.ID, plugin.ShortID(p.ID))
	}
}
