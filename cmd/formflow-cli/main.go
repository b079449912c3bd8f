package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muir/nject"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/sink"
	"github.com/goliatone/go-formflow/pkg/sink/boltsink"
)

type cliConfig struct {
	formPath    string
	openapiPath string
	operationID string
	storePath   string
	renderer    string
	output      string
	interactive bool
}

func main() {
	formPath := flag.String("form", "", "YAML form definition path")
	openapiPath := flag.String("openapi", "", "OpenAPI document path")
	operationID := flag.String("operation", "login", "operation ID when loading from OpenAPI")
	storePath := flag.String("store", "", "bbolt commit journal path (in-memory if empty)")
	renderer := flag.String("renderer", "text", "renderer for non-interactive output (html|text)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	cfg := cliConfig{
		formPath:    *formPath,
		openapiPath: *openapiPath,
		operationID: *operationID,
		storePath:   *storePath,
		renderer:    *renderer,
		output:      *output,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	err := nject.Run("formflow-cli",
		cfg,
		func() context.Context { return context.Background() },
		loadDefinition,
		withSink,
		buildFlow,
		run,
	)
	if err != nil {
		log.Fatalf("formflow: %v", err)
	}
}

func loadDefinition(ctx context.Context, cfg cliConfig) (schema.Form, nject.TerminalError) {
	switch {
	case cfg.formPath != "":
		data, err := os.ReadFile(cfg.formPath)
		if err != nil {
			return schema.Form{}, err
		}
		def, err := formflow.FormFromYAML(data)
		if err != nil {
			return schema.Form{}, err
		}
		return def, nil
	case cfg.openapiPath != "":
		data, err := os.ReadFile(cfg.openapiPath)
		if err != nil {
			return schema.Form{}, err
		}
		def, err := formflow.FormFromOpenAPI(ctx, data, cfg.operationID)
		if err != nil {
			return schema.Form{}, err
		}
		return def, nil
	default:
		return schema.LoginForm(), nil
	}
}

// withSink wraps the rest of the chain so a bolt-backed journal is closed on
// the way out.
func withSink(inner func(sink.Sink) error, cfg cliConfig) error {
	if cfg.storePath == "" {
		return inner(sink.NewMemory())
	}
	store, err := boltsink.Open(cfg.storePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return inner(store)
}

func buildFlow(def schema.Form, committer sink.Sink) (*flow.Flow, nject.TerminalError) {
	f, err := flow.New(def, flow.WithSink(committer))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func run(ctx context.Context, cfg cliConfig, def schema.Form, f *flow.Flow) error {
	defer f.Dispose()

	if cfg.interactive {
		session := tui.NewSession(tui.WithConfirm(true))
		receipt, err := session.Run(ctx, f)
		if err != nil {
			return err
		}
		fmt.Printf("committed %s #%d at %s\n", def.Name, receipt.Seq, receipt.Committed.Format("15:04:05"))
		return nil
	}

	registry, err := formflow.DefaultRegistry()
	if err != nil {
		return err
	}
	renderer, err := registry.Get(cfg.renderer)
	if err != nil {
		return err
	}
	out, err := renderer.Render(ctx, def, render.FromFlow(f))
	if err != nil {
		return err
	}

	if cfg.output != "" {
		return os.WriteFile(cfg.output, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}
