package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/codegen"
	"github.com/specialistvlad/computedgen/internal/config"
	"github.com/specialistvlad/computedgen/internal/ctxlog"
	"github.com/specialistvlad/computedgen/internal/diag"
	"github.com/specialistvlad/computedgen/internal/fsutil"
	"github.com/specialistvlad/computedgen/internal/model"
	"github.com/specialistvlad/computedgen/internal/soundness"
)

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeWritten
	outcomeUnchanged
	outcomeStale
	outcomeFailed
	outcomeRemoved
)

type result struct {
	outcome outcome
	size    int
}

// generateFile runs load, check, generate and write for one input. Any error
// diagnostic fails the whole file and nothing is written for it.
func (a *App) generateFile(ctx context.Context, path string, found map[string]bool, reportMissing bool) result {
	ctx = ctxlog.With(ctx, "file", path)
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read input.", "error", err)
		return result{outcome: outcomeFailed}
	}

	file, diags := a.load(path, src)
	if !reportMissing {
		diags = dropKind(diags, diag.TypeNotFound)
	}
	for _, s := range file.Structs {
		found[s.Name] = true
	}

	var plans []*model.Plan
	for _, s := range file.Structs {
		plan, checkDiags := soundness.Check(s)
		diags = append(diags, checkDiags...)
		if plan != nil {
			plans = append(plans, plan)
		}
	}
	if diags.HasErrors() {
		a.report(path, src, diags)
		logger.Error("Input has errors, no output written.", "errors", len(diag.Kinds(diags)))
		return result{outcome: outcomeFailed}
	}
	if len(plans) == 0 {
		a.report(path, src, diags)
		logger.Debug("No annotated structures.")
		// With -type the other files' outputs belong to other invocations.
		if len(a.config.Types) == 0 {
			return a.removeOrphan(logger, path)
		}
		return result{outcome: outcomeSkipped}
	}

	out, genDiags := codegen.Generate(ctx, file, plans)
	diags = append(diags, genDiags...)
	a.report(path, src, diags)
	if genDiags.HasErrors() {
		logger.Error("Code generation failed.")
		return result{outcome: outcomeFailed}
	}

	target := fsutil.OutputPath(path, a.config.Suffix)
	logger = logger.With("output", target, "size", humanize.Bytes(uint64(len(out))))

	if a.config.Check {
		same, err := fsutil.Unchanged(target, out)
		if err != nil {
			logger.Error("Failed to read output.", "error", err)
			return result{outcome: outcomeFailed}
		}
		if !same {
			logger.Error("Generated file is out of date.")
			return result{outcome: outcomeStale, size: len(out)}
		}
		logger.Debug("Generated file is up to date.")
		return result{outcome: outcomeUnchanged, size: len(out)}
	}

	written, err := fsutil.WriteIfChanged(target, out)
	if err != nil {
		logger.Error("Failed to write output.", "error", err)
		return result{outcome: outcomeFailed}
	}
	if !written {
		logger.Debug("Output unchanged.")
		return result{outcome: outcomeUnchanged, size: len(out)}
	}
	logger.Info("Wrote generated file.", "structs", len(plans))
	return result{outcome: outcomeWritten, size: len(out)}
}

// removeOrphan handles an input that no longer declares annotated structures
// but still has a generated output next to it.
func (a *App) removeOrphan(logger *slog.Logger, path string) result {
	target := fsutil.OutputPath(path, a.config.Suffix)
	generated, err := fsutil.HasHeader(target, codegen.Header)
	if err != nil {
		logger.Error("Failed to read output.", "error", err)
		return result{outcome: outcomeFailed}
	}
	if !generated {
		return result{outcome: outcomeSkipped}
	}

	logger = logger.With("output", target)
	if a.config.Check {
		logger.Error("Generated file has no annotated structures left.")
		return result{outcome: outcomeStale}
	}
	if err := os.Remove(target); err != nil {
		logger.Error("Failed to remove output.", "error", err)
		return result{outcome: outcomeFailed}
	}
	logger.Info("Removed generated file with no annotated structures left.")
	return result{outcome: outcomeRemoved}
}

func (a *App) load(path string, src []byte) (*model.File, hcl.Diagnostics) {
	loader, ok := a.loaders.For(path)
	if !ok {
		return &model.File{Path: path, Source: src}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported input",
			Detail:   fmt.Sprintf("%s is neither Go source nor a schema file.", path),
		}}
	}
	return loader.Load(path, src, config.Selection{
		Types:       a.config.Types,
		Constructor: a.config.Constructor,
	})
}

// report renders diagnostics with source snippets. Output from concurrent
// watch batches never interleaves.
func (a *App) report(path string, src []byte, diags hcl.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	a.outMu.Lock()
	defer a.outMu.Unlock()
	if err := diag.Write(a.outW, diags, diag.Sources{path: src}); err != nil {
		a.logger.Error("Failed to render diagnostics.", "error", err)
	}
}

func dropKind(diags hcl.Diagnostics, kind diag.Kind) hcl.Diagnostics {
	var out hcl.Diagnostics
	for _, d := range diags {
		if diag.KindOf(d) != kind || d.Severity != hcl.DiagError {
			out = append(out, d)
		}
	}
	return out
}
