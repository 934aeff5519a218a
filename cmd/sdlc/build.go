package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"sdlc/internal/backend"
	"sdlc/internal/cache"
	"sdlc/internal/diag"
	"sdlc/internal/diagfmt"
	"sdlc/internal/dispatch"
	"sdlc/internal/frontend"
	"sdlc/internal/layout"
	"sdlc/internal/listing"
	"sdlc/internal/pipeline"
	"sdlc/internal/project"
	"sdlc/internal/source"
	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

// activeFrontend is the lexer/parser this build links against. spec.md's
// Non-goals keep that an external collaborator: none ships in this module,
// so a caller embedding sdlc as a library sets this before Execute runs.
var activeFrontend frontend.Driver

func init() {
	buildCmd.Flags().Int("align", 0, "global alignment cap in bytes (0, 1, 2, 4, or 8)")
	buildCmd.Flags().Bool("b32", false, "assume a 32-bit longword width (sets --align=4 unless --align is given)")
	buildCmd.Flags().Bool("b64", false, "assume a 64-bit longword width (sets --align=8 unless --align is given)")
	buildCmd.Flags().Bool("check", false, "run semantic checks only, produce no backend output")
	buildCmd.Flags().Bool("nocheck", true, "produce backend output (default)")
	buildCmd.Flags().Bool("comments", true, "pass comments through to backend output")
	buildCmd.Flags().Bool("nocomments", false, "drop comments from backend output")
	buildCmd.Flags().Bool("copy", false, "copy the input path into a header comment on every output")
	buildCmd.Flags().Bool("nocopy", true, "suppress the banner copy (default)")
	buildCmd.Flags().Bool("header", true, "emit a generated-file header comment")
	buildCmd.Flags().Bool("noheader", false, "suppress the generated-file header comment")
	buildCmd.Flags().String("list", "", "write a listing file (path optional; defaults to <input>.lis)")
	buildCmd.Flags().Lookup("list").NoOptDefVal = "-"
	buildCmd.Flags().Bool("nolist", true, "suppress the listing file (default)")
	buildCmd.Flags().Bool("member", true, "emit bitfield members individually rather than as a packed host")
	buildCmd.Flags().Bool("nomember", false, "accepted for compatibility; has no effect (bitfield members are always emitted individually)")
	buildCmd.Flags().String("suppress", "", "suppress qualifier: prefix or tag")
	buildCmd.Flags().Lookup("suppress").NoOptDefVal = "prefix"
	buildCmd.Flags().Bool("nosuppress", true, "disable suppression (default)")
	buildCmd.Flags().StringArray("lang", nil, "target language, optionally =outputfile (repeatable, at least one required)")
	buildCmd.Flags().StringArray("symbol", nil, "predefine a condition symbol as name=value (repeatable)")
	buildCmd.Flags().Bool("trace", false, "trace build pipeline stages to stderr")
	buildCmd.Flags().Bool("verbose", false, "show a live progress display")
}

var buildCmd = &cobra.Command{
	Use:   "build [flags] <input.sdl>",
	Short: "Resolve a structure definition and emit per-language output",
	Args:  cobra.ExactArgs(1),
	RunE:  buildExecution,
}

func buildExecution(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	inputPath := args[0]

	alignFlag, _ := flags.GetInt("align")
	b32, _ := flags.GetBool("b32")
	b64, _ := flags.GetBool("b64")
	if b32 && b64 {
		return fmt.Errorf("--b32 and --b64 are mutually exclusive")
	}
	suppressFlag, _ := flags.GetString("suppress")
	langsRaw, _ := flags.GetStringArray("lang")
	symbolsRaw, _ := flags.GetStringArray("symbol")
	traceFlag, _ := flags.GetBool("trace")
	verboseFlag, _ := flags.GetBool("verbose")
	listFlag, _ := flags.GetString("list")
	checkOnly, _ := flags.GetBool("check")
	opts := outputOptions{
		comments: !flags.Changed("nocomments"),
		header:   !flags.Changed("noheader"),
		copy:     flags.Changed("copy"),
		source:   inputPath,
	}

	manifestAlign := 0
	if cfg, found, err := project.LoadFromDir(filepath.Dir(inputPath)); err != nil {
		return fmt.Errorf("failed to load sdlc.toml: %w", err)
	} else if found {
		manifestAlign = cfg.Build.Align
		if len(langsRaw) == 0 {
			langsRaw = cfg.Build.Languages
		}
	}

	align, err := resolveAlign(alignFlag, flags.Changed("align"), b32, b64, manifestAlign)
	if err != nil {
		return err
	}
	suppress, err := resolveSuppress(suppressFlag)
	if err != nil {
		return err
	}
	// suppress is validated above (prefix|tag, original_source's -S qualifier)
	// but the shipped C backend never renders Item.Prefix/Item.Tag in the
	// first place, so there is nothing for it to hide yet.
	_ = suppress

	targets, err := parseLangFlags(langsRaw)
	if err != nil {
		return err
	}
	symbols, err := parseSymbolFlags(symbolsRaw)
	if err != nil {
		return err
	}

	languages := make([]string, len(targets))
	for i, t := range targets {
		languages[i] = t.name
	}

	backends, outputs, err := buildBackends(targets)
	if err != nil {
		return err
	}
	defer closeOutputs(outputs)
	for i, b := range backends {
		backends[i] = wrapBackend(b, opts)
	}

	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	fs := source.NewFileSet()
	fileID, loadErr := fs.Load(inputPath)
	if loadErr != nil {
		diag.Error(reporter, diag.InputFileOpen, source.Span{}, loadErr.Error()).Emit()
		return reportAndExit(cmd, bag, fs)
	}
	file := fs.Get(fileID)

	engine := layout.New(align)
	dispatchBackends := backends
	if checkOnly {
		// --check resolves and reports only; no backend is called.
		dispatchBackends = nil
	}
	d := dispatch.New(engine, languages, dispatchBackends, reporter)
	for _, s := range symbols {
		d.Symbols.DefineCondition(s.name, s.val)
	}

	listPath := listTarget(listFlag, flags.Changed("list"), inputPath)

	dc, dcErr := cache.OpenDiskCache("sdlc")
	if dcErr != nil && traceFlag {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: disk cache unavailable: %v\n", dcErr)
	}
	key := cacheKey(file, align, languages)

	// A --check rerun of unchanged source under unchanged options needs
	// nothing from the layout engine beyond the fact that it was already
	// clean: skip straight to reporting (spec.md §5's cache intent,
	// mirroring teacher's disk-cache-hit short-circuit in
	// internal/driver/parallel_diagnose.go).
	if checkOnly && dc != nil {
		var cached cache.DiskPayload
		if hit, err := dc.Get(key, &cached); err == nil && hit && cached.SourceHash == project.Digest(file.Hash) && !cached.Broken {
			if traceFlag {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: cache hit, skipping the layout engine\n")
			}
			return reportAndExit(cmd, bag, fs)
		}
	}

	run := func(events chan<- pipeline.Event) error {
		return runBuildPipeline(d, file, fs, bag, languages, checkOnly, listPath, events, cmd.ErrOrStderr(), traceFlag)
	}

	var pipelineErr error
	if verboseFlag {
		pipelineErr = runPipelineWithUI("sdlc build "+filepath.Base(inputPath), languages, run)
	} else {
		pipelineErr = run(nil)
	}
	if pipelineErr != nil && bag.Len() == 0 {
		return pipelineErr
	}

	if err := populateCache(dc, key, file, d.Reg.Aggregates(), bag.FatalCount() > 0); err != nil && traceFlag {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: cache write skipped: %v\n", err)
	}

	return reportAndExit(cmd, bag, fs)
}

// runBuildPipeline drives the dispatcher over file and, if requested,
// writes the listing file, reporting Load/Resolve/Emit/List transitions
// on events (nil when --verbose is off).
func runBuildPipeline(d *dispatch.Dispatcher, file *source.File, fs *source.FileSet, bag *diag.Bag, languages []string, checkOnly bool, listPath string, events chan<- pipeline.Event, traceOut io.Writer, trace bool) error {
	emit := func(ev pipeline.Event) {
		traceEmit(traceOut, trace, ev)
		if events != nil {
			events <- ev
		}
	}

	emit(pipeline.Event{Stage: pipeline.StageLoad, Status: pipeline.StatusDone})

	if activeFrontend == nil {
		return fmt.Errorf("no SDL frontend is linked into this binary: the lexer/parser is an external collaborator (spec.md Non-goals); embed sdlc and set cmd/sdlc's activeFrontend before calling Execute")
	}

	emit(pipeline.Event{Stage: pipeline.StageResolve, Status: pipeline.StatusWorking})
	if err := activeFrontend.Run(d, file); err != nil {
		emit(pipeline.Event{Stage: pipeline.StageResolve, Status: pipeline.StatusError})
		return err
	}
	emit(pipeline.Event{Stage: pipeline.StageResolve, Status: pipeline.StatusDone})

	if !checkOnly {
		for _, name := range languages {
			emit(pipeline.Event{Target: name, Stage: pipeline.StageEmit, Status: pipeline.StatusDone})
		}
	}

	if listPath != "" {
		if err := writeListing(listPath, file, fs, bag); err != nil {
			return err
		}
		emit(pipeline.Event{Stage: pipeline.StageList, Status: pipeline.StatusDone})
	}
	return nil
}

// buildBackends constructs one Backend per requested language and opens
// its output file (or stdout when none was given). "c" is the only
// language this module ships a reference backend for (spec.md §5
// Non-goals); anything else surfaces as a NoOutput configuration fault.
func buildBackends(targets []langTarget) ([]backend.Backend, []*os.File, error) {
	backends := make([]backend.Backend, 0, len(targets))
	var opened []*os.File
	for _, t := range targets {
		switch t.name {
		case "c":
			w, f, err := openOutput(t.file)
			if err != nil {
				return nil, opened, err
			}
			if f != nil {
				opened = append(opened, f)
			}
			backends = append(backends, backend.NewCBackend(w))
		default:
			return nil, opened, fmt.Errorf("%s: no backend is registered for language %q (only \"c\" ships with this module)", diag.NoOutput, t.name)
		}
	}
	return backends, opened, nil
}

func openOutput(path string) (*os.File, *os.File, error) {
	if path == "" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", diag.OutputFileOpen, err)
	}
	return f, f, nil
}

func closeOutputs(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

func writeListing(path string, file *source.File, fs *source.FileSet, bag *diag.Bag) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := listing.New(f, file.Path, time.Now())
	for _, d := range bag.Items() {
		w.AddFault(fs, d)
	}
	if err := w.WriteFile(file); err != nil {
		return err
	}
	return w.Close()
}

// cacheKey combines source content with every layout-affecting option
// (spec.md §5): a hit under one --align/--lang combination must never be
// reused for another.
func cacheKey(file *source.File, align int, languages []string) project.Digest {
	key := project.Digest(file.Hash)
	for _, lang := range languages {
		var name project.Digest
		copy(name[:], lang)
		key = project.Combine(key, project.Digest{byte(align)}, name)
	}
	return key
}

// populateCache writes the real layout facts resolved this run — every
// top-level aggregate's offsets and sizes — so a later --check rerun
// under the same key can trust a cached "clean" verdict instead of
// re-resolving the source.
func populateCache(dc *cache.DiskCache, key project.Digest, file *source.File, aggregates []*typeset.Aggregate, broken bool) error {
	if dc == nil {
		return nil
	}
	payload := &cache.DiskPayload{
		SourceHash: project.Digest(file.Hash),
		Aggregates: make([]cache.AggregateLayout, 0, len(aggregates)),
		Broken:     broken,
	}
	for _, ag := range aggregates {
		payload.Aggregates = append(payload.Aggregates, toAggregateLayout(ag))
	}
	return dc.Put(key, payload)
}

// toAggregateLayout flattens one resolved aggregate's direct members into
// cache.MemberLayout rows. Nested subaggregates contribute their own
// offset/size as a single row rather than recursing, since DiskPayload
// models a module's aggregates as a flat list addressed by name.
func toAggregateLayout(ag *typeset.Aggregate) cache.AggregateLayout {
	out := cache.AggregateLayout{
		Name:      ag.Name,
		Size:      ag.Size,
		Alignment: effectiveAlignmentFor(ag),
	}
	for _, m := range ag.Members {
		switch m.Kind {
		case typeset.MemberItem:
			it := m.ItemData
			tag, _ := it.Type.AsScalar()
			out.Members = append(out.Members, cache.MemberLayout{
				Name:       it.Name,
				Offset:     it.Offset,
				BitOffset:  it.BitOffset,
				LengthBits: it.LengthBits,
				Size:       it.RealSize(tag == value.TagCharVary, tag == value.TagDecimal),
			})
		case typeset.MemberSubaggregate:
			sub := m.Subaggr
			out.Members = append(out.Members, cache.MemberLayout{
				Name:   sub.Name,
				Offset: sub.Offset,
				Size:   sub.Size,
			})
		}
	}
	return out
}

func effectiveAlignmentFor(ag *typeset.Aggregate) int {
	switch ag.Alignment.Kind {
	case typeset.AlignNone:
		return 1
	case typeset.AlignExplicit:
		return ag.Alignment.Explicit
	default:
		return 0
	}
}

func reportAndExit(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	bag.Sort()
	color, _ := cmd.Root().PersistentFlags().GetString("color")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet && bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.Options{
			Color:     wantColor(color, os.Stderr),
			ShowNotes: true,
		})
	}
	if bag.FatalCount() > 0 {
		return fmt.Errorf("%d fatal diagnostic(s)", bag.FatalCount())
	}
	return nil
}
