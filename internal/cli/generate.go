package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	sferrors "github.com/slotforge/slotforge/pkg/errors"
	"github.com/slotforge/slotforge/pkg/search"
	"github.com/slotforge/slotforge/pkg/store"
	"github.com/slotforge/slotforge/pkg/track"
)

// defaultStoreDir is where the file-backed result store lives unless
// configured otherwise.
const defaultStoreDir = ".slotforge/store"

// generateOpts holds the command-line flags for the generate command.
// Unset numeric flags stay zero and fall back to config file values, then to
// the engine defaults.
type generateOpts struct {
	turns              int     // total turn pieces (right plus left)
	straights          int     // total straight pieces
	start              string  // required layout prefix
	turnRadius         float64 // turn piece radius in meters
	straightLength     float64 // straight piece length in meters
	lapTolerance       float64 // closure position tolerance
	orientTolerance    float64 // closure heading tolerance
	minSeparation      float64 // minimum clearance between trace points
	allowIntersections bool    // accept self-crossing layouts
	maxTracks          int     // accepted layout cap per split
	maxTimeSec         int     // wall-clock budget per split in seconds
	workers            int     // concurrent split searches

	output     string // optional JSON output file
	configFile string // TOML config file path
	storeDir   string // file store directory
	redisURL   string // redis store URL (overrides storeDir)
	noStore    bool   // skip the result store entirely
	refresh    bool   // ignore stored results, search anew
}

// runDocument is the JSON form of a finished search, both for --output files
// and for the result store.
type runDocument struct {
	GeneratedAt time.Time `json:"generated_at"`
	Turns       int       `json:"turns"`
	Straights   int       `json:"straights"`
	Start       string    `json:"start,omitempty"`
	Layouts     []string  `json:"layouts"`
	Splits      int       `json:"splits"`
	TimedOut    int       `json:"timed_out_splits"`
	ElapsedMS   int64     `json:"elapsed_ms"`
}

// newGenerateCmd creates the generate command, the heart of the CLI.
// It enumerates closed-loop layouts for the given piece inventory, consults
// the result store before searching, and prints a styled summary.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enumerate closed-loop track layouts",
		Long: `Generate searches all distributions of turn pieces into right and left
curves and enumerates piece sequences that form closed, non-crossing loops.

Piece counts come from flags or from a slotforge.toml config file; flags win.
Results are stored keyed by the full parameter set, so repeating a search is
instant until --refresh forces a new run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configFile)
			if err != nil {
				return err
			}
			mergeConfig(&opts, cfg, cmd.Flags().Changed)
			return runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.turns, "turns", "t", 0, "total number of turn pieces")
	cmd.Flags().IntVarP(&opts.straights, "straights", "s", 0, "total number of straight pieces")
	cmd.Flags().StringVar(&opts.start, "start", "", "required layout prefix (e.g. 'RRS')")
	cmd.Flags().Float64Var(&opts.turnRadius, "turn-radius", 0, "turn piece radius in meters")
	cmd.Flags().Float64Var(&opts.straightLength, "straight-length", 0, "straight piece length in meters")
	cmd.Flags().Float64Var(&opts.lapTolerance, "lap-tolerance", 0, "closure position tolerance in meters")
	cmd.Flags().Float64Var(&opts.orientTolerance, "orientation-tolerance", 0, "closure heading tolerance in radians")
	cmd.Flags().Float64Var(&opts.minSeparation, "min-separation", 0, "minimum clearance between trace points in meters")
	cmd.Flags().BoolVar(&opts.allowIntersections, "allow-intersections", false, "accept self-crossing layouts")
	cmd.Flags().IntVar(&opts.maxTracks, "max-tracks", 0, "accepted layout cap per split")
	cmd.Flags().IntVar(&opts.maxTimeSec, "max-time", 0, "wall-clock budget per split in seconds")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent split searches (default: CPU count)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write results as JSON to this file")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "TOML config file (default: slotforge.toml if present)")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "result store directory")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for the result store")
	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "skip the result store")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore stored results and search anew")

	return cmd
}

// mergeConfig fills unset flags from the config file. A flag the user touched
// always wins over the file.
func mergeConfig(opts *generateOpts, cfg fileConfig, changed func(string) bool) {
	g := cfg.Generate
	if !changed("turns") && g.Turns != 0 {
		opts.turns = g.Turns
	}
	if !changed("straights") && g.Straights != 0 {
		opts.straights = g.Straights
	}
	if !changed("start") && g.Start != "" {
		opts.start = g.Start
	}
	if !changed("turn-radius") && g.TurnRadius != 0 {
		opts.turnRadius = g.TurnRadius
	}
	if !changed("straight-length") && g.StraightLength != 0 {
		opts.straightLength = g.StraightLength
	}
	if !changed("lap-tolerance") && g.LapTolerance != 0 {
		opts.lapTolerance = g.LapTolerance
	}
	if !changed("orientation-tolerance") && g.OrientTolerance != 0 {
		opts.orientTolerance = g.OrientTolerance
	}
	if !changed("min-separation") && g.MinSeparation != 0 {
		opts.minSeparation = g.MinSeparation
	}
	if !changed("allow-intersections") && g.AllowIntersections {
		opts.allowIntersections = true
	}
	if !changed("max-tracks") && g.MaxTracks != 0 {
		opts.maxTracks = g.MaxTracks
	}
	if !changed("max-time") && g.MaxTimeSec != 0 {
		opts.maxTimeSec = g.MaxTimeSec
	}
	if !changed("workers") && g.Workers != 0 {
		opts.workers = g.Workers
	}

	s := cfg.Store
	if !changed("store-dir") && s.Dir != "" {
		opts.storeDir = s.Dir
	}
	if !changed("redis") && s.RedisURL != "" {
		opts.redisURL = s.RedisURL
	}
	if !changed("no-store") && s.Disabled {
		opts.noStore = true
	}
}

// searchOptions translates CLI flags into engine options.
func searchOptions(ctx context.Context, opts *generateOpts) (search.Options, error) {
	if err := sferrors.ValidateSequenceString(opts.start); err != nil {
		return search.Options{}, err
	}
	so := search.Options{
		Turns:                opts.turns,
		Straights:            opts.straights,
		StartSequence:        track.Sequence(opts.start),
		TurnRadius:           opts.turnRadius,
		StraightLength:       opts.straightLength,
		LapTolerance:         opts.lapTolerance,
		OrientationTolerance: opts.orientTolerance,
		MinSeparation:        opts.minSeparation,
		AllowIntersections:   opts.allowIntersections,
		MaxTracksPerSplit:    opts.maxTracks,
		MaxTimePerSplit:      time.Duration(opts.maxTimeSec) * time.Second,
		Workers:              opts.workers,
		Logger:               loggerFromContext(ctx),
	}
	if err := so.ValidateAndSetDefaults(); err != nil {
		return search.Options{}, err
	}
	return so, nil
}

// openStore builds the configured store backend. The returned bool reports
// whether storing is active at all.
func openStore(ctx context.Context, opts *generateOpts) (store.Store, bool, error) {
	if opts.noStore {
		return store.NewNullStore(), false, nil
	}
	if opts.redisURL != "" {
		if err := sferrors.ValidateStoreURL(opts.redisURL); err != nil {
			return nil, false, err
		}
		s, err := store.NewRedisStore(ctx, opts.redisURL)
		if err != nil {
			return nil, false, sferrors.Wrap(sferrors.ErrCodeStore, err, "connect to redis store")
		}
		return s, true, nil
	}
	dir := opts.storeDir
	if dir == "" {
		dir = defaultStoreDir
	}
	s, err := store.NewFileStore(dir)
	if err != nil {
		return nil, false, sferrors.Wrap(sferrors.ErrCodeStore, err, "open file store")
	}
	return s, true, nil
}

// resultKey derives the store key for the validated options.
func resultKey(so search.Options) string {
	return store.ResultKey(store.ResultKeyOpts{
		Turns:                so.Turns,
		Straights:            so.Straights,
		StartSequence:        string(so.StartSequence),
		TurnRadius:           so.TurnRadius,
		StraightLength:       so.StraightLength,
		LapTolerance:         so.LapTolerance,
		OrientationTolerance: so.OrientationTolerance,
		MinSeparation:        so.MinSeparation,
		AllowIntersections:   so.AllowIntersections,
		MaxTracksPerSplit:    so.MaxTracksPerSplit,
		MaxTimePerSplitSec:   so.MaxTimePerSplit.Seconds(),
	})
}

// runGenerate executes the search, consulting the store first.
func runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	so, err := searchOptions(ctx, opts)
	if err != nil {
		return err
	}

	st, active, err := openStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	key := resultKey(so)
	if active && !opts.refresh {
		if data, hit, err := st.Get(ctx, key); err == nil && hit {
			var doc runDocument
			if err := json.Unmarshal(data, &doc); err == nil {
				logger.Debugf("Store hit for %s", key)
				printRun(&doc, true)
				return writeOutput(opts.output, &doc)
			}
			logger.Debugf("Discarding corrupt store entry %s", key)
		}
	}

	prog := newProgress(logger)
	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Searching layouts for %d turns, %d straights", so.Turns, so.Straights))
	sp.Start()

	res, runErr := search.NewEngine().Run(ctx, so)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		sp.StopWithError(runErr.Error())
		return runErr
	}
	sp.Stop()
	prog.done(fmt.Sprintf("Found %d layouts", res.Registry.Len()))

	doc := buildRunDocument(so, res)
	if runErr == nil && active {
		payload, err := json.Marshal(doc)
		if err == nil {
			if err := st.Set(ctx, key, payload, 0); err != nil {
				logger.Warnf("Failed to store result: %v", err)
			}
		}
	}

	printRun(doc, false)
	if err := writeOutput(opts.output, doc); err != nil {
		return err
	}
	if errors.Is(runErr, context.Canceled) {
		printWarning("Search interrupted; results above are partial")
		return runErr
	}
	return nil
}

// buildRunDocument converts an engine result into its serializable form.
func buildRunDocument(so search.Options, res *search.Result) *runDocument {
	layouts := res.Layouts()
	strs := make([]string, len(layouts))
	for i, l := range layouts {
		strs[i] = string(l)
	}
	return &runDocument{
		GeneratedAt: time.Now().UTC(),
		Turns:       so.Turns,
		Straights:   so.Straights,
		Start:       string(so.StartSequence),
		Layouts:     strs,
		Splits:      res.Stats.Splits,
		TimedOut:    res.Stats.TimedOut,
		ElapsedMS:   res.Stats.Elapsed.Milliseconds(),
	}
}

// printRun renders the styled result summary.
func printRun(doc *runDocument, cached bool) {
	printNewline()
	fmt.Println(StyleTitle.Render("Track Layouts"))
	printKeyValue("Turns", fmt.Sprintf("%d", doc.Turns))
	printKeyValue("Straights", fmt.Sprintf("%d", doc.Straights))
	if doc.Start != "" {
		printKeyValue("Prefix", doc.Start)
	}
	printStats(len(doc.Layouts), doc.Splits, cached)
	printNewline()

	if len(doc.Layouts) == 0 {
		printInfo("No valid closed layouts found for this piece inventory.")
		printDetail("Try more pieces, a looser tolerance, or --allow-intersections.")
		return
	}

	for _, l := range doc.Layouts {
		seq := track.Sequence(l)
		fmt.Println("  " + StyleHighlight.Render(l) +
			StyleDim.Render(fmt.Sprintf("  R%d L%d S%d",
				seq.Count(track.Right), seq.Count(track.Left), seq.Count(track.Straight))))
	}
	if doc.TimedOut > 0 {
		printNewline()
		printWarning("%d split(s) hit the time budget; more layouts may exist", doc.TimedOut)
	}
	printNewline()
	printNextStep("Render a layout", fmt.Sprintf("slotforge render %s -o track.png", doc.Layouts[0]))
}

// writeOutput writes the run document as JSON when an output path is set.
func writeOutput(path string, doc *runDocument) error {
	if path == "" {
		return nil
	}
	if err := sferrors.ValidateOutputPath(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
