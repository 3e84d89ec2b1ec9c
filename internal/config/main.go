package config

import (
	"fmt"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("stamina", "Rates the stamina demands of dance game charts")

	LogLevel = app.Flag("log-level", "Log level").Default("info").Enum("panic", "fatal", "error", "warn", "info", "debug", "trace")
	Params   = app.Flag("params", "Step parameters file").Short('p').ExistingFile()
	Database = app.Flag("db", "Rating history database").Default("./ratings.db").String()
	Window   = app.Flag("window", "Notes looked ahead each search round").Default("4").Int()
	Beam     = app.Flag("beam", "Search nodes kept each round").Default("4").Int()

	RateCmd     = app.Command("rate", "Rate every chart in the given simfiles or directories")
	RatePaths   = RateCmd.Arg("paths", "Simfiles or directories").ExistingFilesOrDirs()
	RatePresets = RateCmd.Flag("presets", "Also rate the built in stream ladder").Bool()
	RateCache   = RateCmd.Flag("cache", "Reuse and record ratings in the database").Short('c').Bool()
	RateSort    = RateCmd.Flag("sort", "Column to sort by").Default("rating").Enum("rating", "meter", "title", "notes")

	TraceCmd   = app.Command("trace", "Write the fatigue at every note of a chart")
	TraceFile  = TraceCmd.Arg("file", "Simfile").Required().ExistingFile()
	TraceChart = TraceCmd.Flag("chart", "Chart index, chosen interactively when unset").Default("-1").Short('n').Int()
	TraceOut   = TraceCmd.Flag("out", "CSV output file, stdout when unset").Short('o').String()

	FitCmd        = app.Command("fit", "Fit step parameters to chart meters")
	FitPaths      = FitCmd.Arg("paths", "Simfiles or directories").ExistingFilesOrDirs()
	FitPresets    = FitCmd.Flag("presets", "Fit against the built in stream ladder").Bool()
	FitLongest    = FitCmd.Flag("longest", "Only use the longest ladder charts").Bool()
	FitIterations = FitCmd.Flag("iterations", "Hill climbing iterations").Default("200").Short('i').Int()
	FitSeed       = FitCmd.Flag("seed", "Random seed").Default("1").Int64()
	FitWorkers    = FitCmd.Flag("workers", "Charts rated at once, 0 for no limit").Default("0").Int()
	FitOut        = FitCmd.Flag("out", "Write the fitted parameters to this file").Short('o').String()

	HistoryCmd   = app.Command("history", "List stored ratings and the latest fit")
	HistoryLimit = HistoryCmd.Flag("limit", "Ratings to show").Default("20").Int()
)

func init() {
	app.Version("0.3.0")
	app.HelpFlag.Short('h')
}

// Parse reads the command line and returns the selected command.
func Parse(args []string) (string, error) {
	cmd, err := app.Parse(args)
	if nil != err {
		return cmd, err
	}
	if cmd == HistoryCmd.FullCommand() && *HistoryLimit < 0 {
		return cmd, fmt.Errorf("--limit must not be negative, got %v", *HistoryLimit)
	}
	return cmd, nil
}
