package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"sync/atomic"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/graphsearch/featureflag"
	"github.com/aukilabs/graphsearch/geometry"
	"github.com/aukilabs/graphsearch/graphfile"
	graphhttp "github.com/aukilabs/graphsearch/http"
	"github.com/aukilabs/graphsearch/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The graphsearch version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "graphsearch_info",
		Help:        "Graphsearch information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Input        string   `cli:""        env:"GRAPHSEARCH_INPUT"         help:"Graph file to load."`
	Output       string   `cli:""        env:"GRAPHSEARCH_OUTPUT"        help:"File where the processed graph is saved."`
	ConfigFile   string   `cli:""        env:"GRAPHSEARCH_CONFIG_FILE"   help:"YAML file with the universe and spatial index settings."`
	AdminAddr    string   `cli:""        env:"GRAPHSEARCH_ADMIN_ADDR"    help:"Admin listening address. The tool exits after processing when empty."`
	LogLevel     string   `cli:""        env:"GRAPHSEARCH_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool     `cli:""        env:"GRAPHSEARCH_LOG_INDENT"    help:"Indent logs."`
	FeatureFlags []string `cli:",hidden" env:"GRAPHSEARCH_FEATURE_FLAGS" help:"Comma separated feature flags"`
	Version      bool     `cli:""        env:"-"                         help:"Show version."`
	Help         bool     `cli:""        env:"-"                         help:"Show help."`
}

func main() {
	conf := config{
		LogLevel: logs.InfoLevel.String(),
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Loads a planar graph, discovers its faces and builds its visibility graph.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	graphConf, err := loadGraphConfig(conf.ConfigFile)
	if err != nil {
		logs.Fatal(err)
	}

	g := models.NewGraph(graphConf.Universe,
		models.WithName(graphConf.Name),
		models.WithIndexConfig(graphConf.Index),
		models.WithEdgeThickness(graphConf.EdgeThickness),
	)
	ws := models.NewWorkspace(g, graphConf.SelectionRange)

	var ready atomic.Bool
	process := func() {
		defer ready.Store(true)

		err := ws.Update(func(g *models.Graph, _ *models.Selection) error {
			return processGraph(g, conf, featureflag.New(conf.FeatureFlags))
		})
		if err != nil {
			logs.Fatal(err)
		}
	}

	if conf.AdminAddr == "" {
		process()
		return
	}

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", graphhttp.HandleHealthCheck)
	admin.HandleFunc("/ready", graphhttp.HandleReadyCheck(ready.Load))
	admin.HandleFunc("/version", graphhttp.HandleVersion(version))
	admin.HandleFunc("/query", graphhttp.HandleRegionQuery(ws))
	admin.HandleFunc("/stats", graphhttp.HandleStats(ws))
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("graph", g.Name).
		WithTag("graph_uuid", g.UUID).
		Info("starting graphsearch")

	go process()

	graphhttp.ListenAndServe(ctx,
		&http.Server{Addr: conf.AdminAddr, Handler: metrics.HTTPHandler(&admin,
			graphhttp.MetricsPathFormatter)},
	)
}

// processGraph loads the input file into g, runs the geometry passes that are
// not disabled by feature flags, checks the graph and saves it.
func processGraph(g *models.Graph, conf config, flags featureflag.FeatureFlag) error {
	if conf.Input != "" {
		if err := loadGraph(g, conf.Input); err != nil {
			return err
		}
	}

	flags.IfNotSet(featureflag.FlagDisableFaceDiscovery, func() {
		geometry.DiscoverFaces(g)
	})

	flags.IfNotSet(featureflag.FlagDisableVisibilityGraph, func() {
		var opts []geometry.Option
		flags.IfSet(featureflag.FlagDisableVisibilityPruning, func() {
			opts = append(opts, geometry.WithFullScan())
		})
		geometry.BuildVisibilityGraph(g, opts...)
	})

	if err := g.Validate(); err != nil {
		return errors.New("processed graph is inconsistent").Wrap(err)
	}

	logs.WithTag("graph", g.Name).
		WithTag("nodes", g.NodeCount()).
		WithTag("edges", g.EdgeCount()).
		WithTag("faces", g.FaceCount()).
		WithTag("border_edges", len(geometry.BorderEdges(g))).
		WithTag("visibility_edges", len(g.VisibilityEdges())).
		Info("graph processed")

	if conf.Output != "" {
		return saveGraph(g, conf.Output)
	}
	return nil
}

func loadGraph(g *models.Graph, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.New("opening graph file failed").
			WithType(graphfile.ErrTypeRead).
			WithTag("file_name", path).
			Wrap(err)
	}
	defer f.Close()

	res, err := graphfile.Load(f, g)
	if err != nil {
		return errors.New("loading graph file failed").
			WithType(errors.Type(err)).
			WithTag("file_name", path).
			Wrap(err)
	}

	logs.WithTag("file_name", path).
		WithTag("nodes", len(res.Nodes)).
		WithTag("edges", res.Edges).
		WithTag("skipped_edges", res.Skipped).
		Info("graph file loaded")
	return nil
}

func saveGraph(g *models.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating graph file failed").
			WithType(graphfile.ErrTypeWrite).
			WithTag("file_name", path).
			Wrap(err)
	}

	if err := graphfile.Save(f, g); err != nil {
		f.Close()
		return errors.New("saving graph file failed").
			WithType(errors.Type(err)).
			WithTag("file_name", path).
			Wrap(err)
	}

	if err := f.Close(); err != nil {
		return errors.New("closing graph file failed").
			WithType(graphfile.ErrTypeWrite).
			WithTag("file_name", path).
			Wrap(err)
	}

	logs.WithTag("file_name", path).Info("graph file saved")
	return nil
}
