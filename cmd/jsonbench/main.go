// Command jsonbench times plainjson against other codecs on the fixture
// payloads and prints per-op times with ratios relative to encoding/json.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/plainjson"
	"github.com/unkn0wn-root/plainjson/internal/fixture"
	zaplog "github.com/unkn0wn-root/plainjson/log/zap"
)

// Flags defines the command-line interface.
type Flags struct {
	Config    string   `help:"Path to a YAML config file." short:"c" type:"path"`
	Instances []string `help:"Payloads to time (comma separated)." short:"i"`
	Codecs    []string `help:"Codecs to time: plainjson, std, goccy, msgpack, cbor." short:"C"`
	Count     int      `help:"Iterations per measurement." short:"n"`
	Warmup    int      `help:"Warm-up iterations per codec." short:"w"`
	Depth     int      `help:"Depth of the deep-test-class payload." short:"d"`
	Seed      uint64   `help:"Seed of the payload generator."`
	EmitAll   bool     `help:"Write null and default members with plainjson." name:"emit-all"`
	Debug     bool     `help:"Enable debug logging."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "jsonbench: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var flags Flags
	parser, err := kong.New(&flags,
		kong.Name("jsonbench"),
		kong.Description("Benchmark plainjson against other codecs"),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := NewConfig()
	if flags.Config != "" {
		if cfg, err = LoadConfig(flags.Config); err != nil {
			return err
		}
	}
	cfg.Merge(&flags)
	types, err := cfg.Validate()
	if err != nil {
		return err
	}

	log := newLogger(stderr, cfg.Debug)
	defer func() { _ = log.Sync() }()

	r := &runner{
		cfg: cfg,
		pj: plainjson.New(plainjson.Options{
			EmitNullOrDefault: cfg.EmitNullOrDefault,
			Logger:            zaplog.New(log),
		}),
		log: log,
	}
	f := fixture.NewFactory(cfg.Seed)

	var results []Result
	for _, t := range types {
		log.Info("running", zap.Stringer("instance", t), zap.Int("count", cfg.Count), zap.Strings("codecs", cfg.Codecs))
		res, err := r.run(t, f)
		if err != nil {
			return err
		}
		results = append(results, res...)
	}
	return writeReport(stdout, results)
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}
