package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"surgecast/internal/cmdlog"
	"surgecast/internal/config"
	"surgecast/internal/engine"
	"surgecast/internal/logging"
	"surgecast/internal/metrics"
	"surgecast/internal/model"
	"surgecast/internal/platform"
	"surgecast/internal/store/predcache"
	"surgecast/internal/theme"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "predict":
		cmdPredict()
	case "virality":
		cmdVirality()
	case "besthours":
		cmdBestHours()
	case "batch":
		cmdBatch()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: surgecast <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./surgecast.yaml")
	fmt.Println("  predict     Predict engagement for a post (JSON input)")
	fmt.Println("  virality    Predict virality score for a post (JSON input)")
	fmt.Println("  besthours   Show best posting hours for a platform")
	fmt.Println("  batch       Rank post variants by predicted engagement (JSON array input)")
}

func cmdInit() {
	out := flag.NewFlagSet("init", flag.ExitOnError)
	path := out.String("path", "./surgecast.yaml", "path to write config")
	_ = out.Parse(os.Args[2:])
	cfg := config.Default()
	if err := config.Save(*path, cfg); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

// loadConfig falls back to defaults when the config file is unreadable,
// loudly, so a typoed path doesn't silently change cache behavior.
func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logging.Warn("config_load_failed", map[string]any{"path": path, "error": err.Error()})
		return config.Default()
	}
	return cfg
}

func buildEngine(cfg config.Config) (*engine.Engine, func(), error) {
	metrics.StartServer(cfg.Metrics.Addr)
	store, err := predcache.Open(cfg.Cache.Path, cfg.Cache.Capacity, cfg.Cache.TTL())
	if err != nil {
		return nil, nil, err
	}
	opts := []engine.Option{
		engine.WithCache(store),
		engine.WithTrending(cfg.Trends.Hashtags),
		engine.WithBatchWorkers(cfg.Batch.Workers),
	}
	if l := engine.LimiterFrom(cfg.Batch.RPS, cfg.Batch.Burst); l != nil {
		opts = append(opts, engine.WithLimiter(l))
	}
	return engine.New(opts...), func() { _ = store.Close() }, nil
}

func readInput(path string) (model.PredictionInput, error) {
	var in model.PredictionInput
	b, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}
	err = json.Unmarshal(b, &in)
	return in, err
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func cmdPredict() {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	cfgPath := fs.String("config", "./surgecast.yaml", "config path")
	inPath := fs.String("input", "", "path to PredictionInput JSON")
	_ = fs.Parse(os.Args[2:])
	err := cmdlog.Run("predict", func() error {
		eng, done, err := buildEngine(loadConfig(*cfgPath))
		if err != nil {
			return err
		}
		defer done()
		in, err := readInput(*inPath)
		if err != nil {
			return err
		}
		pred, err := eng.PredictEngagement(context.Background(), in)
		if err != nil {
			return err
		}
		return printJSON(pred)
	})
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func cmdVirality() {
	fs := flag.NewFlagSet("virality", flag.ExitOnError)
	cfgPath := fs.String("config", "./surgecast.yaml", "config path")
	inPath := fs.String("input", "", "path to PredictionInput JSON")
	_ = fs.Parse(os.Args[2:])
	err := cmdlog.Run("virality", func() error {
		eng, done, err := buildEngine(loadConfig(*cfgPath))
		if err != nil {
			return err
		}
		defer done()
		in, err := readInput(*inPath)
		if err != nil {
			return err
		}
		vs, err := eng.PredictVirality(context.Background(), in)
		if err != nil {
			return err
		}
		return printJSON(vs)
	})
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func cmdBestHours() {
	fs := flag.NewFlagSet("besthours", flag.ExitOnError)
	name := fs.String("platform", "", "platform name")
	_ = fs.Parse(os.Args[2:])
	p := model.ParsePlatform(*name)
	hours := platform.BestHours(p)
	fmt.Printf("platform=%s hours=%v\n", p, hours)
	fmt.Println(platform.BestHoursRecommendation(hours))
	next := platform.NextBestWindow(time.Now().UTC(), p)
	fmt.Println("Next window:", next.Format(time.RFC3339))
}

func cmdBatch() {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	cfgPath := fs.String("config", "./surgecast.yaml", "config path")
	inPath := fs.String("input", "", "path to JSON array of PredictionInput")
	_ = fs.Parse(os.Args[2:])
	err := cmdlog.Run("batch", func() error {
		eng, done, err := buildEngine(loadConfig(*cfgPath))
		if err != nil {
			return err
		}
		defer done()
		b, err := os.ReadFile(*inPath)
		if err != nil {
			return err
		}
		var inputs []model.PredictionInput
		if err := json.Unmarshal(b, &inputs); err != nil {
			return err
		}
		res, err := eng.BatchPredict(context.Background(), inputs)
		if err != nil {
			return err
		}
		return printJSON(res)
	})
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
