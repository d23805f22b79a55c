// Command nbastats fetches one stats.nba.com endpoint and prints a result set.
//
//	nbastats [-output table|records] <endpoint> <resultset|index> [Key=Value ...]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/nbastats/internal/api/nba"
	"github.com/omarshaarawi/nbastats/internal/config"
	"github.com/omarshaarawi/nbastats/internal/resultset"
	"github.com/omarshaarawi/nbastats/internal/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("nbastats failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("nbastats", flag.ContinueOnError)
	output := fs.String("output", cfg.StatsAPI.Output.String(), "table or records")
	limit := fs.Int("limit", 0, "maximum rows to print in table output (0 for all)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: nbastats [flags] <endpoint> <resultset|index> [Key=Value ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("endpoint and result set are required")
	}

	format, err := resultset.ParseFormat(*output)
	if err != nil {
		return err
	}
	cfg.StatsAPI.Output = format

	def, err := service.ResolveEndpoint(fs.Arg(0))
	if err != nil {
		return err
	}
	params, err := service.ParseParams(fs.Args()[2:])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := nba.NewClient(cfg.StatsAPI)
	ep, err := client.Load(ctx, def, params)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", def.Name, err)
	}

	data, err := selectResultSet(ep, fs.Arg(1))
	if err != nil {
		return err
	}

	return write(out, data, *limit)
}

func selectResultSet(ep *nba.Endpoint, arg string) (resultset.Data, error) {
	if idx, err := strconv.Atoi(arg); err == nil {
		return ep.At(idx)
	}
	name, err := service.ResolveResultSet(ep.Definition(), arg)
	if err != nil {
		return nil, err
	}
	return ep.ResultSet(name)
}

func write(out io.Writer, data resultset.Data, limit int) error {
	switch d := data.(type) {
	case resultset.Records:
		enc := json.NewEncoder(out)
		for _, rec := range d {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := io.WriteString(out, service.RenderText(data, limit))
		return err
	}
}
