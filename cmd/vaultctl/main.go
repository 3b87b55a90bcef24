package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/soulfile-vault/backend/internal/app"
	"github.com/soulfile-vault/backend/internal/config"
)

const usage = `Usage: vaultctl [-config path] <command> [args]

Commands:
  ingest FILE...   classify, compress images and record every file
  list             show every stored record
  symbols          show the symbol reference table
`

func main() {
	configPath := flag.String("config", "SoulfileVault.config", "Path to XML or YAML config file")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *configPath, flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configPath string, args []string, out io.Writer) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	vault, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer vault.Close()

	switch args[0] {
	case "ingest":
		if len(args) < 2 {
			return fmt.Errorf("ingest: no files given")
		}
		failed := ingestFiles(ctx, vault, args[1:], out)
		if failed > 0 {
			return fmt.Errorf("%d file(s) failed", failed)
		}
		return nil
	case "list":
		records, err := vault.Records.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list files: %w", err)
		}
		printRecords(out, records)
		return nil
	case "symbols":
		printSymbols(out, vault.Symbols)
		return nil
	default:
		color.Red("Unknown command: %s", args[0])
		return fmt.Errorf("unknown command %q", args[0])
	}
}
