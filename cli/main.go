// musiclib serves a catalog of artists, albums, and songs over http, backed
// by a sqlite (or postgres) database.
//
// see db/schema_sqlite.sql for the tables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/musiclib/config"
	"github.com/amonks/musiclib/db"
	"github.com/amonks/musiclib/logger"
	"github.com/amonks/musiclib/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: musiclib $cmd
valid $cmd are 'serve', 'stats', 'list'
for help: musiclib $cmd -help
`)

func run() error {
	ctx := sigctx.New()
	cfg := config.Load()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	if cmd == "serve" {
		logger.Init(logger.Config{
			ServiceName: "musiclib",
			LogFilePath: cfg.LogFilePath,
			MaxSizeMB:   cfg.LogMaxSizeMB,
			MaxBackups:  cfg.LogMaxBackups,
			MaxAgeDays:  cfg.LogMaxAgeDays,
		})
	}

	db, err := db.Open(db.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return err
	}
	defer db.Close()

	switch cmd {
	case "serve":
		return serve(ctx, db, cfg, args)

	case "stats":
		return stats(ctx, db, args)

	case "list":
		return list(ctx, db, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
