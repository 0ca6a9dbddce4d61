package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/tmahmud/shikkha/core"
	"github.com/tmahmud/shikkha/storage/kvstore"
	"github.com/tmahmud/shikkha/storage/records"
)

var logger *log.Logger // todo: logger service

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up the record store
	var store kvstore.Store
	var db *sqlx.DB
	var err error
	switch conf.Storage.Backend {
	case "memory":
		store = kvstore.NewMemoryStore()
	case "file":
		store, err = kvstore.NewFileStore(conf.Storage.Dir)
		errAndDie(err)
	case "postgres":
		db, err = kvstore.Open(conf)
		errAndDie(err)
		defer db.Close()
		store = kvstore.NewPostgresStore(db)
	default:
		errAndDie(fmt.Errorf("unknown storage backend %q", conf.Storage.Backend))
	}

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: records.NewUserRepository(store),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
