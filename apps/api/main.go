package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/tmahmud/shikkha/apps/api/echo"
	"github.com/tmahmud/shikkha/core"
	"github.com/tmahmud/shikkha/core/board"
	"github.com/tmahmud/shikkha/core/user"
	appfs "github.com/tmahmud/shikkha/fs"
	emailsvc "github.com/tmahmud/shikkha/services/email"
	logsvc "github.com/tmahmud/shikkha/services/logger"
	tutorsvc "github.com/tmahmud/shikkha/services/tutor"
	"github.com/tmahmud/shikkha/storage/kvstore"
	"github.com/tmahmud/shikkha/storage/records"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	var logger core.Logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}
	logger.Enable(true)

	// set up the record store
	store, closeStore, err := setUpStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up record store: %v", err), err)
	}
	defer func() {
		if err = closeStore(); err != nil {
			logger.Error("closing record store", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	boardRepo := records.NewBoardRepository(store)
	usrSvc := user.NewService(records.NewUserRepository(store), mailSvc, conf)
	boardSvc := board.NewService(boardRepo, boardRepo, boardRepo)
	streamer := tutorsvc.NewStreamer(conf.Tutor)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	if err = core.ParseEmailTemplates(appfs.FS); err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			BoardSvc:   boardSvc,
			Streamer:   streamer,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpStore resolves the configured record store backend.
func setUpStore(conf *core.Config) (kvstore.Store, func() error, error) {
	noClose := func() error { return nil }

	switch conf.Storage.Backend {
	case "memory":
		return kvstore.NewMemoryStore(), noClose, nil

	case "file":
		store, err := kvstore.NewFileStore(conf.Storage.Dir)
		return store, noClose, err

	case "postgres":
		db, err := kvstore.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		if err = kvstore.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return kvstore.NewPostgresStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
}
