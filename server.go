package main

// skinswap: serves custom character skins to the game in place of its own
// texture, icon and portrait files
// Usage: accepts one argument in the form of a path to a json config file
//        ./skinswap [/path/to/config]
// ipc: thru a unix socket connection and the skinctl control program
// content: thru http, GET /content/{id} for every registered content id
//
// the game falls back to its own file on anything but a 200, so a broken
// selection never breaks a load

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	boot := newLogger(os.Getenv("SKINSWAP_LOG_LEVEL"))

	cf := configFile(boot)
	cnf, err := load_config(cf)
	if err != nil {
		boot.Error("failed to load config file", "file", cf, "error", err)
		os.Exit(1)
	}

	log := newLogger(cnf.LogLevel)
	log.Info("starting skinswap", "config", cf, "skin_dir", cnf.SkinDir)

	e, err := newEnv(cnf, cf, log)
	if err != nil {
		log.Error("failed to set up content", "error", err)
		os.Exit(1)
	}

	// prep graceful exit
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// start unix socket for ipc
	os.RemoveAll(cnf.Socket)
	ipcS, err := newIpcListener(cnf.Socket, e.commands(), log.Named("ipc"))
	if err != nil {
		log.Error("failed to listen on socket", "socket", cnf.Socket, "error", err)
		os.Exit(1)
	}
	defer ipcS.stop()
	log.Info("started unix socket listener", "socket", cnf.Socket)

	srv := &http.Server{
		Addr:              cnf.Listen,
		Handler:           e.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start on separate thread
	go func() {
		log.Info("started http server", "listen", cnf.Listen)
		err := srv.ListenAndServe()
		if err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			sigs <- syscall.SIGTERM
		}
	}()

	// wait and do a graceful exit on ctrl-c / sigterm
	sig := <-sigs
	log.Info("exiting", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	log.Info("server shutdown")
}
