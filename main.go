package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spiceroute/backoffice/app/cmd"
	"github.com/spiceroute/backoffice/app/configs"
	"github.com/spiceroute/backoffice/app/routes"
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/spiceroute/backoffice/app/utils/sessions"
)

func main() {
	env := configs.LoadEnv()

	if len(os.Args) > 1 {
		cmd.RunCli(env)
		return
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		log.Fatal("Session keys: ", err)
	}

	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	fileStore := storage.NewLocalStore(env.StoragePath)

	router := routes.NewRouter(db, sessionStore, fileStore, env.StoragePath)

	server := &http.Server{
		Addr:    ":" + env.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
