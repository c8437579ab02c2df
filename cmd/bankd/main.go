package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gbtpbank/gbtp-api/cmd/bankd/admin"
	"github.com/gbtpbank/gbtp-api/cmd/bankd/dispatch"
	"github.com/gbtpbank/gbtp-api/cmd/bankd/ledger"
	"github.com/gbtpbank/gbtp-api/internal/cache"
	"github.com/gbtpbank/gbtp-api/internal/env"
	"github.com/gbtpbank/gbtp-api/internal/mq"
	"github.com/gbtpbank/gbtp-api/internal/snapshot"
	"github.com/gbtpbank/gbtp-api/internal/tcp"
)

func main() {
	log.SetFormatter(&log.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})

	cfg := env.GetEnvCfg()

	var store snapshot.Store
	switch cfg.SnapshotBackend {
	case "postgres":
		dbc, err := snapshot.NewPgConnection(snapshot.PgConfig{
			User: cfg.DBUser,
			Pass: cfg.DBPass,
			Name: cfg.DBName,
			Host: cfg.DBHost,
			Port: cfg.DBPort,
		})
		if err != nil {
			log.Fatal("connect to postgres db: ", err)
		}

		defer func() {
			if err := dbc.Close(); err != nil {
				log.Errorf("error closing db: %v", err)
			}
		}()

		store = &snapshot.PgStore{DB: dbc}
	default:
		store = snapshot.NewFileStore(cfg.SnapshotFile)
	}

	ldg, err := ledger.NewLedger(store)
	if err != nil {
		log.Fatal("initialize ledger: ", err)
	}

	var rc *cache.Redis
	if cfg.CacheEnabled {
		rc, err = cache.NewConnection(cache.Config{
			Host: cfg.RedisHost,
			Pass: cfg.RedisPass,
			Port: cfg.RedisPort,
		})
		if err != nil {
			log.Errorf("error connecting to redis, balance cache disabled: %v", err)
			rc = nil
		}
	}

	var conn *mq.Conn
	if cfg.MQEnabled {
		c, err := mq.NewConnection(mq.Config{
			User:         cfg.MQUser,
			Pass:         cfg.MQPass,
			Host:         cfg.MQHost,
			Port:         cfg.MQPort,
			MaxReconnect: cfg.MQMaxReconnect,
		})
		if err != nil {
			log.Errorf("error connecting to mq, notifications disabled: %v", err)
		} else {
			conn = &c

			defer func() {
				if err := conn.Channel.Close(); err != nil {
					log.Errorf("error closing mq channel: %v", err)
				}
			}()
		}
	}

	d := dispatch.NewDispatcher(ldg, rc, conn)

	server := &tcp.Server{Handler: d.Handle}

	adminServer := http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.AdminPort),
		Handler:        admin.NewApplication(ldg, rc),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Errorf("gbtp server failed: %v", err)
		}
	}()

	go func() {
		log.Infof("admin server started successfully, listening on %s", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("admin server failed to start: %v", err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	log.Info("shutting down")

	if err := server.Close(); err != nil {
		log.Warnf("shutdown: error closing gbtp listener: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := adminServer.Shutdown(ctx); err != nil {
		log.Warnf("shutdown: graceful shutdown did not complete in %v : %v", cfg.ShutdownTimeout, err)

		if err := adminServer.Close(); err != nil {
			log.Warnf("shutdown: error killing admin server: %v", err)
		}
	}
}
