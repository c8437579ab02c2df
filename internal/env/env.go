package env

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Cfg struct {
	Port      int `envconfig:"PORT" default:"9090"`
	AdminPort int `envconfig:"ADMIN_PORT" default:"8080"`

	SnapshotBackend string `envconfig:"SNAPSHOT_BACKEND" default:"file"`
	SnapshotFile    string `envconfig:"SNAPSHOT_FILE" default:"data.json"`

	DBUser string `envconfig:"DB_USER"`
	DBPass string `envconfig:"DB_PASSWORD"`
	DBName string `envconfig:"DB_NAME"`
	DBHost string `envconfig:"DB_HOST" default:"localhost"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`

	CacheEnabled bool   `envconfig:"CACHE_ENABLED" default:"false"`
	RedisHost    string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPass    string `envconfig:"REDIS_PASSWORD"`
	RedisPort    int    `envconfig:"REDIS_PORT" default:"6379"`

	MQEnabled      bool   `envconfig:"MQ_ENABLED" default:"false"`
	MQUser         string `envconfig:"MQ_USER" default:"guest"`
	MQPass         string `envconfig:"MQ_PASSWORD" default:"guest"`
	MQHost         string `envconfig:"MQ_HOST" default:"localhost"`
	MQPort         int    `envconfig:"MQ_PORT" default:"5672"`
	MQMaxReconnect uint   `envconfig:"MQ_MAX_RECONNECT" default:"5"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

func GetEnvCfg() Cfg {
	var cfg Cfg

	if err := envconfig.Process("APP", &cfg); err != nil {
		log.Fatal("parse environment variables: ", err)
	}

	return cfg
}
