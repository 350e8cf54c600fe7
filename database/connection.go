package database

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"datemate/retry"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Migrator func(db *gorm.DB) error

type Configuration struct {
	dsn        string
	migrations []Migrator
}

type Configurator func(c *Configuration)

func SetMigrations(migrations ...Migrator) Configurator {
	return func(c *Configuration) {
		c.migrations = append(c.migrations, migrations...)
	}
}

// SetDSN overrides the connection string read from the environment
func SetDSN(dsn string) Configurator {
	return func(c *Configuration) {
		c.dsn = dsn
	}
}

type DSNBuilder struct {
	user         string
	password     string
	host         string
	port         int
	databaseName string
}

func NewDSNBuilder() *DSNBuilder {
	return &DSNBuilder{}
}

func (b *DSNBuilder) SetUser(user string) *DSNBuilder {
	b.user = user
	return b
}

func (b *DSNBuilder) SetPassword(password string) *DSNBuilder {
	b.password = password
	return b
}

func (b *DSNBuilder) SetHost(host string) *DSNBuilder {
	b.host = host
	return b
}

func (b *DSNBuilder) SetPort(port int) *DSNBuilder {
	b.port = port
	return b
}

func (b *DSNBuilder) SetDatabaseName(databaseName string) *DSNBuilder {
	b.databaseName = databaseName
	return b
}

func (b *DSNBuilder) Build() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC", b.host, b.user, b.password, b.databaseName, b.port)
}

// EnvDSN reads DATABASE_URL, falling back to the DB_* variables
func EnvDSN() string {
	if url, ok := os.LookupEnv("DATABASE_URL"); ok && url != "" {
		return url
	}
	port, _ := strconv.Atoi(os.Getenv("DB_PORT"))
	return NewDSNBuilder().
		SetUser(os.Getenv("DB_USER")).
		SetPassword(os.Getenv("DB_PASSWORD")).
		SetHost(os.Getenv("DB_HOST")).
		SetPort(port).
		SetDatabaseName(os.Getenv("DB_NAME")).
		Build()
}

// Connect opens the postgres connection and applies migrations. Failure is fatal.
func Connect(l logrus.FieldLogger, configurators ...Configurator) *gorm.DB {
	c := &Configuration{dsn: EnvDSN()}
	for _, configurator := range configurators {
		configurator(c)
	}

	db, err := Open(l, postgres.Open(c.dsn), c)
	if err != nil {
		l.WithError(err).Fatal("Unable to connect to database.")
	}
	return db
}

// Open connects through the given dialector, retrying transient failures, then runs the configured migrations
func Open(l logrus.FieldLogger, dialector gorm.Dialector, c *Configuration) (*gorm.DB, error) {
	var db *gorm.DB
	cfg := retry.DefaultRetryConfig().
		WithLogger(l).
		WithMaxRetries(10).
		WithInitialDelay(500 * time.Millisecond).
		WithRetryCondition(func(error) bool { return true })

	err := retry.ExecuteWithRetry(cfg, func() error {
		var err error
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.New(l, logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			}),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, m := range c.migrations {
		if err = m(db); err != nil {
			l.WithError(err).Error("Unable to migrate database.")
			return nil, err
		}
	}
	return db, nil
}
