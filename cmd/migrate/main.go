package main // schema migration runner

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql" // MySQL migration driver
	_ "github.com/golang-migrate/migrate/v4/source/file"    // file:// migration source

	"github.com/joho/godotenv"
)

// main applies schema migrations from the migrations/ directory.  The DSN is
// assembled from the same DB_* env vars the server uses.
func main() {
	_ = godotenv.Load()

	down := flag.Bool("down", false, "roll back one migration instead of applying all")
	flag.Parse()

	m, err := migrate.New("file://migrations", dsn())
	if err != nil {
		log.Fatalf("migrate init: %v", err)
	}
	defer m.Close()

	if *down {
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migrate down: %v", err)
		}
		log.Printf("rolled back one migration")
		return
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate up: %v", err)
	}
	log.Printf("migrations applied")
}

func dsn() string {
	auth := os.Getenv("DB_USER")
	if pass := os.Getenv("DB_PASS"); pass != "" {
		auth += ":" + pass
	}
	return fmt.Sprintf("mysql://%s@tcp(%s:%s)/%s",
		auth, os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
}
