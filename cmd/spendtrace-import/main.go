// Command spendtrace-import bulk-loads historical purchases from a CSV export
// into the spendtrace database. The whole file is imported in one transaction;
// a bad row aborts the import without writing anything.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/internal/tracer/store/drivers/sqlite"
	"github.com/spendtrace/spendtrace/pkg/langdetect"
)

func main() {
	var (
		databaseFile = flag.String("db", "spendtrace.db", "path to the SQLite database file")
		csvFile      = flag.String("csv", "", "path to the CSV file to import (required)")
	)
	flag.Parse()

	if *csvFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*csvFile)
	if err != nil {
		log.Fatalf("failed to open csv file: %v", err)
	}
	defer f.Close()

	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", *databaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		log.Fatalf("failed to apply database migrations: %v", err)
	}

	importer := &service.ImportService{
		Store:          db,
		DetectLanguage: langdetect.Detect,
	}

	count, err := importer.ImportCSV(context.Background(), f)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("imported %d purchases\n", count)
}
