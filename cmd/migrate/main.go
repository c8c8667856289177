package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"contact-form/config"
	"contact-form/internal/domain/contact"
	"contact-form/internal/repository"
	"contact-form/pkg/database"
)

const usage = `
Contact Form - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Create or update the contacts and attachments tables
  status      Show database connection status and row counts
  truncate    Delete every contact and attachment row (DANGEROUS)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	database.Connect(cfg)
	defer database.Close()

	switch command {
	case "up":
		runMigrationsUp()
	case "status":
		showStatus()
	case "truncate":
		runTruncate()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp() {
	log.Println("🚀 Running migrations UP...")

	if err := repository.InitSchema(database.DB); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func showStatus() {
	log.Println("🔍 Checking database status...")
	ctx := context.Background()

	if err := database.HealthCheck(ctx); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	migrator := database.DB.Migrator()
	for _, model := range []interface{}{&contact.Contact{}, &contact.Attachment{}} {
		if migrator.HasTable(model) {
			log.Printf("✅ Table %-12s exists", tableName(model))
		} else {
			log.Printf("❌ Table %-12s does not exist", tableName(model))
		}
	}

	n, err := repository.NewStore(database.DB).Contacts().Count(ctx)
	if err != nil {
		log.Printf("⚠️  Error counting contacts: %v", err)
		return
	}
	log.Printf("📊 Contacts stored: %d", n)
}

func runTruncate() {
	log.Println("⚠️  WARNING: This will delete every contact and attachment row!")
	log.Println("⚠️  Files in the storage backend are left untouched.")

	if err := repository.Truncate(database.DB); err != nil {
		log.Fatalf("❌ Truncate failed: %v", err)
	}

	log.Println("✅ All tables truncated!")
}

func tableName(model interface{}) string {
	switch model.(type) {
	case *contact.Contact:
		return contact.Contact{}.TableName()
	case *contact.Attachment:
		return contact.Attachment{}.TableName()
	}
	return fmt.Sprintf("%T", model)
}
