package main

import (
	"log"
	"os"

	"afom-board-be/internal/model"
	"afom-board-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = database.DriverPostgres
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.Open(driver, dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 1: Running AutoMigrate for workshop tables...")
	if err := database.AutoMigrate(db, model.All()...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	if driver == database.DriverPostgres {
		color.Cyan("Step 2: Creating functions and triggers...")

		postMigrationSQL := []string{
			`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
			DECLARE _new_value TIMESTAMP WITH TIME ZONE;
			BEGIN
			  _new_value := now();
			  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
			  RETURN NEW;
			END; $$;`,
		}
		for _, table := range []string{"workshop_sessions", "workshop_notes", "workshop_confrontations"} {
			postMigrationSQL = append(postMigrationSQL,
				`DROP TRIGGER IF EXISTS set_`+table+`_updated_at ON `+table+`;`,
				`CREATE TRIGGER set_`+table+`_updated_at BEFORE UPDATE ON `+table+
					` FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,
			)
		}

		for _, sql := range postMigrationSQL {
			if err := db.Exec(sql).Error; err != nil {
				color.Yellow("Warn: Failed to execute post-migration SQL: %v", err)
			}
		}
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
