package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"metaclassroom/internal/config"
	"metaclassroom/internal/database"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// Make sure the schema matches before reading or writing rows.
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	profiles, closeProfiles, err := profile.Open(ctx, cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open profile store")
	}
	defer closeProfiles()

	backupService := service.NewBackupService(db, profiles)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, backupService, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Msg("failed to create output directory")
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", outputPath).Msg("failed to create backup file")
	}
	defer f.Close()

	log.Info().Str("path", outputPath).Msg("exporting database")
	backup, err := backupService.Export(ctx, f)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	info, _ := f.Stat()
	log.Info().
		Int("users", len(backup.Users)).
		Int("profiles", len(backup.Profiles)).
		Int("game_results", len(backup.GameResults)).
		Int("attendance", len(backup.Attendance)).
		Int("audiobooks", len(backup.Audiobooks)).
		Str("size", fmt.Sprintf("%.2f MB", float64(info.Size())/1024/1024)).
		Msg("export complete")
}

func handleImport(ctx context.Context, backupService *service.BackupService, inputPath string, clearData bool) {
	f, err := os.Open(inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", inputPath).Msg("cannot open input file")
	}
	defer f.Close()

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		confirmation, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(confirmation) != "yes" {
			log.Info().Msg("import cancelled")
			return
		}

		log.Info().Msg("clearing existing data")
		if err := backupService.Clear(); err != nil {
			log.Fatal().Err(err).Msg("failed to clear database")
		}
	}

	log.Info().Str("path", inputPath).Msg("importing database")
	if err := backupService.Import(ctx, f); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().Msg("import complete")
}

func printUsage() {
	fmt.Println("Metaverse Classroom Database Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export database to JSON file")
	fmt.Println("  backup import [options]    Import database from JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./classroom.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  PROFILE_BACKEND  Profile store: sql, firestore or memory (default: sql)")
}
