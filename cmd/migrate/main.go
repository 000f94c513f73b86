package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"ferrastock/config"
	"ferrastock/internal/pkg/database"
	"ferrastock/internal/pkg/logger"
)

// Uso: go run ./cmd/migrate [-dir ./sql] [up|down|status|version|redo|reset] [args...]
func main() {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuração inválida: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	if envErr != nil {
		log.Warn("Arquivo .env não encontrado; usando apenas o ambiente do sistema.", nil)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "diretório com as migrações")
	flag.Parse()

	db, err := database.NewPostgresDB(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("goose: falha ao conectar ao DB.", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("goose: falha ao fechar o DB.", err)
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose: dialeto não suportado.", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatal(fmt.Sprintf("goose %s falhou.", command), err)
	}

	log.Info("goose concluído.", map[string]interface{}{"command": command, "dir": migrationsDir})
}
