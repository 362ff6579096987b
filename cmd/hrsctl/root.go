package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jlvilasoler/hashrate-app/pkg/config"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

var version = "1.0.0"

var (
	envFile string
	cfg     *config.Config
	log     = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "hrsctl",
	Short: "Herramientas de operación de HRS Facturación",
	Long: `hrsctl comparte configuración y almacenamiento con la API:
las mismas variables de entorno (DATABASE_URL, STORAGE_DRIVER, ...) y el mismo .env.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && cmd.Flags().Changed("env-file") {
			return fmt.Errorf("cargar %s: %w", envFile, err)
		}
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		cfg = c
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr}).Component("hrsctl")
		return nil
	},
}

// Execute ejecuta el comando raíz y sale con código 1 ante error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Str("command", commandPath()).Msg("comando fallido")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func commandPath() string {
	c, _, err := rootCmd.Find(os.Args[1:])
	if err != nil || c == nil {
		return rootCmd.Name()
	}
	return c.CommandPath()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "archivo de variables de entorno")
}
