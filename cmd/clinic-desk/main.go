package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-desk",
		Short: "Escritorio de la clínica sobre el backend clínico",
	}
	rootCmd.PersistentFlags().String("env-file", ".env", "archivo .env opcional")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(patientsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
