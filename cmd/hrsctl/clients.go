package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/bootstrap"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/spreadsheet"
)

var importEncoding string

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Padrón de clientes",
}

var clientsImportCmd = &cobra.Command{
	Use:   "import <archivo>",
	Short: "Importa el padrón desde .xlsx o .csv (alta o actualización por código)",
	Long: `La primera fila es la cabecera. Se reconocen, en español o inglés: código, nombre,
teléfono, email, dirección, ciudad y sus variantes 2 para el cotitular.
Los CSV exportados por Excel en español suelen venir en windows-1252 y separados por punto y coma.`,
	Example: "  hrsctl clients import padron.xlsx\n  hrsctl clients import padron.csv --encoding windows-1252",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		rows, err := spreadsheet.ReadClients(f, args[0], importEncoding)
		if err != nil {
			return err
		}

		return withStorage(cmd, func(store *bootstrap.Storage) error {
			res, err := billing.NewClientUseCase(store.Clients, log).Import(cmd.Context(), rows)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "creados: %d, actualizados: %d, con error: %d\n", res.Created, res.Updated, len(res.Errors))
			for _, e := range res.Errors {
				fmt.Fprintf(w, "  fila %d (%s): %s\n", e.Row, e.Code, e.Message)
			}
			return nil
		})
	},
}

func init() {
	clientsImportCmd.Flags().StringVar(&importEncoding, "encoding", spreadsheet.EncodingUTF8, "codificación del CSV: utf-8, latin1 o windows-1252")
	clientsCmd.AddCommand(clientsImportCmd)
	rootCmd.AddCommand(clientsCmd)
}
