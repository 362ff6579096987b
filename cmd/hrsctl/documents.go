package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/application/reports"
	"github.com/jlvilasoler/hashrate-app/internal/bootstrap"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/spreadsheet"
)

var nextNumberType string

var nextNumberCmd = &cobra.Command{
	Use:     "next-number",
	Short:   "Vista previa del próximo número de un tipo de comprobante",
	Example: "  hrsctl next-number --type FC\n  hrsctl next-number --type \"Nota de Crédito\"",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(cmd, func(store *bootstrap.Storage) error {
			out, err := documentUseCase(store).NextNumber(cmd.Context(), nextNumberType)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Number)
			return nil
		})
	},
}

var (
	exportOut    string
	exportFilter dto.DocumentListFilter
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Exporta el historial a Excel",
	Example: "  hrsctl export --month 2024-01 -o enero.xlsx",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(cmd, func(store *bootstrap.Storage) error {
			uc := reports.NewExportUseCase(documentUseCase(store), spreadsheet.NewHistoryExporter())
			data, filename, err := uc.ExportHistory(cmd.Context(), exportFilter)
			if err != nil {
				return err
			}
			if exportOut == "" {
				exportOut = filename
			}
			if err := os.WriteFile(exportOut, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", exportOut, err)
			}
			log.Info().Str("file", exportOut).Msg("historial exportado")
			return nil
		})
	},
}

func documentUseCase(store *bootstrap.Storage) *billing.DocumentUseCase {
	return billing.NewDocumentUseCase(store.Tx, store.Documents, store.Clients, nil, log)
}

func init() {
	nextNumberCmd.Flags().StringVarP(&nextNumberType, "type", "t", "FC", "tipo: FC, RC, NC o su nombre")

	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "archivo de salida (por defecto "+reports.HistoryFilename+")")
	exportCmd.Flags().StringVar(&exportFilter.Client, "client", "", "subcadena del nombre del cliente")
	exportCmd.Flags().StringVar(&exportFilter.Type, "type", "", "tipo de comprobante")
	exportCmd.Flags().StringVar(&exportFilter.Month, "month", "", "prefijo YYYY o YYYY-MM")

	rootCmd.AddCommand(nextNumberCmd, exportCmd)
}
