package main

import (
	"github.com/spf13/cobra"

	"github.com/jlvilasoler/hashrate-app/internal/bootstrap"
)

// withStorage abre el almacenamiento configurado durante la ejecución de fn.
func withStorage(cmd *cobra.Command, fn func(*bootstrap.Storage) error) error {
	store, err := bootstrap.OpenStorage(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
