package memory

import (
	"context"

	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ billing.DocumentTxRunner = (*TxRunner)(nil)

// TxRunner serializa las emisiones. Create es el último paso de fn, así que no hay nada que revertir.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) RunDocuments(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(NewDocumentRepository(r.s), NewClientRepository(r.s))
}
