package billing

import (
	"strings"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

const dateLayout = "2006-01-02"

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	out := &dto.DocumentResponse{
		ID:           d.ID,
		Number:       d.Number,
		Type:         string(d.Type),
		ClientID:     d.ClientID,
		ClientCode:   d.ClientCode,
		ClientName:   d.ClientName,
		IssueDate:    d.IssueDate.Format(dateLayout),
		EmissionTime: d.EmissionTime,
		DueDate:      d.DueDate.Format(dateLayout),
		Month:        d.Month,
		Subtotal:     d.Subtotal,
		Discounts:    d.Discounts,
		Total:        d.Total,
		Items:        toLineItemResponses(d.Items),
		CreatedAt:    d.CreatedAt,
	}
	if d.PaymentDate != nil {
		out.PaymentDate = d.PaymentDate.Format(dateLayout)
	}
	if d.Related != nil {
		out.Related = &dto.DocumentRef{ID: d.Related.ID, Number: d.Related.Number, Type: string(entity.TypeInvoice)}
	}
	return out
}

func toLineItemResponses(items []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemResponse{
			ServiceCode: it.ServiceCode,
			ServiceName: it.ServiceName,
			Month:       it.Month,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Discount:    it.Discount,
			Total:       it.Total(),
		})
	}
	return out
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		City:      c.City,
		Name2:     c.Name2,
		Phone2:    c.Phone2,
		Email2:    c.Email2,
		Address2:  c.Address2,
		City2:     c.City2,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToDocumentFilter traduce la query del historial al filtro del repositorio.
func ToDocumentFilter(in dto.DocumentListFilter) (repository.DocumentFilter, error) {
	filter := repository.DocumentFilter{Client: strings.TrimSpace(in.Client), Month: strings.TrimSpace(in.Month)}
	if in.Type != "" {
		t, ok := entity.ParseDocumentType(in.Type)
		if !ok {
			return filter, domain.NewValidationError("type", "tipo de comprobante inválido")
		}
		filter.Type = t
	}
	return filter, nil
}
