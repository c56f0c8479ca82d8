package usecase

import (
	"strings"
	"unicode"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

const (
	maxReceiptLength = 40
	maxNotes         = 15
	maxNoteLength    = 256
)

// ValidateCurrency checks for a three-letter alphabetic currency code.
func ValidateCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// normalizeCreateOrder validates req and returns a copy with trimmed fields,
// an upper-cased currency and a private notes map.
func normalizeCreateOrder(req model.CreateOrderRequest) (model.CreateOrderRequest, error) {
	out := model.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: strings.ToUpper(strings.TrimSpace(req.Currency)),
		Receipt:  strings.TrimSpace(req.Receipt),
		Notes:    make(map[string]string, len(req.Notes)+1),
	}

	if out.Amount <= 0 {
		return out, domainErrors.ErrInvalidRequest
	}
	if !ValidateCurrency(out.Currency) {
		return out, domainErrors.ErrInvalidRequest
	}
	if out.Receipt == "" || len(out.Receipt) > maxReceiptLength {
		return out, domainErrors.ErrInvalidRequest
	}
	if len(req.Notes) > maxNotes-1 {
		return out, domainErrors.ErrInvalidRequest
	}
	for k, v := range req.Notes {
		if k == "" || len(v) > maxNoteLength {
			return out, domainErrors.ErrInvalidRequest
		}
		out.Notes[k] = v
	}
	if _, ok := model.ParseCoins(out.Notes); !ok {
		return out, domainErrors.ErrInvalidRequest
	}

	return out, nil
}

func normalizeVerifyRequest(req model.VerifyRequest) (model.VerifyRequest, error) {
	out := model.VerifyRequest{
		OrderID:   strings.TrimSpace(req.OrderID),
		PaymentID: strings.TrimSpace(req.PaymentID),
		Signature: strings.TrimSpace(req.Signature),
	}
	if out.OrderID == "" || out.PaymentID == "" || out.Signature == "" {
		return out, domainErrors.ErrInvalidRequest
	}
	return out, nil
}
