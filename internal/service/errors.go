package service

import (
	"github.com/brookins/tradewind/internal/domain"
)

// Cart/product errors surfaced to the HTTP layer. Codes determine the
// response status: not-found maps to 404, conflicts to 409, validation to
// 400, everything else to 500.
var (
	ErrProductNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Product not found")
	ErrCartNotFound      = domain.Errorf(domain.ENOTFOUND, "", "Cart not found")
	ErrInsufficientStock = domain.Errorf(domain.ECONFLICT, "", "Not enough inventory")
	ErrInvalidQuantity   = domain.Errorf(domain.EINVALID, "", "Quantity must be greater than 0")
)
