package domain

import "errors"

var (
	ErrMissingCredentials  = errors.New("daraja credentials missing or placeholder")
	ErrGatewayAuth         = errors.New("daraja access token request rejected")
	ErrGatewayRequest      = errors.New("stk push request rejected")
	ErrValidation          = errors.New("missing required checkout fields")
	ErrMalformedCallback   = errors.New("callback envelope missing stkCallback body")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyFinalized    = errors.New("transaction already finalized")
	ErrMaterialNotFound    = errors.New("material not found")
	ErrSaleNotFound        = errors.New("sale not found")
)
