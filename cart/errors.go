package cart

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrOutOfStock   = errors.New("out of stock")
	ErrExceedsStock = errors.New("exceeds available stock")
	ErrValidation   = errors.New("invalid input")
	ErrStore        = errors.New("store failure")
)

// User-facing messages carried in Result.Error.
const (
	msgProductNotFound = "Product not found"
	msgLineNotFound    = "Product is not in your cart"
	msgOutOfStock      = "Product is out of stock"
	msgExceedsStock    = "Not enough stock to add another item"
	msgInvalidInput    = "Invalid user or product"
	msgStoreFailure    = "Something went wrong, please try again"
)

// Result is the caller-facing outcome of every cart mutation.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

func succeeded() Result {
	return Result{Success: true}
}

func failed(err error, message string) Result {
	return Result{Error: message, Err: err}
}
