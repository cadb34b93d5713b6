package initializers

import "go.uber.org/zap"

// NewLogger builds a JSON production logger, or a console development logger outside production.
func NewLogger(cfg Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
