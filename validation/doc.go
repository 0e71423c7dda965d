// Package validation checks configuration and request input and reports
// failures as an INVALID_INPUT *errors.AppError listing every bad field in
// Details["fields"].
//
// Struct tags go through go-playground/validator; field names follow the
// json tag, then the mapstructure tag:
//
//	type Endpoint struct {
//	    URL string `mapstructure:"endpoint" validate:"required,url"`
//	    Key string `mapstructure:"key" validate:"required,notblank"`
//	}
//	err := validation.Validate(ep)
//
// Cross-field rules are checked programmatically:
//
//	err := validation.New().
//	    Check(cfg.Model == "" || cfg.Provider != "", "provider", "is required with model").
//	    Err()
package validation
