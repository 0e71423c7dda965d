// Package logger wraps zerolog with the service-tagged console and JSON
// formats used across the endpoints module.
//
// The host builds one logger from its Config and installs it globally;
// library packages derive component loggers from it:
//
//	logger.SetGlobalLogger(logger.New(&cfg.Logging, cfg.Name))
//	log := logger.WithComponent("llm")
//	log.Debug("invoked", logger.Fields(logger.FieldBackend, "chat-large"))
//
// WithContext adds the request id and the active trace and span ids.
// Credentials are never passed as fields.
package logger
