// Package config loads the server configuration from the environment and
// provider settings from a YAML file.
//
// Environment variables are parsed with caarlos0/env after an optional
// dotenv file is applied:
//
//	var cfg config.App
//	config.MustLoad(&cfg)
//
//	settings, err := config.LoadProviders(cfg.ProvidersFile)
//	if err != nil {
//		return err
//	}
//
// Errors wrap ErrParsingConfig, ErrInvalidConfig or ErrReadProviders.
package config
