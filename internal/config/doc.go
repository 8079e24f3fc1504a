// Package config provides centralized configuration for the living wage tools.
//
// # Configuration Sources
//
// Configuration is built from the following sources in increasing order of precedence:
//
//	1. Default values (Default)
//	2. A YAML configuration file (livingwage.yaml or configs/livingwage.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern LW_<SECTION>_<KEY>:
//
//	LW_REPORT_WIDTH=20
//	LW_REPORT_CHART_FORMAT=xlsx
//	LW_PATHS_DATA_DIR=/srv/datasets
//	LW_LOGGING_LEVEL=debug
//
// # Path Management
//
// Paths are resolved relative to Paths.BaseDir (the working directory by default),
// so the tools keep reading DataFiles/wages.csv the way the coursework scripts did:
//
//	paths, err := cfg.ResolvePaths()
//	fields, table, err := dataprocessing.ReadCSV(paths.WagesCSV)
package config
