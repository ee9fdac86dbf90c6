// Package config loads runtime configuration for the moneyflow client.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with a .env file loaded through godotenv:
//     API_BASE_URL, MONEYFLOW_DB_PATH, MONEYFLOW_LISTEN_ADDR, MONEYFLOW_LOG_LEVEL.
//  3. A JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Flags
//
//	-a string   API base URL (default http://api.localhost:80)
//	-i int      online status check interval, seconds
//	-d string   SQLite database path
//	-l string   dashboard listen address
//
// JSON intervals go through timex.Duration, so "3s" and 3000000000 are
// equivalent:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "database_path": "/var/lib/moneyflow/client.db",
//	  "online_check_interval": "3s"
//	}
package config
