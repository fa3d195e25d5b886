// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string (default: file:polls.db for sqlite)
  - SeedQuestions: Demo questions to create on startup (negative means none)
  - EnvFile: .env file that was requested

# CLI Flags

	-p     Server port
	-t     Database type
	-d     Database URL
	-seed  Demo question count
	-env   Path to a .env file

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d
	SEED_QUESTIONS → -seed
	ENV_FILE       → -env

Before the fallback runs, the .env file (from -env, ENV_FILE, or ./.env)
is loaded with godotenv. It never overrides variables that are already
set, so the order is CLI flags, then the environment, then .env, then
defaults. A missing ./.env is ignored; a missing explicit file is an error.

# Validation

ParseFlags returns an error if:

  - the port is outside 1..65535
  - the database type is neither sqlite nor postgres
  - postgres is selected without a DATABASE_URL
*/
package cliparse
