package main

import (
	"fmt"

	"github.com/grishanin/antlog/internal/config"
	"github.com/grishanin/antlog/internal/db"
	"github.com/grishanin/antlog/internal/spelling"
	"github.com/grishanin/antlog/internal/store"
	"gorm.io/gorm"
)

// defaultConfigPath is where commands look for the config file unless
// overridden with --config.
const defaultConfigPath = "antlog.yaml"

// openStore loads the config, connects the database, migrates the schema
// and builds the store with its dictionary-backed corrector. Shared by
// every command that touches storage.
func openStore(configPath string) (*config.Config, *gorm.DB, *store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return nil, nil, nil, err
	}

	dict, err := spelling.LoadDictionary(cfg.Dictionary)
	if err != nil {
		return nil, nil, nil, err
	}
	st := store.New(gormDB, spelling.NewCorrector(dict))
	return cfg, gormDB, st, nil
}
