package inmemdb

import (
	"sync"

	"github.com/edukeep/edukeep/core/alert"
	"github.com/edukeep/edukeep/core/imports"
	"github.com/edukeep/edukeep/core/risk"
)

type (
	// DB is the in-memory store used in development and tests. Tables are
	// guarded by RWMutexes; within one import the pipeline is the only
	// writer (single-writer discipline is the caller's responsibility).
	DB struct {
		record    *recordTable
		alert     *alertTable
		threshold *thresholdTable
	}

	recordTable struct {
		sync.RWMutex
		table map[string]*imports.Record // id -> record
	}

	alertTable struct {
		sync.RWMutex
		table map[string]*alert.Alert // id -> alert
	}

	thresholdTable struct {
		sync.RWMutex
		current *risk.Thresholds // nil until first save
	}
)

func Open() (*DB, error) {
	db := &DB{
		record:    &recordTable{table: make(map[string]*imports.Record)},
		alert:     &alertTable{table: make(map[string]*alert.Alert)},
		threshold: &thresholdTable{},
	}
	return db, nil
}
