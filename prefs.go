package main

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

const prefsKey = "prefs"

// Prefs survive restarts. Flags given on the command line win over them.
type Prefs struct {
	Debug  bool   `json:"debug"`
	Script string `json:"script"`
}

var prefsManager *gdata.Manager

func openPrefs() *gdata.Manager {
	if prefsManager != nil {
		return prefsManager
	}
	m, err := gdata.Open(gdata.Config{AppName: "mercmech"})
	if err != nil {
		log.Printf("prefs: open: %v", err)
		return nil
	}
	prefsManager = m
	return m
}

func loadPrefs() Prefs {
	var p Prefs
	m := openPrefs()
	if m == nil {
		return p
	}
	data, err := m.LoadItem(prefsKey)
	if err != nil {
		log.Printf("prefs: load: %v", err)
		return p
	}
	if data == nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("prefs: parse: %v", err)
		return Prefs{}
	}
	return p
}

func savePrefs(p Prefs) {
	m := openPrefs()
	if m == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("prefs: encode: %v", err)
		return
	}
	if err := m.SaveItem(prefsKey, data); err != nil {
		log.Printf("prefs: save: %v", err)
	}
}
