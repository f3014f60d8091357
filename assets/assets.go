package assets

import (
	"embed"
	"log"

	"github.com/automoto/skyclimb/shared/leveldata"
)

var (
	//go:embed all:patterns
	patternFS embed.FS
)

// PatternDir is the embedded directory holding the pattern TMX files.
const PatternDir = "patterns"

// LoadPatterns parses every embedded pattern table.
func LoadPatterns() (*leveldata.PatternTables, error) {
	return leveldata.LoadAllPatternTables(patternFS, PatternDir)
}

// MustLoadPatterns is LoadPatterns for program start-up.
func MustLoadPatterns() *leveldata.PatternTables {
	tables, err := LoadPatterns()
	if err != nil {
		log.Fatalf("Failed to load pattern tables: %v", err)
	}
	return tables
}
