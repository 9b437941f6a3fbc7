// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Files      FilesConfig       `toml:"files"`
	Attendance AttendanceConfig  `toml:"attendance"`
	Persons    map[string]string `toml:"persons"`
	Projects   map[string]string `toml:"projects"`
}

// FilesConfig maps input and output locations.
type FilesConfig struct {
	Attendance string `toml:"attendance"`
	Costs      string `toml:"costs"`
	CostsSheet string `toml:"costs_sheet"`
	Changelog  string `toml:"changelog"`
	Output     string `toml:"output"`
	Log        string `toml:"log"`
	Journal    string `toml:"journal"`
	Font       string `toml:"font"` // TTF used in exported PDFs
}

// AttendanceConfig maps the layout of the HR attendance workbook. Unset
// fields keep the defaults of attendance.DefaultLayout.
type AttendanceConfig struct {
	Sheet        *string `toml:"sheet"`
	HeaderRow    *int    `toml:"header_row"`
	NameCol      *string `toml:"name_col"`
	NumberCol    *string `toml:"number_col"`
	SpecialtyCol *string `toml:"specialty_col"`
	FirstDayCol  *string `toml:"first_day_col"`
	Present      *string `toml:"present"`
}

// Default returns the configuration used when no file is present.
func Default() FileConfig {
	return FileConfig{
		Files: FilesConfig{
			Attendance: "tabel.xlsx",
			Costs:      "costs.xlsx",
			Output:     ".",
			Log:        "costsheet.log",
			Journal:    DefaultJournalPath(),
		},
		Persons:  map[string]string{},
		Projects: map[string]string{},
	}
}

// LoadConfig reads a TOML config from the given path on top of Default.
// Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Layout merges the configured attendance layout into the defaults.
func (c AttendanceConfig) Layout() attendance.Layout {
	l := attendance.DefaultLayout()
	if c.Sheet != nil {
		l.Sheet = *c.Sheet
	}
	if c.HeaderRow != nil {
		l.HeaderRow = *c.HeaderRow
	}
	if c.NameCol != nil {
		l.NameCol = *c.NameCol
	}
	if c.NumberCol != nil {
		l.NumberCol = *c.NumberCol
	}
	if c.SpecialtyCol != nil {
		l.SpecialtyCol = *c.SpecialtyCol
	}
	if c.FirstDayCol != nil {
		l.FirstDayCol = *c.FirstDayCol
	}
	if c.Present != nil {
		l.Present = *c.Present
	}
	return l
}

// ProjectName maps a tracker project key to its display name. Unknown keys
// are returned unchanged.
func (c FileConfig) ProjectName(key string) (string, error) {
	if name, ok := c.Projects[key]; ok && name != "" {
		return name, nil
	}
	return key, nil
}
