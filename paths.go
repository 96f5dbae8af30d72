package datalib

import (
	"maps"
	"slices"
)

// Format selects the on-disk encoding of a library item.
type Format int

const (
	// FormatDocument is a structured YAML document.
	FormatDocument Format = iota
	// FormatTable is a comma-delimited table with a header row.
	FormatTable
)

// extensions returns the file extensions tried for the format, in search order.
func (f Format) extensions() []string {
	if f == FormatTable {
		return []string{"csv"}
	}

	return []string{"yaml", "yml"}
}

// pathLibrary maps each semantic key to the subdirectory its items are stored
// under, relative to a library root. Several keys intentionally share a
// subdirectory; the table is the single source of truth for the layout.
//
//nolint:gochecknoglobals // immutable lookup table.
var pathLibrary = map[string]string{
	// default data
	"defaults": "defaults",
	// vessels
	"array_cable_install_vessel":  "vessels",
	"array_cable_bury_vessel":     "vessels",
	"array_cable_trench_vessel":   "vessels",
	"export_cable_install_vessel": "vessels",
	"export_cable_bury_vessel":    "vessels",
	"export_cable_trench_vessel":  "vessels",
	"oss_install_vessel":          "vessels",
	"spi_vessel":                  "vessels",
	"trench_dig_vessel":           "vessels",
	"feeder":                      "vessels",
	"mooring_install_vessel":      "vessels",
	"wtiv":                        "vessels",
	"towing_vessel":               "vessels",
	"support_vessel":              "vessels",
	"ahts_vessel":                 "vessels",
	// cables
	"cables":               "cables",
	"array_system":         "cables",
	"array_system_design":  "cables",
	"export_system":        "cables",
	"export_system_design": "cables",
	// project details
	"config":              "project/config",
	"plant":               "project/plant",
	"port":                "project/ports",
	"project_development": "project/development",
	"site":                "project/site",
	// substructures
	"monopile":                         "substructures",
	"monopile_design":                  "substructures",
	"scour_protection":                 "substructures",
	"scour_design":                     "substructures",
	"transition_piece":                 "substructures",
	"offshore_substation_substructure": "substructures",
	"offshore_substation_topside":      "substructures",
	// turbine
	"turbine": "turbines",
}

// PathFor returns the library subdirectory (slash-separated, relative to a
// root) for the given semantic key. A key absent from the table is a
// programming error and returns *UnknownKeyError.
func PathFor(key string) (string, error) {
	dir, ok := pathLibrary[key]
	if !ok {
		return "", &UnknownKeyError{Key: key}
	}

	return dir, nil
}

// Keys returns every semantic key in the table, sorted.
func Keys() []string {
	return slices.Sorted(maps.Keys(pathLibrary))
}
