// Package sensor projects a cached [eol.Snapshot] into display entities.
//
// One [ReleaseDateSensor] and four [BooleanStatusSensor] values are built per
// tracked release. The release date sensor holds a reference to its
// [DataSource] and recomputes everything on each read; boolean sensors
// capture their value when built.
package sensor

import (
	"errors"
	"strings"
	"unicode"

	"github.com/jpalmerr/eoltracker/eol"
)

const (
	// StateUnknown is reported when a value is absent from the snapshot.
	StateUnknown = "unknown"

	// LabelUnknown is the default for missing labels and attributes.
	LabelUnknown = "Unknown"

	// Manufacturer is the device manufacturer shown for every entity.
	Manufacturer = "endoflife.date"
)

// ErrNoData is returned by [Build] when the source holds no snapshot.
var ErrNoData = errors.New("no data available")

// DataSource is the read side of the polling cache.
type DataSource interface {
	Data() *eol.Snapshot
}

// DeviceInfo groups the entities of one tracked release.
type DeviceInfo struct {
	Identifiers  [2]string `json:"identifiers"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Model        string    `json:"model"`
	EntryType    string    `json:"entry_type"`
}

// Entity is the read-accessor set every sensor implements.
type Entity interface {
	UniqueID() string
	Name() string
	State() string
	DeviceClass() string
	Icon() string
	EntityPicture() string
	Attributes() map[string]string
	Device() DeviceInfo
}

// Build creates the release date sensor followed by the LTS, EOL,
// Discontinued and Maintained sensors, in that order.
//
// Labels are read once here; missing ones become [LabelUnknown].
func Build(entryID string, source DataSource) ([]Entity, error) {
	snap := source.Data()
	if snap == nil {
		return nil, ErrNoData
	}

	product := orUnknown(snap.Product.Label)
	release := orUnknown(snap.Release.Label)
	r := snap.Release

	return []Entity{
		NewReleaseDateSensor(entryID, product, release, source),
		NewBooleanStatusSensor(entryID, product, release, FlagLTS, r.LTS()),
		NewBooleanStatusSensor(entryID, product, release, FlagEOL, r.EOL()),
		NewBooleanStatusSensor(entryID, product, release, FlagDiscontinued, r.Discontinued()),
		NewBooleanStatusSensor(entryID, product, release, FlagMaintained, r.Maintained()),
	}, nil
}

// normalizeID lower-cases s and replaces every whitespace rune with "_".
func normalizeID(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, "_"))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, joined)
}

func deviceInfo(entryID, product, release string) DeviceInfo {
	model := product + " " + release
	return DeviceInfo{
		Identifiers:  [2]string{"eol", entryID + "_" + model},
		Name:         model + " EOL",
		Manufacturer: Manufacturer,
		Model:        model,
		EntryType:    "service",
	}
}

func orUnknown(s string) string {
	if s == "" {
		return LabelUnknown
	}
	return s
}
