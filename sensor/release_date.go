package sensor

import "github.com/jpalmerr/eoltracker/eol"

// Attribute names exposed by [ReleaseDateSensor].
const (
	AttrReleaseDate   = "Release Date"
	AttrLatest        = "Latest"
	AttrEOLFrom       = "End of Life from"
	AttrLink          = "endoflife.date link"
	AttrReleasePolicy = "Release Policy"
	AttrSupportedOS   = "Supported OS Versions"
)

// ReleaseDateSensor reports the release date as a timestamp.
//
// It never copies the snapshot: every accessor reads the current value from
// the [DataSource], so a refresh is visible on the next read.
type ReleaseDateSensor struct {
	entryID string
	product string
	release string
	source  DataSource
}

// NewReleaseDateSensor creates a [ReleaseDateSensor].
func NewReleaseDateSensor(entryID, product, release string, source DataSource) *ReleaseDateSensor {
	return &ReleaseDateSensor{
		entryID: entryID,
		product: product,
		release: release,
		source:  source,
	}
}

func (s *ReleaseDateSensor) UniqueID() string {
	return normalizeID(s.entryID, s.product, s.release)
}

func (s *ReleaseDateSensor) Name() string {
	return s.product + " " + s.release
}

// State returns the release date, or [StateUnknown] when absent.
func (s *ReleaseDateSensor) State() string {
	snap := s.snapshot()
	if snap.Release.ReleaseDate == "" {
		return StateUnknown
	}
	return snap.Release.ReleaseDate
}

func (s *ReleaseDateSensor) DeviceClass() string { return "timestamp" }

func (s *ReleaseDateSensor) Icon() string { return "" }

// EntityPicture returns the product icon URL.
func (s *ReleaseDateSensor) EntityPicture() string {
	return s.snapshot().Product.Links.Icon
}

// Attributes returns the fixed attribute set. Date and version attributes
// default to [LabelUnknown]; links and the custom value default to empty.
func (s *ReleaseDateSensor) Attributes() map[string]string {
	snap := s.snapshot()
	supportedOS, _ := snap.Release.Custom.First()

	return map[string]string{
		AttrReleaseDate:   orUnknown(snap.Release.ReleaseDate),
		AttrLatest:        orUnknown(snap.Release.Latest),
		AttrEOLFrom:       orUnknown(snap.Release.EOLFrom),
		AttrLink:          snap.Product.Links.HTML,
		AttrReleasePolicy: snap.Product.Links.ReleasePolicy,
		AttrSupportedOS:   supportedOS,
	}
}

func (s *ReleaseDateSensor) Device() DeviceInfo {
	return deviceInfo(s.entryID, s.product, s.release)
}

// snapshot returns the current data, or an empty snapshot after teardown.
func (s *ReleaseDateSensor) snapshot() *eol.Snapshot {
	if snap := s.source.Data(); snap != nil {
		return snap
	}
	return &eol.Snapshot{}
}
