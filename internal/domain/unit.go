package domain

// DefaultMarkerName is the fixed-name platform descriptor whose presence at
// the top level of a directory qualifies it as a checkpoint unit. Its content
// is opaque to the replay core.
const DefaultMarkerName = "platinfo"

// CheckpointUnit represents one saved execution state suitable for replay.
// Units are created by the locator during a directory scan and only for
// directories that carry the marker file, so holding a CheckpointUnit implies
// the marker was present at scan time.
type CheckpointUnit struct {
	// ID is the unit's unique identifier, the base name of its directory.
	ID string

	// Path is the filesystem location of the unit's directory.
	Path string
}
