// Package models defines data structures for the ingest, analyzer and formatter packages.
package models

import "encoding/json"

// Location represents a geographic point.
type Location struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationMetadata holds descriptive attributes keyed to a Location by ID.
type LocationMetadata struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Rating  float64 `json:"rating"`
	Reviews float64 `json:"reviews"`
}

// MergedLocation is a Location with the metadata found for it, if any.
// The zero value is a location without metadata.
type MergedLocation struct {
	Location
	metadata    LocationMetadata
	hasMetadata bool
}

// NewMergedLocation returns a merged record with no metadata attached.
func NewMergedLocation(loc Location) MergedLocation {
	return MergedLocation{Location: loc}
}

// NewMergedLocationWithMetadata returns a merged record carrying meta.
func NewMergedLocationWithMetadata(loc Location, meta LocationMetadata) MergedLocation {
	return MergedLocation{
		Location:    loc,
		metadata:    meta,
		hasMetadata: true,
	}
}

// Metadata returns the attached metadata and whether there is any.
func (m MergedLocation) Metadata() (LocationMetadata, bool) {
	return m.metadata, m.hasMetadata
}

// HasMetadata reports whether metadata was found for this location.
func (m MergedLocation) HasMetadata() bool {
	return m.hasMetadata
}

type mergedLocationJSON struct {
	ID        string            `json:"id"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Metadata  *LocationMetadata `json:"metadata,omitempty"`
}

// MarshalJSON emits the metadata object only when it is present.
func (m MergedLocation) MarshalJSON() ([]byte, error) {
	out := mergedLocationJSON{
		ID:        m.ID,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}

	if m.hasMetadata {
		meta := m.metadata
		out.Metadata = &meta
	}

	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *MergedLocation) UnmarshalJSON(data []byte) error {
	var in mergedLocationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	loc := Location{ID: in.ID, Latitude: in.Latitude, Longitude: in.Longitude}
	if in.Metadata != nil {
		*m = NewMergedLocationWithMetadata(loc, *in.Metadata)
	} else {
		*m = NewMergedLocation(loc)
	}

	return nil
}
