package voicefx

import "slices"

// ID identifies an effect in the catalog.
type ID string

// Catalog effect ids.
const (
	Delay      ID = "delay"
	Reverb     ID = "reverb"
	Tremolo    ID = "tremolo"
	Phaser     ID = "phaser"
	Telephone  ID = "telephone"
	Echo       ID = "echo"
	Underwater ID = "underwater"
	Radio      ID = "radio"
)

// String returns the id text.
func (id ID) String() string { return string(id) }

// Known reports whether id is in the catalog.
func (id ID) Known() bool {
	_, ok := Lookup(id)
	return ok
}

// Descriptor is the user-facing description of a catalog entry.
type Descriptor struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var catalog = []Descriptor{
	{ID: Delay, Name: "Delay", Description: "Simple echo delay effect"},
	{ID: Reverb, Name: "Reverb", Description: "Hall reverb effect"},
	{ID: Tremolo, Name: "Tremolo", Description: "Volume oscillation effect"},
	{ID: Phaser, Name: "Phaser", Description: "Sweeping phase effect"},
	{ID: Telephone, Name: "Telephone", Description: "Old phone call effect"},
	{ID: Echo, Name: "Echo Cave", Description: "Multiple echoes"},
	{ID: Underwater, Name: "Underwater", Description: "Muffled underwater sound"},
	{ID: Radio, Name: "Radio DJ", Description: "Radio broadcast effect"},
}

// List returns the catalog in display order. The slice is a copy.
func List() []Descriptor {
	return slices.Clone(catalog)
}

// Lookup returns the descriptor for id.
func Lookup(id ID) (Descriptor, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// IDs returns the catalog ids in display order.
func IDs() []ID {
	ids := make([]ID, len(catalog))
	for i, d := range catalog {
		ids[i] = d.ID
	}
	return ids
}
