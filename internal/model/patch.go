package model

// PatchTable is the manually verified ground truth used to overwrite
// person relationships in an already flattened document
type PatchTable struct {
	People        []PatchPerson `yaml:"people"`
	Relationships []PatchEntry  `yaml:"relationships"`
}

// PatchPerson maps a display name to a person id
type PatchPerson struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// PatchEntry lists the relationships of one person, by display name
type PatchEntry struct {
	Person string      `yaml:"person"`
	Links  []PatchLink `yaml:"links"`
}

// PatchLink is one (type, role, related person) triple
type PatchLink struct {
	Type    string `yaml:"type"`
	Role    string `yaml:"role"`
	Related string `yaml:"related"`
}

// IDs returns the name -> id lookup of the table. Later rows win.
func (t *PatchTable) IDs() map[string]string {
	ids := make(map[string]string, len(t.People))
	for _, p := range t.People {
		ids[p.Name] = p.ID
	}
	return ids
}
