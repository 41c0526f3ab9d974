package osti

// SchemaVersion is the OSTI schema version (SemVer). Removing a field or enum
// member, renaming a field or changing required-ness is a major change;
// adding an optional field or enum member is a minor one.
const SchemaVersion = "0.1.2"

// SchemaTitle is the title of the exported JSON Schema document.
const SchemaTitle = "OSTI SessionPlan"

// SchemaID returns the $id of the exported JSON Schema for SchemaVersion.
func SchemaID() string {
	return "https://karstenskyt.github.io/osti/v" + SchemaVersion + "/schema.json"
}

// SchemaDescription returns the document description for SchemaVersion.
func SchemaDescription() string {
	return "Open Standard for Training Interoperability v" + SchemaVersion +
		": FHIR-inspired schema for soccer/football session plans."
}
