package fhir_dto

type Reference struct {
	Reference string `json:"reference,omitempty" bson:"reference,omitempty"`
	Type      string `json:"type,omitempty" bson:"type,omitempty"`
	Display   string `json:"display,omitempty" bson:"display,omitempty"`
}

type Identifier struct {
	Use    string `json:"use,omitempty" bson:"use,omitempty"`
	System string `json:"system,omitempty" bson:"system,omitempty"`
	Value  string `json:"value,omitempty" bson:"value,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty" bson:"use,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
	Family string   `json:"family,omitempty" bson:"family,omitempty"`
	Given  []string `json:"given,omitempty" bson:"given,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty" bson:"start,omitempty"`
	End   string `json:"end,omitempty" bson:"end,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty" bson:"coding,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty" bson:"system,omitempty"`
	Code    string `json:"code,omitempty" bson:"code,omitempty"`
	Display string `json:"display,omitempty" bson:"display,omitempty"`
}

// Attachment points at photo bytes. Url is a locator on the owning device's
// file storage; Data is inline base64 and only ever populated on Binary
// resources carried inside an export bundle.
type Attachment struct {
	ContentType string `json:"contentType,omitempty" bson:"contentType,omitempty"`
	Url         string `json:"url,omitempty" bson:"url,omitempty"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Creation    string `json:"creation,omitempty" bson:"creation,omitempty"`
}

type Annotation struct {
	Time string `json:"time,omitempty" bson:"time,omitempty"`
	Text string `json:"text,omitempty" bson:"text,omitempty"`
}
