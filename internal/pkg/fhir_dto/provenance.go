package fhir_dto

type Provenance struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Target       []Reference       `json:"target,omitempty"`
	Recorded     string            `json:"recorded,omitempty"`
	Agent        []ProvenanceAgent `json:"agent,omitempty"`
}

type ProvenanceAgent struct {
	Who Reference `json:"who,omitempty"`
}

// TargetID returns the first target's id without its kind prefix.
func (p *Provenance) TargetID() string {
	if len(p.Target) == 0 {
		return ""
	}
	return StripReferencePrefix(p.Target[0].Reference)
}
