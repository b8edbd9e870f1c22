package fhir_dto

type Patient struct {
	ResourceType         string       `json:"resourceType"`
	ID                   string       `json:"id,omitempty"`
	Name                 []HumanName  `json:"name,omitempty"`
	BirthDate            string       `json:"birthDate,omitempty"`
	Gender               string       `json:"gender,omitempty"`
	Identifier           []Identifier `json:"identifier,omitempty"`
	ManagingOrganization *Reference   `json:"managingOrganization,omitempty"`
}

// MRN returns the first identifier value, the medical record number by
// convention.
func (p *Patient) MRN() string {
	if len(p.Identifier) == 0 {
		return ""
	}
	return p.Identifier[0].Value
}

func (p *Patient) FamilyName() string {
	if len(p.Name) == 0 {
		return ""
	}
	return p.Name[0].Family
}

func (p *Patient) GivenName() string {
	if len(p.Name) == 0 || len(p.Name[0].Given) == 0 {
		return ""
	}
	return p.Name[0].Given[0]
}
