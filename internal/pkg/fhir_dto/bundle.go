package fhir_dto

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

type Bundle struct {
	ResourceType string  `json:"resourceType"`
	Type         string  `json:"type"`
	Total        int     `json:"total,omitempty"`
	Entry        []Entry `json:"entry"`
}

type Entry struct {
	Resource json.RawMessage `json:"resource"`
	Request  *EntryRequest   `json:"request,omitempty"`
}

// EntryRequest is the per-entry upsert directive carried only on
// transaction bundles, e.g. {"method":"PUT","url":"Patient/p1"}.
type EntryRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// Kind reads the resourceType discriminator out of a raw entry without
// decoding the full resource.
func (e Entry) Kind() string {
	var header struct {
		ResourceType string `json:"resourceType"`
	}
	if err := json.Unmarshal(e.Resource, &header); err != nil {
		return ""
	}
	return header.ResourceType
}

// BuildReference renders "<Kind>/<id>".
func BuildReference(kind, id string) string {
	return fmt.Sprintf("%s/%s", kind, id)
}

// StripReferencePrefix turns "<Kind>/<id>" into "<id>"; ids without a
// prefix pass through unchanged.
func StripReferencePrefix(reference string) string {
	if idx := strings.LastIndex(reference, "/"); idx >= 0 {
		return reference[idx+1:]
	}
	return reference
}
