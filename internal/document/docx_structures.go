package document

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// DOCX XML Namespaces
const (
	WordprocessingMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	RelationshipsNamespace    = "http://schemas.openxmlformats.org/package/2006/relationships"
	OfficeRelNamespace        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	XMLNamespace              = "http://www.w3.org/XML/1998/namespace"
)

// Relationship types used to locate header and footer parts
const (
	HeaderRelType = OfficeRelNamespace + "/header"
	FooterRelType = OfficeRelNamespace + "/footer"
)

// Package part names
const (
	MainDocumentPart = "word/document.xml"
	documentRelsPart = "word/_rels/document.xml.rels"
)

// Relationships represents a .rels part
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship represents a relationship
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// parseRelationships decodes a .rels part into a map keyed by relationship ID.
func parseRelationships(data []byte) (map[string]Relationship, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}

	byID := make(map[string]Relationship, len(rels.Relationships))
	for _, r := range rels.Relationships {
		byID[r.ID] = r
	}
	return byID, nil
}

// resolveTarget turns a relationship target into a zip entry name, relative to
// the directory of the source part.
func resolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(sourcePart), target))
}

// isOn interprets an OOXML on/off value. An absent value means on.
func isOn(val string, present bool) bool {
	if !present {
		return true
	}
	switch strings.ToLower(val) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}
