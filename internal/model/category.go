package model

import (
	"errors"
	"path"
)

// ErrInvalidFolder is returned when a section or document type is outside the fixed sets.
var ErrInvalidFolder = errors.New("invalid section or type")

// Category is a top-level organizational folder. The set is closed.
type Category string

const (
	CommandGroup  Category = "command-group"
	Personnel     Category = "personnel"
	Intelligence  Category = "intelligence"
	TrainingOps   Category = "training-ops"
	Logistics     Category = "logistics"
	CivilMilitary Category = "civil-military"
)

var categories = []Category{CommandGroup, Personnel, Intelligence, TrainingOps, Logistics, CivilMilitary}

var categoryLabels = map[Category]string{
	CommandGroup:  "Corp Commander",
	Personnel:     "S1 - Personnel",
	Intelligence:  "S2 - Intelligence",
	TrainingOps:   "S3 - Training & Ops",
	Logistics:     "S4 - Logistics",
	CivilMilitary: "S7 - CMO",
}

// Section identifiers still sent by older clients.
var categoryAliases = map[string]Category{
	"corp_commander":  CommandGroup,
	"s1_personnel":    Personnel,
	"s2_intelligence": Intelligence,
	"s3_training_ops": TrainingOps,
	"s4_logistics":    Logistics,
	"s7_cmo":          CivilMilitary,
}

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves s to a Category. Legacy section identifiers are accepted
// and mapped to their canonical category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if _, ok := categoryLabels[c]; ok {
		return c, true
	}
	if c, ok := categoryAliases[s]; ok {
		return c, true
	}
	return "", false
}

// Label returns the human-readable folder name.
func (c Category) Label() string { return categoryLabels[c] }

// DocumentType is the incoming/outgoing sub-folder of a category.
type DocumentType string

const (
	Incoming DocumentType = "incoming"
	Outgoing DocumentType = "outgoing"
)

var documentTypes = []DocumentType{Incoming, Outgoing}

// DocumentTypes returns both document types.
func DocumentTypes() []DocumentType {
	out := make([]DocumentType, len(documentTypes))
	copy(out, documentTypes)
	return out
}

// ParseDocumentType resolves s to a DocumentType.
func ParseDocumentType(s string) (DocumentType, bool) {
	switch DocumentType(s) {
	case Incoming, Outgoing:
		return DocumentType(s), true
	}
	return "", false
}

// Label returns the human-readable sub-folder name.
func (t DocumentType) Label() string {
	switch t {
	case Incoming:
		return "Incoming Documents"
	case Outgoing:
		return "Outgoing Documents"
	}
	return ""
}

// Folder is a validated (category, document type) pair.
type Folder struct {
	Category Category
	Type     DocumentType
}

// Key is the slash-separated storage prefix of the folder, e.g. "logistics/incoming".
func (f Folder) Key() string {
	return path.Join(string(f.Category), string(f.Type))
}

// ObjectKey is the storage key of a file named name inside the folder.
func (f Folder) ObjectKey(name string) string {
	return f.Key() + "/" + name
}

// ParseFolder validates section and docType against the closed sets.
func ParseFolder(section, docType string) (Folder, error) {
	c, ok := ParseCategory(section)
	if !ok {
		return Folder{}, ErrInvalidFolder
	}
	t, ok := ParseDocumentType(docType)
	if !ok {
		return Folder{}, ErrInvalidFolder
	}
	return Folder{Category: c, Type: t}, nil
}

// IsValid reports whether both section and docType are members of their sets.
func IsValid(section, docType string) bool {
	_, err := ParseFolder(section, docType)
	return err == nil
}

// Folders enumerates every category x document type pair.
func Folders() []Folder {
	out := make([]Folder, 0, len(categories)*len(documentTypes))
	for _, c := range categories {
		for _, t := range documentTypes {
			out = append(out, Folder{Category: c, Type: t})
		}
	}
	return out
}
