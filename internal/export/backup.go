package export

import (
	"encoding/json"
	"fmt"
	"io"

	"fintrack/internal/core"
)

// Document is the full-database backup shape: one array per collection.
// On restore, a nil field means the collection was absent from the
// upload and must be left untouched.
type Document struct {
	Transactions *[]core.Transaction `json:"transactions,omitempty"`
	Categories   *[]core.Category    `json:"categories,omitempty"`
	Budgets      *[]core.Budget      `json:"budgets,omitempty"`
	Goals        *[]core.Goal        `json:"goals,omitempty"`
}

// NewDocument builds a backup document covering all four collections.
func NewDocument(txs []core.Transaction, cats []core.Category, budgets []core.Budget, goals []core.Goal) Document {
	if txs == nil {
		txs = []core.Transaction{}
	}
	if cats == nil {
		cats = []core.Category{}
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	if goals == nil {
		goals = []core.Goal{}
	}
	return Document{Transactions: &txs, Categories: &cats, Budgets: &budgets, Goals: &goals}
}

// Marshal serializes the backup as indented JSON.
func (d Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// DecodeDocument parses an uploaded backup.
func DecodeDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode backup: %w", err)
	}
	return d, nil
}
