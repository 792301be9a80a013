package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/five82/gobiview/internal/dom"
	"github.com/five82/gobiview/internal/storage"
)

// ErrInvalidSettings is returned by Load when the stored record is not a
// JSON object.
var ErrInvalidSettings = errors.New("invalid view settings")

// ViewSettings is the persisted layout record.
type ViewSettings struct {
	ColumnOrder   []string `json:"columnOrder"`
	HiddenColumns []string `json:"hiddenColumns"`
	Docked        bool     `json:"docked"`
}

// Capture reads the layout currently rendered in doc.
func Capture(doc *dom.Document) ViewSettings {
	v := ViewSettings{
		ColumnOrder:   []string{},
		HiddenColumns: []string{},
	}
	if doc == nil {
		return v
	}
	v.Docked = dom.HasClass(doc.Body(), ClassDocked)
	for _, th := range fieldHeaders(doc) {
		field := dom.Attr(th, FieldAttr)
		v.ColumnOrder = append(v.ColumnOrder, field)
		if dom.HasClass(th, ClassHidden) {
			v.HiddenColumns = append(v.HiddenColumns, field)
		}
	}
	return v
}

// DecodeSettings parses a stored record. Each field is read on its own: a
// missing or wrongly typed field falls back to its empty value and non-string
// entries inside the lists are dropped.
func DecodeSettings(raw string) (ViewSettings, error) {
	if !gjson.Valid(raw) {
		return ViewSettings{}, fmt.Errorf("%w: not valid JSON", ErrInvalidSettings)
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return ViewSettings{}, fmt.Errorf("%w: not an object", ErrInvalidSettings)
	}
	return ViewSettings{
		ColumnOrder:   stringList(doc.Get("columnOrder")),
		HiddenColumns: stringList(doc.Get("hiddenColumns")),
		Docked:        doc.Get("docked").Type == gjson.True,
	}, nil
}

// ValidSettings reports whether raw would be accepted by DecodeSettings.
func ValidSettings(raw string) bool {
	_, err := DecodeSettings(raw)
	return err == nil
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, item := range r.Array() {
		if item.Type == gjson.String && item.Str != "" {
			out = append(out, item.Str)
		}
	}
	return out
}

// Apply reorders and hides columns in doc according to v and returns the
// stored fields that no longer exist in the table. A document without a
// results table is left untouched.
func Apply(doc *dom.Document, v ViewSettings) []string {
	table := resultsTable(doc)
	if table == nil {
		return nil
	}

	if v.Docked {
		dom.AddClass(doc.Body(), ClassDocked)
		dom.AddClass(doc.ByID(DockButtonID), ClassActive)
	}

	var missing []string
	if len(v.ColumnOrder) > 0 {
		if row := headerRow(table); row != nil {
			for _, field := range v.ColumnOrder {
				th := dom.FindFirst(row, dom.All(dom.Tag("th"), dom.AttrEquals(FieldAttr, field)))
				if th == nil {
					missing = append(missing, field)
					continue
				}
				dom.Append(row, th)
			}
		}
		for _, tr := range bodyRows(table) {
			for _, field := range v.ColumnOrder {
				if td := dom.FindFirst(tr, dom.Class(ColumnClass(field))); td != nil && td.Parent == tr {
					dom.Append(tr, td)
				}
			}
		}
	}

	for _, field := range v.HiddenColumns {
		SetColumnVisible(doc, field, false)
	}
	return missing
}

// SettingsStore is the sole reader and writer of the ViewSettings record.
type SettingsStore struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewSettingsStore binds the record to s.
func NewSettingsStore(s storage.Storage, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsStore{storage: s, logger: logger}
}

// Save captures the layout of doc and overwrites the stored record.
func (s *SettingsStore) Save(doc *dom.Document) error {
	return s.Write(Capture(doc))
}

// Write stores v under SettingsKey.
func (s *SettingsStore) Write(v ViewSettings) error {
	if v.ColumnOrder == nil {
		v.ColumnOrder = []string{}
	}
	if v.HiddenColumns == nil {
		v.HiddenColumns = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode view settings: %w", err)
	}
	if err := s.storage.SetItem(SettingsKey, string(data)); err != nil {
		return fmt.Errorf("save view settings: %w", err)
	}
	return nil
}

// Load returns the stored record and whether one exists.
func (s *SettingsStore) Load() (ViewSettings, bool, error) {
	raw, ok, err := s.storage.GetItem(SettingsKey)
	if err != nil {
		return ViewSettings{}, false, fmt.Errorf("read view settings: %w", err)
	}
	if !ok || raw == "" {
		return ViewSettings{}, false, nil
	}
	v, err := DecodeSettings(raw)
	if err != nil {
		return ViewSettings{}, false, err
	}
	return v, true, nil
}

// LoadAndApply applies the stored record to doc. A missing or unreadable
// record leaves the server layout in place; failures are logged only. It
// reports whether a record was applied.
func (s *SettingsStore) LoadAndApply(doc *dom.Document) bool {
	v, ok, err := s.Load()
	if err != nil {
		s.logger.Warn("discarding stored view settings", "key", SettingsKey, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if missing := Apply(doc, v); len(missing) > 0 {
		s.logger.Debug("skipped stale columns", "fields", missing)
	}
	return true
}

// Reset removes the stored record.
func (s *SettingsStore) Reset() error {
	if err := s.storage.RemoveItem(SettingsKey); err != nil {
		return fmt.Errorf("reset view settings: %w", err)
	}
	return nil
}
