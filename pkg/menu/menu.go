// Package menu loads the static restaurant catalog. The catalog is read once
// at startup, injected into the model's system instructions, and never mutated
// for the lifetime of a session.
package menu

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Item describes one purchasable menu entry.
type Item struct {
	// Price is the base unit price in currency units.
	Price float64 `json:"price"`

	// Sizes lists the available sizes, empty for one-size items.
	Sizes []string `json:"sizes"`

	// Modifiers lists the accepted customizations.
	Modifiers []string `json:"modifiers"`
}

// Catalog maps category name to item name to item details.
type Catalog map[string]map[string]Item

// Load reads a catalog from a JSON file. A load failure here is fatal for the
// caller: a session cannot start without item and price data.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("menu: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog from raw JSON.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("menu: decode catalog: %w", err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("menu: catalog is empty")
	}
	return c, nil
}

// Find looks up an item by name across all categories, case-insensitively.
// The second return reports whether the item exists on the menu.
func (c Catalog) Find(name string) (Item, bool) {
	for _, items := range c {
		for n, item := range items {
			if strings.EqualFold(n, name) {
				return item, true
			}
		}
	}
	return Item{}, false
}

// Items returns the total number of items across all categories.
func (c Catalog) Items() int {
	n := 0
	for _, items := range c {
		n += len(items)
	}
	return n
}

// Categories returns the category names in sorted order.
func (c Catalog) Categories() []string {
	out := make([]string, 0, len(c))
	for name := range c {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PromptJSON renders the catalog as indented JSON for inclusion in the model's
// system instructions, so the model can self-validate availability and prices.
// Marshaling a decoded catalog cannot fail, so no error is returned.
func (c Catalog) PromptJSON() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
