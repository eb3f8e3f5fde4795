// Package catalog holds the declarative display tables (status colors, notification
// categories, form field schemas). Every table is validated when loaded.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"tincadia/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// FieldKind tags how a form field value is rendered
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindBoolean FieldKind = "boolean"
	KindArray   FieldKind = "array"
	KindFile    FieldKind = "file"
)

func (k FieldKind) valid() bool {
	switch k {
	case KindString, KindBoolean, KindArray, KindFile:
		return true
	}
	return false
}

type StatusStyle struct {
	Status models.TransactionStatus `yaml:"status" json:"status"`
	Label  string                   `yaml:"label" json:"label"`
	Color  string                   `yaml:"color" json:"color"`
}

type Category struct {
	Key     string   `yaml:"key" json:"key"`
	Label   string   `yaml:"label" json:"label"`
	Color   string   `yaml:"color" json:"color"`
	Types   []string `yaml:"types" json:"-"`
	Default bool     `yaml:"default" json:"-"`
}

type Field struct {
	Key   string    `yaml:"key" json:"key"`
	Label string    `yaml:"label" json:"label"`
	Kind  FieldKind `yaml:"kind" json:"kind"`
}

type FormType struct {
	Type   string  `yaml:"type" json:"type"`
	Label  string  `yaml:"label" json:"label"`
	Fields []Field `yaml:"fields" json:"fields"`
}

type Catalog struct {
	TransactionStatuses    []StatusStyle `yaml:"transactionStatuses"`
	NotificationCategories []Category    `yaml:"notificationCategories"`
	FormTypes              []FormType    `yaml:"formTypes"`

	statusIndex map[models.TransactionStatus]StatusStyle
	typeIndex   map[string]Category
	formIndex   map[string]FormType
	defaultCat  Category
}

// Default loads the embedded catalog
func Default() (*Catalog, error) {
	return Load(defaultCatalog)
}

// Load parses and validates a catalog document
func Load(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) build() error {
	c.statusIndex = make(map[models.TransactionStatus]StatusStyle, len(c.TransactionStatuses))
	for _, s := range c.TransactionStatuses {
		if _, ok := models.ParseTransactionStatus(string(s.Status)); !ok {
			return fmt.Errorf("catalog: unknown transaction status %q", s.Status)
		}
		if _, dup := c.statusIndex[s.Status]; dup {
			return fmt.Errorf("catalog: duplicate transaction status %q", s.Status)
		}
		c.statusIndex[s.Status] = s
	}
	for _, s := range models.AllTransactionStatuses {
		if _, ok := c.statusIndex[s]; !ok {
			return fmt.Errorf("catalog: transaction status %q has no style", s)
		}
	}

	c.typeIndex = map[string]Category{}
	seenCat := map[string]bool{}
	defaults := 0
	for _, cat := range c.NotificationCategories {
		if strings.TrimSpace(cat.Key) == "" {
			return fmt.Errorf("catalog: notification category without key")
		}
		if seenCat[cat.Key] {
			return fmt.Errorf("catalog: duplicate notification category %q", cat.Key)
		}
		seenCat[cat.Key] = true
		if cat.Default {
			defaults++
			c.defaultCat = cat
		}
		for _, t := range cat.Types {
			t = strings.ToLower(strings.TrimSpace(t))
			if prev, dup := c.typeIndex[t]; dup {
				return fmt.Errorf("catalog: notification type %q in both %q and %q", t, prev.Key, cat.Key)
			}
			c.typeIndex[t] = cat
		}
	}
	if defaults != 1 {
		return fmt.Errorf("catalog: exactly one default notification category required, got %d", defaults)
	}

	c.formIndex = make(map[string]FormType, len(c.FormTypes))
	for _, ft := range c.FormTypes {
		if _, dup := c.formIndex[ft.Type]; dup {
			return fmt.Errorf("catalog: duplicate form type %q", ft.Type)
		}
		seenField := map[string]bool{}
		for _, f := range ft.Fields {
			if !f.Kind.valid() {
				return fmt.Errorf("catalog: form %q field %q has unknown kind %q", ft.Type, f.Key, f.Kind)
			}
			if seenField[f.Key] {
				return fmt.Errorf("catalog: form %q declares field %q twice", ft.Type, f.Key)
			}
			seenField[f.Key] = true
		}
		c.formIndex[ft.Type] = ft
	}
	return nil
}

// StatusStyle returns the label and color of a transaction status
func (c *Catalog) StatusStyle(s models.TransactionStatus) (StatusStyle, bool) {
	st, ok := c.statusIndex[s]
	return st, ok
}

// CategoryFor maps a notification type to its category; unknown types land in the default one
func (c *Catalog) CategoryFor(notificationType string) Category {
	if cat, ok := c.typeIndex[strings.ToLower(strings.TrimSpace(notificationType))]; ok {
		return cat
	}
	return c.defaultCat
}

// FormSchema returns the declared schema of a form type
func (c *Catalog) FormSchema(formType string) (FormType, bool) {
	ft, ok := c.formIndex[formType]
	return ft, ok
}

// FormLabel returns the human label of a form type, or the raw type when undeclared
func (c *Catalog) FormLabel(formType string) string {
	if ft, ok := c.formIndex[formType]; ok && ft.Label != "" {
		return ft.Label
	}
	return formType
}
