// Package forms serves the admin forms inbox: filtering, pagination, field rendering and CSV export.
package forms

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strings"
	"time"

	"tincadia/catalog"
	"tincadia/models"
	"tincadia/utils"

	"github.com/jinzhu/now"
)

// CSVHeader is the fixed export column order
var CSVHeader = []string{"Fecha", "Tipo", "Nombre", "Email", "Teléfono", "Documento"}

const csvDateLayout = "2006-01-02 15:04"

type SubmissionSource interface {
	ListSubmissions(ctx context.Context) ([]models.FormSubmission, error)
}

// Filter narrows the inbox. From and To are whole days, both inclusive.
type Filter struct {
	Type  string
	Query string
	From  *time.Time
	To    *time.Time
}

type Submission struct {
	ID        string    `json:"id"`
	FormType  string    `json:"formType"`
	FormLabel string    `json:"formLabel"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Document  string    `json:"document"`
	CreatedAt time.Time `json:"createdAt"`
	Fields    []Field   `json:"fields"`
}

type Page struct {
	Items      []Submission     `json:"items"`
	Pagination utils.Pagination `json:"pagination"`
}

type Inbox struct {
	source  SubmissionSource
	catalog *catalog.Catalog
}

func NewInbox(source SubmissionSource, c *catalog.Catalog) *Inbox {
	return &Inbox{source: source, catalog: c}
}

// List fetches the whole inbox, filters it, and returns one page, newest first
func (i *Inbox) List(ctx context.Context, f Filter, page, limit int) (*Page, error) {
	subs, err := i.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	slice, meta := utils.Paginate(subs, page, limit)

	items := make([]Submission, 0, len(slice))
	for _, s := range slice {
		items = append(items, i.view(s))
	}
	return &Page{Items: items, Pagination: meta}, nil
}

// Export writes every filtered submission as CSV and returns the number of data rows
func (i *Inbox) Export(ctx context.Context, f Filter, w io.Writer) (int, error) {
	subs, err := i.filtered(ctx, f)
	if err != nil {
		return 0, err
	}
	return WriteCSV(w, subs, i.catalog)
}

func (i *Inbox) filtered(ctx context.Context, f Filter) ([]models.FormSubmission, error) {
	all, err := i.source.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	out := FilterSubmissions(all, f, i.catalog)
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (i *Inbox) view(s models.FormSubmission) Submission {
	schema, _ := i.catalog.FormSchema(s.FormType)
	return Submission{
		ID:        s.ID,
		FormType:  s.FormType,
		FormLabel: i.catalog.FormLabel(s.FormType),
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Document:  s.Document,
		CreatedAt: s.CreatedAt,
		Fields:    RenderFields(schema, s.Data),
	}
}

// FilterSubmissions applies type, free text and day range
func FilterSubmissions(subs []models.FormSubmission, f Filter, c *catalog.Catalog) []models.FormSubmission {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	var from, to time.Time
	if f.From != nil {
		from = now.With(*f.From).BeginningOfDay()
	}
	if f.To != nil {
		to = now.With(*f.To).EndOfDay()
	}

	out := make([]models.FormSubmission, 0, len(subs))
	for _, s := range subs {
		if f.Type != "" && s.FormType != f.Type {
			continue
		}
		if f.From != nil && s.CreatedAt.Before(from) {
			continue
		}
		if f.To != nil && s.CreatedAt.After(to) {
			continue
		}
		if query != "" && !matches(s, query, c) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matches(s models.FormSubmission, query string, c *catalog.Catalog) bool {
	for _, v := range []string{s.Name, s.Email, s.Phone, s.Document, c.FormLabel(s.FormType)} {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// WriteCSV emits the header and one row per submission, in the given order
func WriteCSV(w io.Writer, subs []models.FormSubmission, c *catalog.Catalog) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, err
	}
	for _, s := range subs {
		row := []string{
			s.CreatedAt.Format(csvDateLayout),
			c.FormLabel(s.FormType),
			s.Name,
			s.Email,
			s.Phone,
			s.Document,
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(subs), cw.Error()
}
