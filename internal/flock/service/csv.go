package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// CSVHeader is the column order of people exports and the columns imports
// understand. Only firstName and lastName are required in an import.
var CSVHeader = []string{"firstName", "lastName", "email", "phone", "tags", "notes", "status"}

const maxImportRows = 10000

// ImportReport says how many rows became people and why the rest did not.
// Row numbers count the header as row 1.
type ImportReport struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors"`
	IDs      []string   `json:"-"`
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Import reads people from CSV. Invalid rows are reported and skipped; the
// valid ones are created in a single transaction. Tags named in a row that
// do not exist yet are created.
func (s *PeopleService) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	log := slogx.FromContext(ctx)

	a, err := authorize(ctx, domain.PermPeopleImport)
	if err != nil {
		return ImportReport{}, err
	}

	// 1. Parse the whole file before touching the store
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportReport{}, invalid("file", "must be a CSV file with a header row")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{"firstName", "lastName"} {
		if _, ok := cols[required]; !ok {
			return ImportReport{}, invalid("file", "header is missing column "+required)
		}
	}

	var rows []importRow
	rep := ImportReport{Errors: []RowError{}}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rep.Errors = append(rep.Errors, RowError{Row: line, Message: "unreadable row"})
			continue
		}
		if len(rows)+len(rep.Errors) >= maxImportRows {
			return ImportReport{}, invalid("file", fmt.Sprintf("has more than %d rows", maxImportRows))
		}

		row, err := parseImportRow(rec, cols)
		if err != nil {
			rep.Errors = append(rep.Errors, RowError{Row: line, Message: err.Error()})
			continue
		}
		row.line = line
		rows = append(rows, row)
	}

	// 2. Create the people
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		tagCache := map[string]domain.Tag{}
		for _, row := range rows {
			id, err := s.importOne(ctx, tx, a, row, tagCache)
			var limit *PlanLimitError
			if errors.As(err, &limit) {
				rep.Errors = append(rep.Errors, RowError{Row: row.line, Message: limit.Error()})
				continue
			}
			if err != nil {
				return fmt.Errorf("row %d: %w", row.line, err)
			}
			rep.Imported++
			rep.IDs = append(rep.IDs, id)
		}

		return s.audit(ctx, tx, a, domain.AuditImported, domain.EntityPerson, "", map[string]any{
			"imported": rep.Imported,
			"errors":   len(rep.Errors),
			"ids":      rep.IDs,
		})
	})
	if err != nil {
		return ImportReport{}, err
	}
	slices.SortStableFunc(rep.Errors, func(a, b RowError) int { return a.Row - b.Row })

	log.Info("people imported",
		slog.Int("imported", rep.Imported),
		slog.Int("rejected", len(rep.Errors)),
	)
	return rep, nil
}

type importRow struct {
	line   int
	person domain.Person
	tags   []string
	note   string
}

func parseImportRow(rec []string, cols map[string]int) (importRow, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	in := PersonInput{
		FirstName: cell("firstName"),
		LastName:  cell("lastName"),
		Email:     cell("email"),
		Phone:     cell("phone"),
		Status:    domain.PersonStatus(strings.ToLower(cell("status"))),
	}
	if err := check(in); err != nil {
		return importRow{}, err
	}

	var tags []string
	if raw := cell("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return importRow{}, errors.New("tags: must be a JSON array of tag names")
		}
	}
	clean := tags[:0]
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			if len(t) > 60 {
				return importRow{}, errors.New("tags: tag names are at most 60 characters")
			}
			clean = append(clean, t)
		}
	}

	note := cell("notes")
	if len(note) > 5000 {
		return importRow{}, errors.New("notes: is too long (max 5000)")
	}

	row := importRow{tags: clean, note: note}
	in.apply(&row.person)
	return row, nil
}

func (s *PeopleService) importOne(ctx context.Context, tx store.Tx, a actor, row importRow, tagCache map[string]domain.Tag) (string, error) {
	if err := s.checkPlanLimit(ctx, tx, a.scope, domain.ResourcePeople); err != nil {
		return "", err
	}

	now := s.now()
	p := row.person
	p.ID = idx.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := tx.People().Create(ctx, a.scope, p); err != nil {
		return "", err
	}

	for _, name := range row.tags {
		key := strings.ToLower(name)
		t, ok := tagCache[key]
		if !ok {
			var err error
			if t, err = ensureTag(ctx, tx, s.Deps, a, name); err != nil {
				return "", err
			}
			tagCache[key] = t
		}
		if err := tx.People().AddTag(ctx, a.scope, p.ID, t.ID, now); err != nil {
			return "", err
		}
	}

	if row.note != "" {
		n := domain.PersonNote{
			ID:        idx.New().String(),
			PersonID:  p.ID,
			AuthorID:  a.id(),
			Body:      row.note,
			CreatedAt: now,
		}
		if err := tx.People().AddNote(ctx, a.scope, n); err != nil {
			return "", err
		}
	}

	return p.ID, s.trigger(ctx, tx, a, p.ID)
}

// Export writes every person in the organization as CSV.
func (s *PeopleService) Export(ctx context.Context, w io.Writer) error {
	a, err := authorize(ctx, domain.PermPeopleExport)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	page := domain.Page{Limit: domain.MaxPageSize}
	for {
		people, _, err := s.Store.People().List(ctx, a.scope, domain.PersonFilter{Page: page})
		if err != nil {
			return err
		}
		for _, p := range people {
			rec, err := s.exportRow(ctx, a.scope, p)
			if err != nil {
				return err
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		if len(people) < page.Limit {
			break
		}
		page.Offset += page.Limit
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("people exported")
	return nil
}

func (s *PeopleService) exportRow(ctx context.Context, sc domain.Scope, p domain.Person) ([]string, error) {
	tags, err := s.Store.People().TagsOf(ctx, sc, p.ID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	tagDoc, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}

	notes, err := s.Store.People().ListNotes(ctx, sc, p.ID)
	if err != nil {
		return nil, err
	}
	bodies := make([]string, len(notes))
	for i, n := range notes {
		bodies[i] = n.Body
	}

	return []string{
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		string(tagDoc),
		strings.Join(bodies, "\n\n"),
		string(p.Status),
	}, nil
}
