package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/jmoiron/sqlx"
)

type peopleRepo struct {
	db sqlx.ExtContext
}

func (r *peopleRepo) Create(ctx context.Context, s domain.Scope, p domain.Person) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	p.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO people (id, org_id, first_name, last_name, preferred_name, email, phone,
		                    birth_date, gender, status, created_at, updated_at)
		VALUES (:id, :org_id, :first_name, :last_name, :preferred_name, :email, :phone,
		        :birth_date, :gender, :status, :created_at, :updated_at)`, p)
	return mapConstraint(err)
}

func (r *peopleRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.Person, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Person{}, err
	}

	var p domain.Person
	err = sqlx.GetContext(ctx, r.db, &p, `SELECT * FROM people WHERE id = ? AND org_id = ?`, id, orgID)
	return p, mapNotFound(err)
}

func (r *peopleRepo) Detail(ctx context.Context, s domain.Scope, id string) (domain.PersonDetail, error) {
	p, err := r.Get(ctx, s, id)
	if err != nil {
		return domain.PersonDetail{}, err
	}
	orgID := p.OrgID

	d := domain.PersonDetail{
		Person: p,
		ContactSet: domain.ContactSet{
			Phones:            []domain.PersonPhone{},
			Emails:            []domain.PersonEmail{},
			Addresses:         []domain.PersonAddress{},
			EmergencyContacts: []domain.EmergencyContact{},
		},
		Fields: []domain.PersonFieldValue{},
	}

	// rowid keeps the order the caller supplied them in
	if err := sqlx.SelectContext(ctx, r.db, &d.Phones,
		`SELECT * FROM person_phones WHERE person_id = ? AND org_id = ? ORDER BY rowid`, id, orgID); err != nil {
		return d, err
	}
	if err := sqlx.SelectContext(ctx, r.db, &d.Emails,
		`SELECT * FROM person_emails WHERE person_id = ? AND org_id = ? ORDER BY rowid`, id, orgID); err != nil {
		return d, err
	}
	if err := sqlx.SelectContext(ctx, r.db, &d.Addresses,
		`SELECT * FROM person_addresses WHERE person_id = ? AND org_id = ? ORDER BY rowid`, id, orgID); err != nil {
		return d, err
	}
	if err := sqlx.SelectContext(ctx, r.db, &d.EmergencyContacts,
		`SELECT * FROM emergency_contacts WHERE person_id = ? AND org_id = ? ORDER BY rowid`, id, orgID); err != nil {
		return d, err
	}
	if d.Tags, err = r.TagsOf(ctx, s, id); err != nil {
		return d, err
	}
	if err := sqlx.SelectContext(ctx, r.db, &d.Fields,
		`SELECT * FROM person_field_values WHERE person_id = ? AND org_id = ? ORDER BY field_id`, id, orgID); err != nil {
		return d, err
	}
	return d, nil
}

func (r *peopleRepo) List(ctx context.Context, s domain.Scope, f domain.PersonFilter) ([]domain.Person, int, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, 0, err
	}

	where := []string{"p.org_id = ?"}
	args := []any{orgID}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, `(p.first_name LIKE ? ESCAPE '\' OR p.last_name LIKE ? ESCAPE '\'
			OR p.preferred_name LIKE ? ESCAPE '\' OR p.email LIKE ? ESCAPE '\')`)
		pat := likePattern(q)
		args = append(args, pat, pat, pat, pat)
	}
	if f.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, f.Status)
	}
	if f.TagID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM person_tags pt WHERE pt.person_id = p.id AND pt.tag_id = ?)")
		args = append(args, f.TagID)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM people p WHERE `+cond, args...); err != nil {
		return nil, 0, err
	}

	page := f.Page.Normalize()
	people := []domain.Person{}
	err = sqlx.SelectContext(ctx, r.db, &people, `
		SELECT p.* FROM people p
		WHERE `+cond+`
		ORDER BY p.last_name COLLATE NOCASE, p.first_name COLLATE NOCASE, p.id
		LIMIT ? OFFSET ?`, append(args, page.Limit, page.Offset)...)
	return people, total, err
}

func (r *peopleRepo) Update(ctx context.Context, s domain.Scope, p domain.Person) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	p.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE people
		SET first_name = :first_name, last_name = :last_name, preferred_name = :preferred_name,
		    email = :email, phone = :phone, birth_date = :birth_date, gender = :gender,
		    status = :status, updated_at = :updated_at
		WHERE id = :id AND org_id = :org_id`, p)
	return expectRow(res, err)
}

func (r *peopleRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ? AND org_id = ?`, id, orgID))
}

func (r *peopleRepo) ReplaceContacts(ctx context.Context, s domain.Scope, personID string, c domain.ContactSet) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}

	for _, table := range []string{"person_phones", "person_emails", "person_addresses", "emergency_contacts"} {
		if _, err := r.db.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE person_id = ? AND org_id = ?`, personID, orgID); err != nil {
			return err
		}
	}

	for _, ph := range c.Phones {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO person_phones (id, org_id, person_id, label, number) VALUES (?, ?, ?, ?, ?)`,
			idx.New().String(), orgID, personID, ph.Label, ph.Number); err != nil {
			return err
		}
	}
	for _, em := range c.Emails {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO person_emails (id, org_id, person_id, label, address) VALUES (?, ?, ?, ?, ?)`,
			idx.New().String(), orgID, personID, em.Label, domain.NormalizeEmail(em.Address)); err != nil {
			return err
		}
	}
	for _, a := range c.Addresses {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO person_addresses (id, org_id, person_id, label, street, city, state, postal_code, country)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			idx.New().String(), orgID, personID, a.Label, a.Street, a.City, a.State, a.PostalCode, a.Country); err != nil {
			return err
		}
	}
	for _, ec := range c.EmergencyContacts {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO emergency_contacts (id, org_id, person_id, name, relationship, phone)
			VALUES (?, ?, ?, ?, ?, ?)`,
			idx.New().String(), orgID, personID, ec.Name, ec.Relationship, ec.Phone); err != nil {
			return err
		}
	}
	return nil
}

func (r *peopleRepo) AddNote(ctx context.Context, s domain.Scope, n domain.PersonNote) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	n.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO person_notes (id, org_id, person_id, author_id, body, created_at)
		VALUES (:id, :org_id, :person_id, :author_id, :body, :created_at)`, n)
	return err
}

func (r *peopleRepo) ListNotes(ctx context.Context, s domain.Scope, personID string) ([]domain.PersonNote, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	notes := []domain.PersonNote{}
	err = sqlx.SelectContext(ctx, r.db, &notes,
		`SELECT * FROM person_notes WHERE person_id = ? AND org_id = ? ORDER BY created_at DESC, id DESC`,
		personID, orgID)
	return notes, err
}

func (r *peopleRepo) DeleteNote(ctx context.Context, s domain.Scope, personID, noteID string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`DELETE FROM person_notes WHERE id = ? AND person_id = ? AND org_id = ?`, noteID, personID, orgID))
}

func (r *peopleRepo) AddTag(ctx context.Context, s domain.Scope, personID, tagID string, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO person_tags (org_id, person_id, tag_id, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (person_id, tag_id) DO NOTHING`, orgID, personID, tagID, now)
	return err
}

func (r *peopleRepo) RemoveTag(ctx context.Context, s domain.Scope, personID, tagID string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`DELETE FROM person_tags WHERE person_id = ? AND tag_id = ? AND org_id = ?`, personID, tagID, orgID))
}

func (r *peopleRepo) TagsOf(ctx context.Context, s domain.Scope, personID string) ([]domain.Tag, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	tags := []domain.Tag{}
	err = sqlx.SelectContext(ctx, r.db, &tags, `
		SELECT t.* FROM tags t
		JOIN person_tags pt ON pt.tag_id = t.id
		WHERE pt.person_id = ? AND pt.org_id = ? AND t.org_id = ?
		ORDER BY t.name`, personID, orgID, orgID)
	return tags, err
}

func (r *peopleRepo) SetFieldValue(ctx context.Context, s domain.Scope, v domain.PersonFieldValue) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO person_field_values (org_id, person_id, field_id, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (person_id, field_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		orgID, v.PersonID, v.FieldID, v.Value, v.UpdatedAt)
	return err
}

func (r *peopleRepo) DeleteFieldValue(ctx context.Context, s domain.Scope, personID, fieldID string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`DELETE FROM person_field_values WHERE person_id = ? AND field_id = ? AND org_id = ?`, personID, fieldID, orgID))
}

// reassignment describes how rows in one table follow a merged person.
// dedupe is the set of columns that, together with person_id, must stay
// unique; rows that would collide are dropped instead of moved.
type reassignment struct {
	table  string
	dedupe []string
}

var mergeTables = []reassignment{
	{table: "person_phones"},
	{table: "person_emails"},
	{table: "person_addresses"},
	{table: "emergency_contacts"},
	{table: "person_notes"},
	{table: "person_tags", dedupe: []string{"tag_id"}},
	{table: "person_field_values", dedupe: []string{"field_id"}},
	{table: "group_members", dedupe: []string{"group_id"}},
	{table: "service_assignments", dedupe: []string{"plan_id", "role"}},
	{table: "attendance", dedupe: []string{"group_id", "meeting_date"}},
	{table: "form_submissions"},
}

func (r *peopleRepo) Reassign(ctx context.Context, s domain.Scope, sourceID, targetID string) (domain.MergeReport, error) {
	report := domain.MergeReport{Moved: map[string]int64{}, Skipped: map[string]int64{}}

	orgID, err := orgOf(s)
	if err != nil {
		return report, err
	}

	for _, m := range mergeTables {
		if len(m.dedupe) > 0 {
			// 1. Drop source rows the target already has
			match := make([]string, 0, len(m.dedupe))
			for _, col := range m.dedupe {
				match = append(match, "t."+col+" = "+m.table+"."+col)
			}
			n, err := affected(r.db.ExecContext(ctx, `
				DELETE FROM `+m.table+`
				WHERE person_id = ? AND org_id = ?
				  AND EXISTS (SELECT 1 FROM `+m.table+` t WHERE t.person_id = ? AND `+strings.Join(match, " AND ")+`)`,
				sourceID, orgID, targetID))
			if err != nil {
				return report, err
			}
			if n > 0 {
				report.Skipped[m.table] = n
			}
		}

		// 2. Move the rest
		n, err := affected(r.db.ExecContext(ctx,
			`UPDATE `+m.table+` SET person_id = ? WHERE person_id = ? AND org_id = ?`, targetID, sourceID, orgID))
		if err != nil {
			return report, err
		}
		if n > 0 {
			report.Moved[m.table] = n
		}
	}

	// 3. Nothing references the source any more
	if err := r.Delete(ctx, s, sourceID); err != nil {
		return report, err
	}
	return report, nil
}
