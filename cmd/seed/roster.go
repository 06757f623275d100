package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/hotel-ops-api/internal/domain/entity"
)

// rosterRow una fila de la plantilla.
type rosterRow struct {
	FullName string
	PIN      string
	Role     string
	Email    string
	Password string
	Areas    []string
}

// parseRoster lee el CSV (separador ";", primera fila de encabezados).
func parseRoster(raw []byte) ([]rosterRow, error) {
	var r io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("sin filas de empleados")
	}

	rows := make([]rosterRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		for len(rec) < 6 {
			rec = append(rec, "")
		}
		row := rosterRow{
			FullName: strings.TrimSpace(rec[0]),
			PIN:      strings.TrimSpace(rec[1]),
			Role:     strings.ToLower(strings.TrimSpace(rec[2])),
			Email:    strings.ToLower(strings.TrimSpace(rec[3])),
			Password: strings.TrimSpace(rec[4]),
		}
		if row.Role == "" {
			row.Role = entity.RoleEmployee
		}
		for _, a := range strings.Split(rec[5], "|") {
			if a = strings.TrimSpace(a); a != "" {
				row.Areas = append(row.Areas, a)
			}
		}
		if err := row.validate(); err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r rosterRow) validate() error {
	if r.FullName == "" {
		return fmt.Errorf("nombre vacío")
	}
	if len(r.PIN) < 4 || len(r.PIN) > 8 || strings.Trim(r.PIN, "0123456789") != "" {
		return fmt.Errorf("el PIN de %s debe tener entre 4 y 8 dígitos", r.FullName)
	}
	switch r.Role {
	case entity.RoleEmployee:
	case entity.RoleManager, entity.RoleAdmin:
		if r.Email == "" || r.Password == "" {
			return fmt.Errorf("%s es %s y necesita email y password de consola", r.FullName, r.Role)
		}
	default:
		return fmt.Errorf("rol desconocido %q", r.Role)
	}
	return nil
}

// writeSQL emite los INSERT de empleados y membresías. Las áreas se resuelven por nombre
// dentro de la empresa; los secretos solo salen como hash.
func writeSQL(w io.Writer, companyID string, rows []rosterRow, hash func(string) (string, error), newID func() string) error {
	var b strings.Builder
	b.WriteString("-- Plantilla de empleados generada por cmd/seed\n")
	fmt.Fprintf(&b, "-- company_id: %s\n\n", companyID)
	b.WriteString("BEGIN;\n\n")
	for _, r := range rows {
		pinHash, err := hash(r.PIN)
		if err != nil {
			return err
		}
		password := "NULL"
		if r.Password != "" {
			h, err := hash(r.Password)
			if err != nil {
				return err
			}
			password = quote(h)
		}
		email := "NULL"
		if r.Email != "" {
			email = quote(r.Email)
		}
		id := newID()
		fmt.Fprintf(&b, "INSERT INTO employees (id, company_id, full_name, email, pin_hash, password_hash, role)\n")
		fmt.Fprintf(&b, "VALUES (%s, %s, %s, %s, %s, %s, %s);\n",
			quote(id), quote(companyID), quote(r.FullName), email, quote(pinHash), password, quote(r.Role))
		for _, area := range r.Areas {
			fmt.Fprintf(&b, "INSERT INTO employee_areas (employee_id, area_id)\n")
			fmt.Fprintf(&b, "SELECT %s, id FROM areas WHERE company_id = %s AND name = %s;\n",
				quote(id), quote(companyID), quote(area))
		}
		b.WriteString("\n")
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
