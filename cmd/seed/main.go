// seed genera un script SQL para cargar la plantilla de empleados de un hotel
// a partir de un CSV exportado de la hoja de turnos.
//
// Uso: go run ./cmd/seed <company_id> [ruta/plantilla.csv] [salida.sql]
// Por defecto lee plantilla.csv y escribe migrations/900_seed_employees.sql.
// Columnas: nombre;pin;rol;email;password;areas (áreas separadas por "|", por nombre).
// Acepta UTF-8 o ISO-8859-1 (exportes de Excel en Windows).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-ops-api/internal/application/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <company_id> [plantilla.csv] [salida.sql]")
		os.Exit(2)
	}
	companyID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "company_id inválido: %v\n", err)
		os.Exit(2)
	}
	csvPath := "plantilla.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}
	outPath := filepath.Join(findModuleRoot(), "migrations", "900_seed_employees.sql")
	if len(os.Args) > 3 {
		outPath = os.Args[3]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseRoster(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Plantilla: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, companyID.String(), rows, auth.HashSecret, uuid.NewString); err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d empleados\n", outPath, len(rows))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
