// Package directory serves the school directory loaded from the
// secretariat's CSV extract (latin1, semicolon-separated).
package directory

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// School is one directory entry.
type School struct {
	Code string `json:"code"`
	UF   string `json:"uf"`
	City string `json:"city"`
	Name string `json:"name"`
}

// Directory holds the loaded school list. Read-only after load.
type Directory struct {
	schools []School
}

// Load parses the directory CSV. The extract is latin1-encoded and
// semicolon-separated, with a header row and columns code;UF;city;name.
func Load(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open school directory: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse school directory: %w", err)
	}

	d := &Directory{}
	for i, rec := range records {
		if i == 0 || len(rec) < 4 {
			continue
		}
		d.schools = append(d.schools, School{
			Code: strings.TrimSpace(rec[0]),
			UF:   strings.TrimSpace(rec[1]),
			City: strings.TrimSpace(rec[2]),
			Name: strings.TrimSpace(rec[3]),
		})
	}
	return d, nil
}

var (
	loadOnce sync.Once
	loaded   *Directory
	loadErr  error
)

// LoadCached loads the directory once per process; later calls reuse the
// first result.
func LoadCached(path string) (*Directory, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Load(path)
	})
	return loaded, loadErr
}

// Len returns the number of schools loaded.
func (d *Directory) Len() int { return len(d.schools) }

// Search returns schools whose name contains the query, case-insensitive,
// capped at limit results (50 when limit is not positive).
func (d *Directory) Search(query string, limit int) []School {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = 50
	}
	var out []School
	for _, s := range d.schools {
		if strings.Contains(strings.ToLower(s.Name), query) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Label formats a school the way the secretariat UI shows it.
func (s School) Label() string {
	return fmt.Sprintf("%s - %s/%s", s.Name, s.City, s.UF)
}
