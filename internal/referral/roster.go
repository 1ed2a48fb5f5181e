package referral

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"psyfind/internal/platform/logger"
)

// Psychiatrist is one roster entry.
type Psychiatrist struct {
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty"`
	Subspecialty string   `json:"subspecialty"`
	Languages    []string `json:"languages"`
	Location     string   `json:"location"`
	Phone        string   `json:"phone"`
	Experience   string   `json:"experience"`
	Approach     string   `json:"approach"`
	MatchScore   int      `json:"match_score"`
}

// LoadRoster reads the psychiatrist roster from a CSV file. A missing or
// unreadable file falls back to the built-in sample roster so referral
// matching always has data.
func LoadRoster(path string, log *logger.Logger) []Psychiatrist {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("psychiatrist roster not found, using sample data", "path", path, "error", err)
		return SampleRoster()
	}
	defer f.Close()

	roster, err := parseRoster(f)
	if err != nil {
		log.Warn("psychiatrist roster unreadable, using sample data", "path", path, "error", err)
		return SampleRoster()
	}
	if len(roster) == 0 {
		log.Warn("psychiatrist roster empty, using sample data", "path", path)
		return SampleRoster()
	}
	log.Info("loaded psychiatrist roster", "path", path, "count", len(roster))
	return roster
}

func parseRoster(r io.Reader) ([]Psychiatrist, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var roster []Psychiatrist
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name := field(record, "name")
		if name == "" {
			continue
		}
		var languages []string
		for _, lang := range strings.Split(field(record, "languages"), ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				languages = append(languages, lang)
			}
		}
		specialty := field(record, "specialty")
		if specialty == "" || len(languages) == 0 {
			continue
		}

		roster = append(roster, Psychiatrist{
			Name:         name,
			Specialty:    specialty,
			Subspecialty: field(record, "subspecialty"),
			Languages:    languages,
			Location:     field(record, "location"),
			Phone:        field(record, "phone"),
			Experience:   field(record, "experience"),
			Approach:     field(record, "approach"),
		})
	}
	return roster, nil
}

// SampleRoster is the built-in roster used when no CSV is available.
func SampleRoster() []Psychiatrist {
	return []Psychiatrist{
		{
			Name:         "Dr. Sarah Chen",
			Specialty:    "General Psychiatry",
			Subspecialty: "Depression, Anxiety Disorders",
			Languages:    []string{"English", "Mandarin"},
			Location:     "Downtown Medical Center",
			Phone:        "(555) 123-4567",
			Experience:   "15 years",
			Approach:     "Cognitive Behavioral Therapy, Medication Management",
		},
		{
			Name:         "Dr. Michael Rodriguez",
			Specialty:    "Child & Adolescent Psychiatry",
			Subspecialty: "ADHD, Autism Spectrum Disorders",
			Languages:    []string{"English", "Spanish"},
			Location:     "Children's Mental Health Clinic",
			Phone:        "(555) 234-5678",
			Experience:   "12 years",
			Approach:     "Family Therapy, Behavioral Interventions",
		},
		{
			Name:         "Dr. Emily Johnson",
			Specialty:    "Trauma & PTSD Specialist",
			Subspecialty: "EMDR, Complex Trauma",
			Languages:    []string{"English", "French"},
			Location:     "Trauma Recovery Center",
			Phone:        "(555) 345-6789",
			Experience:   "18 years",
			Approach:     "EMDR, Somatic Therapies",
		},
	}
}
