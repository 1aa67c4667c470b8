package shipping

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"bloom/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var defaultZones []byte

// Table is the ordered, read-only zone table consumed by the Resolver.
type Table struct {
	rules    []ZoneRule
	national ZoneRule
}

// NewTable validates rules and the national fallback and returns an immutable table.
func NewTable(rules []ZoneRule, national ZoneRule) (Table, error) {
	national.ID = NationalZoneID
	national.Codes = nil
	national.Min, national.Max = 0, 99999

	problems := make([]error, 0)
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			problems = append(problems, err)
		}
		if _, dup := seen[r.ID]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"zone id", fmt.Errorf("%s is declared twice", r.ID)))
		}
		seen[r.ID] = struct{}{}
	}
	if err := national.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return Table{}, err
	}

	copied := make([]ZoneRule, len(rules))
	copy(copied, rules)
	return Table{rules: copied, national: national}, nil
}

// Rules returns a copy of the ordered rules, national fallback excluded.
func (t Table) Rules() []ZoneRule {
	out := make([]ZoneRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// National returns the fallback rule.
func (t Table) National() ZoneRule {
	return t.national
}

type tableFile struct {
	Zones    []zoneEntry `yaml:"zones"`
	National zoneEntry   `yaml:"national"`
}

type zoneEntry struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	City  string   `yaml:"city"`
	Codes []string `yaml:"codes"`
	Range []int    `yaml:"range"`
	Price string   `yaml:"price"`
	ETA   string   `yaml:"eta"`
	Note  string   `yaml:"note"`
}

func (e zoneEntry) toRule() (ZoneRule, error) {
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		return ZoneRule{}, errs.NewValueIsInvalidErrorWithCause("zone price "+e.ID, err)
	}
	rule := ZoneRule{
		ID:      e.ID,
		Label:   e.Label,
		City:    e.City,
		Codes:   e.Codes,
		Price:   price,
		ETADays: e.ETA,
		Note:    e.Note,
	}
	switch len(e.Range) {
	case 0:
	case 2:
		rule.Min, rule.Max = e.Range[0], e.Range[1]
	default:
		return ZoneRule{}, errs.NewValueIsInvalidErrorWithCause(
			"zone range "+e.ID, fmt.Errorf("expected [min, max], got %v", e.Range))
	}
	return rule, nil
}

// LoadTable decodes a YAML zone table.
func LoadTable(r io.Reader) (Table, error) {
	var file tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return Table{}, fmt.Errorf("decode zone table: %w", err)
	}

	rules := make([]ZoneRule, 0, len(file.Zones))
	for _, z := range file.Zones {
		rule, err := z.toRule()
		if err != nil {
			return Table{}, err
		}
		rules = append(rules, rule)
	}

	national, err := file.National.toRule()
	if err != nil {
		return Table{}, err
	}
	return NewTable(rules, national)
}

// LoadTableFile reads a YAML zone table from disk.
func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return LoadTable(f)
}

// DefaultTable returns the table compiled into the binary.
func DefaultTable() Table {
	t, err := LoadTable(bytes.NewReader(defaultZones))
	if err != nil {
		panic(fmt.Sprintf("embedded zone table is invalid: %v", err))
	}
	return t
}
