package repo

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"backoffice/internal/core/tableview"
	"backoffice/internal/services/api/reports/domain"
)

//go:embed seed/datasets.yaml
var seedYAML []byte

var datasetName = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

type seedFile struct {
	Datasets []seedDataset `yaml:"datasets"`
}

type seedDataset struct {
	Name      string          `yaml:"name"`
	Title     string          `yaml:"title"`
	IDPrefix  string          `yaml:"id_prefix"`
	DateField string          `yaml:"date_field"`
	Columns   []domain.Column `yaml:"columns"`
	Records   []yaml.Node     `yaml:"records"`
	// Lines maps a record id to its product lines
	Lines map[string][]seedLine `yaml:"lines"`
}

type seedLine struct {
	Producto string  `yaml:"producto"`
	Cantidad float64 `yaml:"cantidad"`
	Unidad   string  `yaml:"unidad"`
	Precio   float64 `yaml:"precio_unitario"`
}

// Seed is the parsed catalog with its mock rows
type Seed struct {
	Datasets []domain.Dataset
	Records  map[string][]tableview.Record
	// Lines holds line items by dataset then record id
	Lines map[string]map[string][]domain.LineItem
}

// LoadSeed parses the embedded catalog
func LoadSeed() (Seed, error) { return ParseSeed(seedYAML) }

// ParseSeed parses a catalog document, record keys keep their document order
func ParseSeed(doc []byte) (Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(doc, &f); err != nil {
		return Seed{}, fmt.Errorf("seed: %w", err)
	}
	out := Seed{
		Records: make(map[string][]tableview.Record, len(f.Datasets)),
		Lines:   map[string]map[string][]domain.LineItem{},
	}
	for _, sd := range f.Datasets {
		ds, err := sd.dataset()
		if err != nil {
			return Seed{}, err
		}
		if _, dup := out.Records[ds.Name]; dup {
			return Seed{}, fmt.Errorf("seed: duplicate dataset %q", ds.Name)
		}
		kinds := ds.Kinds()
		rows := make([]tableview.Record, 0, len(sd.Records))
		for i := range sd.Records {
			rec, err := nodeRecord(&sd.Records[i])
			if err != nil {
				return Seed{}, fmt.Errorf("seed: %s record %d: %w", ds.Name, i, err)
			}
			rows = append(rows, rec.Coerce(kinds))
		}
		if len(sd.Lines) > 0 {
			lines, err := seedLines(ds.Name, rows, sd.Lines)
			if err != nil {
				return Seed{}, err
			}
			out.Lines[ds.Name] = lines
		}
		ds.Rows = len(rows)
		out.Datasets = append(out.Datasets, ds)
		out.Records[ds.Name] = rows
	}
	return out, nil
}

func (sd seedDataset) dataset() (domain.Dataset, error) {
	if !datasetName.MatchString(sd.Name) {
		return domain.Dataset{}, fmt.Errorf("seed: invalid dataset name %q", sd.Name)
	}
	seen := map[string]bool{}
	for _, c := range sd.Columns {
		if c.Key == "" || seen[c.Key] {
			return domain.Dataset{}, fmt.Errorf("seed: %s: empty or duplicate column %q", sd.Name, c.Key)
		}
		seen[c.Key] = true
		if tableview.ParseKind(c.Kind) == tableview.KindNull {
			return domain.Dataset{}, fmt.Errorf("seed: %s.%s: unknown kind %q", sd.Name, c.Key, c.Kind)
		}
	}
	if sd.DateField != "" && !seen[sd.DateField] {
		return domain.Dataset{}, fmt.Errorf("seed: %s: date field %q is not a column", sd.Name, sd.DateField)
	}
	return domain.Dataset{
		Name:      sd.Name,
		Title:     sd.Title,
		IDPrefix:  strings.ToUpper(sd.IDPrefix),
		DateField: sd.DateField,
		Columns:   sd.Columns,
	}, nil
}

// seedLines numbers the lines of each record from 1 and fills in the subtotals
func seedLines(dataset string, rows []tableview.Record, in map[string][]seedLine) (map[string][]domain.LineItem, error) {
	ids := make(map[string]bool, len(rows))
	for _, r := range rows {
		ids[RecordID(r)] = true
	}
	out := make(map[string][]domain.LineItem, len(in))
	for id, lines := range in {
		if !ids[id] {
			return nil, fmt.Errorf("seed: %s: lines for unknown record %q", dataset, id)
		}
		items := make([]domain.LineItem, 0, len(lines))
		for i, l := range lines {
			if strings.TrimSpace(l.Producto) == "" || l.Cantidad <= 0 || l.Precio < 0 {
				return nil, fmt.Errorf("seed: %s record %s line %d: needs a product, a positive quantity and a price", dataset, id, i+1)
			}
			items = append(items, NewLineItem(i+1, l.Producto, l.Unidad, decimal.NewFromFloat(l.Cantidad), decimal.NewFromFloat(l.Precio)))
		}
		out[id] = items
	}
	return out, nil
}

// NewLineItem builds a line whose subtotal is quantity times unit price
func NewLineItem(line int, producto, unidad string, cantidad, precio decimal.Decimal) domain.LineItem {
	return domain.LineItem{
		Line:           line,
		Producto:       producto,
		Cantidad:       cantidad,
		Unidad:         unidad,
		PrecioUnitario: precio,
		Subtotal:       cantidad.Mul(precio),
	}
}

func nodeRecord(n *yaml.Node) (tableview.Record, error) {
	if n.Kind != yaml.MappingNode {
		return tableview.Record{}, fmt.Errorf("want a mapping, got %s", n.Tag)
	}
	rec := tableview.NewRecord()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v, err := nodeValue(n.Content[i+1])
		if err != nil {
			return tableview.Record{}, fmt.Errorf("%s: %w", key, err)
		}
		rec.Set(key, v)
	}
	return rec, nil
}

func nodeValue(n *yaml.Node) (tableview.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return tableview.Null(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return tableview.Value{}, err
			}
			return tableview.Bool(b), nil
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return tableview.Value{}, err
			}
			return tableview.Number(f), nil
		case "!!timestamp":
			var t time.Time
			if err := n.Decode(&t); err != nil {
				return tableview.Value{}, err
			}
			return tableview.Date(t), nil
		default:
			return tableview.String(n.Value), nil
		}
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return tableview.Value{}, err
			}
			parts = append(parts, v.String())
		}
		return tableview.String(strings.Join(parts, ", ")), nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		return tableview.Value{}, fmt.Errorf("nested mappings are not supported")
	}
}
