package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed cases.yaml
var defaultCases []byte

// ErrCaseNotFound is returned by Get for unknown ids.
var ErrCaseNotFound = errors.New("case not found")

var criterionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// file is the on-disk layout of a cases file.
type file struct {
	Version int     `yaml:"version"`
	Cases   []*Case `yaml:"cases"`
}

// Catalog is an ordered, validated set of cases.
type Catalog struct {
	cases []*Case
	byID  map[string]*Case
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCases)
	if err != nil {
		// The embedded file is covered by tests.
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a cases file from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a cases file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates YAML case data.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse cases: %w", err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported cases version: %d (expected 1)", f.Version)
	}
	return New(f.Cases)
}

// New builds a catalog from cases, deriving pillars and sorting by
// criterion.
func New(cases []*Case) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Case, len(cases))}
	for i, wc := range cases {
		if wc == nil {
			return nil, fmt.Errorf("case %d is empty", i)
		}
		if err := validateCase(wc); err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i, wc.ID, err)
		}
		if _, dup := c.byID[wc.ID]; dup {
			return nil, fmt.Errorf("duplicate case id %q", wc.ID)
		}
		wc.Pillar = PillarFromCriterion(wc.Criterion)
		c.byID[wc.ID] = wc
		c.cases = append(c.cases, wc)
	}
	sort.SliceStable(c.cases, func(i, j int) bool {
		return CompareCriteria(c.cases[i].Criterion, c.cases[j].Criterion) < 0
	})
	return c, nil
}

func validateCase(c *Case) error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return errors.New("missing id")
	case !criterionPattern.MatchString(c.Criterion):
		return fmt.Errorf("criterion %q is not of the form N.N.N", c.Criterion)
	case strings.TrimSpace(c.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(c.Inaccessible) == "" || strings.TrimSpace(c.Accessible) == "":
		return errors.New("both examples are required")
	}
	return nil
}

// CompareCriteria orders criterion numbers component-wise, so 1.4.10
// sorts after 1.4.4.
func CompareCriteria(a, b string) int {
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")
	for i := 0; i < len(ap) && i < len(bp); i++ {
		ai, aerr := strconv.Atoi(ap[i])
		bi, berr := strconv.Atoi(bp[i])
		if aerr != nil || berr != nil {
			if c := strings.Compare(ap[i], bp[i]); c != 0 {
				return c
			}
			continue
		}
		if ai != bi {
			if ai < bi {
				return -1
			}
			return 1
		}
	}
	return len(ap) - len(bp)
}

// Len returns the number of cases.
func (c *Catalog) Len() int {
	return len(c.cases)
}

// All returns the cases in criterion order.
func (c *Catalog) All() []*Case {
	out := make([]*Case, len(c.cases))
	copy(out, c.cases)
	return out
}

// Get returns a case by id.
func (c *Catalog) Get(id string) (*Case, error) {
	if wc, ok := c.byID[id]; ok {
		return wc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCaseNotFound, id)
}

// Find returns a case by id or criterion number.
func (c *Catalog) Find(ref string) (*Case, error) {
	if wc, ok := c.byID[ref]; ok {
		return wc, nil
	}
	for _, wc := range c.cases {
		if wc.Criterion == ref {
			return wc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCaseNotFound, ref)
}

// ByPillar returns the cases of one principle. An empty pillar returns all
// cases.
func (c *Catalog) ByPillar(p Pillar) []*Case {
	if p == "" {
		return c.All()
	}
	var out []*Case
	for _, wc := range c.cases {
		if wc.Pillar == p {
			out = append(out, wc)
		}
	}
	return out
}

// Counts returns the number of cases per pillar.
func (c *Catalog) Counts() map[Pillar]int {
	counts := make(map[Pillar]int, len(Pillars))
	for _, wc := range c.cases {
		counts[wc.Pillar]++
	}
	return counts
}

// searchSource exposes cases to the fuzzy matcher.
type searchSource []*Case

func (s searchSource) String(i int) string {
	return s[i].Criterion + " " + s[i].Name + " " + s[i].Description
}

func (s searchSource) Len() int {
	return len(s)
}

// Search fuzzy-matches query against criterion, name and description and
// returns the best matches first. An empty query returns all cases.
func (c *Catalog) Search(query string) []*Case {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.All()
	}
	matches := fuzzy.FindFrom(query, searchSource(c.cases))
	out := make([]*Case, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.cases[m.Index])
	}
	return out
}
