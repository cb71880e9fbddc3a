package discovery

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

var defaultLawyers = []Lawyer{
	{ID: 1, Name: "Adv. Priya Sharma", Score: 98, Expertise: "Criminal Law", Location: "Mumbai", State: "Maharashtra", Language: "Hindi", Available: "Immediate", Experience: "12 yrs", Rating: 4.9, Bio: "Top-rated criminal defense attorney specializing in high-profile litigation."},
	{ID: 2, Name: "Adv. Rahul Verma", Score: 92, Expertise: "Family Law", Location: "Delhi", State: "Delhi", Language: "English", Available: "This Week", Experience: "8 yrs", Rating: 4.7, Bio: "Expert in matrimonial disputes and domestic law."},
	{ID: 3, Name: "Adv. Sneha Kapur", Score: 85, Expertise: "Property Law", Location: "Pune", State: "Maharashtra", Language: "Marathi", Available: "Immediate", Experience: "15 yrs", Rating: 4.8, Bio: "Specializes in real estate verification and property disputes."},
	{ID: 4, Name: "Adv. Vikram Singh", Score: 78, Expertise: "Cyber Law", Location: "Bangalore", State: "Karnataka", Language: "English", Available: "Available Later", Experience: "6 yrs", Rating: 4.5, Bio: "Legal consultant for data privacy and IT Act compliance."},
	{ID: 5, Name: "Adv. Amit Mehra", Score: 72, Expertise: "Labor Law", Location: "Mumbai", State: "Maharashtra", Language: "Hindi", Available: "This Week", Experience: "10 yrs", Rating: 4.6, Bio: "Dedicated to employee rights and corporate dispute resolutions."},
	{ID: 6, Name: "Adv. Ananya Rao", Score: 65, Expertise: "Criminal Law", Location: "Mumbai", State: "Maharashtra", Language: "English", Available: "Immediate", Experience: "5 yrs", Rating: 4.2, Bio: "Focuses on bail matters and petty criminal offenses."},
}

var defaultNGOs = []NGO{
	{ID: 1, Name: "Udaan Foundation", Score: 98, Cause: "Education", Location: "Mumbai", State: "Maharashtra", Language: "Hindi", Support: "Volunteers", Reach: "10k+ lives", Rating: 4.9, Bio: "Transforming rural education through digital classrooms and teacher training programs."},
	{ID: 2, Name: "Aarogya Seva", Score: 92, Cause: "Healthcare", Location: "Delhi", State: "Delhi", Language: "English", Support: "Donations", Reach: "50k+ patients", Rating: 4.7, Bio: "Providing low-cost medical surgical interventions and health camps in urban slums."},
	{ID: 3, Name: "Green Earth Trust", Score: 85, Cause: "Environment", Location: "Pune", State: "Maharashtra", Language: "Marathi", Support: "Volunteers", Reach: "1M trees", Rating: 4.8, Bio: "Dedicated to reforestation and water conservation projects across Western Ghats."},
	{ID: 4, Name: "Sakshi Shakti", Score: 78, Cause: "Women Empowerment", Location: "Bangalore", State: "Karnataka", Language: "English", Support: "Partnerships", Reach: "5k+ women", Rating: 4.5, Bio: "Skill development and legal aid for women from marginalized backgrounds."},
	{ID: 5, Name: "Paws & Care", Score: 72, Cause: "Animal Rights", Location: "Mumbai", State: "Maharashtra", Language: "Hindi", Support: "Donations", Reach: "2k+ rescues", Rating: 4.6, Bio: "Emergency rescue services and sterilization programs for street animals."},
	{ID: 6, Name: "Hope for Kids", Score: 65, Cause: "Child Welfare", Location: "Mumbai", State: "Maharashtra", Language: "English", Support: "Volunteers", Reach: "1k+ children", Rating: 4.2, Bio: "Providing shelter and nutrition to orphaned children in metropolitan areas."},
}

// SeedFile is the YAML layout accepted by LoadSeedFile.
type SeedFile struct {
	Lawyers []Lawyer `yaml:"lawyers"`
	NGOs    []NGO    `yaml:"ngos"`
}

// MemoryCatalog holds the catalog in process. It is immutable once built and
// reads return copies.
type MemoryCatalog struct {
	lawyers []Lawyer
	ngos    []NGO
}

// NewMemoryCatalog returns the built-in catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return NewMemoryCatalogFrom(defaultLawyers, defaultNGOs)
}

func NewMemoryCatalogFrom(lawyers []Lawyer, ngos []NGO) *MemoryCatalog {
	c := &MemoryCatalog{
		lawyers: slices.Clone(lawyers),
		ngos:    slices.Clone(ngos),
	}
	sortByScore(c.lawyers, func(l Lawyer) int { return l.Score }, func(l Lawyer) int { return l.ID })
	sortByScore(c.ngos, func(n NGO) int { return n.Score }, func(n NGO) int { return n.ID })
	return c
}

// LoadSeedFile builds a catalog from a YAML seed. Sections missing from the
// file fall back to the built-in entries.
func LoadSeedFile(path string) (*MemoryCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read discovery seed: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse discovery seed %s: %w", path, err)
	}
	if seed.Lawyers == nil {
		seed.Lawyers = defaultLawyers
	}
	if seed.NGOs == nil {
		seed.NGOs = defaultNGOs
	}
	return NewMemoryCatalogFrom(seed.Lawyers, seed.NGOs), nil
}

func (c *MemoryCatalog) Lawyers(_ context.Context) ([]Lawyer, error) {
	return slices.Clone(c.lawyers), nil
}

func (c *MemoryCatalog) NGOs(_ context.Context) ([]NGO, error) {
	return slices.Clone(c.ngos), nil
}

// Seed returns the catalog contents for loading into another store.
func (c *MemoryCatalog) Seed() SeedFile {
	return SeedFile{Lawyers: slices.Clone(c.lawyers), NGOs: slices.Clone(c.ngos)}
}
