package datagen

import "fmt"

// Provider produces one fake value for a named generator key. All randomness
// comes from the passed context.
type Provider func(g *RNG) interface{}

// Registry maps fake_data keys to providers. Lookups for unregistered keys
// fail fast during strategy compilation instead of silently producing nulls.
type Registry map[string]Provider

// Lookup returns the provider for a key.
func (r Registry) Lookup(key string) (Provider, bool) {
	p, ok := r[key]
	return p, ok
}

// Register adds or replaces a provider.
func (r Registry) Register(key string, p Provider) {
	r[key] = p
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Daniel", "Lisa", "Matthew", "Nancy",
	"Anthony", "Betty", "Mark", "Sandra", "Steven", "Ashley", "Andrew", "Emily",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White", "Harris",
}

var cities = []string{
	"Springfield", "Riverton", "Fairview", "Georgetown", "Arlington", "Clinton",
	"Salem", "Madison", "Oakland", "Bristol", "Ashland", "Burlington",
}

var streets = []string{
	"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane", "Park Road",
	"Elm Street", "Washington Avenue", "Lake Drive", "Hill Road", "River Street",
}

var companies = []string{
	"Acme Corp", "Globex", "Initech", "Umbrella Holdings", "Stark Industries",
	"Wayne Enterprises", "Hooli", "Vandelay Industries", "Wonka Industries", "Tyrell Corp",
}

var jobs = []string{
	"Software Engineer", "Accountant", "Project Manager", "Data Analyst",
	"Sales Representative", "Nurse", "Electrician", "Teacher", "Pharmacist", "Designer",
}

var domains = []string{"example.com", "example.org", "example.net", "mail.test"}

var words = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
	"iota", "kappa", "lambda", "sigma", "omega", "atlas", "nova", "orbit",
}

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"This is a sample text generated for testing purposes.",
	"Database design is crucial for application performance.",
	"Software development requires careful planning and execution.",
}

func pick(g *RNG, pool []string) string {
	return pool[g.Intn(len(pool))]
}

// DefaultRegistry builds the standard provider table. Keys follow the naming
// used in schema documents (first_name, email, ...).
func DefaultRegistry() Registry {
	return Registry{
		"first_name": func(g *RNG) interface{} { return pick(g, firstNames) },
		"last_name":  func(g *RNG) interface{} { return pick(g, lastNames) },
		"name": func(g *RNG) interface{} {
			return pick(g, firstNames) + " " + pick(g, lastNames)
		},
		"user_name": func(g *RNG) interface{} {
			return fmt.Sprintf("%s%d", pick(g, words), g.Intn(10000))
		},
		"email": func(g *RNG) interface{} {
			return fmt.Sprintf("user%d@%s", g.Intn(1000000), pick(g, domains))
		},
		"phone_number": func(g *RNG) interface{} {
			return fmt.Sprintf("+1-%03d-%03d-%04d", g.Intn(1000), g.Intn(1000), g.Intn(10000))
		},
		"address": func(g *RNG) interface{} {
			return fmt.Sprintf("%d %s, %s", g.Intn(9999)+1, pick(g, streets), pick(g, cities))
		},
		"city":    func(g *RNG) interface{} { return pick(g, cities) },
		"company": func(g *RNG) interface{} { return pick(g, companies) },
		"job":     func(g *RNG) interface{} { return pick(g, jobs) },
		"word":    func(g *RNG) interface{} { return pick(g, words) },
		"sentence": func(g *RNG) interface{} {
			return pick(g, sentences)
		},
		"text": func(g *RNG) interface{} {
			return pick(g, sentences) + " " + pick(g, sentences)
		},
		"date": func(g *RNG) interface{} {
			return g.DateBetween(dateEpoch, nowFunc()).Format("2006-01-02")
		},
	}
}
