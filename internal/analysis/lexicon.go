// Package analysis scores extracted resume text against a fixed set of ATS
// heuristics and, optionally, against the skills named in a job description.
//
// Every function in this package is pure: no I/O, no shared mutable state.
// The only shared data is the read-only Lexicon an Analyzer is built with.
package analysis

import (
	"fmt"
	"slices"
	"strings"
)

// Lexicon holds the read-only word tables the analyzers match against.
// All entries are lower-case and distinct.
type Lexicon struct {
	Skills      []string `json:"skills" mapstructure:"skills"`
	StrongVerbs []string `json:"strongVerbs" mapstructure:"strongVerbs"`
	WeakVerbs   []string `json:"weakVerbs" mapstructure:"weakVerbs"`
	Buzzwords   []string `json:"buzzwords" mapstructure:"buzzwords"`
}

// NewLexicon normalizes the given tables and checks that they can be used
// together. Entries are trimmed, lower-cased and de-duplicated in order.
func NewLexicon(skills, strongVerbs, weakVerbs, buzzwords []string) (*Lexicon, error) {
	lex := &Lexicon{
		Skills:      normalizeTerms(skills),
		StrongVerbs: normalizeTerms(strongVerbs),
		WeakVerbs:   normalizeTerms(weakVerbs),
		Buzzwords:   normalizeTerms(buzzwords),
	}

	if len(lex.Skills) == 0 {
		return nil, fmt.Errorf("skill vocabulary cannot be empty")
	}

	for _, verb := range lex.StrongVerbs {
		if slices.Contains(lex.WeakVerbs, verb) {
			return nil, fmt.Errorf("verb %q is listed as both strong and weak", verb)
		}
	}

	return lex, nil
}

// DefaultLexicon returns the standard skill vocabulary, verb lexicon and
// buzzword list.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Skills:      slices.Clone(defaultSkills),
		StrongVerbs: slices.Clone(defaultStrongVerbs),
		WeakVerbs:   slices.Clone(defaultWeakVerbs),
		Buzzwords:   slices.Clone(defaultBuzzwords),
	}
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

var defaultSkills = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php", "swift", "kotlin",
	"go", "rust", "scala", "r", "matlab", "sql", "html", "css", "shell", "bash",

	// Frontend
	"react", "angular", "vue", "next.js", "svelte", "jquery", "tailwind", "bootstrap",
	"sass", "less", "redux", "mobx", "webpack", "babel",

	// Backend
	"node", "express", "django", "flask", "spring", "laravel", "rails", "asp.net",
	"fastapi", "graphql", "rest", "grpc",

	// Databases
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
	"firebase", "supabase", "dynamodb", "mariadb", "sqlite",

	// Cloud and DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "github",
	"gitlab", "bitbucket", "terraform", "ansible", "nginx", "apache",
	"ci/cd", "github actions",

	// Data science and ML
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"matplotlib", "seaborn", "plotly", "tableau", "powerbi",
	"machine learning", "deep learning", "nlp", "computer vision",
	"data analysis", "data visualization",

	// Soft skills
	"leadership", "communication", "teamwork", "problem solving",
	"critical thinking", "time management", "project management",
	"agile", "scrum", "jira", "confluence",
}

var defaultStrongVerbs = []string{
	"developed", "created", "designed", "implemented", "architected",
	"achieved", "improved", "increased", "decreased", "reduced",
	"led", "managed", "delivered", "launched", "optimized",
	"transformed", "engineered", "built", "coded", "deployed",
}

var defaultWeakVerbs = []string{
	"worked", "helped", "assisted", "tried", "attempted",
	"participated", "involved", "contributed", "supported",
	"learned", "studied", "understood",
}

var defaultBuzzwords = []string{
	"synergy", "synergize", "rockstar", "ninja", "guru", "wizard",
	"hardworking", "passionate", "driven", "motivated", "dynamic",
	"team player", "people person", "self starter", "go getter",
	"think outside the box", "paradigm shift", "value add",
}
