package analysis

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadLexiconFile reads a YAML or JSON lexicon with the keys skills,
// strongVerbs, weakVerbs and buzzwords. Tables missing from the file keep
// their default contents.
func LoadLexiconFile(path string) (*Lexicon, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}

	var lex Lexicon
	if err := v.Unmarshal(&lex); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon file %s: %w", path, err)
	}

	defaults := DefaultLexicon()
	if len(lex.Skills) == 0 {
		lex.Skills = defaults.Skills
	}
	if len(lex.StrongVerbs) == 0 {
		lex.StrongVerbs = defaults.StrongVerbs
	}
	if len(lex.WeakVerbs) == 0 {
		lex.WeakVerbs = defaults.WeakVerbs
	}
	if len(lex.Buzzwords) == 0 {
		lex.Buzzwords = defaults.Buzzwords
	}

	return NewLexicon(lex.Skills, lex.StrongVerbs, lex.WeakVerbs, lex.Buzzwords)
}
