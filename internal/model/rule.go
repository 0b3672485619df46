package model

// Rule describes one pattern-based check of the rule engine.
type Rule struct {
	ID         string   `yaml:"id"`
	Category   string   `yaml:"category"`
	Message    string   `yaml:"message"`
	Confidence string   `yaml:"confidence"`
	Pattern    string   `yaml:"pattern"`
	InputGroup string   `yaml:"input_group,omitempty"`
	Link       string   `yaml:"link,omitempty"`
	Files      []string `yaml:"files,omitempty"`
}

// RuleSet is the document shape of a rules file.
type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}
