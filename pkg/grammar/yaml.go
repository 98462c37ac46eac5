package grammar

// yamlRecognizer is the intermediate struct for one table entry.
type yamlRecognizer struct {
	Name             string   `yaml:"name"`
	Kind             string   `yaml:"kind"`
	Pattern          string   `yaml:"pattern"`
	Multiline        bool     `yaml:"multiline,omitempty"`
	Description      string   `yaml:"description,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// yamlTableFile is the top-level structure of a table file.
// Order of the recognizers list is match priority.
type yamlTableFile struct {
	Recognizers []yamlRecognizer `yaml:"recognizers"`
}
