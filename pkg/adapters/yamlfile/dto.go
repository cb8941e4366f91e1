package yamlfile

import "time"

// treeDoc is the on-disk shape of a conversation file. Documents are parsed
// into generic maps by yaml.v3 and decoded through mapstructure so duration
// strings ("1.5s") and field aliases stay in one place.
type treeDoc struct {
	Name  string    `mapstructure:"name"`
	Start string    `mapstructure:"start"`
	Nodes []nodeDoc `mapstructure:"nodes"`
}

type nodeDoc struct {
	Name        string        `mapstructure:"name"`
	Speaker     string        `mapstructure:"speaker"`
	Text        string        `mapstructure:"text"`
	Player      bool          `mapstructure:"player"`
	AutoAdvance time.Duration `mapstructure:"auto_advance"`
	Next        string        `mapstructure:"next"`
	Choices     []choiceDoc   `mapstructure:"choices"`
}

type choiceDoc struct {
	Text   string `mapstructure:"text"`
	To     string `mapstructure:"to"`
	Action string `mapstructure:"action"`
}
