package seedfile

// Entry is one bookmark in the seed YAML.
type Entry struct {
	JID      string `yaml:"jid"`
	Nick     string `yaml:"nick"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Autojoin bool   `yaml:"autojoin"`
}

// Config is the root structure of bookmarks.yaml.
type Config struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
