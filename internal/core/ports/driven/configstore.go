package driven

// ConfigStore holds settings under dotted keys such as "search.limit" or
// "integrations.github.token". Set persists before it returns, so a second
// process reading the same store sees the change.
//
// The typed getters never fail: a missing key or a value of the wrong
// type gives the zero value, and SettingsService applies defaults on top.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	Set(key string, value any) error

	// Path is shown by `sift config path`.
	Path() string

	// Keys returns every stored key, sorted.
	Keys() []string
}
