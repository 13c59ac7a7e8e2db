package app

// defaultKeys maps keys to command names. User overrides in the config map
// command name to key, replacing the default binding for that command.
var defaultKeys = map[string]string{
	"r": "rotate-viewport",
	"f": "flip-viewport",
	"0": "reset-viewport",
	"j": "scroll-frames",
	"d": "delete-annotation",
	"y": "copy-measurement",
	"l": "set-annotation-label",
	"i": "show-metadata",
}

func bindKeys(overrides map[string]string) map[string]string {
	keys := make(map[string]string, len(defaultKeys))
	for k, name := range defaultKeys {
		keys[k] = name
	}
	for name, key := range overrides {
		for k, n := range keys {
			if n == name {
				delete(keys, k)
			}
		}
		keys[key] = name
	}
	return keys
}
