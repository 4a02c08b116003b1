package config

import (
	"github.com/fsnotify/fsnotify"
)

// OnChange re-reads the config file whenever it changes on disk and hands the
// reloaded Config to fn. It is a no-op when no config file was found.
func (c Config) OnChange(fn func(Config)) bool {
	if c.source == nil || c.ConfigFile == "" || fn == nil {
		return false
	}

	v := c.source
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(fromViper(v))
	})
	v.WatchConfig()
	return true
}
