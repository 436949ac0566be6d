package types

// Config represents the configuration for the refscope server
type Config struct {
	WorkspaceRoot string `yaml:"workspace_root" json:"workspace_root"`
	LogLevel      string `yaml:"log_level" json:"log_level,omitempty"`
	LogFormat     string `yaml:"log_format" json:"log_format,omitempty"`

	// ForceReparse reparses the translation unit on every search so
	// unsaved edits are reflected in the results.
	ForceReparse bool `yaml:"force_reparse" json:"force_reparse,omitempty"`

	// WatchWorkspace invalidates cached translation units when files
	// change on disk.
	WatchWorkspace bool `yaml:"watch_workspace" json:"watch_workspace,omitempty"`

	// TranslationUnitCacheSize bounds the number of parsed translation
	// units kept in memory.
	TranslationUnitCacheSize int `yaml:"translation_unit_cache_size" json:"translation_unit_cache_size,omitempty"`
}
