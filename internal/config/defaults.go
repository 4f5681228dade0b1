package config

import "time"

// Built-in configuration. Running lessonindex without a config file uses
// exactly these values.
const (
	DefaultConfigFile       = "lessonindex.yaml"
	DefaultContentRoot      = "public/content/ulum-al-quran"
	DefaultOutputFile       = "manifest.json"
	DefaultIgnoreFile       = ".contentignore"
	DefaultRootSectionTitle = "ملفات عامة"

	DefaultModuleID          = "ulum-al-quran"
	DefaultModuleTitle       = "علوم القرآن"
	DefaultModuleDescription = "دروس مقرر علوم القرآن: نزول القرآن وجمعه وأسباب النزول والمكي والمدني"
	DefaultLanguage          = "ar"
	DefaultDirection         = DirectionRTL
	DefaultVersion           = "1.0.0"

	DefaultDebounce       = 300 * time.Millisecond
	DefaultResyncInterval = 10 * time.Minute
	DefaultNotifySubject  = "lessons.manifest.generated"
	DefaultNotifyRetries  = 2
)

// Direction is the text direction of the module's language.
type Direction string

const (
	DirectionRTL Direction = "rtl"
	DirectionLTR Direction = "ltr"
)

// DuplicatePolicy selects what happens when two entries of one section slug to the same ID.
type DuplicatePolicy string

const (
	// DuplicateSuffix keeps the first ID and appends -2, -3, ... to later ones.
	DuplicateSuffix DuplicatePolicy = "suffix"
	// DuplicateFail aborts the run.
	DuplicateFail DuplicatePolicy = "fail"
)

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			Root:             DefaultContentRoot,
			Output:           DefaultOutputFile,
			IgnoreFile:       DefaultIgnoreFile,
			RootSectionTitle: DefaultRootSectionTitle,
		},
		Module: ModuleConfig{
			ID:          DefaultModuleID,
			Title:       DefaultModuleTitle,
			Description: DefaultModuleDescription,
			Language:    DefaultLanguage,
			Direction:   DefaultDirection,
			Version:     DefaultVersion,
		},
		IDs: IDConfig{OnDuplicate: DuplicateSuffix},
		Watch: WatchConfig{
			Debounce:       DefaultDebounce,
			ResyncInterval: DefaultResyncInterval,
		},
		Notify: NotifyConfig{Subject: DefaultNotifySubject, MaxRetries: DefaultNotifyRetries},
	}
}
