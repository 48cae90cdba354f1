package models

// Settings represents the application configuration
type Settings struct {
	Project ProjectSettings `yaml:"project"`
	Compile CompileSettings `yaml:"compile"`
	UI      UISettings      `yaml:"ui"`
	Editor  EditorSettings  `yaml:"editor"`
	Tutor   TutorSettings   `yaml:"tutor"`
	Logging LogSettings     `yaml:"logging"`
}

// ProjectSettings controls where projects live and how they are saved
type ProjectSettings struct {
	DefaultPath       string `yaml:"default_path"`
	AutoSaveSeconds   int    `yaml:"autosave_seconds"` // 0 disables auto-save
	BackupDir         string `yaml:"backup_dir"`       // empty means ~/LangoTango Backups
	DisableBackups    bool   `yaml:"disable_backups"`
	DefaultRootName   string `yaml:"default_root_name"`
	ConfirmEmptyTrash bool   `yaml:"confirm_empty_trash"`
}

// CompileSettings controls manuscript output
type CompileSettings struct {
	Format          string `yaml:"format"` // "text", "markdown" or "html"
	DefaultFilename string `yaml:"default_filename"`
	ExportPath      string `yaml:"export_path"`
	IncludeResearch bool   `yaml:"include_research"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview bool `yaml:"show_preview"`
	WrapWidth   int  `yaml:"wrap_width"`
}

// EditorSettings controls editor preferences
type EditorSettings struct {
	Command    string `yaml:"command"`
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
}

// TutorSettings selects the language tutor and the local inference server
type TutorSettings struct {
	Default       string `yaml:"default"`
	Server        string `yaml:"server"` // "ollama" or "lmstudio"
	Model         string `yaml:"model"`
	ExcerptLength int    `yaml:"excerpt_length"`
}

// LogSettings controls diagnostic logging
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Project: ProjectSettings{
			DefaultPath:       "",
			AutoSaveSeconds:   60,
			BackupDir:         "",
			DisableBackups:    false,
			DefaultRootName:   "My Documents",
			ConfirmEmptyTrash: true,
		},
		Compile: CompileSettings{
			Format:          "text",
			DefaultFilename: "manuscript",
			ExportPath:      "./",
			IncludeResearch: false,
		},
		UI: UISettings{
			ShowPreview: true,
			WrapWidth:   80,
		},
		Editor: EditorSettings{
			Command:    "",
			FontFamily: "Courier New",
			FontSize:   12,
		},
		Tutor: TutorSettings{
			Default:       "Japanese",
			Server:        "ollama",
			Model:         "",
			ExcerptLength: 500,
		},
		Logging: LogSettings{
			Level: "warn",
			File:  "",
		},
	}
}
