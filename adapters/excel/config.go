package excel

// DefaultSheet is read when no sheet is configured
const DefaultSheet = "Sheet1"

// FileConfig holds configuration for a file-backed diamonds table
type FileConfig struct {
	FilePath string `json:"file_path"`
	Sheet    string `json:"sheet"` // xlsx only
}

// DefaultFileConfig returns sensible defaults for the given path
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		FilePath: path,
		Sheet:    DefaultSheet,
	}
}
