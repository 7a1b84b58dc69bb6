package sig

// SourceInfo links a parsed declaration back to the file it came from, so
// diagnostics can name not just what is wrong but where it was declared.
type SourceInfo struct {
	FilePath string
}

func NewSourceInfo(filePath string) *SourceInfo {
	return &SourceInfo{
		FilePath: filePath,
	}
}
