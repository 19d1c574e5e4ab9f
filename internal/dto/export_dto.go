package dto

type ExportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ExportSubSection struct {
	Name    string        `json:"name"`
	Entries []ExportEntry `json:"entries"`
}

type ExportSection struct {
	Section     string             `json:"section"`
	SubSections []ExportSubSection `json:"sub_sections"`
}

type ExportDocument struct {
	SessionId string          `json:"session_id"`
	Sections  []ExportSection `json:"sections"`
}

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

type ExportFile struct {
	ContentType string
	FileName    string
	Body        []byte
}
