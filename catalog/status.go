package catalog

// Status is the state of a dataset's asynchronous processing pipeline.
// Mutations must wait until the dataset is idle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
)

func (s Status) Idle() bool {
	return s == StatusIdle
}

// DatasetStatus is the /datasets/{uid}/status response. Transitional status
// values beyond idle/processing pass through untouched.
type DatasetStatus struct {
	Status      Status `json:"status"`
	Since       string `json:"since,omitempty"`
	IsPublished bool   `json:"is_published,omitempty"`
	Previous    string `json:"previous,omitempty"`
	Message     string `json:"message,omitempty"`
}

// DatasetSummary is one entry of the dataset collection listing.
type DatasetSummary struct {
	UID          string `json:"uid"`
	DatasetID    string `json:"dataset_id"`
	IsPublished  bool   `json:"is_published"`
	IsRestricted bool   `json:"is_restricted"`
}

// DatasetPage is one page of the dataset collection listing. Pagination ends
// when Next is empty or Results is empty.
type DatasetPage struct {
	TotalCount int              `json:"total_count"`
	Next       string           `json:"next"`
	Previous   string           `json:"previous"`
	Results    []DatasetSummary `json:"results"`
}

// DatasetRecord is the full single-dataset response including metadata.
type DatasetRecord struct {
	UID          string   `json:"uid"`
	DatasetID    string   `json:"dataset_id"`
	IsPublished  bool     `json:"is_published"`
	IsRestricted bool     `json:"is_restricted"`
	Metadata     Document `json:"metadata"`
}
