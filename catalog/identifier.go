package catalog

import "strings"

// Identifier names one dataset by exactly one of its two identifier forms:
// the human-facing numeric dataset id (e.g. "100522") or the platform UID
// (e.g. "da_tbcnel"). Supplying both or neither is a contract violation.
type Identifier struct {
	DatasetID string
	UID       string
}

func ByDatasetID(datasetID string) Identifier {
	return Identifier{DatasetID: datasetID}
}

func ByUID(uid string) Identifier {
	return Identifier{UID: uid}
}

func (id Identifier) Validate() error {
	hasID := strings.TrimSpace(id.DatasetID) != ""
	hasUID := strings.TrimSpace(id.UID) != ""
	if hasID && hasUID {
		return validationError("dataset_id and dataset_uid are mutually exclusive", nil)
	}
	if !hasID && !hasUID {
		return validationError("either dataset_id or dataset_uid must be specified", nil)
	}
	return nil
}

// Key returns the caller-facing form of the identifier, the one bulk results
// are keyed under.
func (id Identifier) Key() string {
	if strings.TrimSpace(id.DatasetID) != "" {
		return id.DatasetID
	}
	return id.UID
}

// NeedsResolution reports whether the identifier still has to be resolved to
// a UID before use.
func (id Identifier) NeedsResolution() bool {
	return strings.TrimSpace(id.UID) == ""
}
