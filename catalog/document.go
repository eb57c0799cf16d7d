package catalog

import "sort"

// Value is an opaque metadata field value: string, bool, list, or nested
// object, depending on the field. The platform schema is extensible, so the
// document model stays generic and typed accessors sit on top.
type Value = any

// FieldWrapper is the `{value: ...}` envelope around every field. It is kept
// as a map so wrapper keys the client does not know about survive a
// read-modify-write round trip.
type FieldWrapper map[string]Value

const wrapperValueKey = "value"

// Template is a named group of fields, e.g. "default" or "dcat".
type Template map[string]FieldWrapper

// Document is the full metadata of one dataset: template name to field name
// to wrapped value.
type Document map[string]Template

// Well-known template names.
const (
	TemplateDefault       = "default"
	TemplateDCAT          = "dcat"
	TemplateDCATAPCH      = "dcat_ap_ch"
	TemplateInternal      = "internal"
	TemplateVisualization = "visualization"
	TemplateCustom        = "custom"
)

// Well-known field names within the templates above.
const (
	FieldTitle                 = "title"
	FieldDescription           = "description"
	FieldKeyword               = "keyword"
	FieldLanguage              = "language"
	FieldPublisher             = "publisher"
	FieldThemeID               = "theme_id"
	FieldLicenseID             = "license_id"
	FieldLicense               = "license"
	FieldModified              = "modified"
	FieldModifiedOnMetaChange  = "modified_updates_on_metadata_change"
	FieldModifiedOnDataChange  = "modified_updates_on_data_change"
	FieldGeographicReference   = "geographic_reference"
	FieldCustomView            = "custom_view"
	FieldCreated               = "created"
	FieldIssued                = "issued"
	FieldCreator               = "creator"
	FieldContributor           = "contributor"
	FieldContactName           = "contact_name"
	FieldContactEmail          = "contact_email"
	FieldAccrualPeriodicity    = "accrualperiodicity"
	FieldRelation              = "relation"
	FieldTemporalCoverageStart = "temporal_coverage_start_date"
	FieldTemporalCoverageEnd   = "temporal_coverage_end_date"
	FieldRights                = "rights"
)

// Get returns the unwrapped value of template.field. The second return is
// false when the template, the field, or the wrapper value is absent; absence
// is not an error.
func (d Document) Get(template, field string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	fields, ok := d[template]
	if !ok {
		return nil, false
	}
	wrapper, ok := fields[field]
	if !ok {
		return nil, false
	}
	value, ok := wrapper[wrapperValueKey]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// Set writes value into template.field, creating the template and the field
// wrapper on first write. Existing wrapper keys other than the value are
// preserved.
func (d Document) Set(template, field string, value Value) {
	fields, ok := d[template]
	if !ok {
		fields = Template{}
		d[template] = fields
	}
	wrapper, ok := fields[field]
	if !ok {
		wrapper = FieldWrapper{}
		fields[field] = wrapper
	}
	wrapper[wrapperValueKey] = value
}

// Templates lists the template names in the document, sorted.
func (d Document) Templates() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetString unwraps template.field as a string.
func (d Document) GetString(template, field string) (string, bool) {
	value, ok := d.Get(template, field)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

// GetStringList unwraps template.field as a list of strings.
func (d Document) GetStringList(template, field string) ([]string, bool) {
	value, ok := d.Get(template, field)
	if !ok {
		return nil, false
	}
	return StringList(value)
}

// StringList converts a field value to a list of strings. JSON decoding
// yields []any, so both representations are accepted.
func StringList(value Value) ([]string, bool) {
	switch list := value.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		items := make([]string, 0, len(list))
		for _, item := range list {
			text, ok := item.(string)
			if !ok {
				return nil, false
			}
			items = append(items, text)
		}
		return items, true
	default:
		return nil, false
	}
}

// Title returns default.title.
func (d Document) Title() (string, bool) {
	return d.GetString(TemplateDefault, FieldTitle)
}

// Description returns default.description.
func (d Document) Description() (string, bool) {
	return d.GetString(TemplateDefault, FieldDescription)
}

// Keywords returns default.keyword.
func (d Document) Keywords() ([]string, bool) {
	return d.GetStringList(TemplateDefault, FieldKeyword)
}

// Language returns default.language.
func (d Document) Language() (string, bool) {
	return d.GetString(TemplateDefault, FieldLanguage)
}

// Publisher returns default.publisher.
func (d Document) Publisher() (string, bool) {
	return d.GetString(TemplateDefault, FieldPublisher)
}

// ThemeID returns default.theme_id.
func (d Document) ThemeID() (string, bool) {
	return d.GetString(TemplateDefault, FieldThemeID)
}

// LicenseID returns default.license_id.
func (d Document) LicenseID() (string, bool) {
	return d.GetString(TemplateDefault, FieldLicenseID)
}

// CustomView returns visualization.custom_view.
func (d Document) CustomView() (map[string]Value, bool) {
	value, ok := d.Get(TemplateVisualization, FieldCustomView)
	if !ok {
		return nil, false
	}
	view, ok := value.(map[string]Value)
	return view, ok
}

// TemporalPeriod returns dcat.temporal_coverage_start_date and
// dcat.temporal_coverage_end_date; either may be absent.
func (d Document) TemporalPeriod() (start string, end string) {
	start, _ = d.GetString(TemplateDCAT, FieldTemporalCoverageStart)
	end, _ = d.GetString(TemplateDCAT, FieldTemporalCoverageEnd)
	return start, end
}
