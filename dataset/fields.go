package dataset

import (
	"context"
	"fmt"

	"github.com/dcc-bs/huwise-go/catalog"
)

// Typed accessors for the well-known metadata fields. Each setter goes
// through SetField, so it inherits the idle-wait gate and the optional
// publish step. Getters read through the template endpoint and report
// absence via the boolean, never as an error.

func (a *Accessor) Title(ctx context.Context, uid string) (string, bool, error) {
	return a.stringField(ctx, uid, catalog.TemplateDefault, catalog.FieldTitle)
}

func (a *Accessor) SetTitle(ctx context.Context, uid, title string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldTitle, title, publish)
}

func (a *Accessor) Description(ctx context.Context, uid string) (string, bool, error) {
	return a.stringField(ctx, uid, catalog.TemplateDefault, catalog.FieldDescription)
}

func (a *Accessor) SetDescription(ctx context.Context, uid, description string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldDescription, description, publish)
}

func (a *Accessor) Keywords(ctx context.Context, uid string) ([]string, bool, error) {
	value, ok, err := a.Field(ctx, uid, catalog.TemplateDefault, catalog.FieldKeyword)
	if err != nil || !ok {
		return nil, false, err
	}
	keywords, ok := catalog.StringList(value)
	return keywords, ok, nil
}

func (a *Accessor) SetKeywords(ctx context.Context, uid string, keywords []string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldKeyword, keywords, publish)
}

func (a *Accessor) SetLanguage(ctx context.Context, uid, language string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldLanguage, language, publish)
}

func (a *Accessor) SetPublisher(ctx context.Context, uid, publisher string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldPublisher, publisher, publish)
}

func (a *Accessor) SetThemeID(ctx context.Context, uid, themeID string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldThemeID, themeID, publish)
}

func (a *Accessor) LicenseID(ctx context.Context, uid string) (string, bool, error) {
	return a.stringField(ctx, uid, catalog.TemplateDefault, catalog.FieldLicenseID)
}

// SetLicense sets default.license_id and, when a display name is given,
// default.license. The id must be one of the platform's known license ids.
// Publishing happens once, after both fields are staged.
func (a *Accessor) SetLicense(ctx context.Context, uid, licenseID, licenseName string, publish bool) error {
	if !catalog.IsValidLicenseID(licenseID) {
		return validationError(fmt.Sprintf("unknown license id %q", licenseID), nil)
	}
	if err := a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldLicenseID, licenseID, false); err != nil {
		return err
	}
	if licenseName != "" {
		if err := a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldLicense, licenseName, false); err != nil {
			return err
		}
	}
	if publish {
		return a.Publish(ctx, uid)
	}
	return nil
}

// SetModified sets default.modified and the flags controlling whether the
// platform keeps bumping it on metadata or data changes.
func (a *Accessor) SetModified(ctx context.Context, uid, modified string, onMetadataChange, onDataChange, publish bool) error {
	if err := a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldModified, modified, false); err != nil {
		return err
	}
	if err := a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldModifiedOnMetaChange, onMetadataChange, false); err != nil {
		return err
	}
	if err := a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldModifiedOnDataChange, onDataChange, false); err != nil {
		return err
	}
	if publish {
		return a.Publish(ctx, uid)
	}
	return nil
}

func (a *Accessor) SetGeographicReference(ctx context.Context, uid string, references []string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDefault, catalog.FieldGeographicReference, references, publish)
}

func (a *Accessor) SetCreated(ctx context.Context, uid, created string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldCreated, created, publish)
}

func (a *Accessor) SetIssued(ctx context.Context, uid, issued string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldIssued, issued, publish)
}

func (a *Accessor) SetCreator(ctx context.Context, uid, creator string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldCreator, creator, publish)
}

func (a *Accessor) SetContributor(ctx context.Context, uid, contributor string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldContributor, contributor, publish)
}

func (a *Accessor) SetContact(ctx context.Context, uid, name, email string, publish bool) error {
	if err := a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldContactName, name, false); err != nil {
		return err
	}
	if err := a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldContactEmail, email, false); err != nil {
		return err
	}
	if publish {
		return a.Publish(ctx, uid)
	}
	return nil
}

func (a *Accessor) SetAccrualPeriodicity(ctx context.Context, uid, periodicity string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldAccrualPeriodicity, periodicity, publish)
}

func (a *Accessor) SetRelation(ctx context.Context, uid, relation string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldRelation, relation, publish)
}

// SetTemporalPeriod sets dcat.temporal_coverage_start_date and
// dcat.temporal_coverage_end_date. Empty values are skipped.
func (a *Accessor) SetTemporalPeriod(ctx context.Context, uid, start, end string, publish bool) error {
	if start != "" {
		if err := a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldTemporalCoverageStart, start, false); err != nil {
			return err
		}
	}
	if end != "" {
		if err := a.SetField(ctx, uid, catalog.TemplateDCAT, catalog.FieldTemporalCoverageEnd, end, false); err != nil {
			return err
		}
	}
	if publish {
		return a.Publish(ctx, uid)
	}
	return nil
}

func (a *Accessor) SetRights(ctx context.Context, uid, rights string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCATAPCH, catalog.FieldRights, rights, publish)
}

func (a *Accessor) SetRightsLicense(ctx context.Context, uid, license string, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateDCATAPCH, catalog.FieldLicense, license, publish)
}

func (a *Accessor) SetCustomView(ctx context.Context, uid string, view map[string]catalog.Value, publish bool) error {
	return a.SetField(ctx, uid, catalog.TemplateVisualization, catalog.FieldCustomView, view, publish)
}

func (a *Accessor) stringField(ctx context.Context, uid, template, field string) (string, bool, error) {
	value, ok, err := a.Field(ctx, uid, template, field)
	if err != nil || !ok {
		return "", false, err
	}
	text, ok := value.(string)
	return text, ok, nil
}
