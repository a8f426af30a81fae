package models

// Form keys of the applicant text fields.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldCompanyID = "companyId"
	FieldPosition  = "position"
	FieldLocation  = "location"
	FieldVisaType  = "visa_type"
)

// ApplicationSubmission holds the applicant text fields of one submission.
// A nil field was not present in the form.
type ApplicationSubmission struct {
	Name      *string `json:"name,omitempty" msgpack:"name,omitempty"`
	Email     *string `json:"email,omitempty" msgpack:"email,omitempty"`
	Phone     *string `json:"phone,omitempty" msgpack:"phone,omitempty"`
	CompanyID *string `json:"companyId,omitempty" msgpack:"companyId,omitempty"`
	Position  *string `json:"position,omitempty" msgpack:"position,omitempty"`
	Location  *string `json:"location,omitempty" msgpack:"location,omitempty"`
	VisaType  *string `json:"visa_type,omitempty" msgpack:"visa_type,omitempty"`
}

// SubmissionFromForm picks the applicant fields out of parsed form values.
// Keys other than the seven applicant fields are ignored. Each field holds a
// single string, so when a key is repeated the first value wins and the later
// ones are dropped rather than collected into a list.
func SubmissionFromForm(values map[string][]string) ApplicationSubmission {
	lookup := func(key string) *string {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return nil
		}
		s := v[0]
		return &s
	}

	return ApplicationSubmission{
		Name:      lookup(FieldName),
		Email:     lookup(FieldEmail),
		Phone:     lookup(FieldPhone),
		CompanyID: lookup(FieldCompanyID),
		Position:  lookup(FieldPosition),
		Location:  lookup(FieldLocation),
		VisaType:  lookup(FieldVisaType),
	}
}

// ApplicationResponse is the body returned for an accepted submission.
type ApplicationResponse struct {
	OK    bool                      `json:"ok" msgpack:"ok"`
	Data  ApplicationSubmission     `json:"data" msgpack:"data"`
	Files map[string][]UploadedFile `json:"files" msgpack:"files"`
}

// ApplicationFieldsResponse is the body returned for a submission whose body
// was not multipart and so carried no files.
type ApplicationFieldsResponse struct {
	OK   bool                  `json:"ok" msgpack:"ok"`
	Data ApplicationSubmission `json:"data" msgpack:"data"`
}
