package types

// ApplicantProfile describes a candidate as seen by the scoring engine.
// ResumeText may be an extraction-error placeholder produced upstream; it is scored as ordinary text.
type ApplicantProfile struct {
	Skills          []string `json:"skills"`
	ResumeText      string   `json:"resume_text"`
	ExperienceYears Years    `json:"experience_years"`
}

// ApplicantRecord is an application document plus the outputs of the
// text and skill extraction collaborators. Every field is optional.
type ApplicantRecord struct {
	Skills           []string `json:"skills,omitempty"`
	ExtractedText    *string  `json:"extracted_text,omitempty"`
	YearOfExperience Years    `json:"yearOfExperience"`
}

// Profile applies the boundary defaults and returns the typed profile.
func (r *ApplicantRecord) Profile() ApplicantProfile {
	if r == nil {
		return ApplicantProfile{Skills: []string{}}
	}
	p := ApplicantProfile{
		Skills:          append([]string{}, r.Skills...),
		ExperienceYears: r.YearOfExperience,
	}
	if r.ExtractedText != nil {
		p.ResumeText = *r.ExtractedText
	}
	return p
}

// ScoreRequest pairs one job record with one applicant record.
type ScoreRequest struct {
	ID        string          `json:"id,omitempty"`
	Job       JobRecord       `json:"job"`
	Applicant ApplicantRecord `json:"applicant"`
}

// BatchRequest is a list of independent scoring requests.
type BatchRequest struct {
	Requests []ScoreRequest `json:"requests" validate:"required,min=1,dive"`
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	return validate.Struct(r)
}
