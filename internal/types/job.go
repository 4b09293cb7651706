package types

// JobRequirement describes what a job asks of an applicant.
// Tags have set semantics: order and duplicates carry no meaning.
type JobRequirement struct {
	Tags          []string `json:"tags"`
	Description   string   `json:"description"`
	RequiredYears Years    `json:"required_years"`
}

// JobRecord is a job document as stored upstream. Every field is optional.
type JobRecord struct {
	Tags                []string `json:"tags,omitempty"`
	Description         *string  `json:"description,omitempty"`
	NumOfYearExperience Years    `json:"numOfYearExperience"`
}

// Requirement applies the boundary defaults and returns the typed requirement.
func (r *JobRecord) Requirement() JobRequirement {
	if r == nil {
		return JobRequirement{Tags: []string{}}
	}
	req := JobRequirement{
		Tags:          append([]string{}, r.Tags...),
		RequiredYears: r.NumOfYearExperience,
	}
	if r.Description != nil {
		req.Description = *r.Description
	}
	return req
}
