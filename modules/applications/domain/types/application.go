package types

type Application struct {
	Username string `json:"username"`
	JobID    int64  `json:"jobId"`
}

// AppliedJob is an application as seen from the applicant's side.
type AppliedJob struct {
	JobID         int64  `json:"jobId"`
	Title         string `json:"title"`
	CompanyHandle string `json:"companyHandle"`
}
