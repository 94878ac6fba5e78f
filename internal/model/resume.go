package model

// Go models that match resume.schema.json used for validation and storage.

type Profile struct {
	Name         string   `json:"name"`
	Phone        string   `json:"phone,omitempty"`
	Email        string   `json:"email"`
	Location     string   `json:"location,omitempty"`
	PersonalURLs []string `json:"personal_urls,omitempty"`
}

type Experience struct {
	Date             string   `json:"date"`
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Skills           []string `json:"skills,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

type Education struct {
	Date        string   `json:"date"`
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Details     []string `json:"details,omitempty"`
}

type Patent struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

type Publication struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

type Certificate struct {
	Date                string `json:"date"`
	Title               string `json:"title"`
	CertifyingAuthority string `json:"certifying_authority"`
}

type Resume struct {
	Profile        Profile       `json:"profile"`
	Experience     []Experience  `json:"experience"`
	Education      []Education   `json:"education"`
	Patents        []Patent      `json:"patents"`
	Publications   []Publication `json:"publications"`
	Certificates   []Certificate `json:"certificates"`
	ComputerSkills []string      `json:"computer_skills"`
}

// NewResume returns a resume with every collection initialized, so a freshly
// built document marshals with the empty arrays the schema requires rather
// than nulls.
func NewResume() *Resume {
	return &Resume{
		Experience:     []Experience{},
		Education:      []Education{},
		Patents:        []Patent{},
		Publications:   []Publication{},
		Certificates:   []Certificate{},
		ComputerSkills: []string{},
	}
}
