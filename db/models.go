package db

type Major struct {
	Code         string
	Name         string
	Department   string
	Requirements string
}

// CourseDetails is one catalog entry. Distributives and TermsOffered keep the
// catalog's own spelling, e.g. "SOC/QDS" and "24F, 25W".
type CourseDetails struct {
	SubjectAreaCode string
	CatalogNumber   string
	Name            string
	Distributives   string
	TermsOffered    string
	Description     string
}

type SelectedSequence struct {
	UserId        string
	MajorCode     string
	SequenceIndex int
}
