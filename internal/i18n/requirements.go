package i18n

type Section struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Requirements struct {
	Language    Language  `json:"language"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Sections    []Section `json:"sections"`
	OfficialDoc Link      `json:"official_doc"`
}

var sectionKeys = []struct {
	title string
	items []string
}{
	{"photoSize", []string{"requirements.size1", "requirements.size2"}},
	{"headPosition", []string{"requirements.position1", "requirements.position2"}},
	{"backgroundAndPose", []string{"requirements.background1", "requirements.background2", "requirements.background3"}},
	{"photoQuality", []string{"requirements.quality1", "requirements.quality2", "requirements.quality3"}},
}

func RequirementsFor(lang Language) Requirements {
	if _, ok := catalogs[lang]; !ok {
		lang = English
	}

	sections := make([]Section, 0, len(sectionKeys))
	for _, sk := range sectionKeys {
		items := make([]string, len(sk.items))
		for i, k := range sk.items {
			items[i] = T(lang, k)
		}
		sections = append(sections, Section{Key: sk.title, Title: T(lang, sk.title), Items: items})
	}

	return Requirements{
		Language:    lang,
		Title:       T(lang, "frenchVisaRequirements"),
		Subtitle:    T(lang, "officialRequirements"),
		Sections:    sections,
		OfficialDoc: Link{Label: T(lang, "viewOfficialDoc"), URL: OfficialDocURL},
	}
}
